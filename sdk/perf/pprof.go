// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package perf 以 runtime/pprof 包裝 CLI 執行，輸出 cpu / heap / allocs profile。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/seedlab/errs"
)

// DefaultDir 為 profile 檔預設的輸出目錄。
const DefaultDir = "build/profiling"

// Modes 為 RunPProf 接受的模式；空字串表示不做 profiling。
var Modes = []string{"", "cpu", "heap", "allocs"}

// RunPProf 依 mode 執行 exe 並把 profile 寫入 DefaultDir。
func RunPProf(exe func() error, mode string) error {
	return RunPProfTo(exe, mode, DefaultDir)
}

// RunPProfTo 同 RunPProf，但指定輸出目錄。未知的 mode 回傳 Warn 且不執行 exe。
func RunPProfTo(exe func() error, mode, dir string) error {
	switch mode {
	case "":
		return exe()
	case "cpu":
		return cpu(exe, dir)
	case "heap", "allocs":
		if err := exe(); err != nil {
			return err
		}
		return snapshot(mode, dir)
	}
	return errs.Warnf("unknown pprof mode %q", mode)
}

func create(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create profiling dir failed")
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, errs.WrapWithExtra(err, "create profile failed", name)
	}
	return f, nil
}

// cpu 可直接作為 PGO 的 default.pgo 來源。
func cpu(exe func() error, dir string) error {
	f, err := create(dir, "cpu.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile failed")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// snapshot 在 exe 結束後寫出 heap（存活物件，先 GC）或 allocs（累積配置）。
func snapshot(mode, dir string) error {
	f, err := create(dir, mode+".pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if mode == "heap" {
		runtime.GC()
	}
	if err := pprof.Lookup(mode).WriteTo(f, 0); err != nil {
		return errs.WrapWithExtra(err, "write profile failed", mode)
	}
	return nil
}
