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

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// stream 執行 go 子命令，把 stdout/stderr 合併後逐行交給 show；show 為 nil 時直接輸出。
func stream(show func(line string), args ...string) error {
	cmd := exec.Command("go", args...)
	if show == nil {
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
		return cmd.Run()
	}
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(pipe)
	for sc.Scan() {
		show(sc.Text())
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return sc.Err()
}

func colorize(line string) {
	switch {
	case strings.HasPrefix(line, "ok"):
		PrintGreen(line)
	case strings.HasPrefix(line, "FAIL"), strings.HasPrefix(line, "--- FAIL"):
		PrintRed(line)
	default:
		fmt.Println(line)
	}
}

func cleanCache() error {
	return stream(nil, "clean", "-testcache")
}

func runTest(_ []string) error {
	PrintGreen("running tests")
	if err := cleanCache(); err != nil {
		return err
	}
	return stream(func(line string) {
		// 編譯錯誤不以 ok/FAIL 開頭，仍需顯示
		if strings.HasPrefix(line, "ok") || strings.HasPrefix(line, "FAIL") ||
			strings.Contains(line, "build failed") || strings.Contains(line, "setup failed") {
			colorize(line)
		}
	}, "test", "./...", "-cover", "-count=1")
}

func runTestRace(_ []string) error {
	PrintGreen("running tests (race)")
	return stream(colorize, "test", "-race", "-count=1", "./...")
}

func runTestDetail(_ []string) error {
	PrintGreen("running tests (detail)")
	if err := cleanCache(); err != nil {
		return err
	}
	return stream(func(line string) {
		if !strings.Contains(line, "[no test files]") {
			colorize(line)
		}
	}, "test", "./...", "-v", "-count=1")
}

func runBench(_ []string) error {
	PrintGreen("running benchmarks")
	return stream(colorize, "test", "-run", "^$", "-bench", ".", "-benchmem", "./sdk/rng/", "./sdk/seedhash/")
}

func runIVTable(args []string) error {
	out := filepath.Join("build", "ivtable.bin.zst")
	if len(args) > 0 {
		out = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	PrintBlue("building iv table -> " + out)
	return stream(nil, "run", "./cmd/ivtable", "-o", out, "-progress")
}

func runSvr(args []string) error {
	return stream(nil, append([]string{"run", "./cmd/svr"}, args...)...)
}
