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

// ivtable 建立 Gen 5 IV 表檔，或查詢既有表檔中的 seed。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/zintix-labs/seedlab/corefmt"
	"github.com/zintix-labs/seedlab/ivtable"
	"github.com/zintix-labs/seedlab/sdk/perf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	out      string
	start    uint64
	end      uint64
	workers  int
	progress bool
	lookup   string
	pprof    string
}

func main() {
	cfg := new(config)
	flag.StringVar(&cfg.out, "o", "ivtable.bin.zst", "table file (.zst: zstd compressed)")
	flag.Uint64Var(&cfg.start, "start", 0, "first seed")
	flag.Uint64Var(&cfg.end, "end", 0, "end seed, exclusive (0: 2^32)")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of workers")
	flag.BoolVar(&cfg.progress, "progress", false, "show progress bar")
	flag.StringVar(&cfg.lookup, "lookup", "", "look up a seed in an existing table instead of building")
	flag.StringVar(&cfg.pprof, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	exe := func() error { return build(ctx, cfg) }
	if cfg.lookup != "" {
		exe = func() error { return lookup(cfg) }
	}
	if err := perf.RunPProf(exe, cfg.pprof); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func build(ctx context.Context, cfg *config) error {
	p := message.NewPrinter(language.English)
	start := time.Now()
	tab, err := ivtable.Build(ctx, ivtable.BuildConfig{
		Start:        cfg.start,
		End:          cfg.end,
		Workers:      cfg.workers,
		ShowProgress: cfg.progress,
	})
	if err != nil {
		return err
	}
	if err := tab.WriteFile(cfg.out); err != nil {
		return err
	}
	p.Printf("%d seeds written to %s in %s\n", tab.Len(), cfg.out, time.Since(start).Round(time.Millisecond))
	for _, k := range []ivtable.Kind{ivtable.Entralink, ivtable.Normal, ivtable.Roamer} {
		for i, b := range tab.Buckets(k) {
			p.Printf("  %-9s [%d] %d\n", k, i, len(b))
		}
	}
	return nil
}

func lookup(cfg *config) error {
	seed, err := corefmt.ParseSeed32(cfg.lookup)
	if err != nil {
		return err
	}
	tab, err := ivtable.ReadFile(cfg.out)
	if err != nil {
		return err
	}
	found := false
	for _, k := range []ivtable.Kind{ivtable.Entralink, ivtable.Normal, ivtable.Roamer} {
		if b, ok := tab.Lookup(k, seed); ok {
			fmt.Printf("%s %s bucket %d\n", corefmt.FormatSeed32(seed), k, b)
			found = true
		}
	}
	if !found {
		fmt.Printf("%s not in table\n", corefmt.FormatSeed32(seed))
	}
	return nil
}
