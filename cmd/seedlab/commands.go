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
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/corefmt"
	"github.com/zintix-labs/seedlab/demo"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/gen4"
	"github.com/zintix-labs/seedlab/gen5"
	"github.com/zintix-labs/seedlab/sdk/perf"
	"github.com/zintix-labs/seedlab/sdk/rng"
	"github.com/zintix-labs/seedlab/sdk/seedhash"
	"github.com/zintix-labs/seedlab/spec"
	"github.com/zintix-labs/seedlab/store"
)

// common 為 generate 與 search 共用的旗標。
type common struct {
	job      string
	profiles string
	format   string
	pprof    string
}

func (c *common) bind(fset *flag.FlagSet) {
	fset.StringVar(&c.job, "job", "", "job file (.yaml/.yml/.json)")
	fset.StringVar(&c.profiles, "profiles", "", "profile directory (default: embedded demo profiles)")
	fset.StringVar(&c.format, "o", "text", "output: text|json|yaml")
	fset.StringVar(&c.pprof, "p", "", "pprof: '', cpu, heap, allocs")
}

func (c *common) load() (*seedlab.Seedlab, *spec.Job, error) {
	if err := checkFormat(c.format); err != nil {
		return nil, nil, err
	}
	if c.job == "" {
		return nil, nil, errs.NewWarn("-job is required")
	}
	job, err := loadJob(c.job)
	if err != nil {
		return nil, nil, err
	}
	lab, err := openLab(c.profiles)
	if err != nil {
		return nil, nil, err
	}
	return lab, job, nil
}

// openLab 以 dir 下的 profile 建立 Seedlab；dir 為空時使用內嵌的示範 profile。
func openLab(dir string) (*seedlab.Seedlab, error) {
	if dir == "" {
		return demo.NewSeedlab(nil)
	}
	return seedlab.NewAuto(seedlab.Configs(os.DirFS(dir)), nil)
}

func loadJob(path string) (*spec.Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "read job file failed", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return spec.GetJobByJSON(raw)
	}
	return spec.GetJobByYAML(raw)
}

func newFlagSet(c *cli, name string) *flag.FlagSet {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(c.errOut)
	return fset
}

func (c *cli) generate(args []string) error {
	var (
		opt  common
		seed string
	)
	fset := newFlagSet(c, "generate")
	opt.bind(fset)
	fset.StringVar(&seed, "seed", "", "seed (0x hex or decimal)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	lab, job, err := opt.load()
	if err != nil {
		return err
	}
	s, err := corefmt.ParseSeed(seed)
	if err != nil {
		return err
	}
	return perf.RunPProf(func() error {
		states, err := lab.Generate(job, s)
		if err != nil {
			return err
		}
		if opt.format == "text" {
			countLine(c.out, "seed "+corefmt.FormatSeed(s), len(states))
			writeStates(c.out, states)
			return nil
		}
		return encode(c.out, opt.format, map[string]any{"seed": corefmt.FormatSeed(s), "states": states})
	}, opt.pprof)
}

func (c *cli) search(args []string) error {
	var (
		opt      common
		workers  int
		progress bool
		limit    int
		db       string
	)
	fset := newFlagSet(c, "search")
	opt.bind(fset)
	fset.IntVar(&workers, "workers", -1, "override job workers (0: NumCPU)")
	fset.BoolVar(&progress, "progress", false, "show progress bar on stderr")
	fset.IntVar(&limit, "n", 50, "matches printed in text output (0: all)")
	fset.StringVar(&db, "db", "", "sqlite file to save the run")
	if err := fset.Parse(args); err != nil {
		return err
	}
	lab, job, err := opt.load()
	if err != nil {
		return err
	}
	if workers >= 0 {
		job.Search.Workers = workers
	}
	job.Search.ShowProgress = job.Search.ShowProgress || progress

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return perf.RunPProf(func() error {
		s, err := lab.NewSearcher(job)
		if err != nil {
			return err
		}
		created := time.Now()
		if err := s.Start(ctx); err != nil {
			return err
		}
		s.Wait()
		matches := s.SortedResults()
		rep := s.Report()

		if db != "" {
			if err := saveRun(db, job, s, created); err != nil {
				return err
			}
		}
		if opt.format == "text" {
			rep.StdOut(c.out)
			shown := matches
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			countLine(c.out, "matches", len(matches))
			writeMatches(c.out, shown)
			return nil
		}
		return encode(c.out, opt.format, map[string]any{"report": rep, "matches": matches})
	}, opt.pprof)
}

func saveRun(path string, job *spec.Job, s *seedlab.Searcher, created time.Time) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	raw, _ := json.Marshal(job)
	p := s.Progress()
	return st.Save(context.Background(), &store.Run{
		Mechanic:  string(job.Mechanic),
		Profile:   job.Profile,
		Status:    p.Status.String(),
		Total:     p.Total,
		Examined:  p.Examined,
		Seeds:     p.Seeds,
		Found:     p.Found,
		Elapsed:   s.Elapsed(),
		Job:       raw,
		CreatedAt: created,
	}, s.SortedResults())
}

func (c *cli) rng(args []string) error {
	var (
		engine, seed, snapshot, snapFmt, format string
		advances                                uint
		n                                       int
		wide                                    bool
	)
	fset := newFlagSet(c, "rng")
	fset.StringVar(&engine, "engine", "pokerng", "engine: "+strings.Join(rng.EngineKinds, "|"))
	fset.StringVar(&seed, "seed", "0", "seed")
	fset.UintVar(&advances, "a", 0, "advances to skip")
	fset.IntVar(&n, "n", 10, "outputs to print")
	fset.BoolVar(&wide, "wide", false, "64-bit outputs for bwrng/sfmt")
	fset.StringVar(&snapshot, "snapshot", "", "resume from snapshot text instead of seed")
	fset.StringVar(&snapFmt, "snapshot-format", "hex", "snapshot text: hex|base64")
	fset.StringVar(&format, "o", "text", "output: text|json|yaml")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}
	var (
		eng rng.Engine
		err error
	)
	if snapshot != "" {
		raw, derr := corefmt.DecodeSnapshot(snapFmt, snapshot)
		if derr != nil {
			return derr
		}
		if eng, err = rng.NewEngine(engine, 0, 0); err == nil {
			err = eng.Restore(raw)
		}
	} else {
		s, perr := corefmt.ParseSeed(seed)
		if perr != nil {
			return perr
		}
		eng, err = rng.NewEngine(engine, s, uint32(advances))
	}
	if err != nil {
		return err
	}
	outs := rng.Draw(eng, n, wide)
	snap, err := eng.Snapshot()
	if err != nil {
		return err
	}
	text, err := corefmt.EncodeSnapshot(snapFmt, snap)
	if err != nil {
		return err
	}
	if format != "text" {
		return encode(c.out, format, map[string]any{"engine": engine, "outputs": outs, "snapshot": text})
	}
	for i, v := range outs {
		fmt.Fprintf(c.out, "%6d  %s\n", i, corefmt.FormatSeed(v))
	}
	fmt.Fprintf(c.out, "snapshot %s\n", text)
	return nil
}

func (c *cli) seedTime(args []string) error {
	var (
		seed, profiles, profile, at, format string
		year, limit                         int
		buttons                             uint
	)
	fset := newFlagSet(c, "seedtime")
	fset.StringVar(&seed, "seed", "", "gen4 seed to convert")
	fset.IntVar(&year, "year", 2000, "gen4 year")
	fset.IntVar(&limit, "n", 20, "times printed (0: all)")
	fset.StringVar(&profiles, "profiles", "", "profile directory (default: embedded demo profiles)")
	fset.StringVar(&profile, "profile", "", "gen5 profile: hash -time for every timer0")
	fset.StringVar(&at, "time", "", "gen5 date/time, 2006-01-02T15:04:05")
	fset.UintVar(&buttons, "keys", 0, "gen5 key mask")
	fset.StringVar(&format, "o", "text", "output: text|json|yaml")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(format); err != nil {
		return err
	}
	if profile != "" {
		return c.gen5Seeds(profiles, profile, at, seedhash.Button(buttons), format)
	}

	s, err := corefmt.ParseSeed32(seed)
	if err != nil {
		return err
	}
	all := gen4.SeedToTime(s, year)
	shown := all
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	if format != "text" {
		return encode(c.out, format, map[string]any{"seed": corefmt.FormatSeed32(s), "total": len(all), "times": shown})
	}
	countLine(c.out, corefmt.FormatSeed32(s)+" times", len(all))
	for _, st := range shown {
		fmt.Fprintf(c.out, "%s  delay %d\n", st.Time.Format(time.DateTime), st.Delay)
	}
	return nil
}

func (c *cli) gen5Seeds(dir, name, at string, keys seedhash.Button, format string) error {
	lab, err := openLab(dir)
	if err != nil {
		return err
	}
	prof, err := lab.Profile(name)
	if err != nil {
		return err
	}
	if prof.Generation() != 5 {
		return errs.Warnf("profile %s is not a gen5 profile", name)
	}
	t, err := time.Parse("2006-01-02T15:04:05", at)
	if err != nil {
		return &errs.E{Message: "invalid -time", Extra: at, Cause: err, ErrLv: errs.Warn}
	}
	type row struct {
		Timer0 uint16 `json:"timer0" yaml:"timer0"`
		Seed   string `json:"seed"   yaml:"seed"`
	}
	var rows []row
	for t0 := uint32(prof.Timer0Min); t0 <= uint32(prof.Timer0Max); t0++ {
		s := gen5.SeedAt(prof.Console(), uint16(t0), t, keys)
		rows = append(rows, row{Timer0: uint16(t0), Seed: corefmt.FormatSeed64(s)})
	}
	if format != "text" {
		return encode(c.out, format, rows)
	}
	for _, r := range rows {
		fmt.Fprintf(c.out, "timer0 0x%04X  %s  %s\n", r.Timer0, r.Seed, keys)
	}
	return nil
}
