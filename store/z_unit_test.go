package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/state"
)

func sampleMatches() []mech.Match {
	return []mech.Match{
		{Origin: mech.Origin{Seed: 0xC5A1ACF5368091B0, Index: 2, Timer0: 0xc79}, State: state.State{Seed: 0xC5A1ACF5368091B0, Advances: 9, PID: 0xDEADBEEF, IVs: [6]uint8{31, 31, 31, 31, 31, 31}}},
		{Origin: mech.Origin{Seed: 0x1A2B3C4D, Index: 0, Delay: 600}, State: state.State{Seed: 0x1A2B3C4D, Advances: 3, PID: 0x5C76C9E4, Nature: 3}},
		{Origin: mech.Origin{Seed: 0x1A2B3C4D, Index: 0, Delay: 600}, State: state.State{Seed: 0x1A2B3C4D, Advances: 1, PID: 0x6EAEF2A1}},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	run := &Run{
		Mechanic: "gen4.wild",
		Profile:  "platinum-demo",
		Status:   "completed",
		Total:    2560,
		Examined: 2560,
		Seeds:    2560,
		Found:    3,
		Elapsed:  1500 * time.Millisecond,
		Job:      json.RawMessage(`{"mechanic":"gen4.wild"}`),
	}
	if err := s.Save(ctx, run, sampleMatches()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if run.ID == "" {
		t.Fatalf("save should assign an id")
	}

	got, err := s.Run(ctx, run.ID)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Mechanic != run.Mechanic || got.Found != 3 || got.Elapsed != run.Elapsed || got.Total != 2560 {
		t.Fatalf("run mismatch: %+v", got)
	}
	if string(got.Job) != `{"mechanic":"gen4.wild"}` {
		t.Fatalf("job = %s", got.Job)
	}

	ms, err := s.Matches(ctx, run.ID, 0)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("matches len = %d", len(ms))
	}
	// seed 以有號整數排序：高位元為 1 的 64-bit seed 排在最前
	if ms[0].State.PID != 0xDEADBEEF || ms[1].State.Advances != 1 || ms[2].State.Advances != 3 {
		t.Fatalf("match order: %+v", ms)
	}
	if ms[0].Origin.Seed != 0xC5A1ACF5368091B0 || ms[0].State.IVs[5] != 31 {
		t.Fatalf("match round trip: %+v", ms[0])
	}

	lim, err := s.Matches(ctx, run.ID, 1)
	if err != nil || len(lim) != 1 {
		t.Fatalf("limited matches: %d %v", len(lim), err)
	}
}

func TestRunNotFound(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, err := s.Run(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete want ErrNotFound, got %v", err)
	}
	ms, err := s.Matches(context.Background(), "missing", 0)
	if err != nil || ms == nil || len(ms) != 0 {
		t.Fatalf("empty matches should be empty slice: %v %v", ms, err)
	}
}

func TestRunsAndDeleteOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		r := &Run{ID: id, Mechanic: "gen5.egg", Profile: "black-demo", Status: "cancelled", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.Save(ctx, r, nil); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := s.Save(ctx, &Run{ID: "a", Mechanic: "x", Profile: "y", Status: "z"}, nil); err == nil {
		t.Fatalf("duplicate id should fail")
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	runs, err := s.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("runs order: %v", runs)
	}
	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Run(ctx, "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted run still present: %v", err)
	}
}
