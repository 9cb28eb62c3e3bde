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

package gen4

import (
	"testing"
	"time"

	"github.com/zintix-labs/seedlab/sdk/encounter"
	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

const testSeed = 0x1a2b3c4d

func grassConfig() WildConfig {
	return WildConfig{
		MaxAdvances: 50,
		TID:         12345,
		SID:         54321,
		Area:        encounter.Uniform("route 201", encounter.Grass, personal.Starly, 2, 2),
		Filter:      filter.New(),
	}
}

func mustWild(t *testing.T, cfg WildConfig) *WildGenerator {
	t.Helper()
	g, err := NewWildGenerator(cfg)
	if err != nil {
		t.Fatalf("NewWildGenerator: %v", err)
	}
	return g
}

func TestMethodJUnfiltered(t *testing.T) {
	g := mustWild(t, grassConfig())
	got := g.Generate(testSeed)
	if len(got) != 51 {
		t.Fatalf("expected 51 states, got %d", len(got))
	}
	want := []struct {
		pid    uint32
		nature uint8
		slot   uint8
		ivs    [6]uint8
	}{
		{0x5c76c9e4, 4, 3, [6]uint8{0, 0, 17, 25, 18, 4}},
		{0x6eaef2a1, 12, 0, [6]uint8{12, 28, 7, 14, 3, 17}},
		{0xdaf4cf46, 9, 3, [6]uint8{23, 16, 11, 26, 27, 7}},
		{0xf1537110, 13, 1, [6]uint8{10, 30, 18, 2, 23, 30}},
		{0x7195d1b5, 7, 3, [6]uint8{2, 31, 11, 30, 15, 10}},
	}
	for i, w := range want {
		s := got[i]
		if s.Advances != uint32(i) || s.PID != w.pid || s.Nature != w.nature || s.EncounterSlot != w.slot || s.IVs != w.ivs {
			t.Fatalf("advance %d: got %+v", i, s)
		}
		if s.Level != 2 || s.Species != personal.Starly {
			t.Fatalf("advance %d: unexpected level/species %d/%d", i, s.Level, s.Species)
		}
	}
	females := 0
	for i, s := range got {
		if s.Advances != uint32(i) {
			t.Fatalf("results out of order at %d", i)
		}
		if s.Gender == state.Female {
			females++
		}
	}
	if females != 21 {
		t.Fatalf("expected 21 females, got %d", females)
	}
}

func TestMethodJShinyScenario(t *testing.T) {
	cfg := grassConfig()
	cfg.Filter.Shiny = filter.ShinyEither
	if got := mustWild(t, cfg).Generate(testSeed); len(got) != 0 {
		t.Fatalf("expected no shiny results for 12345/54321, got %d", len(got))
	}

	cfg.TID, cfg.SID = 0x8043, 0
	got := mustWild(t, cfg).Generate(testSeed)
	if len(got) != 2 || got[0].Advances != 3 || got[1].Advances != 19 {
		t.Fatalf("unexpected shiny results %+v", got)
	}
	for _, s := range got {
		if s.Shiny != state.Square {
			t.Fatalf("advance %d should be square", s.Advances)
		}
	}
}

func TestMethodK(t *testing.T) {
	cfg := grassConfig()
	cfg.HGSS = true
	g := mustWild(t, cfg)
	if g.Method() != "K" {
		t.Fatalf("expected method K")
	}
	got := g.Generate(testSeed)
	want := []uint32{0x8b10b162, 0x658c6a99, 0x5c76c9e4, 0x49394be0}
	for i, pid := range want {
		if got[i].PID != pid {
			t.Fatalf("advance %d: pid %#x want %#x", i, got[i].PID, pid)
		}
	}
	if got[0].IVs != [6]uint8{25, 3, 11, 25, 8, 16} || got[2].EncounterSlot != 1 {
		t.Fatalf("unexpected K states %+v %+v", got[0], got[2])
	}
}

func TestSynchronizeLead(t *testing.T) {
	cfg := grassConfig()
	cfg.Lead = LeadSynchronize
	cfg.SyncNature = 3
	cfg.MaxAdvances = 3
	got := mustWild(t, cfg).Generate(testSeed)
	want := []struct {
		pid    uint32
		nature uint8
	}{{0xc3958385, 3}, {0xdaf4cf46, 9}, {0xc3958385, 3}, {0x7195d1b5, 7}}
	for i, w := range want {
		if got[i].PID != w.pid || got[i].Nature != w.nature {
			t.Fatalf("advance %d: got pid %#x nature %d", i, got[i].PID, got[i].Nature)
		}
	}
}

func TestCuteCharmLead(t *testing.T) {
	cfg := grassConfig()
	cfg.Lead = LeadCuteCharmFemale
	cfg.MaxAdvances = 4
	got := mustWild(t, cfg).Generate(testSeed)
	want := []uint32{0x6eaef2a1, 0x9f, 0xa3, 0x9d, 0x44005c76}
	for i, pid := range want {
		if got[i].PID != pid {
			t.Fatalf("advance %d: pid %#x want %#x", i, got[i].PID, pid)
		}
	}
	if got[1].Gender != state.Male {
		t.Fatalf("charmed pid should be male for a female lead")
	}
}

func TestSurfingLevels(t *testing.T) {
	cfg := grassConfig()
	cfg.Area = encounter.Uniform("lake", encounter.Surfing, personal.Psyduck, 20, 30)
	cfg.MaxAdvances = 3
	got := mustWild(t, cfg).Generate(testSeed)
	want := []struct {
		pid   uint32
		level uint8
	}{{0x6eaef2a1, 28}, {0xdaf4cf46, 28}, {0xf1537110, 20}, {0x7195d1b5, 28}}
	for i, w := range want {
		if got[i].PID != w.pid || got[i].Level != w.level {
			t.Fatalf("advance %d: pid %#x level %d", i, got[i].PID, got[i].Level)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := mustWild(t, grassConfig())
	a := g.Generate(0xdeadbeef)
	b := g.Generate(0xdeadbeef)
	if len(a) != len(b) {
		t.Fatalf("length differs")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("state %d differs", i)
		}
	}
}

func TestInitialAdvancesShift(t *testing.T) {
	cfg := grassConfig()
	all := mustWild(t, cfg).Generate(testSeed)
	cfg.InitialAdvances = 2
	cfg.MaxAdvances = 3
	part := mustWild(t, cfg).Generate(testSeed)
	for i, s := range part {
		if s != all[i+2] {
			t.Fatalf("initial advance shift mismatch at %d", i)
		}
	}
}

func TestStaticMethod1(t *testing.T) {
	g := NewStaticGenerator(StaticConfig{MaxAdvances: 2, Species: personal.Giratina, Level: 70, GenderRatio: 255, Filter: filter.New()})
	got := g.Generate(testSeed)
	want := []struct {
		pid    uint32
		nature uint8
		ivs    [6]uint8
	}{
		{0x2a3a8156, 20, [6]uint8{4, 7, 1, 10, 24, 8}},
		{0x84e42a3a, 5, [6]uint8{8, 10, 24, 23, 3, 18}},
		{0x614884e4, 14, [6]uint8{18, 23, 3, 12, 20, 4}},
	}
	for i, w := range want {
		if got[i].PID != w.pid || got[i].Nature != w.nature || got[i].IVs != w.ivs || got[i].Gender != state.Genderless {
			t.Fatalf("advance %d: %+v", i, got[i])
		}
	}
}

func TestSeedTimeRoundTrip(t *testing.T) {
	at := time.Date(2010, time.May, 6, 12, 34, 56, 0, time.UTC)
	seed := SeedFromTime(at, 700)
	if seed != 0x780c02c6 {
		t.Fatalf("seed %#x", seed)
	}
	times := SeedToTime(seed, 2010)
	if len(times) != 7635 {
		t.Fatalf("expected 7635 candidate times, got %d", len(times))
	}
	found := false
	for _, st := range times {
		if st.Delay != 700 {
			t.Fatalf("delay %d", st.Delay)
		}
		if st.Time.Equal(at) {
			found = true
		}
		if SeedFromTime(st.Time, st.Delay) != seed {
			t.Fatalf("time %v does not map back to seed", st.Time)
		}
	}
	if !found {
		t.Fatalf("original time not listed")
	}
	if SeedToTime(0x00ff0000, 2010) != nil {
		t.Fatalf("hour 255 should have no times")
	}
}

func TestDelaySpace(t *testing.T) {
	s, err := NewDelaySpace(2010, []int{12}, 700, 702)
	if err != nil {
		t.Fatalf("NewDelaySpace: %v", err)
	}
	if s.Len() != 256*3 {
		t.Fatalf("len %d", s.Len())
	}
	o := s.Seeds(120*3+0, nil)
	if len(o) != 1 || o[0].Seed != 0x780c02c6 || o[0].Delay != 700 || o[0].Index != 360 {
		t.Fatalf("unexpected origin %+v", o)
	}
	if _, err := NewDelaySpace(2010, []int{24}, 0, 1); err == nil {
		t.Fatalf("expected hour error")
	}
	if _, err := NewDelaySpace(2010, nil, 5, 4); err == nil {
		t.Fatalf("expected delay range error")
	}
	full, _ := NewDelaySpace(2000, nil, 0, 0)
	if full.Len() != 256*24 {
		t.Fatalf("default hours should cover the day")
	}
}

func TestRegisterAndBuild(t *testing.T) {
	reg := mech.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	prof := &spec.Profile{Name: "pt", Version: spec.Platinum, TID: 12345, SID: 54321}
	if err := spec.InitProfile(prof); err != nil {
		t.Fatalf("profile: %v", err)
	}
	job := &spec.Job{
		Mechanic:    spec.MechGen4Wild,
		MaxAdvances: 50,
		Params:      map[string]any{"encounter": "grass", "species": 396, "min_level": 2, "max_level": 2},
		Search:      spec.SearchSetting{Space: map[string]any{"year": 2010, "hours": []any{12}, "min_delay": 700, "max_delay": 710}},
	}
	if err := spec.InitJob(job); err != nil {
		t.Fatalf("job: %v", err)
	}
	env := mech.Env{Profile: prof}
	gen, err := reg.BuildGenerator(job, env)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := gen.Generate(testSeed); len(got) != 51 || got[0].PID != 0x5c76c9e4 {
		t.Fatalf("built generator mismatch")
	}
	space, err := reg.BuildSpace(job, env)
	if err != nil || space.Len() != 256*11 {
		t.Fatalf("space: %v", err)
	}

	job.Params["typo"] = 1
	if _, err := reg.BuildGenerator(job, env); err == nil {
		t.Fatalf("unknown params field should be rejected")
	}
	delete(job.Params, "typo")

	job.Params["lead"] = "synchronize"
	if _, err := reg.BuildGenerator(job, env); err == nil {
		t.Fatalf("synchronize without nature should fail")
	}
	job.Params["sync_nature"] = "Adamant"
	if _, err := reg.BuildGenerator(job, env); err != nil {
		t.Fatalf("synchronize with nature: %v", err)
	}

	bw := &spec.Profile{Name: "bw", Version: spec.Black}
	if _, err := reg.BuildGenerator(job, mech.Env{Profile: bw}); err == nil {
		t.Fatalf("gen5 profile should be rejected")
	}
}
