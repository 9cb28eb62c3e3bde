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

package gen5

import (
	"testing"
	"time"

	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/seedhash"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

const eggTestSeed = 0x0123456789abcdef

var parentIVs = [2][6]uint8{{31, 31, 31, 0, 0, 0}, {0, 0, 0, 31, 31, 31}}

func plainDaycare() Daycare {
	return Daycare{
		ParentIVs:     parentIVs,
		ParentNatures: [2]uint8{3, 10},
		EggSpecies:    personal.Bulbasaur,
	}
}

// itemDaycare：親代 A 持不變之石、親代 B 持力量護腕（防禦）且為隱藏特性、國際孵蛋。
func itemDaycare() Daycare {
	return Daycare{
		ParentIVs:       parentIVs,
		ParentItems:     [2]uint8{ItemEverstone, 4},
		ParentNatures:   [2]uint8{3, 10},
		ParentAbilities: [2]uint8{0, 2},
		EggSpecies:      personal.NidoranF,
		Masuda:          true,
	}
}

func mustEgg(t *testing.T, cfg EggConfig) *EggGenerator {
	t.Helper()
	if cfg.Filter == (filter.Filter{}) {
		cfg.Filter = filter.New()
	}
	cfg.TID, cfg.SID = 12345, 54321
	g, err := NewEggGenerator(cfg)
	if err != nil {
		t.Fatalf("NewEggGenerator: %v", err)
	}
	return g
}

type eggWant struct {
	adv     uint32
	chatot  uint16
	pid     uint32
	ivs     [6]uint8
	ability uint8
	gender  uint8
	nature  uint8
	inh     [6]uint8
	species uint16
}

func TestEggBWPlain(t *testing.T) {
	g := mustEgg(t, EggConfig{MaxAdvances: 3, Daycare: plainDaycare()})
	got := g.Generate(eggTestSeed)
	want := []eggWant{
		{0, 951, 1567657128, [6]uint8{31, 2, 0, 9, 31, 23}, 0, 0, 2, [6]uint8{1, 0, 2, 0, 2, 0}, 1},
		{1, 5835, 3762585407, [6]uint8{0, 2, 17, 9, 31, 0}, 0, 0, 17, [6]uint8{2, 0, 0, 0, 2, 1}, 1},
		{2, 6445, 1567657128, [6]uint8{31, 2, 0, 9, 31, 23}, 0, 0, 19, [6]uint8{1, 0, 2, 0, 2, 0}, 1},
		{3, 6554, 3762585407, [6]uint8{0, 2, 17, 9, 0, 0}, 0, 0, 20, [6]uint8{2, 0, 0, 0, 1, 1}, 1},
	}
	checkEggs(t, got, want)
}

func TestEggBWItemsAndMasuda(t *testing.T) {
	g := mustEgg(t, EggConfig{InitialAdvances: 5, MaxAdvances: 2, Daycare: itemDaycare()})
	if g.Rolls() != 5 {
		t.Fatalf("masuda should give 5 rolls, got %d", g.Rolls())
	}
	got := g.Generate(eggTestSeed)
	want := []eggWant{
		{5, 5849, 252862366, [6]uint8{20, 2, 0, 0, 3, 0}, 2, 0, 1, [6]uint8{0, 0, 2, 1, 0, 1}, personal.NidoranM},
		{6, 539, 797302253, [6]uint8{31, 31, 0, 9, 3, 23}, 2, 1, 3, [6]uint8{1, 1, 2, 0, 0, 0}, personal.NidoranF},
		{7, 15, 252862366, [6]uint8{20, 2, 0, 0, 3, 0}, 0, 1, 3, [6]uint8{0, 0, 2, 1, 0, 1}, personal.NidoranF},
	}
	checkEggs(t, got, want)
}

func checkEggs(t *testing.T, got []state.State, want []eggWant) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d eggs, got %d", len(want), len(got))
	}
	for i, w := range want {
		s := got[i]
		if s.Advances != w.adv || s.Chatot != w.chatot || s.PID != w.pid || s.IVs != w.ivs ||
			s.Ability != w.ability || s.Gender != w.gender || s.Nature != w.nature ||
			s.Inheritance != w.inh || s.Species != w.species {
			t.Fatalf("egg %d: got %+v want %+v", i, s, w)
		}
	}
}

func TestEggBW2Template(t *testing.T) {
	g := mustEgg(t, EggConfig{MaxAdvances: 3, BW2: true, ShinyCharm: true, Daycare: itemDaycare()})
	if got := g.EggSeed(eggTestSeed); got != 0xaca7c79472b77813 {
		t.Fatalf("egg seed %#x", got)
	}
	if g.Rolls() != 7 {
		t.Fatalf("shiny charm + masuda should give 7 rolls, got %d", g.Rolls())
	}
	tmpl := g.Template(g.EggSeed(eggTestSeed))
	if tmpl.Species != personal.NidoranF || tmpl.Nature != 3 || tmpl.Ability != 1 ||
		tmpl.IVs != [6]uint8{0, 1, 0, 0, 0, 0} || tmpl.Inheritance != [6]uint8{0, 0, 2, 0, 1, 1} {
		t.Fatalf("unexpected template %+v", tmpl)
	}

	got := g.Generate(eggTestSeed)
	want := []struct {
		chatot uint16
		pid    uint32
	}{{951, 8116403}, {5835, 2875176488}, {6445, 4079973960}, {6554, 1705349463}}
	if len(got) != len(want) {
		t.Fatalf("expected %d eggs, got %d", len(want), len(got))
	}
	for i, w := range want {
		s := got[i]
		if s.Advances != uint32(i) || s.Chatot != w.chatot || s.PID != w.pid || s.Gender != 1 || s.Shiny != 0 {
			t.Fatalf("egg %d: %+v", i, s)
		}
		if s.PID>>16&1 != uint32(tmpl.Ability) {
			t.Fatalf("egg %d: pid ability bit does not follow the template", i)
		}
		if s.Nature != tmpl.Nature || s.IVs != tmpl.IVs {
			t.Fatalf("egg %d should carry template fields", i)
		}
	}
}

func TestEggBW2TemplateRejectsEarly(t *testing.T) {
	f := filter.New()
	f.Natures = filter.NatureMask(10)
	g := mustEgg(t, EggConfig{MaxAdvances: 100, BW2: true, Daycare: itemDaycare(), Filter: f})
	if got := g.Generate(eggTestSeed); len(got) != 0 {
		t.Fatalf("template nature mismatch should yield nothing, got %d", len(got))
	}
}

func TestEggAdvanceCounter(t *testing.T) {
	fixed := mustEgg(t, EggConfig{InitialAdvances: 2, MaxAdvances: 1, Daycare: plainDaycare()})
	counted := mustEgg(t, EggConfig{MaxAdvances: 1, Daycare: plainDaycare(), Advances: AdvanceFunc(func(uint64) uint32 { return 2 })})
	a := fixed.Generate(eggTestSeed)
	b := counted.Generate(eggTestSeed)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("counter and initial advances should be equivalent at %d", i)
		}
	}
}

func TestDaycareValidation(t *testing.T) {
	dc := plainDaycare()
	dc.ParentItems[0] = 9
	if _, err := NewEggGenerator(EggConfig{Daycare: dc}); err == nil {
		t.Fatalf("expected item range error")
	}
	dc = plainDaycare()
	dc.EggSpecies = 9999
	if _, err := NewEggGenerator(EggConfig{Daycare: dc}); err == nil {
		t.Fatalf("expected unknown species error")
	}
	idc := itemDaycare()
	if idc.EverstoneCount() != 1 || idc.PowerItemCount() != 1 {
		t.Fatalf("item counts %d %d", idc.EverstoneCount(), idc.PowerItemCount())
	}
}

var testConsole = seedhash.Console{
	Nazo:   [5]uint32{0x02215f10, 0x0221600c, 0x0221600c, 0x02216058, 0x02216058},
	VCount: 0x60,
	GxStat: 6,
	VFrame: 5,
	MAC:    0x0009bf123456,
}

func TestDateTimeSpace(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewDateTimeSpace(DateTimeConfig{
		Console:    testConsole,
		Start:      start,
		End:        start.AddDate(0, 0, 1),
		Hours:      []int{0},
		Minutes:    []int{0},
		Timer0Min:  0xc79,
		Timer0Max:  0xc7a,
		Keypresses: seedhash.Keypresses([]int{0}, false),
	})
	if err != nil {
		t.Fatalf("NewDateTimeSpace: %v", err)
	}
	if s.Len() != 2*2 {
		t.Fatalf("len %d", s.Len())
	}
	origins := s.Seeds(0, nil)
	if len(origins) != SecondsPerPoint {
		t.Fatalf("expected %d seeds, got %d", SecondsPerPoint, len(origins))
	}
	if origins[0].Seed != 0xc5a1acf5368091b0 || origins[0].Timer0 != 0xc79 {
		t.Fatalf("first origin %+v", origins[0])
	}
	for i, o := range origins {
		if o.Time.Second() != i {
			t.Fatalf("origin %d has second %d", i, o.Time.Second())
		}
		if want := SeedAt(testConsole, o.Timer0, o.Time, 0); o.Seed != want {
			t.Fatalf("second %d: %#x != %#x", i, o.Seed, want)
		}
	}
	next := s.Seeds(1, nil)
	if next[0].Timer0 != 0xc7a || next[0].Index != 1 {
		t.Fatalf("index 1 should move timer0 first: %+v", next[0])
	}
	last := s.Seeds(3, nil)
	if last[0].Time.Day() != 2 {
		t.Fatalf("index 3 should land on the second day: %v", last[0].Time)
	}
}

func TestRegisterEgg(t *testing.T) {
	reg := mech.NewRegistry()
	if err := Register(reg, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	prof := &spec.Profile{
		Name: "bw", Version: spec.Black, TID: 12345, SID: 54321,
		Nazo: testConsole.Nazo, VCount: 0x60, GxStat: 6, VFrame: 5, MAC: 0x0009bf123456,
		Timer0Min: 0xc79, Timer0Max: 0xc79,
	}
	if err := spec.InitProfile(prof); err != nil {
		t.Fatalf("profile: %v", err)
	}
	job := &spec.Job{
		Mechanic:    spec.MechGen5Egg,
		MaxAdvances: 3,
		Params: map[string]any{
			"egg_species":    1,
			"parent_ivs":     []any{[]any{31, 31, 31, 0, 0, 0}, []any{0, 0, 0, 31, 31, 31}},
			"parent_natures": []any{"Adamant", "Timid"},
		},
		Search: spec.SearchSetting{Space: map[string]any{"start_date": "2000-01-01", "hours": []any{0}, "minutes": []any{0, 1}}},
	}
	if err := spec.InitJob(job); err != nil {
		t.Fatalf("job: %v", err)
	}
	env := mech.Env{Profile: prof}
	gen, err := reg.BuildGenerator(job, env)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := gen.Generate(eggTestSeed); len(got) != 4 || got[0].PID != 1567657128 {
		t.Fatalf("registered egg generator mismatch: %+v", got)
	}
	space, err := reg.BuildSpace(job, env)
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	if space.Len() != 2 {
		t.Fatalf("space len %d", space.Len())
	}

	job.Params["parent_natures"] = []any{"Adamant", "Sleepy"}
	if _, err := reg.BuildGenerator(job, env); err == nil {
		t.Fatalf("unknown nature should fail")
	}
}

func TestRegisterEggRejectsGen4Profile(t *testing.T) {
	reg := mech.NewRegistry()
	if err := Register(reg, FixedAdvances(0)); err != nil {
		t.Fatalf("register: %v", err)
	}
	prof := &spec.Profile{Name: "pt", Version: spec.Platinum}
	if err := spec.InitProfile(prof); err != nil {
		t.Fatalf("profile: %v", err)
	}
	job := &spec.Job{Mechanic: spec.MechGen5Egg, Params: map[string]any{"egg_species": 1}}
	if err := spec.InitJob(job); err != nil {
		t.Fatalf("job: %v", err)
	}
	if _, err := reg.BuildGenerator(job, mech.Env{Profile: prof}); err == nil {
		t.Fatalf("gen4 profile should be rejected")
	}
	if _, err := reg.BuildSpace(job, mech.Env{Profile: prof}); err == nil {
		t.Fatalf("gen4 profile should be rejected for search space")
	}
}
