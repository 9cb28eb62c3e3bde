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

package filter

import (
	"testing"

	"github.com/zintix-labs/seedlab/sdk/state"
)

func sample() state.State {
	s := state.State{
		PID:           0xf1537110,
		IVs:           [6]uint8{10, 30, 18, 2, 23, 30},
		Nature:        13,
		Ability:       1,
		Gender:        state.Female,
		Shiny:         state.Star,
		EncounterSlot: 1,
	}
	s.Finalize()
	return s
}

func TestDefaultAcceptsAll(t *testing.T) {
	f := New()
	s := sample()
	if !f.Matches(&s) {
		t.Fatalf("default filter should accept everything")
	}
	var zero Filter
	zero.Disabled = true
	if !zero.Matches(&s) {
		t.Fatalf("disabled filter should accept everything")
	}
}

func TestEachConstraintRejects(t *testing.T) {
	s := sample()
	cases := map[string]func(f *Filter){
		"iv min":       func(f *Filter) { f.IVMin[state.HP] = 11 },
		"iv max":       func(f *Filter) { f.IVMax[state.Atk] = 29 },
		"nature":       func(f *Filter) { f.Natures = NatureMask(3, 10) },
		"hidden power": func(f *Filter) { f.HiddenPowers = HiddenPowerMask((s.HiddenPower + 1) % 16) },
		"ability":      func(f *Filter) { f.Ability = 0 },
		"gender":       func(f *Filter) { f.Gender = state.Male },
		"shiny":        func(f *Filter) { f.Shiny = ShinySquare },
		"slot":         func(f *Filter) { f.Slots = SlotMask(0, 2) },
	}
	for name, mut := range cases {
		f := New()
		mut(&f)
		if f.Matches(&s) {
			t.Fatalf("%s constraint should reject", name)
		}
	}
}

func TestShinyMask(t *testing.T) {
	f := New()
	f.Shiny = ShinyEither
	for _, c := range []struct {
		shiny uint8
		want  bool
	}{{state.NotShiny, false}, {state.Star, true}, {state.Square, true}} {
		if got := f.CompareShiny(c.shiny); got != c.want {
			t.Fatalf("shiny %d: got %v", c.shiny, got)
		}
	}
	f.Shiny = ShinyStar
	if f.CompareShiny(state.Square) {
		t.Fatalf("star-only mask should reject square")
	}
}

func TestWideningNeverRejectsMore(t *testing.T) {
	narrow := New()
	narrow.IVMin = [6]uint8{20, 20, 20, 20, 20, 20}
	wide := narrow
	wide.IVMin = [6]uint8{10, 10, 10, 10, 10, 10}
	for hp := uint8(0); hp < 32; hp++ {
		s := state.State{IVs: [6]uint8{hp, 25, 25, 25, 25, 25}}
		if narrow.Matches(&s) && !wide.Matches(&s) {
			t.Fatalf("widened range rejected hp=%d", hp)
		}
	}
}
