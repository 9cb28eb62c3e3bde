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

package state

import "testing"

func TestShinyType(t *testing.T) {
	pid := uint32(0xf1537110)
	psv := PSV(pid)
	if psv != 0x8043 {
		t.Fatalf("psv %#x", psv)
	}
	if got := ShinyType(pid, psv); got != Square {
		t.Fatalf("expected square, got %d", got)
	}
	if got := ShinyType(pid, psv^7); got != Star {
		t.Fatalf("expected star, got %d", got)
	}
	if got := ShinyType(pid, psv^8); got != NotShiny {
		t.Fatalf("expected not shiny, got %d", got)
	}
	if !IsShiny(pid, psv^5) || IsShiny(pid, psv^8) {
		t.Fatalf("IsShiny disagrees with ShinyType")
	}
}

func TestGenderOf(t *testing.T) {
	cases := []struct {
		pid   uint32
		ratio uint8
		want  uint8
	}{
		{0x00, 255, Genderless},
		{0xff, 254, Female},
		{0x00, 0, Male},
		{0x1e, 31, Female},
		{0x1f, 31, Male},
		{0x7e, 127, Female},
		{0x7f, 127, Male},
	}
	for _, c := range cases {
		if got := GenderOf(c.pid, c.ratio); got != c.want {
			t.Fatalf("pid %#x ratio %d: got %d want %d", c.pid, c.ratio, got, c.want)
		}
	}
}

func TestHiddenPower(t *testing.T) {
	cases := []struct {
		ivs        [6]uint8
		typ, power uint8
	}{
		{[6]uint8{31, 31, 31, 31, 31, 31}, 15, 70},
		{[6]uint8{0, 0, 17, 25, 18, 4}, 4, 50},
		{[6]uint8{30, 31, 31, 31, 31, 31}, 14, 70},
	}
	for _, c := range cases {
		typ, pow := HiddenPower(c.ivs)
		if typ != c.typ || pow != c.power {
			t.Fatalf("%v: got (%d,%d) want (%d,%d)", c.ivs, typ, pow, c.typ, c.power)
		}
	}
	s := State{IVs: [6]uint8{31, 31, 31, 31, 31, 31}}
	s.Finalize()
	if HiddenPowerName(s.HiddenPower) != "Dark" {
		t.Fatalf("expected dark, got %s", HiddenPowerName(s.HiddenPower))
	}
}

func TestNatureNames(t *testing.T) {
	if NatureName(3) != "Adamant" || NatureName(99) != "?" {
		t.Fatalf("nature name lookup")
	}
	n, ok := NatureByName("timid")
	if !ok || n != 10 {
		t.Fatalf("NatureByName(timid) = %d, %v", n, ok)
	}
	if _, ok := NatureByName("Sleepy"); ok {
		t.Fatalf("unknown nature should not resolve")
	}
}
