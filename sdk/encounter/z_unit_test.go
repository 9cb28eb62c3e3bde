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

package encounter

import "testing"

func TestGrassSlots(t *testing.T) {
	cases := []struct {
		roll uint8
		slot uint8
	}{{0, 0}, {19, 0}, {20, 1}, {49, 2}, {84, 5}, {85, 6}, {98, 10}, {99, 11}}
	for _, c := range cases {
		if got := Grass.SlotOf(c.roll); got != c.slot {
			t.Fatalf("roll %d: slot %d want %d", c.roll, got, c.slot)
		}
	}
}

func TestSurfingSlots(t *testing.T) {
	if Surfing.SlotCount() != 5 {
		t.Fatalf("surfing should have 5 slots")
	}
	if Surfing.SlotOf(59) != 0 || Surfing.SlotOf(60) != 1 || Surfing.SlotOf(99) != 4 {
		t.Fatalf("surfing mapping mismatch")
	}
}

func TestAreaValid(t *testing.T) {
	a := Uniform("route", Grass, 396, 2, 2)
	if err := a.Valid(); err != nil {
		t.Fatalf("uniform area should be valid: %v", err)
	}
	a.Slots = a.Slots[:3]
	if err := a.Valid(); err == nil {
		t.Fatalf("expected slot count error")
	}
	b := Uniform("lake", Surfing, 54, 30, 20)
	if err := b.Valid(); err == nil {
		t.Fatalf("expected level range error")
	}
	if k, err := ParseKind("Surfing"); err != nil || k != Surfing {
		t.Fatalf("ParseKind: %v %v", k, err)
	}
	if _, err := ParseKind("headbutt"); err == nil {
		t.Fatalf("unknown kind should fail")
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("super_rod")); err != nil || k != SuperRod {
		t.Fatalf("UnmarshalText: %v %v", k, err)
	}
	b, _ := OldRod.MarshalText()
	if string(b) != "old_rod" {
		t.Fatalf("MarshalText: %s", b)
	}
}
