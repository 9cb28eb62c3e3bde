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

package personal

import "testing"

func TestBuiltinAndMerge(t *testing.T) {
	b := Builtin()
	info, ok := b.Personal(NidoranF)
	if !ok || info.GenderRatio != 254 {
		t.Fatalf("nidoran-f lookup: %+v %v", info, ok)
	}
	if _, ok := b.Personal(9999); ok {
		t.Fatalf("unknown species should miss")
	}
	m := b.Merge(Table{Pikachu: {Species: Pikachu, GenderRatio: 0}, 700: {Species: 700, GenderRatio: 191}})
	if info, _ := m.Personal(Pikachu); info.GenderRatio != 0 {
		t.Fatalf("merge should override")
	}
	if _, ok := m.Personal(700); !ok {
		t.Fatalf("merge should add")
	}
	if info, _ := b.Personal(Pikachu); info.GenderRatio != 127 {
		t.Fatalf("merge must not mutate the receiver")
	}
}
