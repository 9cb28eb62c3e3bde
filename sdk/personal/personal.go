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

// Package personal 為物種基本資料的唯讀查詢介面。
//
// 完整的物種表屬於外部資料；這裡只內建機制與測試會用到的物種。
package personal

// Info 為機制推導所需的物種資料。
type Info struct {
	Species     uint16 `json:"species" yaml:"species"`
	GenderRatio uint8  `json:"gender_ratio" yaml:"gender_ratio"`
}

// Provider 依物種編號查詢資料。
type Provider interface {
	Personal(species uint16) (Info, bool)
}

// Table 為以 map 實作的 Provider。
type Table map[uint16]Info

func (t Table) Personal(species uint16) (Info, bool) {
	info, ok := t[species]
	return info, ok
}

// Merge 回傳以 other 覆蓋 t 的新表。
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// 孵蛋機制會依親代決定物種的兩組性別成對物種。
const (
	NidoranF   uint16 = 29
	NidoranM   uint16 = 32
	Volbeat    uint16 = 313
	Illumise   uint16 = 314
	Ditto      uint16 = 132
	Bulbasaur  uint16 = 1
	Pikachu    uint16 = 25
	Eevee      uint16 = 133
	Charmander uint16 = 4
	Psyduck    uint16 = 54
	Magikarp   uint16 = 129
	Lugia      uint16 = 249
	Starly     uint16 = 396
	Bidoof     uint16 = 399
	Shinx      uint16 = 403
	Giratina   uint16 = 487
)

// Builtin 回傳內建資料表。
func Builtin() Table {
	return Table{
		Bulbasaur:  {Species: Bulbasaur, GenderRatio: 31},
		Charmander: {Species: Charmander, GenderRatio: 31},
		Pikachu:    {Species: Pikachu, GenderRatio: 127},
		NidoranF:   {Species: NidoranF, GenderRatio: 254},
		NidoranM:   {Species: NidoranM, GenderRatio: 0},
		Ditto:      {Species: Ditto, GenderRatio: 255},
		Eevee:      {Species: Eevee, GenderRatio: 31},
		Volbeat:    {Species: Volbeat, GenderRatio: 0},
		Illumise:   {Species: Illumise, GenderRatio: 254},
		Psyduck:    {Species: Psyduck, GenderRatio: 127},
		Magikarp:   {Species: Magikarp, GenderRatio: 127},
		Lugia:      {Species: Lugia, GenderRatio: 255},
		Starly:     {Species: Starly, GenderRatio: 127},
		Bidoof:     {Species: Bidoof, GenderRatio: 127},
		Shinx:      {Species: Shinx, GenderRatio: 127},
		Giratina:   {Species: Giratina, GenderRatio: 255},
	}
}
