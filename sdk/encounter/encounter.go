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

// Package encounter 描述野生遭遇區域與欄位機率表。
package encounter

import (
	"strings"

	"github.com/zintix-labs/seedlab/errs"
)

// Kind 為遭遇方式。
type Kind uint8

const (
	Grass Kind = iota
	Surfing
	OldRod
	GoodRod
	SuperRod
	RockSmash
)

var kindNames = [...]string{"grass", "surfing", "old_rod", "good_rod", "super_rod", "rock_smash"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind 解析設定檔中的遭遇方式名稱。
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i), nil
		}
	}
	return 0, errs.Warnf("unknown encounter kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText 讓設定檔（YAML / JSON）以名稱表示遭遇方式。
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// 累積機率表（百分比）。
var (
	grassRates   = []uint8{20, 40, 50, 60, 70, 80, 85, 90, 94, 98, 99, 100}
	waterRates   = []uint8{60, 90, 95, 99, 100}
	rodRates     = []uint8{60, 90, 95, 99, 100}
	oldRodRates  = []uint8{70, 85, 100}
	goodRodRates = []uint8{60, 80, 95, 99, 100}
)

// Rates 回傳遭遇方式的累積機率表。
func (k Kind) Rates() []uint8 {
	switch k {
	case Grass:
		return grassRates
	case OldRod:
		return oldRodRates
	case GoodRod:
		return goodRodRates
	case SuperRod:
		return rodRates
	default:
		return waterRates
	}
}

// SlotCount 回傳欄位數。
func (k Kind) SlotCount() int { return len(k.Rates()) }

// SlotOf 將 0..99 的抽值對映到欄位。
func (k Kind) SlotOf(roll uint8) uint8 {
	rates := k.Rates()
	for i, r := range rates {
		if roll < r {
			return uint8(i)
		}
	}
	return uint8(len(rates) - 1)
}

// Slot 為單一欄位的物種與等級範圍。
type Slot struct {
	Species  uint16 `json:"species" yaml:"species"`
	MinLevel uint8  `json:"min_level" yaml:"min_level"`
	MaxLevel uint8  `json:"max_level" yaml:"max_level"`
}

// Area 為一個遭遇區域。
type Area struct {
	Name  string `json:"name" yaml:"name"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Slots []Slot `json:"slots" yaml:"slots"`
}

// Valid 檢查欄位數與等級範圍。
func (a *Area) Valid() error {
	if len(a.Slots) != a.Kind.SlotCount() {
		return errs.Warnf("area %q: %s needs %d slots, got %d", a.Name, a.Kind, a.Kind.SlotCount(), len(a.Slots))
	}
	for i, s := range a.Slots {
		if s.MinLevel == 0 || s.MinLevel > s.MaxLevel {
			return errs.Warnf("area %q slot %d: invalid level range %d-%d", a.Name, i, s.MinLevel, s.MaxLevel)
		}
	}
	return nil
}

// Provider 依名稱查詢遭遇區域。
type Provider interface {
	Area(name string) (Area, bool)
}

// Areas 為以 map 實作的 Provider。
type Areas map[string]Area

func (m Areas) Area(name string) (Area, bool) {
	a, ok := m[name]
	return a, ok
}

// Uniform 建立所有欄位皆為同一物種與等級範圍的區域，供測試與示範使用。
func Uniform(name string, kind Kind, species uint16, minLv, maxLv uint8) Area {
	slots := make([]Slot, kind.SlotCount())
	for i := range slots {
		slots[i] = Slot{Species: species, MinLevel: minLv, MaxLevel: maxLv}
	}
	return Area{Name: name, Kind: kind, Slots: slots}
}
