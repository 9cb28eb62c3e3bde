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

// Package filter 提供對 State 的宣告式篩選條件。
//
// 所有集合型條件以位元遮罩表示，遮罩為 0 表示不限制。
package filter

import (
	"github.com/zintix-labs/seedlab/sdk/state"
)

// Any 表示 Ability / Gender 不限制。
const Any uint8 = 0xff

// 色違遮罩位元。
const (
	ShinyStar   uint8 = 1 << 0
	ShinySquare uint8 = 1 << 1
	ShinyEither       = ShinyStar | ShinySquare
)

// Filter 為一組 AND 組合的條件。Matches 為純函式，可被多個 goroutine 同時呼叫。
type Filter struct {
	IVMin        [6]uint8 `json:"iv_min" yaml:"iv_min"`
	IVMax        [6]uint8 `json:"iv_max" yaml:"iv_max"`
	Natures      uint32   `json:"natures" yaml:"natures"`
	HiddenPowers uint16   `json:"hidden_powers" yaml:"hidden_powers"`
	Ability      uint8    `json:"ability" yaml:"ability"`
	Gender       uint8    `json:"gender" yaml:"gender"`
	Shiny        uint8    `json:"shiny" yaml:"shiny"`
	Slots        uint16   `json:"slots" yaml:"slots"`
	Disabled     bool     `json:"disabled" yaml:"disabled"`
}

// New 回傳不限制任何欄位的 Filter。
func New() Filter {
	return Filter{
		IVMax:   [6]uint8{31, 31, 31, 31, 31, 31},
		Ability: Any,
		Gender:  Any,
	}
}

// Matches 依序檢查各條件，遇到第一個失敗即回傳 false。
func (f *Filter) Matches(s *state.State) bool {
	if f.Disabled {
		return true
	}
	return f.CompareShiny(s.Shiny) &&
		f.CompareNature(s.Nature) &&
		f.CompareIVs(s.IVs) &&
		f.CompareAbility(s.Ability) &&
		f.CompareGender(s.Gender) &&
		f.CompareHiddenPower(s.HiddenPower) &&
		f.CompareSlot(s.EncounterSlot)
}

func (f *Filter) CompareAbility(a uint8) bool {
	return f.Disabled || f.Ability == Any || f.Ability == a
}

func (f *Filter) CompareGender(g uint8) bool {
	return f.Disabled || f.Gender == Any || f.Gender == g
}

func (f *Filter) CompareNature(n uint8) bool {
	return f.Disabled || f.Natures == 0 || f.Natures&(1<<n) != 0
}

func (f *Filter) CompareHiddenPower(t uint8) bool {
	return f.Disabled || f.HiddenPowers == 0 || f.HiddenPowers&(1<<t) != 0
}

func (f *Filter) CompareSlot(slot uint8) bool {
	return f.Disabled || f.Slots == 0 || f.Slots&(1<<slot) != 0
}

// CompareShiny 在遮罩非 0 時要求色違等級落在遮罩內。
func (f *Filter) CompareShiny(shiny uint8) bool {
	if f.Disabled || f.Shiny == 0 {
		return true
	}
	return shiny != state.NotShiny && f.Shiny&(1<<(shiny-1)) != 0
}

func (f *Filter) CompareIVs(ivs [6]uint8) bool {
	if f.Disabled {
		return true
	}
	for i, v := range ivs {
		if v < f.IVMin[i] || v > f.IVMax[i] {
			return false
		}
	}
	return true
}

// NatureMask 由性格編號建立遮罩。
func NatureMask(natures ...uint8) uint32 {
	var m uint32
	for _, n := range natures {
		if n < 25 {
			m |= 1 << n
		}
	}
	return m
}

// HiddenPowerMask 由覺醒力量屬性建立遮罩。
func HiddenPowerMask(types ...uint8) uint16 {
	var m uint16
	for _, t := range types {
		if t < 16 {
			m |= 1 << t
		}
	}
	return m
}

// SlotMask 由遭遇欄位建立遮罩。
func SlotMask(slots ...uint8) uint16 {
	var m uint16
	for _, s := range slots {
		if s < 16 {
			m |= 1 << s
		}
	}
	return m
}
