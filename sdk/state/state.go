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

// Package state 定義由亂數重播推導出的個體（State）與其衍生欄位的計算。
package state

import (
	"fmt"
	"strings"
)

// 能力值索引，順序為 HP、攻擊、防禦、特攻、特防、速度。
const (
	HP = iota
	Atk
	Def
	SpA
	SpD
	Spe
	StatCount
)

// 色違等級。
const (
	NotShiny uint8 = iota
	Star
	Square
)

// 性別。
const (
	Male uint8 = iota
	Female
	Genderless
)

// 遺傳來源（僅孵蛋）。
const (
	InheritRandom uint8 = iota
	InheritParentA
	InheritParentB
)

// State 為單次重播推導出的個體，建立後不再修改。
type State struct {
	Seed                uint64   `json:"seed" yaml:"seed"`
	Advances            uint32   `json:"advances" yaml:"advances"`
	PID                 uint32   `json:"pid" yaml:"pid"`
	IVs                 [6]uint8 `json:"ivs" yaml:"ivs"`
	Ability             uint8    `json:"ability" yaml:"ability"`
	Gender              uint8    `json:"gender" yaml:"gender"`
	Nature              uint8    `json:"nature" yaml:"nature"`
	Shiny               uint8    `json:"shiny" yaml:"shiny"`
	HiddenPower         uint8    `json:"hidden_power" yaml:"hidden_power"`
	HiddenPowerStrength uint8    `json:"hidden_power_strength" yaml:"hidden_power_strength"`
	Level               uint8    `json:"level,omitempty" yaml:"level,omitempty"`
	EncounterSlot       uint8    `json:"encounter_slot,omitempty" yaml:"encounter_slot,omitempty"`
	Species             uint16   `json:"species,omitempty" yaml:"species,omitempty"`
	Inheritance         [6]uint8 `json:"inheritance,omitzero" yaml:"inheritance,omitempty"`
	Chatot              uint16   `json:"chatot,omitempty" yaml:"chatot,omitempty"`
}

// Finalize 依 IVs 計算覺醒力量欄位。
func (s *State) Finalize() {
	s.HiddenPower, s.HiddenPowerStrength = HiddenPower(s.IVs)
}

// String 回傳單行摘要，供 CLI 與日誌使用。
func (s State) String() string {
	return fmt.Sprintf("adv=%d pid=%08X nature=%s ivs=%v shiny=%d gender=%d ability=%d",
		s.Advances, s.PID, NatureName(s.Nature), s.IVs, s.Shiny, s.Gender, s.Ability)
}

// PSV 回傳 PID 兩半的 xor。
func PSV(pid uint32) uint16 {
	return uint16(pid>>16) ^ uint16(pid)
}

// TSV 回傳訓練家 tid ^ sid。
func TSV(tid, sid uint16) uint16 { return tid ^ sid }

// ShinyType 依 psv ^ tsv 判斷色違：0 為方塊、小於 8 為星星。
func ShinyType(pid uint32, tsv uint16) uint8 {
	switch x := PSV(pid) ^ tsv; {
	case x == 0:
		return Square
	case x < 8:
		return Star
	default:
		return NotShiny
	}
}

// IsShiny 判斷是否為任一種色違。
func IsShiny(pid uint32, tsv uint16) bool {
	return PSV(pid)^tsv < 8
}

// GenderOf 依性別比例判斷性別：255 無性別、254 全母、0 全公。
func GenderOf(pid uint32, ratio uint8) uint8 {
	switch ratio {
	case 255:
		return Genderless
	case 254:
		return Female
	case 0:
		return Male
	}
	if uint8(pid) < ratio {
		return Female
	}
	return Male
}

// HiddenPower 回傳覺醒力量的屬性（0..15）與威力（30..70）。
func HiddenPower(ivs [6]uint8) (uint8, uint8) {
	// 位元權重依 HP、攻擊、防禦、速度、特攻、特防
	order := [6]int{HP, Atk, Def, Spe, SpA, SpD}
	var t, p int
	for i, stat := range order {
		t += int(ivs[stat]&1) << i
		p += int(ivs[stat]>>1&1) << i
	}
	return uint8(t * 15 / 63), uint8(p*40/63 + 30)
}

var natureNames = [25]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// NatureName 回傳性格英文名稱。
func NatureName(n uint8) string {
	if int(n) < len(natureNames) {
		return natureNames[n]
	}
	return "?"
}

// NatureByName 依英文名稱（不分大小寫）查找性格。
func NatureByName(name string) (uint8, bool) {
	for i, n := range natureNames {
		if strings.EqualFold(n, name) {
			return uint8(i), true
		}
	}
	return 0, false
}

var hiddenPowerNames = [16]string{
	"Fighting", "Flying", "Poison", "Ground", "Rock", "Bug", "Ghost", "Steel",
	"Fire", "Water", "Grass", "Electric", "Psychic", "Ice", "Dragon", "Dark",
}

// HiddenPowerName 回傳覺醒力量屬性英文名稱。
func HiddenPowerName(t uint8) string {
	if int(t) < len(hiddenPowerNames) {
		return hiddenPowerNames[t]
	}
	return "?"
}
