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

// Package gen5 實作 BW / BW2 的孵蛋機制與 Gen 5 以日期時間推導 seed 的搜尋空間。
package gen5

import (
	"fmt"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/personal"
)

// 親代道具代碼：0 無、1 不變之石、2..7 對應 IV 索引 0..5 的力量系列道具。
const (
	ItemNone      uint8 = 0
	ItemEverstone uint8 = 1
	ItemPowerMin  uint8 = 2
	ItemPowerMax  uint8 = 7
)

// Daycare 為寄放的兩隻親代。索引 0 為親代 A，1 為親代 B。
type Daycare struct {
	ParentIVs       [2][6]uint8
	ParentAbilities [2]uint8
	ParentItems     [2]uint8
	ParentNatures   [2]uint8
	EggSpecies      uint16
	Ditto           bool
	Masuda          bool
}

// Valid 檢查各欄位範圍。
func (d *Daycare) Valid() error {
	for p := 0; p < 2; p++ {
		for i, iv := range d.ParentIVs[p] {
			if iv > 31 {
				return errs.Warnf("daycare parent %d iv[%d]=%d out of range", p, i, iv)
			}
		}
		if d.ParentAbilities[p] > 2 {
			return errs.Warnf("daycare parent %d ability %d out of range", p, d.ParentAbilities[p])
		}
		if d.ParentItems[p] > ItemPowerMax {
			return errs.Warnf("daycare parent %d item %d out of range", p, d.ParentItems[p])
		}
		if d.ParentNatures[p] > 24 {
			return errs.Warnf("daycare parent %d nature %d out of range", p, d.ParentNatures[p])
		}
	}
	if d.EggSpecies == 0 {
		return errs.NewWarn("daycare needs egg species")
	}
	return nil
}

// EverstoneCount 回傳持有不變之石的親代數。
func (d *Daycare) EverstoneCount() int {
	n := 0
	for _, it := range d.ParentItems {
		if it == ItemEverstone {
			n++
		}
	}
	return n
}

// PowerItemCount 回傳持有力量系列道具的親代數。
func (d *Daycare) PowerItemCount() int {
	n := 0
	for _, it := range d.ParentItems {
		if it >= ItemPowerMin && it <= ItemPowerMax {
			n++
		}
	}
	return n
}

// everstoneParent 回傳唯一持有不變之石的親代。
func (d *Daycare) everstoneParent() int {
	if d.ParentItems[0] == ItemEverstone {
		return 0
	}
	return 1
}

// powerParent 回傳唯一持有力量道具的親代；只檢查親代 A 是否落在 [2,7]。
func (d *Daycare) powerParent() int {
	if it := d.ParentItems[0]; it >= ItemPowerMin && it <= ItemPowerMax {
		return 0
	}
	return 1
}

// speciesInfo 為孵出物種的解析結果；成對物種（尼多蘭、電螢蟲 / 甜甜螢）需要額外抽一次。
type speciesInfo struct {
	paired bool
	base   personal.Info
	// first 為抽到 1 時的物種，second 為抽到 0 時的物種
	first, second personal.Info
}

func resolveSpecies(species uint16, pp personal.Provider) (speciesInfo, error) {
	lookup := func(sp uint16) (personal.Info, error) {
		info, ok := pp.Personal(sp)
		if !ok {
			return personal.Info{}, errs.NewWithExtra(errs.Warn, fmt.Sprintf("unknown species %d", sp), "egg species lookup")
		}
		info.Species = sp
		return info, nil
	}
	var (
		si  speciesInfo
		err error
	)
	switch species {
	case personal.NidoranF, personal.NidoranM:
		si.paired = true
		if si.first, err = lookup(personal.NidoranM); err != nil {
			return si, err
		}
		si.second, err = lookup(personal.NidoranF)
		return si, err
	case personal.Volbeat, personal.Illumise:
		si.paired = true
		if si.first, err = lookup(personal.Illumise); err != nil {
			return si, err
		}
		si.second, err = lookup(personal.Volbeat)
		return si, err
	}
	si.base, err = lookup(species)
	return si, err
}
