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
	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/rng"
	"github.com/zintix-labs/seedlab/sdk/state"
)

// EggConfig 為孵蛋產生器的設定。
type EggConfig struct {
	InitialAdvances uint32
	MaxAdvances     uint32
	Offset          uint32
	TID, SID        uint16
	BW2             bool
	ShinyCharm      bool
	Daycare         Daycare
	Filter          filter.Filter
	Personal        personal.Provider
	Advances        AdvanceCounter
}

// EggGenerator 重播 BW（逐一完整推導）或 BW2（由蛋 seed 推導固定模板，只重抽 PID）。
type EggGenerator struct {
	initial   uint32
	max       uint32
	offset    uint32
	tsv       uint16
	bw2       bool
	rolls     int
	everstone int
	power     int
	daycare   Daycare
	species   speciesInfo
	filter    filter.Filter
	advances  AdvanceCounter
	jump      rng.Jump64
	ivMT      rng.MTFast
	seedMT    rng.MTFast
}

// NewEggGenerator 驗證設定並建立產生器。
func NewEggGenerator(cfg EggConfig) (*EggGenerator, error) {
	if err := cfg.Daycare.Valid(); err != nil {
		return nil, err
	}
	pp := cfg.Personal
	if pp == nil {
		pp = personal.Builtin()
	}
	si, err := resolveSpecies(cfg.Daycare.EggSpecies, pp)
	if err != nil {
		return nil, err
	}
	adv := cfg.Advances
	if adv == nil {
		adv = FixedAdvances(0)
	}
	// BW 的 MT IV 丟棄前 7 個輸出；BW2 的蛋 seed 取第 3、4 個完整輸出
	ivMT, err := rng.NewMTFast(0, 13, 7, true)
	if err != nil {
		return nil, err
	}
	seedMT, err := rng.NewMTFast(0, 4, 2, false)
	if err != nil {
		return nil, err
	}
	rolls := 0
	if cfg.BW2 && cfg.ShinyCharm {
		rolls += 2
	}
	if cfg.Daycare.Masuda {
		rolls += 5
	}
	return &EggGenerator{
		initial:   cfg.InitialAdvances,
		max:       cfg.MaxAdvances,
		offset:    cfg.Offset,
		tsv:       cfg.TID ^ cfg.SID,
		bw2:       cfg.BW2,
		rolls:     rolls,
		everstone: cfg.Daycare.EverstoneCount(),
		power:     cfg.Daycare.PowerItemCount(),
		daycare:   cfg.Daycare,
		species:   si,
		filter:    cfg.Filter,
		advances:  adv,
		jump:      rng.BWRNG.Jump(cfg.Offset),
		ivMT:      ivMT,
		seedMT:    seedMT,
	}, nil
}

// Rolls 回傳 PID 重抽次數上限。
func (g *EggGenerator) Rolls() int { return g.rolls }

func (g *EggGenerator) Generate(seed uint64) []state.State {
	if g.bw2 {
		return g.generateBW2(seed)
	}
	return g.generateBW(seed)
}

func (g *EggGenerator) drawSpecies(r *rng.LCRNG64) personal.Info {
	if !g.species.paired {
		return g.species.base
	}
	if r.NextUint32N(2) == 1 {
		return g.species.first
	}
	return g.species.second
}

// inherit 執行力量道具與遺傳迴圈，ivs 為遺傳前的基底。
func (g *EggGenerator) inherit(r *rng.LCRNG64, ivs *[6]uint8, inh *[6]uint8) {
	dc := &g.daycare
	count := 0
	if g.power != 0 {
		count = 1
		var parent int
		if g.power == 2 {
			parent = int(r.NextUint32N(2))
		} else {
			parent = dc.powerParent()
		}
		idx := dc.ParentItems[parent] - ItemPowerMin
		ivs[idx] = dc.ParentIVs[parent][idx]
		inh[idx] = uint8(parent + 1)
	}
	for count < 3 {
		idx := r.NextUint32N(6)
		parent := r.NextUint32N(2)
		if inh[idx] == state.InheritRandom {
			count++
			ivs[idx] = dc.ParentIVs[parent][idx]
			inh[idx] = uint8(parent + 1)
		}
	}
}

// rollPID 依重抽次數重抽 PID，直到色違或次數用完。
func (g *EggGenerator) rollPID(draw func() uint32) uint32 {
	pid := draw()
	for i := 0; i < g.rolls && !state.IsShiny(pid, g.tsv); i++ {
		pid = draw()
	}
	return pid
}

func (g *EggGenerator) generateBW(seed uint64) []state.State {
	dc := &g.daycare
	mt := g.ivMT
	mt.Reseed(uint32(seed >> 32))
	mtIVs := mt.IVs()

	base := g.advances.InitialAdvances(seed) + g.initial
	root := rng.NewBWRNG(seed, base)

	var out []state.State
	for cnt := uint32(0); cnt <= g.max; cnt++ {
		r := root
		r.ApplyJump(g.jump)

		info := g.drawSpecies(&r)
		nature := uint8(r.NextUint32N(25))
		if g.everstone != 0 && r.NextUint32N(2) == 1 {
			if g.everstone == 2 {
				nature = dc.ParentNatures[r.NextUint32N(2)]
			} else {
				nature = dc.ParentNatures[dc.everstoneParent()]
			}
		}

		hidden := false
		if dc.Ditto {
			r.Advance(2)
		} else {
			hidden = r.NextUint32N(100) >= 40 && dc.ParentAbilities[1] == 2
		}

		ivs := mtIVs
		var inh [6]uint8
		g.inherit(&r, &ivs, &inh)

		pid := g.rollPID(func() uint32 { return r.NextUint32N(0xffffffff) })
		ability := uint8(pid >> 16 & 1)
		if hidden {
			ability = 2
		}

		st := state.State{
			Seed:        seed,
			Advances:    base + cnt,
			PID:         pid,
			IVs:         ivs,
			Ability:     ability,
			Gender:      state.GenderOf(pid, info.GenderRatio),
			Nature:      nature,
			Shiny:       state.ShinyType(pid, g.tsv),
			Species:     info.Species,
			Inheritance: inh,
			Chatot:      uint16(root.NextUint32N(0x1fff)),
		}
		st.Finalize()
		if g.filter.Matches(&st) {
			out = append(out, st)
		}
	}
	return out
}

// EggSeed 回傳 BW2 由 MT 推導出的蛋 seed。
func (g *EggGenerator) EggSeed(seed uint64) uint64 {
	mt := g.seedMT
	mt.Reseed(uint32(seed >> 32))
	return uint64(mt.NextUint32())<<32 | uint64(mt.NextUint32())
}

// Template 回傳 BW2 蛋 seed 決定的固定欄位（性格、特性、IV、遺傳、物種）。
func (g *EggGenerator) Template(eggSeed uint64) state.State {
	dc := &g.daycare
	r := rng.NewBWRNG(eggSeed, 0)

	info := g.drawSpecies(&r)
	nature := uint8(r.NextUint32N(25))
	switch g.everstone {
	case 2:
		nature = dc.ParentNatures[r.NextUint32N(2)]
	case 1:
		nature = dc.ParentNatures[dc.everstoneParent()]
	}

	var ability uint8
	if !dc.Ditto {
		roll := r.NextUint32N(100)
		switch dc.ParentAbilities[1] {
		case 0:
			ability = b2u(roll >= 80)
		case 1:
			ability = b2u(roll >= 20)
		default:
			switch {
			case roll < 20:
				ability = 0
			case roll < 40:
				ability = 1
			default:
				ability = 2
			}
		}
	} else {
		r.Advance(1)
		ability = uint8(r.NextUint32N(2))
	}

	var ivs, inh [6]uint8
	g.inherit(&r, &ivs, &inh)
	for i := range ivs {
		if inh[i] == state.InheritRandom {
			ivs[i] = uint8(r.NextUint32N(32))
		}
	}

	st := state.State{
		IVs:         ivs,
		Ability:     ability,
		Nature:      nature,
		Species:     info.Species,
		Inheritance: inh,
	}
	st.Finalize()
	return st
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (g *EggGenerator) generateBW2(seed uint64) []state.State {
	tmpl := g.Template(g.EggSeed(seed))
	f := &g.filter
	if !f.CompareAbility(tmpl.Ability) || !f.CompareNature(tmpl.Nature) ||
		!f.CompareIVs(tmpl.IVs) || !f.CompareHiddenPower(tmpl.HiddenPower) {
		return nil
	}
	ratio := g.species.base.GenderRatio
	if g.species.paired {
		if tmpl.Species == g.species.first.Species {
			ratio = g.species.first.GenderRatio
		} else {
			ratio = g.species.second.GenderRatio
		}
	}

	base := g.advances.InitialAdvances(seed) + g.initial
	root := rng.NewBWRNG(seed, base)
	abilityBit := uint32(tmpl.Ability)

	var out []state.State
	for cnt := uint32(0); cnt <= g.max; cnt++ {
		r := root
		r.ApplyJump(g.jump)

		// PID 的第 16 bit 必須與模板特性一致
		pid := g.rollPID(func() uint32 {
			p := r.NextUint32()
			if p>>16&1 != abilityBit {
				p ^= 0x10000
			}
			return p
		})

		st := tmpl
		st.Seed = seed
		st.Advances = base + cnt
		st.PID = pid
		st.Gender = state.GenderOf(pid, ratio)
		st.Shiny = state.ShinyType(pid, g.tsv)
		st.Chatot = uint16(root.NextUint32N(0x1fff))
		if f.CompareGender(st.Gender) && f.CompareShiny(st.Shiny) {
			out = append(out, st)
		}
	}
	return out
}
