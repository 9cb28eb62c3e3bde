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

package gen4

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/encounter"
	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/rng"
	"github.com/zintix-labs/seedlab/sdk/state"
)

// Lead 為隊伍首位的特性。
type Lead uint8

const (
	LeadNone Lead = iota
	LeadSynchronize
	LeadCuteCharmFemale
	LeadCuteCharmMale
)

// ParseLead 解析 none / synchronize / cute_charm 與首位性別。
func ParseLead(lead, gender string) (Lead, error) {
	switch strings.ToLower(lead) {
	case "", "none":
		return LeadNone, nil
	case "synchronize":
		return LeadSynchronize, nil
	case "cute_charm":
		switch strings.ToLower(gender) {
		case "female":
			return LeadCuteCharmFemale, nil
		case "male":
			return LeadCuteCharmMale, nil
		}
		return 0, errs.Warnf("cute_charm lead needs lead_gender male|female, got %q", gender)
	}
	return 0, errs.Warnf("unknown lead %q", lead)
}

// WildConfig 為野生遭遇產生器的設定。
type WildConfig struct {
	InitialAdvances uint32
	MaxAdvances     uint32
	Offset          uint32
	TID, SID        uint16
	HGSS            bool
	Area            encounter.Area
	Lead            Lead
	SyncNature      uint8
	Filter          filter.Filter
	Personal        personal.Provider
}

// WildGenerator 重播草叢 / 水面等野生遭遇。
type WildGenerator struct {
	initial uint32
	max     uint32
	offset  uint32
	tsv     uint16
	method  method
	area    encounter.Area
	lead    Lead
	sync    uint8
	ratios  []uint8
	buffers []uint32
	filter  filter.Filter
}

// NewWildGenerator 驗證設定並預先算好每個欄位的性別比例與魅惑之軀偏移。
func NewWildGenerator(cfg WildConfig) (*WildGenerator, error) {
	if err := cfg.Area.Valid(); err != nil {
		return nil, err
	}
	if cfg.SyncNature > 24 {
		return nil, errs.Warnf("sync nature %d out of range", cfg.SyncNature)
	}
	pp := cfg.Personal
	if pp == nil {
		pp = personal.Builtin()
	}
	g := &WildGenerator{
		initial: cfg.InitialAdvances,
		max:     cfg.MaxAdvances,
		offset:  cfg.Offset,
		tsv:     cfg.TID ^ cfg.SID,
		method:  methodJ{},
		area:    cfg.Area,
		lead:    cfg.Lead,
		sync:    cfg.SyncNature,
		ratios:  make([]uint8, len(cfg.Area.Slots)),
		buffers: make([]uint32, len(cfg.Area.Slots)),
		filter:  cfg.Filter,
	}
	if cfg.HGSS {
		g.method = methodK{}
	}
	for i, s := range cfg.Area.Slots {
		info, ok := pp.Personal(s.Species)
		if !ok {
			return nil, errs.NewWithExtra(errs.Warn, fmt.Sprintf("unknown species %d", s.Species), fmt.Sprintf("area=%s slot=%d", cfg.Area.Name, i))
		}
		g.ratios[i] = info.GenderRatio
		// 母的首位讓公的比例提高：PID 低位落在比例之上
		if cfg.Lead == LeadCuteCharmFemale {
			g.buffers[i] = 25 * (uint32(info.GenderRatio)/25 + 1)
		}
	}
	return g, nil
}

// Method 回傳使用的方法名稱（J 或 K）。
func (g *WildGenerator) Method() string { return g.method.name() }

func (g *WildGenerator) Generate(seed uint64) []state.State {
	r := rng.PokeRNG.New(uint32(seed), g.initial+g.offset)
	var out []state.State
	for cnt := uint32(0); cnt <= g.max; cnt++ {
		gr := r
		st := g.derive(&gr)
		st.Seed = seed
		st.Advances = g.initial + cnt
		if g.filter.Matches(&st) {
			out = append(out, st)
		}
		r.Next()
	}
	return out
}

// derive 依序抽：欄位、（等級）、首位判定、性格、PID 迴圈、IV。
func (g *WildGenerator) derive(r *rng.LCRNG) state.State {
	kind := g.area.Kind
	slot := g.method.slot(kind, r.NextUint16())
	s := g.area.Slots[slot]
	level := s.MinLevel
	if kind != encounter.Grass {
		level = s.MinLevel + uint8(r.NextUint16()%uint16(s.MaxLevel-s.MinLevel+1))
	}

	var nature uint8
	charm := false
	switch g.lead {
	case LeadSynchronize:
		if g.method.syncOK(r.NextUint16()) {
			nature = g.sync
		} else {
			nature = g.method.nature(r.NextUint16())
		}
	case LeadCuteCharmFemale, LeadCuteCharmMale:
		charm = g.method.charmOK(r.NextUint16())
		nature = g.method.nature(r.NextUint16())
	default:
		nature = g.method.nature(r.NextUint16())
	}

	var pid uint32
	if charm {
		pid = g.buffers[slot] + uint32(nature)
	} else {
		pid = pidLoop(r, nature)
	}

	st := state.State{
		PID:           pid,
		IVs:           ivsFrom(r.NextUint16(), r.NextUint16()),
		Ability:       uint8(pid & 1),
		Gender:        state.GenderOf(pid, g.ratios[slot]),
		Nature:        nature,
		Shiny:         state.ShinyType(pid, g.tsv),
		Level:         level,
		EncounterSlot: slot,
		Species:       s.Species,
	}
	st.Finalize()
	return st
}

// pidLoop 重抽 (low, high) 直到 PID % 25 等於性格。
func pidLoop(r *rng.LCRNG, nature uint8) uint32 {
	for {
		low := uint32(r.NextUint16())
		high := uint32(r.NextUint16())
		pid := high<<16 | low
		if pid%25 == uint32(nature) {
			return pid
		}
	}
}

// ivsFrom 由兩個 16-bit 值拆出 IV：iv1 為 HP/攻/防，iv2 為速度/特攻/特防。
func ivsFrom(iv1, iv2 uint16) [6]uint8 {
	return [6]uint8{
		uint8(iv1 & 31),
		uint8(iv1 >> 5 & 31),
		uint8(iv1 >> 10 & 31),
		uint8(iv2 >> 5 & 31),
		uint8(iv2 >> 10 & 31),
		uint8(iv2 & 31),
	}
}
