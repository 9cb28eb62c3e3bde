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
	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/rng"
	"github.com/zintix-labs/seedlab/sdk/state"
)

// StaticConfig 為定點（Method 1）產生器的設定。
type StaticConfig struct {
	InitialAdvances uint32
	MaxAdvances     uint32
	Offset          uint32
	TID, SID        uint16
	Species         uint16
	Level           uint8
	GenderRatio     uint8
	Filter          filter.Filter
}

// StaticGenerator 重播 Method 1：PID 低位、PID 高位、iv1、iv2。
type StaticGenerator struct {
	cfg StaticConfig
	tsv uint16
}

func NewStaticGenerator(cfg StaticConfig) *StaticGenerator {
	return &StaticGenerator{cfg: cfg, tsv: cfg.TID ^ cfg.SID}
}

func (g *StaticGenerator) Generate(seed uint64) []state.State {
	c := &g.cfg
	r := rng.PokeRNG.New(uint32(seed), c.InitialAdvances+c.Offset)
	var out []state.State
	for cnt := uint32(0); cnt <= c.MaxAdvances; cnt++ {
		gr := r
		low := uint32(gr.NextUint16())
		high := uint32(gr.NextUint16())
		pid := high<<16 | low
		st := state.State{
			Seed:     seed,
			Advances: c.InitialAdvances + cnt,
			PID:      pid,
			IVs:      ivsFrom(gr.NextUint16(), gr.NextUint16()),
			Ability:  uint8(pid & 1),
			Gender:   state.GenderOf(pid, c.GenderRatio),
			Nature:   uint8(pid % 25),
			Shiny:    state.ShinyType(pid, g.tsv),
			Level:    c.Level,
			Species:  c.Species,
		}
		st.Finalize()
		if c.Filter.Matches(&st) {
			out = append(out, st)
		}
		r.Next()
	}
	return out
}
