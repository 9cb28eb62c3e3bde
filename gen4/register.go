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

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/encounter"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

type wildParams struct {
	Encounter  encounter.Kind  `yaml:"encounter"`
	Lead       string          `yaml:"lead"`
	LeadGender string          `yaml:"lead_gender"`
	SyncNature string          `yaml:"sync_nature"`
	Species    uint16          `yaml:"species"`
	MinLevel   uint8           `yaml:"min_level"`
	MaxLevel   uint8           `yaml:"max_level"`
	Area       *encounter.Area `yaml:"area"`
}

type staticParams struct {
	Species uint16 `yaml:"species"`
	Level   uint8  `yaml:"level"`
}

type spaceParams struct {
	Year     int    `yaml:"year"`
	Hours    []int  `yaml:"hours"`
	MinDelay uint32 `yaml:"min_delay"`
	MaxDelay uint32 `yaml:"max_delay"`
}

// Register 註冊 gen4.wild 與 gen4.static。
func Register(reg *mech.Registry) error {
	if err := reg.Register(mech.Mechanic{Key: spec.MechGen4Wild, Generator: buildWild, Space: buildSpace}); err != nil {
		return err
	}
	return reg.Register(mech.Mechanic{Key: spec.MechGen4Static, Generator: buildStatic, Space: buildSpace})
}

func checkProfile(env mech.Env) error {
	if env.Profile == nil {
		return errs.NewWarn("gen4 mechanic needs a profile")
	}
	if env.Profile.Generation() != 4 {
		return errs.NewWarn(fmt.Sprintf("profile %s is not a gen4 profile (%s)", env.Profile.Name, env.Profile.Version))
	}
	return nil
}

func providerOf(env mech.Env) personal.Provider {
	if env.Personal != nil {
		return env.Personal
	}
	return personal.Builtin()
}

func buildWild(job *spec.Job, env mech.Env) (mech.Generator, error) {
	if err := checkProfile(env); err != nil {
		return nil, err
	}
	p := wildParams{MinLevel: 1, MaxLevel: 1}
	if err := spec.DecodeParams(job.Params, &p); err != nil {
		return nil, err
	}
	lead, err := ParseLead(p.Lead, p.LeadGender)
	if err != nil {
		return nil, err
	}
	var sync uint8
	if lead == LeadSynchronize {
		n, ok := state.NatureByName(p.SyncNature)
		if !ok {
			return nil, errs.Warnf("synchronize lead needs a valid sync_nature, got %q", p.SyncNature)
		}
		sync = n
	}
	area := encounter.Uniform("custom", p.Encounter, p.Species, p.MinLevel, p.MaxLevel)
	if p.Area != nil {
		area = *p.Area
	}
	g, err := NewWildGenerator(WildConfig{
		InitialAdvances: job.InitialAdvances,
		MaxAdvances:     job.MaxAdvances,
		Offset:          job.Offset,
		TID:             env.Profile.TID,
		SID:             env.Profile.SID,
		HGSS:            env.Profile.Version.IsHGSS(),
		Area:            area,
		Lead:            lead,
		SyncNature:      sync,
		Filter:          job.Filter.Build(),
		Personal:        providerOf(env),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func buildStatic(job *spec.Job, env mech.Env) (mech.Generator, error) {
	if err := checkProfile(env); err != nil {
		return nil, err
	}
	p := staticParams{Level: 1}
	if err := spec.DecodeParams(job.Params, &p); err != nil {
		return nil, err
	}
	info, ok := providerOf(env).Personal(p.Species)
	if !ok {
		return nil, errs.Warnf("unknown species %d", p.Species)
	}
	return NewStaticGenerator(StaticConfig{
		InitialAdvances: job.InitialAdvances,
		MaxAdvances:     job.MaxAdvances,
		Offset:          job.Offset,
		TID:             env.Profile.TID,
		SID:             env.Profile.SID,
		Species:         p.Species,
		Level:           p.Level,
		GenderRatio:     info.GenderRatio,
		Filter:          job.Filter.Build(),
	}), nil
}

func buildSpace(job *spec.Job, env mech.Env) (mech.SeedSpace, error) {
	p := spaceParams{Year: 2000, MinDelay: 600, MaxDelay: 1000}
	if err := spec.DecodeParams(job.Search.Space, &p); err != nil {
		return nil, err
	}
	space, err := NewDelaySpace(p.Year, p.Hours, p.MinDelay, p.MaxDelay)
	if err != nil {
		return nil, err
	}
	return space, nil
}
