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
	"fmt"
	"time"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/seedhash"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

type eggParams struct {
	EggSpecies      uint16      `yaml:"egg_species"`
	ParentIVs       [2][6]uint8 `yaml:"parent_ivs"`
	ParentAbilities [2]uint8    `yaml:"parent_abilities"`
	ParentItems     [2]uint8    `yaml:"parent_items"`
	ParentNatures   [2]string   `yaml:"parent_natures"`
	Ditto           bool        `yaml:"ditto"`
	Masuda          bool        `yaml:"masuda"`
}

type spaceParams struct {
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	Hours     []int  `yaml:"hours"`
	Minutes   []int  `yaml:"minutes"`
}

// Register 註冊 gen5.egg。counter 為 nil 時初始步數固定為 0。
func Register(reg *mech.Registry, counter AdvanceCounter) error {
	build := func(job *spec.Job, env mech.Env) (mech.Generator, error) {
		return buildEgg(job, env, counter)
	}
	return reg.Register(mech.Mechanic{Key: spec.MechGen5Egg, Generator: build, Space: buildSpace})
}

func checkProfile(env mech.Env) error {
	if env.Profile == nil {
		return errs.NewWarn("gen5 mechanic needs a profile")
	}
	if env.Profile.Generation() != 5 {
		return errs.NewWarn(fmt.Sprintf("profile %s is not a gen5 profile (%s)", env.Profile.Name, env.Profile.Version))
	}
	return nil
}

func (p *eggParams) daycare() (Daycare, error) {
	dc := Daycare{
		ParentIVs:       p.ParentIVs,
		ParentAbilities: p.ParentAbilities,
		ParentItems:     p.ParentItems,
		EggSpecies:      p.EggSpecies,
		Ditto:           p.Ditto,
		Masuda:          p.Masuda,
	}
	for i, name := range p.ParentNatures {
		if name == "" {
			continue
		}
		n, ok := state.NatureByName(name)
		if !ok {
			return dc, errs.Warnf("parent %d: unknown nature %q", i, name)
		}
		dc.ParentNatures[i] = n
	}
	return dc, dc.Valid()
}

func buildEgg(job *spec.Job, env mech.Env, counter AdvanceCounter) (mech.Generator, error) {
	if err := checkProfile(env); err != nil {
		return nil, err
	}
	var p eggParams
	if err := spec.DecodeParams(job.Params, &p); err != nil {
		return nil, err
	}
	dc, err := p.daycare()
	if err != nil {
		return nil, err
	}
	g, err := NewEggGenerator(EggConfig{
		InitialAdvances: job.InitialAdvances,
		MaxAdvances:     job.MaxAdvances,
		Offset:          job.Offset,
		TID:             env.Profile.TID,
		SID:             env.Profile.SID,
		BW2:             env.Profile.Version.IsBW2(),
		ShinyCharm:      env.Profile.ShinyCharm,
		Daycare:         dc,
		Filter:          job.Filter.Build(),
		Personal:        env.Personal,
		Advances:        counter,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func parseDate(v, field string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, errs.NewWithExtra(errs.Warn, fmt.Sprintf("invalid %s %q", field, v), err.Error())
	}
	return t, nil
}

func buildSpace(job *spec.Job, env mech.Env) (mech.SeedSpace, error) {
	if err := checkProfile(env); err != nil {
		return nil, err
	}
	var p spaceParams
	if err := spec.DecodeParams(job.Search.Space, &p); err != nil {
		return nil, err
	}
	start, err := parseDate(p.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end := start
	if p.EndDate != "" {
		if end, err = parseDate(p.EndDate, "end_date"); err != nil {
			return nil, err
		}
	}
	prof := env.Profile
	space, err := NewDateTimeSpace(DateTimeConfig{
		Console:    prof.Console(),
		Start:      start,
		End:        end,
		Hours:      p.Hours,
		Minutes:    p.Minutes,
		Timer0Min:  prof.Timer0Min,
		Timer0Max:  prof.Timer0Max,
		Keypresses: seedhash.Keypresses(prof.Keypresses, prof.SkipLR),
	})
	if err != nil {
		return nil, err
	}
	return space, nil
}
