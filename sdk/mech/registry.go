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

package mech

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/spec"
)

// Registry 為機制註冊表。註冊完成後只讀，可並行查詢。
type Registry struct {
	mechs map[spec.MechKey]Mechanic
}

func NewRegistry() *Registry {
	return &Registry{mechs: make(map[spec.MechKey]Mechanic, 8)}
}

func (r *Registry) Register(m Mechanic) error {
	if m.Key == "" || m.Generator == nil {
		return errs.NewFatal("mechanic needs a key and a generator builder")
	}
	if _, ok := r.mechs[m.Key]; ok {
		return errs.NewFatal(fmt.Sprintf("duplicate mechanic: %s", m.Key))
	}
	r.mechs[m.Key] = m
	return nil
}

// BuildGenerator 依 job.Mechanic 建立 Generator。
func (r *Registry) BuildGenerator(job *spec.Job, env Env) (Generator, error) {
	m, ok := r.mechs[job.Mechanic]
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("mechanic is not exist: %s", job.Mechanic))
	}
	g, err := m.Generator(job, env)
	if err != nil {
		env.logger().Warn("mechanic config rejected", buildAttrs(job, env, "generator", err)...)
		return nil, err
	}
	env.logger().Debug("generator built", buildAttrs(job, env, "generator", nil)...)
	return g, nil
}

// BuildSpace 依 job.Mechanic 建立 SeedSpace。
func (r *Registry) BuildSpace(job *spec.Job, env Env) (SeedSpace, error) {
	m, ok := r.mechs[job.Mechanic]
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("mechanic is not exist: %s", job.Mechanic))
	}
	if m.Space == nil {
		return nil, errs.NewWarn(fmt.Sprintf("mechanic %s does not support search", job.Mechanic))
	}
	sp, err := m.Space(job, env)
	if err != nil {
		env.logger().Warn("mechanic config rejected", buildAttrs(job, env, "space", err)...)
		return nil, err
	}
	env.logger().Debug("seed space built", buildAttrs(job, env, "space", nil)...)
	return sp, nil
}

func buildAttrs(job *spec.Job, env Env, stage string, err error) []any {
	attrs := []any{slog.String("mechanic", string(job.Mechanic)), slog.String("stage", stage)}
	if env.Profile != nil {
		attrs = append(attrs, slog.String("profile", env.Profile.Name))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	return attrs
}

func (r *Registry) IsExist(key spec.MechKey) bool {
	_, ok := r.mechs[key]
	return ok
}

// Keys 回傳已排序的機制名稱。
func (r *Registry) Keys() []spec.MechKey {
	keys := make([]spec.MechKey, 0, len(r.mechs))
	for k := range r.mechs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MergeRegistry 合併多個註冊表；重複的 key 一律視為錯誤。
func MergeRegistry(regs ...*Registry) (*Registry, error) {
	out := NewRegistry()
	origin := make(map[spec.MechKey]int, 8)
	for i, r := range regs {
		if r == nil {
			continue
		}
		for k, m := range r.mechs {
			if _, ok := out.mechs[k]; ok {
				return nil, errs.NewFatal(fmt.Sprintf("duplicate mechanic %s (registry #%d and #%d)", k, origin[k], i))
			}
			out.mechs[k] = m
			origin[k] = i
		}
	}
	return out, nil
}

// Collect 對 origin 的 seed 執行 Generator，並把結果包成 Match。
func Collect(origin Origin, gen Generator) []Match {
	states := gen.Generate(origin.Seed)
	if len(states) == 0 {
		return nil
	}
	out := make([]Match, len(states))
	for i := range states {
		out[i] = Match{Origin: origin, State: states[i]}
	}
	return out
}
