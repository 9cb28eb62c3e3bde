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

package mech_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

type constGen struct{ n int }

func (g constGen) Generate(seed uint64) []state.State {
	out := make([]state.State, g.n)
	for i := range out {
		out[i] = state.State{Seed: seed, Advances: uint32(i)}
	}
	return out
}

func builder(n int) mech.Builder {
	return func(job *spec.Job, env mech.Env) (mech.Generator, error) { return constGen{n: n}, nil }
}

func TestRegistry(t *testing.T) {
	reg := mech.NewRegistry()
	if err := reg.Register(mech.Mechanic{Key: "a", Generator: builder(2)}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(mech.Mechanic{Key: "a", Generator: builder(3)}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(mech.Mechanic{Key: "b"}); err == nil {
		t.Fatalf("expected error for missing builder")
	}
	if !reg.IsExist("a") || reg.IsExist("b") {
		t.Fatalf("IsExist mismatch")
	}

	gen, err := reg.BuildGenerator(&spec.Job{Mechanic: "a"}, mech.Env{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ms := mech.Collect(mech.Origin{Seed: 9, Index: 1}, gen)
	if len(ms) != 2 || ms[1].State.Advances != 1 || ms[0].Origin.Index != 1 {
		t.Fatalf("unexpected matches %+v", ms)
	}
	if _, err := reg.BuildSpace(&spec.Job{Mechanic: "a"}, mech.Env{}); err == nil {
		t.Fatalf("mechanic without space should not build one")
	}
	if _, err := reg.BuildGenerator(&spec.Job{Mechanic: "zzz"}, mech.Env{}); err == nil {
		t.Fatalf("unknown mechanic should fail")
	}
}

func TestRegistryBuildLogging(t *testing.T) {
	var buf bytes.Buffer
	env := mech.Env{
		Profile: &spec.Profile{Name: "p1"},
		Logger:  slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	reg := mech.NewRegistry()
	bad := func(job *spec.Job, env mech.Env) (mech.Generator, error) { return nil, errs.NewWarn("bad params") }
	if err := reg.Register(mech.Mechanic{Key: "ok", Generator: builder(1)}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(mech.Mechanic{Key: "bad", Generator: bad}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := reg.BuildGenerator(&spec.Job{Mechanic: "ok"}, env); err != nil {
		t.Fatalf("build: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"msg":"generator built"`) || !strings.Contains(out, `"mechanic":"ok"`) || !strings.Contains(out, `"profile":"p1"`) {
		t.Fatalf("missing build log: %s", out)
	}

	buf.Reset()
	if _, err := reg.BuildGenerator(&spec.Job{Mechanic: "bad"}, env); errs.Level(err) != errs.Warn {
		t.Fatalf("expected warn, got %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, `"msg":"mechanic config rejected"`) ||
		!strings.Contains(out, `"mechanic":"bad"`) || !strings.Contains(out, "bad params") {
		t.Fatalf("missing rejection log: %s", out)
	}

	// 未設定 Logger 時不應 panic
	if _, err := reg.BuildGenerator(&spec.Job{Mechanic: "bad"}, mech.Env{}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestMergeRegistry(t *testing.T) {
	r1 := mech.NewRegistry()
	r2 := mech.NewRegistry()
	_ = r1.Register(mech.Mechanic{Key: "x", Generator: builder(1)})
	_ = r2.Register(mech.Mechanic{Key: "y", Generator: builder(1)})
	m, err := mech.MergeRegistry(r1, nil, r2)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Fatalf("keys %v", keys)
	}
	if _, err := mech.MergeRegistry(r1, r1); err == nil {
		t.Fatalf("expected duplicate error on merge")
	}
}
