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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/stats"
)

func sampleMatches() []mech.Match {
	return []mech.Match{
		{Origin: mech.Origin{Seed: 1}, State: state.State{Seed: 1, Advances: 3, Nature: 3, Gender: state.Female, Shiny: state.Square}},
		{Origin: mech.Origin{Seed: 1}, State: state.State{Seed: 1, Advances: 42, Nature: 3}},
		{Origin: mech.Origin{Seed: 7}, State: state.State{Seed: 7, Advances: 1500, Nature: 10, Gender: state.Genderless}},
	}
}

func sampleReport() *stats.SearchReport {
	return stats.NewSearchReport(stats.Meta{
		Mechanic: "gen4.wild",
		Profile:  "platinum",
		Status:   "completed",
		Total:    10,
		Examined: 10,
		Seeds:    100,
		Advances: 51,
		Elapsed:  2 * time.Second,
	}, sampleMatches())
}

func TestSearchReportSummary(t *testing.T) {
	r := sampleReport()
	r.Done()
	s := r.Summary
	if s.Found != 3 || s.SeedsHit != 2 || s.Shiny != 1 || s.Candidates != 5100 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if math.Abs(s.HitRate-0.02) > 1e-12 {
		t.Fatalf("hit rate %v", s.HitRate)
	}
	if !(s.HitRateCI.Lo < 0.02 && 0.02 < s.HitRateCI.Hi) {
		t.Fatalf("ci %+v should contain the point estimate", s.HitRateCI)
	}
	if s.SeedsPerSec != 50 {
		t.Fatalf("seeds/sec %v", s.SeedsPerSec)
	}
	d := r.Dist
	if d.AdvanceCollect[0] != 1 || d.AdvanceCollect[1] != 1 || d.AdvanceCollect[3] != 1 {
		t.Fatalf("advance dist %v", d.AdvanceCollect)
	}
	if d.NatureCollect[3] != 2 || d.NatureCollect[10] != 1 {
		t.Fatalf("nature dist %v", d.NatureCollect)
	}
	if d.GenderCollect[state.Male] != 1 || d.GenderCollect[state.Female] != 1 || d.GenderCollect[state.Genderless] != 1 {
		t.Fatalf("gender dist %v", d.GenderCollect)
	}
	if d.ShinyCollect[state.Square] != 1 || d.ShinyCollect[state.NotShiny] != 2 {
		t.Fatalf("shiny dist %v", d.ShinyCollect)
	}
}

func TestProportionClopperPearson(t *testing.T) {
	p := stats.Proportion(0, 100, 0.95)
	if p.Hat != 0 || p.CI.Lo != 0 || math.Abs(p.CI.Hi-0.0362167) > 1e-5 {
		t.Fatalf("k=0: %+v", p)
	}
	p = stats.Proportion(10, 10, 0.95)
	if p.Hat != 1 || p.CI.Hi != 1 || math.Abs(p.CI.Lo-0.6915029) > 1e-5 {
		t.Fatalf("k=n: %+v", p)
	}
	p = stats.Proportion(0, 0, 0.95)
	if p.CI.Lo != 0 || p.CI.Hi != 1 {
		t.Fatalf("n=0 should give the full interval: %+v", p)
	}
}

func TestExpectedHits(t *testing.T) {
	e := stats.ExpectedHits(0.01, 10000)
	if e.Hat != 100 || !(e.CI.Lo < 100 && 100 < e.CI.Hi) {
		t.Fatalf("expected hits %+v", e)
	}
	if z := stats.ExpectedHits(0, 10); z.Hat != 0 {
		t.Fatalf("zero rate %+v", z)
	}
}

func TestAdvanceBuckets(t *testing.T) {
	cases := map[uint32]int{0: 0, 9: 0, 10: 1, 999: 2, 1000: 3, 999999: 5, 1000000: 6, math.MaxUint32: 6}
	for adv, want := range cases {
		if got := stats.AdvanceBuckets.Index(adv); got != want {
			t.Fatalf("Index(%d)=%d want %d", adv, got, want)
		}
	}
	if len(stats.AdvanceBuckets.Labels()) != 7 {
		t.Fatalf("labels %v", stats.AdvanceBuckets.Labels())
	}
}

func TestRenderers(t *testing.T) {
	r := sampleReport()

	var jb bytes.Buffer
	if err := r.WriteWith(&jb, &stats.JsonSearchReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back stats.SearchReport
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if back.Summary.Found != 3 || back.Summary.Profile != "platinum" {
		t.Fatalf("json round trip %+v", back.Summary)
	}

	var yb bytes.Buffer
	if err := r.WriteWith(&yb, &stats.YAMLSearchReportRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yb.String(), "found: 3") || !strings.Contains(yb.String(), "nature_collect: [") {
		t.Fatalf("yaml output:\n%s", yb.String())
	}

	var tb bytes.Buffer
	if err := r.WriteWith(&tb, &stats.TableSearchReportRender{}); err != nil {
		t.Fatalf("table: %v", err)
	}
	out := tb.String()
	if !strings.Contains(out, "Search Report") || !strings.Contains(out, "| Found ") {
		t.Fatalf("table output:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, l := range lines[1:] {
		if len(l) != len(lines[1]) {
			t.Fatalf("table rows must align:\n%s", out)
		}
	}
}
