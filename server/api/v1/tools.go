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

package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zintix-labs/seedlab/corefmt"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/gen4"
	"github.com/zintix-labs/seedlab/sdk/rng"
	"github.com/zintix-labs/seedlab/server/httperr"
)

const maxDraws = 10_000

type rngRequest struct {
	Engine   string `json:"engine"`
	Seed     string `json:"seed"`
	Advances uint32 `json:"advances"`
	Count    int    `json:"count"`
	Wide     bool   `json:"wide"`
	// Snapshot 非空時以快照還原，忽略 seed 與 advances。
	Snapshot string `json:"snapshot"`
	Format   string `json:"format"`
}

type rngResponse struct {
	Engine   string   `json:"engine"`
	Outputs  []uint64 `json:"outputs"`
	Snapshot string   `json:"snapshot"`
}

// RNG POST /v1/rng：輸出引擎原始亂數，並回傳取完之後的快照以便接續。
func RNG(w http.ResponseWriter, r *http.Request) {
	var req rngRequest
	if err := decodeBody(w, r, &req); err != nil {
		httperr.Errs(w, err)
		return
	}
	if req.Count < 0 || req.Count > maxDraws {
		httperr.Errs(w, errs.Warnf("count must be in [0, %d]", maxDraws))
		return
	}

	var (
		eng rng.Engine
		err error
	)
	if req.Snapshot != "" {
		var snap []byte
		if snap, err = corefmt.DecodeSnapshot(req.Format, req.Snapshot); err == nil {
			if eng, err = rng.NewEngine(req.Engine, 0, 0); err == nil {
				if rerr := eng.Restore(snap); rerr != nil {
					err = &errs.E{Message: "restore snapshot failed", Cause: rerr, ErrLv: errs.Warn}
				}
			}
		}
	} else {
		var seed uint64
		if seed, err = corefmt.ParseSeed(req.Seed); err == nil {
			eng, err = rng.NewEngine(req.Engine, seed, req.Advances)
		}
	}
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	out := rng.Draw(eng, req.Count, req.Wide)
	snap, err := eng.Snapshot()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	text, err := corefmt.EncodeSnapshot(req.Format, snap)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ok(w, rngResponse{Engine: req.Engine, Outputs: out, Snapshot: text})
}

type seedTimeView struct {
	Time  time.Time `json:"time"`
	Delay uint32    `json:"delay"`
}

type seedTimeResponse struct {
	Seed  string         `json:"seed"`
	Year  int            `json:"year"`
	Total int            `json:"total"`
	Times []seedTimeView `json:"times"`
}

// SeedTime GET /v1/seedtime?seed=&year=&limit=：Gen 4 seed 對應的日期時間與延遲。
func SeedTime(w http.ResponseWriter, r *http.Request) {
	seed, err := corefmt.ParseSeed32(r.URL.Query().Get("seed"))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	year := 2000
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil || year < 2000 || year > 2099 {
			httperr.Errs(w, errs.NewWithExtra(errs.Warn, "year must be in [2000, 2099]", v))
			return
		}
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	all := gen4.SeedToTime(seed, year)
	out := make([]seedTimeView, 0, min(len(all), max(limit, 0)))
	for _, st := range all {
		if len(out) >= limit {
			break
		}
		out = append(out, seedTimeView{Time: st.Time, Delay: st.Delay})
	}
	ok(w, seedTimeResponse{Seed: corefmt.FormatSeed32(seed), Year: year, Total: len(all), Times: out})
}
