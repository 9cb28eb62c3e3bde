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
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/catalog"
	"github.com/zintix-labs/seedlab/corefmt"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/server/httperr"
	"github.com/zintix-labs/seedlab/spec"
)

// LabHandler 處理不需要非同步 runtime 的同步請求。
type LabHandler struct {
	lab      *seedlab.Seedlab
	profiles []catalog.Summary
}

// NewLabHandler 需要已 Freeze 的 Seedlab。
func NewLabHandler(lab *seedlab.Seedlab) (*LabHandler, error) {
	if lab == nil {
		return nil, errs.NewFatal("seedlab is required")
	}
	sum, err := lab.Summary()
	if err != nil {
		return nil, errs.Wrap(err, "build lab handler error")
	}
	return &LabHandler{lab: lab, profiles: sum}, nil
}

type profilesResponse struct {
	Profiles  []catalog.Summary `json:"profiles"`
	Mechanics []spec.MechKey    `json:"mechanics"`
}

// Profiles GET /v1/profiles
func (h *LabHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	ok(w, profilesResponse{Profiles: h.profiles, Mechanics: h.lab.Mechanics()})
}

type generateRequest struct {
	Seed string          `json:"seed"`
	Job  json.RawMessage `json:"job"`
}

type generateResponse struct {
	Seed   string        `json:"seed"`
	Count  int           `json:"count"`
	States []state.State `json:"states"`
}

// Generate POST /v1/generate：對單一 seed 同步重播。
func (h *LabHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		httperr.Errs(w, err)
		return
	}
	seed, err := corefmt.ParseSeed(req.Seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	job, err := spec.GetJobByJSON(req.Job)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	states, err := h.lab.Generate(job, seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ok(w, generateResponse{Seed: corefmt.FormatSeed(seed), Count: len(states), States: states})
}
