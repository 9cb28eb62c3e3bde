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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/server/httperr"
	"github.com/zintix-labs/seedlab/server/netsvr"
	"github.com/zintix-labs/seedlab/spec"
	"github.com/zintix-labs/seedlab/stats"
	"github.com/zintix-labs/seedlab/store"
)

var errNotFound = &errs.E{Message: "search not found", Cause: httperr.ErrNotFound, ErrLv: errs.Warn}

// SearchHandler 以 SearchRuntime 處理非同步搜尋；設定 store 時已結束的搜尋會被保存，
// 從 runtime 移除後仍可由 store 讀回結果。
type SearchHandler struct {
	rt    *seedlab.SearchRuntime
	store *store.Store
	log   *slog.Logger
}

func NewSearchHandler(rt *seedlab.SearchRuntime, st *store.Store, log *slog.Logger) (*SearchHandler, error) {
	if rt == nil {
		return nil, errs.NewFatal("search runtime is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &SearchHandler{rt: rt, store: st, log: log}
	if st != nil {
		rt.OnDone(h.save)
	}
	return h, nil
}

// save 在搜尋結束時寫入 store，run id 沿用搜尋 id。
func (h *SearchHandler) save(sj *seedlab.SearchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := h.store.Save(ctx, runRecord(sj), sj.Searcher.SortedResults()); err != nil {
		h.log.Error("search.save", slog.String("id", sj.ID), slog.Any("err", err))
	}
}

func runRecord(sj *seedlab.SearchJob) *store.Run {
	p := sj.Searcher.Progress()
	raw, _ := json.Marshal(sj.Job)
	return &store.Run{
		ID:        sj.ID,
		Mechanic:  string(sj.Job.Mechanic),
		Profile:   sj.Job.Profile,
		Status:    p.Status.String(),
		Total:     p.Total,
		Examined:  p.Examined,
		Seeds:     p.Seeds,
		Found:     p.Found,
		Elapsed:   sj.Searcher.Elapsed(),
		Job:       raw,
		CreatedAt: sj.Created,
	}
}

type searchView struct {
	ID       string           `json:"id"`
	Mechanic spec.MechKey     `json:"mechanic"`
	Profile  string           `json:"profile"`
	Workers  int              `json:"workers"`
	Created  time.Time        `json:"created"`
	Elapsed  string           `json:"elapsed"`
	Progress seedlab.Progress `json:"progress"`
}

func view(sj *seedlab.SearchJob) searchView {
	return searchView{
		ID:       sj.ID,
		Mechanic: sj.Job.Mechanic,
		Profile:  sj.Job.Profile,
		Workers:  sj.Searcher.Workers(),
		Created:  sj.Created,
		Elapsed:  sj.Searcher.Elapsed().Round(time.Millisecond).String(),
		Progress: sj.Searcher.Progress(),
	}
}

// Start POST /v1/search：body 為 Job JSON，回傳 202 與搜尋 id。
func (h *SearchHandler) Start(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		httperr.Errs(w, err)
		return
	}
	job, err := spec.GetJobByJSON(raw)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	sj, err := h.rt.Submit(job)
	if err != nil {
		httperr.Log(h.log, "search.submit", err)
		httperr.Errs(w, err)
		return
	}
	httperr.WriteJSON(w, http.StatusAccepted, view(sj))
}

// List GET /v1/search
func (h *SearchHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs := h.rt.List()
	out := make([]searchView, 0, len(jobs))
	for _, sj := range jobs {
		out = append(out, view(sj))
	}
	ok(w, out)
}

// Get GET /v1/search/{id}
func (h *SearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := netsvr.URLParam(r, "id")
	if sj, found := h.rt.Get(id); found {
		ok(w, view(sj))
		return
	}
	run, err := h.storedRun(r.Context(), id)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ok(w, run)
}

type resultsResponse struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Count   int          `json:"count"`
	Total   int          `json:"total"`
	Matches []mech.Match `json:"matches"`
}

// Results GET /v1/search/{id}/results?offset=&limit=
//
// 執行中也可讀取，回傳目前已找到的部分（依 seed, advances 排序）。
func (h *SearchHandler) Results(w http.ResponseWriter, r *http.Request) {
	id := netsvr.URLParam(r, "id")
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 1000)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if offset < 0 || limit <= 0 {
		httperr.Errs(w, errs.NewWarn("offset must be >= 0 and limit > 0"))
		return
	}

	var (
		matches []mech.Match
		status  string
	)
	if sj, found := h.rt.Get(id); found {
		matches = sj.Searcher.SortedResults()
		status = sj.Searcher.Status().String()
	} else {
		run, err := h.storedRun(r.Context(), id)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		if matches, err = h.store.Matches(r.Context(), id, 0); err != nil {
			httperr.Log(h.log, "search.results", err)
			httperr.Errs(w, err)
			return
		}
		status = run.Status
	}

	total := len(matches)
	lo := min(offset, total)
	hi := lo + min(limit, total-lo)
	page := matches[lo:hi]
	if page == nil {
		page = []mech.Match{}
	}
	ok(w, resultsResponse{ID: id, Status: status, Count: len(page), Total: total, Matches: page})
}

// Report GET /v1/search/{id}/report?format=json|yaml|table：搜尋的統計摘要（執行中為部分結果）。
func (h *SearchHandler) Report(w http.ResponseWriter, r *http.Request) {
	sj, found := h.rt.Get(netsvr.URLParam(r, "id"))
	if !found {
		httperr.Errs(w, errNotFound)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	render, ctype, found := stats.RenderFor(format)
	if !found {
		httperr.Errs(w, errs.Warnf("unknown report format %q (json|yaml|table)", format))
		return
	}
	rep := sj.Searcher.Report()
	w.Header().Set("Content-Type", ctype)
	if err := rep.WriteWith(w, render); err != nil {
		httperr.Log(h.log, "search.report", err)
	}
}

// Cancel DELETE /v1/search/{id}：執行中則取消；已結束則自 runtime 移除。
func (h *SearchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := netsvr.URLParam(r, "id")
	sj, found := h.rt.Get(id)
	if !found {
		httperr.Errs(w, errNotFound)
		return
	}
	if sj.Searcher.Status().Terminal() {
		if err := h.rt.Remove(id); err != nil {
			httperr.Errs(w, err)
			return
		}
		ok(w, view(sj))
		return
	}
	if err := h.rt.Cancel(id); err != nil {
		httperr.Errs(w, err)
		return
	}
	sj.Searcher.Wait()
	ok(w, view(sj))
}

// Runs GET /v1/runs：store 中已保存的搜尋。
func (h *SearchHandler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		ok(w, []*store.Run{})
		return
	}
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	runs, err := h.store.Runs(r.Context(), limit)
	if err != nil {
		httperr.Log(h.log, "search.runs", err)
		httperr.Errs(w, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	ok(w, runs)
}

func (h *SearchHandler) storedRun(ctx context.Context, id string) (*store.Run, error) {
	if h.store == nil {
		return nil, errNotFound
	}
	run, err := h.store.Run(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound
	}
	return run, err
}
