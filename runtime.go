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

package seedlab

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/spec"
)

// SearchJob 為 SearchRuntime 託管的一次非同步搜尋。
type SearchJob struct {
	ID       string
	Job      *spec.Job
	Searcher *Searcher
	Created  time.Time
	cancel   context.CancelFunc
}

// SearchRuntime 託管非同步搜尋（HTTP API 使用）。
//
// 每個搜尋以 uuid 識別，不受呼叫端請求 ctx 影響；Close 會取消所有仍在執行的搜尋。
type SearchRuntime struct {
	lab *Seedlab

	mu    sync.RWMutex
	jobs  map[string]*SearchJob
	order []string

	running    atomic.Int32
	maxRunning int
	onDone     func(*SearchJob)
	watchers   sync.WaitGroup

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

// BuildRuntime 進入執行階段（Freeze catalog）並建立 SearchRuntime。maxRunning 為同時執行的上限。
func (l *Seedlab) BuildRuntime(maxRunning int) *SearchRuntime {
	l.Freeze()
	rt := &SearchRuntime{
		lab:        l,
		jobs:       map[string]*SearchJob{},
		maxRunning: max(1, maxRunning),
		done:       make(chan struct{}),
	}
	rt.reason.Store("")
	return rt
}

// OnDone 設定搜尋結束時的回呼（例如寫入 store），需在第一次 Submit 之前設定。
func (rt *SearchRuntime) OnDone(fn func(*SearchJob)) {
	rt.onDone = fn
}

// Lab 回傳所屬的 Seedlab。
func (rt *SearchRuntime) Lab() *Seedlab { return rt.lab }

// Submit 建立並啟動搜尋，立即回傳。
func (rt *SearchRuntime) Submit(job *spec.Job) (*SearchJob, error) {
	select {
	case <-rt.done:
		rt.closed.Store(true)
		return nil, errs.NewFatal("search runtime closed: " + rt.ClosedReason())
	default:
	}
	if n := rt.running.Add(1); int(n) > rt.maxRunning {
		rt.running.Add(-1)
		return nil, errs.NewWarn(fmt.Sprintf("too many running searches (max %d)", rt.maxRunning))
	}
	s, err := rt.lab.NewSearcher(job)
	if err != nil {
		rt.running.Add(-1)
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	sj := &SearchJob{
		ID:       uuid.NewString(),
		Job:      job,
		Searcher: s,
		Created:  time.Now(),
		cancel:   cancel,
	}
	if err := s.Start(ctx); err != nil {
		cancel()
		rt.running.Add(-1)
		return nil, err
	}
	rt.mu.Lock()
	rt.jobs[sj.ID] = sj
	rt.order = append(rt.order, sj.ID)
	rt.mu.Unlock()

	rt.watchers.Add(1)
	go func() {
		defer rt.watchers.Done()
		select {
		case <-s.Done():
		case <-rt.done:
			s.Cancel()
			<-s.Done()
		}
		cancel()
		rt.running.Add(-1)
		if rt.onDone != nil {
			rt.onDone(sj)
		}
	}()
	return sj, nil
}

func (rt *SearchRuntime) Get(id string) (*SearchJob, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	sj, ok := rt.jobs[id]
	return sj, ok
}

// Cancel 要求指定搜尋停止。
func (rt *SearchRuntime) Cancel(id string) error {
	sj, ok := rt.Get(id)
	if !ok {
		return errs.NewWarn(fmt.Sprintf("search %s not found", id))
	}
	sj.Searcher.Cancel()
	sj.cancel()
	return nil
}

// Remove 移除已結束的搜尋。
func (rt *SearchRuntime) Remove(id string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	sj, ok := rt.jobs[id]
	if !ok {
		return errs.NewWarn(fmt.Sprintf("search %s not found", id))
	}
	if !sj.Searcher.Status().Terminal() {
		return errs.NewWarn(fmt.Sprintf("search %s still running", id))
	}
	delete(rt.jobs, id)
	for i, v := range rt.order {
		if v == id {
			rt.order = append(rt.order[:i], rt.order[i+1:]...)
			break
		}
	}
	return nil
}

// List 依建立順序回傳所有搜尋。
func (rt *SearchRuntime) List() []*SearchJob {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]*SearchJob, 0, len(rt.order))
	for _, id := range rt.order {
		out = append(out, rt.jobs[id])
	}
	return out
}

// Running 回傳執行中的搜尋數。
func (rt *SearchRuntime) Running() int { return int(rt.running.Load()) }

// Close 關閉 runtime 並取消所有執行中的搜尋，可重複呼叫。
func (rt *SearchRuntime) Close() {
	rt.closeWithReason("closed")
}

// closeWithReason 只記錄第一次的關閉原因。
func (rt *SearchRuntime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)
	})
}

// Wait 等待所有搜尋結束且 OnDone 回呼完成。
func (rt *SearchRuntime) Wait() {
	rt.watchers.Wait()
}

func (rt *SearchRuntime) Closed() bool {
	return rt.closed.Load()
}

func (rt *SearchRuntime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
