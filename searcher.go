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
	"cmp"
	"context"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/stats"
)

// Status 為 Searcher 的狀態：Idle → Running → Completed | Cancelled。
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	for v := StatusIdle; v <= StatusCancelled; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return errs.Warnf("unknown search status %q", b)
}

// Terminal 判斷是否為終止狀態。
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

// Progress 為搜尋進度的快照。
type Progress struct {
	Examined uint64 `json:"examined" yaml:"examined"` // 已完成的外層索引數
	Seeds    uint64 `json:"seeds"    yaml:"seeds"`    // 已重播的 seed 數
	Found    uint64 `json:"found"    yaml:"found"`
	Total    uint64 `json:"total"    yaml:"total"`
	Status   Status `json:"status"   yaml:"status"`
}

// SearchConfig 為 Searcher 的組成元件。Workers <= 0 時使用 runtime.NumCPU()。
type SearchConfig struct {
	Mechanic     string
	Profile      string
	Generator    mech.Generator
	Space        mech.SeedSpace
	Workers      int
	Advances     uint32 // 每個 seed 的候選數，只用於報告
	ShowProgress bool
	Progress     io.Writer // ShowProgress 時進度條的輸出，nil 為 stderr
	Logger       *slog.Logger
}

// Searcher 把外層空間 [0, Len()) 切成連續區段，交給固定數量的 worker 平行重播。
//
// 結果只會被附加，每筆 Match 在鎖內一次寫入。Progress 不需加鎖。
type Searcher struct {
	cfg     SearchConfig
	total   uint64
	workers int
	log     *slog.Logger

	status   atomic.Int32
	cancel   atomic.Bool
	examined atomic.Uint64
	seeds    atomic.Uint64
	found    atomic.Uint64

	mu      sync.Mutex
	results []mech.Match

	done    chan struct{}
	started atomic.Int64  // unix nano
	elapsed time.Duration // done 關閉後才可讀
}

// NewSearcher 驗證元件並回傳 Idle 狀態的 Searcher。
func NewSearcher(cfg SearchConfig) (*Searcher, error) {
	if cfg.Generator == nil {
		return nil, errs.NewWarn("searcher needs a generator")
	}
	if cfg.Space == nil {
		return nil, errs.NewWarn("searcher needs a seed space")
	}
	if cfg.Workers < 0 {
		return nil, errs.Warnf("invalid workers %d", cfg.Workers)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	total := cfg.Space.Len()
	if total > 0 && uint64(workers) > total {
		workers = int(total)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Searcher{
		cfg:     cfg,
		total:   total,
		workers: max(1, workers),
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// Workers 回傳實際使用的 worker 數。
func (s *Searcher) Workers() int { return s.workers }

// Start 啟動搜尋並立即返回。每個 Searcher 只能 Start 一次。
//
// ctx 取消與呼叫 Cancel 效果相同。
func (s *Searcher) Start(ctx context.Context) error {
	if !s.status.CompareAndSwap(int32(StatusIdle), int32(StatusRunning)) {
		return errs.Warnf("searcher already %s", s.Status())
	}
	start := time.Now()
	s.started.Store(start.UnixNano())
	stop := context.AfterFunc(ctx, s.Cancel)

	bar := pb.New64(int64(s.total))
	switch {
	case !s.cfg.ShowProgress:
		bar.SetWriter(io.Discard)
	case s.cfg.Progress != nil:
		bar.SetWriter(s.cfg.Progress)
	}
	bar.Start()

	s.log.Info("search started",
		slog.String("mechanic", s.cfg.Mechanic),
		slog.String("profile", s.cfg.Profile),
		slog.Uint64("total", s.total),
		slog.Int("workers", s.workers),
	)

	wg := new(sync.WaitGroup)
	wg.Add(s.workers)
	chunk, rem := s.total/uint64(s.workers), s.total%uint64(s.workers)
	for w := 0; w < s.workers; w++ {
		uw := uint64(w)
		lo := uw*chunk + min(uw, rem)
		hi := lo + chunk
		if uw < rem {
			hi++
		}
		go s.work(wg, lo, hi, bar)
	}

	go func() {
		wg.Wait()
		stop()
		bar.Finish()
		s.elapsed = time.Since(start)
		final := StatusCompleted
		if s.cancel.Load() && s.examined.Load() < s.total {
			final = StatusCancelled
		}
		s.status.Store(int32(final))
		s.log.Info("search finished",
			slog.String("mechanic", s.cfg.Mechanic),
			slog.String("profile", s.cfg.Profile),
			slog.String("status", final.String()),
			slog.Uint64("examined", s.examined.Load()),
			slog.Uint64("found", s.found.Load()),
			slog.Duration("elapsed", s.elapsed),
		)
		close(s.done)
	}()
	return nil
}

// work 處理 [lo, hi)，在每個外層索引之間檢查取消旗標。
func (s *Searcher) work(wg *sync.WaitGroup, lo, hi uint64, bar *pb.ProgressBar) {
	defer wg.Done()
	var (
		origins []mech.Origin
		local   []mech.Match
	)
	for idx := lo; idx < hi; idx++ {
		if s.cancel.Load() {
			return
		}
		origins = s.cfg.Space.Seeds(idx, origins[:0])
		local = local[:0]
		for _, o := range origins {
			for _, st := range s.cfg.Generator.Generate(o.Seed) {
				local = append(local, mech.Match{Origin: o, State: st})
			}
		}
		if len(local) > 0 {
			s.mu.Lock()
			s.results = append(s.results, local...)
			s.mu.Unlock()
			s.found.Add(uint64(len(local)))
		}
		s.seeds.Add(uint64(len(origins)))
		s.examined.Add(1)
		bar.Increment()
	}
}

// Cancel 要求所有 worker 在下一個外層索引邊界停止；可重複呼叫。
func (s *Searcher) Cancel() {
	s.cancel.Store(true)
}

// Wait 等待搜尋結束並回傳終止狀態；尚未 Start 時直接回傳 StatusIdle。
func (s *Searcher) Wait() Status {
	if s.Status() == StatusIdle {
		return StatusIdle
	}
	<-s.done
	return s.Status()
}

// Done 在搜尋結束時關閉。
func (s *Searcher) Done() <-chan struct{} { return s.done }

func (s *Searcher) Status() Status { return Status(s.status.Load()) }

func (s *Searcher) Progress() Progress {
	return Progress{
		Examined: s.examined.Load(),
		Seeds:    s.seeds.Load(),
		Found:    s.found.Load(),
		Total:    s.total,
		Status:   s.Status(),
	}
}

// Results 回傳目前結果的複本，順序取決於 worker 完成順序。
func (s *Searcher) Results() []mech.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// SortedResults 回傳依 (seed, advances) 排序的結果複本。
func (s *Searcher) SortedResults() []mech.Match {
	out := s.Results()
	SortMatches(out)
	return out
}

// SortMatches 依 (seed, advances, 外層索引) 排序。
func SortMatches(m []mech.Match) {
	slices.SortFunc(m, func(a, b mech.Match) int {
		return cmp.Or(
			cmp.Compare(a.Origin.Seed, b.Origin.Seed),
			cmp.Compare(a.State.Advances, b.State.Advances),
			cmp.Compare(a.Origin.Index, b.Origin.Index),
		)
	})
}

// Elapsed 回傳已經過的時間；結束後固定為總用時。
func (s *Searcher) Elapsed() time.Duration {
	switch s.Status() {
	case StatusIdle:
		return 0
	case StatusRunning:
		n := s.started.Load()
		if n == 0 {
			return 0
		}
		return time.Since(time.Unix(0, n))
	}
	<-s.done
	return s.elapsed
}

// Report 以目前的結果建立統計報告。
func (s *Searcher) Report() *stats.SearchReport {
	p := s.Progress()
	r := stats.NewSearchReport(stats.Meta{
		Mechanic: s.cfg.Mechanic,
		Profile:  s.cfg.Profile,
		Status:   p.Status.String(),
		Total:    p.Total,
		Examined: p.Examined,
		Seeds:    p.Seeds,
		Advances: s.cfg.Advances,
		Elapsed:  s.Elapsed(),
	}, s.Results())
	r.Done()
	return r
}
