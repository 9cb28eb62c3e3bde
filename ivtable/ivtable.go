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

// Package ivtable 建立並讀寫 Gen 5 高 IV 的 seed 查找表。
//
// 表格分三類：Entralink（10 組，IV 起點 22..31）、一般（8 組，起點 0..7）、
// 遊走（6 組，起點 0..5，IV 讀取順序不同）。每組存放已排序的 32-bit MT seed。
package ivtable

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/rng"
)

// 各類別的組數。
const (
	EntralinkBuckets = 10
	NormalBuckets    = 8
	RoamerBuckets    = 6
)

// SeedSpace 為完整 32-bit seed 空間的大小。
const SeedSpace uint64 = 1 << 32

// 每 37 個 MT 輸出涵蓋所有類別的 IV 視窗。
const mtWindow = 37

// 每處理 blockSize 個 seed 檢查一次取消並更新進度。
const blockSize = 1 << 14

// Kind 為表格類別。
type Kind uint8

const (
	Entralink Kind = iota
	Normal
	Roamer
)

func (k Kind) String() string {
	switch k {
	case Entralink:
		return "entralink"
	case Normal:
		return "normal"
	case Roamer:
		return "roamer"
	}
	return "unknown"
}

// Table 為三類查找表。
type Table struct {
	Entralink [EntralinkBuckets][]uint32
	Normal    [NormalBuckets][]uint32
	Roamer    [RoamerBuckets][]uint32
}

// Buckets 回傳指定類別的所有組。
func (t *Table) Buckets(k Kind) [][]uint32 {
	switch k {
	case Entralink:
		return t.Entralink[:]
	case Normal:
		return t.Normal[:]
	case Roamer:
		return t.Roamer[:]
	}
	return nil
}

// Lookup 回傳 seed 在指定類別中第一個出現的組別。
func (t *Table) Lookup(k Kind, seed uint32) (int, bool) {
	for i, b := range t.Buckets(k) {
		if _, ok := slices.BinarySearch(b, seed); ok {
			return i, true
		}
	}
	return 0, false
}

// Len 回傳三類合計的 seed 數。
func (t *Table) Len() int {
	n := 0
	for _, k := range []Kind{Entralink, Normal, Roamer} {
		for _, b := range t.Buckets(k) {
			n += len(b)
		}
	}
	return n
}

// merge 將其他表附加進來；排序延後到 sort。
func (t *Table) merge(o *Table) {
	for _, k := range []Kind{Entralink, Normal, Roamer} {
		dst, src := t.Buckets(k), o.Buckets(k)
		for i := range dst {
			dst[i] = append(dst[i], src[i]...)
		}
	}
}

func (t *Table) sort() {
	for _, k := range []Kind{Entralink, Normal, Roamer} {
		for _, b := range t.Buckets(k) {
			slices.Sort(b)
		}
	}
}

// highIVs：HP、防禦、特防 >= 30，攻擊或特攻其一 >= 30。
func highIVs(hp, atk, def, spa, spd uint32) bool {
	return hp >= 30 && def >= 30 && spd >= 30 && (atk >= 30 || spa >= 30)
}

// classify 依單一 seed 的 37 個 IV roll 將 seed 放入符合的組。
func (t *Table) classify(seed uint32, ivs []uint32) {
	for i := 0; i < EntralinkBuckets; i++ {
		v := ivs[i+22:]
		if highIVs(v[0], v[1], v[2], v[3], v[4]) && (v[5] <= 1 || v[5] >= 30) {
			t.Entralink[i] = append(t.Entralink[i], seed)
		}
	}
	for i := 0; i < NormalBuckets; i++ {
		v := ivs[i:]
		if highIVs(v[0], v[1], v[2], v[3], v[4]) && (v[5] <= 1 || v[5] >= 30) {
			t.Normal[i] = append(t.Normal[i], seed)
		}
	}
	// 遊走的 IV 依 HP、攻擊、防禦、特防、速度、特攻的順序消耗
	for i := 0; i < RoamerBuckets; i++ {
		v := ivs[i+1:]
		if highIVs(v[0], v[1], v[2], v[5], v[3]) && v[4] >= 30 {
			t.Roamer[i] = append(t.Roamer[i], seed)
		}
	}
}

// BuildConfig 為建表設定。Start、End 為半開區間 [Start, End)，End 為 0 時代表完整空間。
type BuildConfig struct {
	Start        uint64
	End          uint64
	Workers      int
	ShowProgress bool
	Progress     io.Writer
}

// Build 平行掃描 seed 區間並回傳已排序的表格。
//
// 每個 worker 負責一段連續區間並寫入本地表，結束後合併一次。ctx 取消時回傳 ctx.Err()。
func Build(ctx context.Context, cfg BuildConfig) (*Table, error) {
	end := cfg.End
	if end == 0 {
		end = SeedSpace
	}
	if end > SeedSpace || cfg.Start >= end {
		return nil, errs.Warnf("ivtable range [%d,%d) invalid", cfg.Start, end)
	}
	window, err := rng.NewMTFast(0, mtWindow, 0, true)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	total := end - cfg.Start
	if uint64(workers) > total {
		workers = int(total)
	}

	bar := pb.New64(int64(total))
	if !cfg.ShowProgress {
		bar.SetWriter(io.Discard)
	} else if cfg.Progress != nil {
		bar.SetWriter(cfg.Progress)
	}
	bar.Start()
	defer bar.Finish()

	locals := make([]Table, workers)
	chunk := total / uint64(workers)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo := cfg.Start + uint64(w)*chunk
		hi := lo + chunk
		if w == workers-1 {
			hi = end
		}
		go func(local *Table, mt rng.MTFast, lo, hi uint64) {
			defer wg.Done()
			scan(ctx, local, &mt, lo, hi, bar)
		}(&locals[w], window, lo, hi)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Table{}
	for i := range locals {
		out.merge(&locals[i])
	}
	out.sort()
	return out, nil
}

func scan(ctx context.Context, t *Table, mt *rng.MTFast, lo, hi uint64, bar *pb.ProgressBar) {
	for base := lo; base < hi; base += blockSize {
		if ctx.Err() != nil {
			return
		}
		stop := min(base+blockSize, hi)
		for s := base; s < stop; s++ {
			mt.Reseed(uint32(s))
			t.classify(uint32(s), mt.Outputs())
		}
		bar.Add64(int64(stop - base))
	}
}
