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

package rng

import "github.com/zintix-labs/seedlab/errs"

// MTFastMaxSize 為 MTFast 可產生的最大字數；超過後第 i+397 個字需要已 twist 過的值。
const MTFastMaxSize = mtN - mtM

// MTFast 只計算前 size 個 MT 輸出，用於每個 seed 只需少量輸出的場景（例如 IV）。
//
// 只初始化 size+397 個字、只 twist size 次；前 advances 個輸出會被丟棄。
// fast 為 true 時只保留 tempered 值的最高 5 bits（跳過不影響高位的 >>18）。
// 視窗參數只在 NewMTFast 驗證一次，之後以 Reseed 對每個 seed 重算；值複製即可給各 goroutine 使用。
type MTFast struct {
	out      [MTFastMaxSize]uint32
	n        int
	index    int
	size     int
	advances int
	fast     bool
}

// NewMTFast 驗證參數後建立 MTFast。
func NewMTFast(seed uint32, size, advances int, fast bool) (MTFast, error) {
	if size <= 0 || size > MTFastMaxSize {
		return MTFast{}, errs.Warnf("mtfast size %d out of range [1,%d]", size, MTFastMaxSize)
	}
	if advances < 0 || advances >= size {
		return MTFast{}, errs.Warnf("mtfast advances %d out of range [0,%d)", advances, size)
	}
	m := MTFast{size: size, advances: advances, fast: fast}
	m.Reseed(seed)
	return m, nil
}

// Reseed 以相同視窗重算 seed 的輸出並重設游標。零值 MTFast 沒有輸出。
func (m *MTFast) Reseed(seed uint32) {
	m.n = len(fillMTFast(m.out[:0], seed, m.size, m.advances, m.fast))
	m.index = 0
}

// fillMTFast 將 size-advances 個輸出附加到 dst；size 不得超過 MTFastMaxSize。
func fillMTFast(dst []uint32, seed uint32, size, advances int, fast bool) []uint32 {
	var st [mtN]uint32
	mtInit(st[:size+mtM], seed)
	for i := 0; i < size; i++ {
		y := (st[i] & mtUpperMask) | (st[i+1] & mtLowerMask)
		v := st[i+mtM] ^ (y >> 1)
		if y&1 == 1 {
			v ^= mtMatrixA
		}
		if i < advances {
			continue
		}
		v ^= v >> 11
		v ^= (v << 7) & 0x9d2c5680
		v ^= (v << 15) & 0xefc60000
		if fast {
			dst = append(dst, v>>27)
		} else {
			dst = append(dst, v^(v>>18))
		}
	}
	return dst
}

// Len 回傳可讀取的輸出數。
func (m *MTFast) Len() int { return m.n }

// Outputs 回傳全部輸出（唯讀，下次 Reseed 會覆寫）。
func (m *MTFast) Outputs() []uint32 { return m.out[:m.n] }

// NextUint32 回傳下一個輸出；超出 Len 後固定回傳 0。
func (m *MTFast) NextUint32() uint32 {
	if m.index >= m.n {
		return 0
	}
	v := m.out[m.index]
	m.index++
	return v
}

// IVs 依序讀取 6 個輸出作為 IV；fast 視窗下即為 Gen 5 的 MT IV。
func (m *MTFast) IVs() [6]uint8 {
	var ivs [6]uint8
	for i := range ivs {
		ivs[i] = uint8(m.NextUint32())
	}
	return ivs
}

func (m *MTFast) Advance(n uint32) { m.index += int(min(n, uint32(MTFastMaxSize))) }
