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

package seedhash

import "time"

// HasherX4 一次計算 4 個連續秒數的 seed。
type HasherX4 struct {
	lanes
}

// NewX4 依主機參數與 timer0 建立 x4 hasher。
func NewX4(c Console, timer0 uint16) *HasherX4 {
	return &HasherX4{lanes{base: New(c, timer0), n: 4}}
}

func (h *HasherX4) SetTimer0(timer0 uint16) { h.base.SetTimer0(timer0) }

func (h *HasherX4) SetDate(d time.Time) { h.base.SetDate(d) }

func (h *HasherX4) SetButton(word uint32) { h.base.SetButton(word) }

// SetTime 設定第一個 lane 的時間，其餘 lane 依序加一秒；second+3 不得超過 59。
func (h *HasherX4) SetTime(hour, minute, second int) error {
	return h.setTime(hour, minute, second)
}

// Precompute 與單 lane 相同，所有 lane 共用。
func (h *HasherX4) Precompute() Alpha { return h.base.Precompute() }

// HashSeeds 回傳 4 個 lane 的 seed，依秒數遞增排列。
func (h *HasherX4) HashSeeds(alpha Alpha) [4]uint64 {
	var out [4]uint64
	hashLanes(&h.base.w, h.time9[:4], alpha, out[:])
	return out
}
