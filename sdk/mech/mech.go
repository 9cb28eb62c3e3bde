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

// Package mech 定義機制（mechanic）與外層 seed 空間的合約，以及 builder 註冊表。
package mech

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

// Generator 對單一 seed 重播固定範圍的步數，回傳通過篩選的個體（依步數遞增）。
//
// 實作必須是純函式：同一個 seed 永遠得到相同結果，且可被多個 goroutine 同時呼叫。
type Generator interface {
	Generate(seed uint64) []state.State
}

// Origin 描述外層空間中 seed 的來源。
type Origin struct {
	Seed    uint64    `json:"seed"              yaml:"seed"`
	Index   uint64    `json:"index"             yaml:"index"`
	Time    time.Time `json:"time,omitzero"     yaml:"time,omitempty"`
	Delay   uint32    `json:"delay,omitempty"   yaml:"delay,omitempty"`
	Timer0  uint16    `json:"timer0,omitempty"  yaml:"timer0,omitempty"`
	Buttons uint16    `json:"buttons,omitempty" yaml:"buttons,omitempty"`
}

// Match 為搜尋結果：來源與個體。
type Match struct {
	Origin Origin      `json:"origin" yaml:"origin"`
	State  state.State `json:"state"  yaml:"state"`
}

// SeedSpace 為搜尋的外層空間。外層索引範圍為 [0, Len())，
// 一個外層索引可以展開為多個 seed（例如 Gen 5 一分鐘內的 60 秒）。
//
// Seeds 必須可被多個 goroutine 同時呼叫。
type SeedSpace interface {
	Len() uint64
	Seeds(idx uint64, dst []Origin) []Origin
}

// Env 為 builder 可使用的外部資料與設定。Logger 可為 nil；註冊表以它記錄建立結果。
type Env struct {
	Profile  *spec.Profile
	Personal personal.Provider
	Logger   *slog.Logger
}

// logger 回傳 Env 的 logger；未設定時丟棄輸出。
func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Builder 依工作設定建立 Generator；設定錯誤必須在此回報。
type Builder func(job *spec.Job, env Env) (Generator, error)

// SpaceBuilder 依工作設定建立 SeedSpace。
type SpaceBuilder func(job *spec.Job, env Env) (SeedSpace, error)

// Mechanic 為一個可註冊的機制。Space 可為 nil（不支援搜尋）。
type Mechanic struct {
	Key       spec.MechKey
	Generator Builder
	Space     SpaceBuilder
}
