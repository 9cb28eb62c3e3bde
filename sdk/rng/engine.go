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

import (
	"strings"

	"github.com/zintix-labs/seedlab/errs"
)

// Engine 為可依名稱建立、可快照的引擎，供 CLI 與 HTTP 直接輸出原始亂數。
type Engine interface {
	Source32
	Restorable
}

// EngineKinds 為 NewEngine 接受的名稱。
var EngineKinds = []string{"pokerng", "xdrng", "arng", "bwrng", "mt", "sfmt"}

// NewEngine 依名稱建立引擎並先前進 advances 步。32-bit 引擎只取 seed 低 32 bits。
func NewEngine(kind string, seed uint64, advances uint32) (Engine, error) {
	switch strings.ToLower(kind) {
	case "pokerng":
		r := PokeRNG.New(uint32(seed), advances)
		return &r, nil
	case "xdrng":
		r := XDRNG.New(uint32(seed), advances)
		return &r, nil
	case "arng":
		r := ARNG.New(uint32(seed), advances)
		return &r, nil
	case "bwrng":
		r := BWRNG.New(seed, advances)
		return &r, nil
	case "mt":
		return NewMT(uint32(seed), advances), nil
	case "sfmt":
		return NewSFMT(uint32(seed), advances), nil
	}
	return nil, errs.Warnf("unknown rng engine %q", kind)
}

// Draw 自 e 取出 n 個輸出；wide 為 true 且引擎支援 64-bit 時輸出 NextUint64。
func Draw(e Engine, n int, wide bool) []uint64 {
	out := make([]uint64, 0, n)
	s64, ok := e.(Source64)
	for range n {
		if wide && ok {
			out = append(out, s64.NextUint64())
			continue
		}
		out = append(out, uint64(e.NextUint32()))
	}
	return out
}
