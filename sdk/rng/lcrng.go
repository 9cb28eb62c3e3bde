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

import "encoding/binary"

// LCRNG 為 32-bit 線性同餘產生器：state' = state*mult + add (mod 2^32)。
type LCRNG struct {
	state uint32
	mult  uint32
	add   uint32
}

// Jump32 為預先計算好的跳躍參數，套用一次等於前進固定步數。
type Jump32 struct {
	Mult uint32
	Add  uint32
}

// LCRNGParams 描述一組 LCRNG 常數與其跳躍表。
type LCRNGParams struct {
	Name  string
	Mult  uint32
	Add   uint32
	table [32]Jump32
}

var (
	// PokeRNG 為 Gen 3/4 主要的 LCRNG。
	PokeRNG = newLCRNGParams("poke", 0x41c64e6d, 0x6073)
	// XDRNG 為 GameCube 作品使用的 LCRNG。
	XDRNG = newLCRNGParams("xd", 0x343fd, 0x269ec3)
	// ARNG 為 Gen 4 的輔助 LCRNG。
	ARNG = newLCRNGParams("arng", 0x6c078965, 0x1)
)

// table[i] 為前進 2^i 步的 (mult, add)。
func newLCRNGParams(name string, mult, add uint32) *LCRNGParams {
	p := &LCRNGParams{Name: name, Mult: mult, Add: add}
	m, a := mult, add
	for i := range p.table {
		p.table[i] = Jump32{Mult: m, Add: a}
		a *= m + 1
		m *= m
	}
	return p
}

// Jump 以 O(log n) 組合出前進 n 步的跳躍參數。
func (p *LCRNGParams) Jump(n uint32) Jump32 {
	j := Jump32{Mult: 1, Add: 0}
	for i := 0; n != 0; i, n = i+1, n>>1 {
		if n&1 == 1 {
			t := p.table[i]
			j.Mult *= t.Mult
			j.Add = j.Add*t.Mult + t.Add
		}
	}
	return j
}

// New 以 seed 建立 LCRNG，並先前進 advances 步。
func (p *LCRNGParams) New(seed uint32, advances uint32) LCRNG {
	r := LCRNG{state: seed, mult: p.Mult, add: p.Add}
	r.ApplyJump(p.Jump(advances))
	return r
}

// NewPokeRNG 建立 PokeRNG。
func NewPokeRNG(seed uint32) LCRNG { return PokeRNG.New(seed, 0) }

// NewXDRNG 建立 XDRNG。
func NewXDRNG(seed uint32) LCRNG { return XDRNG.New(seed, 0) }

// NewARNG 建立 ARNG。
func NewARNG(seed uint32) LCRNG { return ARNG.New(seed, 0) }

// Seed 回傳目前狀態。
func (r *LCRNG) Seed() uint32 { return r.state }

// Next 前進一步並回傳新狀態。
func (r *LCRNG) Next() uint32 {
	r.state = r.state*r.mult + r.add
	return r.state
}

// NextUint32 同 Next。
func (r *LCRNG) NextUint32() uint32 { return r.Next() }

// NextUint16 前進一步並回傳高 16 bits。
func (r *LCRNG) NextUint16() uint16 { return uint16(r.Next() >> 16) }

// Advance 前進 n 步（逐步計算，n 大時請用 Jump）。
func (r *LCRNG) Advance(n uint32) {
	for ; n > 0; n-- {
		r.state = r.state*r.mult + r.add
	}
}

// ApplyJump 套用一次跳躍參數。
func (r *LCRNG) ApplyJump(j Jump32) {
	r.state = r.state*j.Mult + j.Add
}

func (r *LCRNG) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 12)
	b = AppendUint32(b, r.state)
	b = AppendUint32(b, r.mult)
	b = AppendUint32(b, r.add)
	return b, nil
}

func (r *LCRNG) Restore(data []byte) error {
	if len(data) != 12 {
		return errSnapshotSize("lcrng", 12, len(data))
	}
	r.state = binary.BigEndian.Uint32(data[0:])
	r.mult = binary.BigEndian.Uint32(data[4:])
	r.add = binary.BigEndian.Uint32(data[8:])
	return nil
}
