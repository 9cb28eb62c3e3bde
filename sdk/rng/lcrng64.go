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

// LCRNG64 為 64-bit 線性同餘產生器（BW/BW2 使用）。
type LCRNG64 struct {
	state uint64
	mult  uint64
	add   uint64
}

// Jump64 為 64-bit 版本的跳躍參數。
type Jump64 struct {
	Mult uint64
	Add  uint64
}

// LCRNG64Params 描述一組 64-bit 常數與其跳躍表。
type LCRNG64Params struct {
	Name  string
	Mult  uint64
	Add   uint64
	table [64]Jump64
}

// BWRNG 為 Gen 5 的 64-bit LCRNG。
var BWRNG = newLCRNG64Params("bw", 0x5d588b656c078965, 0x269ec3)

func newLCRNG64Params(name string, mult, add uint64) *LCRNG64Params {
	p := &LCRNG64Params{Name: name, Mult: mult, Add: add}
	m, a := mult, add
	for i := range p.table {
		p.table[i] = Jump64{Mult: m, Add: a}
		a *= m + 1
		m *= m
	}
	return p
}

// Jump 組合出前進 n 步的跳躍參數。
func (p *LCRNG64Params) Jump(n uint32) Jump64 {
	j := Jump64{Mult: 1, Add: 0}
	for i := 0; n != 0; i, n = i+1, n>>1 {
		if n&1 == 1 {
			t := p.table[i]
			j.Mult *= t.Mult
			j.Add = j.Add*t.Mult + t.Add
		}
	}
	return j
}

// New 以 seed 建立引擎，並先前進 advances 步。
func (p *LCRNG64Params) New(seed uint64, advances uint32) LCRNG64 {
	r := LCRNG64{state: seed, mult: p.Mult, add: p.Add}
	r.ApplyJump(p.Jump(advances))
	return r
}

// NewBWRNG 建立 BWRNG 並前進 advances 步。
func NewBWRNG(seed uint64, advances uint32) LCRNG64 { return BWRNG.New(seed, advances) }

func (r *LCRNG64) Seed() uint64 { return r.state }

func (r *LCRNG64) Next() uint64 {
	r.state = r.state*r.mult + r.add
	return r.state
}

// NextUint64 同 Next。
func (r *LCRNG64) NextUint64() uint64 { return r.Next() }

// NextUint32 回傳新狀態的高 32 bits。
func (r *LCRNG64) NextUint32() uint32 { return uint32(r.Next() >> 32) }

// NextUint32N 回傳 [0,max) 的值：((state>>32) * max) >> 32。
func (r *LCRNG64) NextUint32N(max uint32) uint32 {
	return uint32(((r.Next() >> 32) * uint64(max)) >> 32)
}

func (r *LCRNG64) Advance(n uint32) {
	for ; n > 0; n-- {
		r.state = r.state*r.mult + r.add
	}
}

func (r *LCRNG64) ApplyJump(j Jump64) {
	r.state = r.state*j.Mult + j.Add
}

func (r *LCRNG64) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 24)
	b = AppendUint64(b, r.state)
	b = AppendUint64(b, r.mult)
	b = AppendUint64(b, r.add)
	return b, nil
}

func (r *LCRNG64) Restore(data []byte) error {
	if len(data) != 24 {
		return errSnapshotSize("lcrng64", 24, len(data))
	}
	r.state = binary.BigEndian.Uint64(data[0:])
	r.mult = binary.BigEndian.Uint64(data[8:])
	r.add = binary.BigEndian.Uint64(data[16:])
	return nil
}
