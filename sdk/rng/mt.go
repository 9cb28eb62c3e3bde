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

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtInitMult  = 0x6c078965
)

// MT 為標準 MT19937。
type MT struct {
	state [mtN]uint32
	index int
}

// NewMT 以 seed 初始化，並丟棄前 advances 個輸出。
func NewMT(seed uint32, advances uint32) *MT {
	m := &MT{}
	mtInit(m.state[:], seed)
	m.index = mtN
	m.Advance(advances)
	return m
}

func mtInit(st []uint32, seed uint32) {
	st[0] = seed
	for i := 1; i < len(st); i++ {
		p := st[i-1]
		st[i] = mtInitMult*(p^(p>>30)) + uint32(i)
	}
}

func mtTemper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (m *MT) shuffle() {
	st := &m.state
	for i := 0; i < mtN; i++ {
		y := (st[i] & mtUpperMask) | (st[(i+1)%mtN] & mtLowerMask)
		v := st[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 == 1 {
			v ^= mtMatrixA
		}
		st[i] = v
	}
}

// NextUint32 回傳下一個 tempered 輸出。
func (m *MT) NextUint32() uint32 {
	if m.index >= mtN {
		m.shuffle()
		m.index = 0
	}
	y := m.state[m.index]
	m.index++
	return mtTemper(y)
}

// NextUint16 回傳下一個輸出的高 16 bits。
func (m *MT) NextUint16() uint16 { return uint16(m.NextUint32() >> 16) }

// Advance 丟棄 n 個輸出，只在跨越區塊時重新 shuffle。
func (m *MT) Advance(n uint32) {
	idx := uint64(m.index) + uint64(n)
	for idx >= mtN {
		m.shuffle()
		idx -= mtN
	}
	m.index = int(idx)
}

// Clone 回傳獨立副本。
func (m *MT) Clone() *MT {
	c := *m
	return &c
}

func (m *MT) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 4+4*mtN)
	b = AppendUint32(b, uint32(m.index))
	for _, w := range m.state {
		b = AppendUint32(b, w)
	}
	return b, nil
}

func (m *MT) Restore(data []byte) error {
	if len(data) != 4+4*mtN {
		return errSnapshotSize("mt", 4+4*mtN, len(data))
	}
	idx := binary.BigEndian.Uint32(data)
	if idx > mtN {
		return errSnapshotSize("mt index", mtN, int(idx))
	}
	m.index = int(idx)
	for i := range m.state {
		m.state[i] = binary.BigEndian.Uint32(data[4+4*i:])
	}
	return nil
}
