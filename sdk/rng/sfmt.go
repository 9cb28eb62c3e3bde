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
	sfmtPos1   = 122 * 4
	sfmtSR1    = 11
	sfmtSL1    = 18
	sfmtParity = 0x13c9e684
)

var sfmtMask = [4]uint32{0xdfffffef, 0xddfecb7f, 0xbffaffff, 0xbffffff6}

// SFMT 為 SFMT-19937（32-bit 字、每 4 字一組 lane）。
//
// NextUint64 連續取兩個字，第一個字為低 32 bits。
type SFMT struct {
	state [mtN]uint32
	index int
}

// NewSFMT 以 seed 初始化，並丟棄前 advances 個 64-bit 輸出。
func NewSFMT(seed uint32, advances uint32) *SFMT {
	s := &SFMT{}
	mtInit(s.state[:], seed)

	inner := (s.state[0] & 1) ^ (s.state[3] & sfmtParity)
	for sh := 16; sh > 0; sh >>= 1 {
		inner ^= inner >> sh
	}
	s.state[0] ^= ^inner & 1

	s.index = mtN
	s.Advance(advances)
	return s
}

func (s *SFMT) shuffle() {
	st := &s.state
	c := [4]uint32{st[616], st[617], st[618], st[619]}
	d := [4]uint32{st[620], st[621], st[622], st[623]}
	for i := 0; i < mtN; i += 4 {
		var bi int
		if i < mtN-sfmtPos1 {
			bi = i + sfmtPos1
		} else {
			bi = i - (mtN - sfmtPos1)
		}
		a := (*[4]uint32)(st[i : i+4])
		b := (*[4]uint32)(st[bi : bi+4])

		// 128-bit 左移 / 右移 1 byte
		x0 := a[0] << 8
		x1 := a[1]<<8 | a[0]>>24
		x2 := a[2]<<8 | a[1]>>24
		x3 := a[3]<<8 | a[2]>>24
		y0 := c[0]>>8 | c[1]<<24
		y1 := c[1]>>8 | c[2]<<24
		y2 := c[2]>>8 | c[3]<<24
		y3 := c[3] >> 8

		a[0] ^= x0 ^ ((b[0] >> sfmtSR1) & sfmtMask[0]) ^ y0 ^ (d[0] << sfmtSL1)
		a[1] ^= x1 ^ ((b[1] >> sfmtSR1) & sfmtMask[1]) ^ y1 ^ (d[1] << sfmtSL1)
		a[2] ^= x2 ^ ((b[2] >> sfmtSR1) & sfmtMask[2]) ^ y2 ^ (d[2] << sfmtSL1)
		a[3] ^= x3 ^ ((b[3] >> sfmtSR1) & sfmtMask[3]) ^ y3 ^ (d[3] << sfmtSL1)

		c = d
		d = *a
	}
}

// NextUint32 回傳下一個字。
func (s *SFMT) NextUint32() uint32 {
	if s.index >= mtN {
		s.shuffle()
		s.index -= mtN
	}
	v := s.state[s.index]
	s.index++
	return v
}

// NextUint64 回傳兩個連續字組成的 64-bit 值。
func (s *SFMT) NextUint64() uint64 {
	lo := uint64(s.NextUint32())
	return lo | uint64(s.NextUint32())<<32
}

// Advance 丟棄 n 個 64-bit 輸出。
func (s *SFMT) Advance(n uint32) {
	idx := uint64(s.index) + 2*uint64(n)
	for idx >= mtN {
		s.shuffle()
		idx -= mtN
	}
	s.index = int(idx)
}

func (s *SFMT) Clone() *SFMT {
	c := *s
	return &c
}

func (s *SFMT) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 4+4*mtN)
	b = AppendUint32(b, uint32(s.index))
	for _, w := range s.state {
		b = AppendUint32(b, w)
	}
	return b, nil
}

func (s *SFMT) Restore(data []byte) error {
	if len(data) != 4+4*mtN {
		return errSnapshotSize("sfmt", 4+4*mtN, len(data))
	}
	idx := binary.BigEndian.Uint32(data)
	if idx > mtN {
		return errSnapshotSize("sfmt index", mtN, int(idx))
	}
	s.index = int(idx)
	for i := range s.state {
		s.state[i] = binary.BigEndian.Uint32(data[4+4*i:])
	}
	return nil
}
