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

// Package seedhash 實作 Gen 5 以 SHA-1 從主機環境推導初始 seed 的流程。
//
// 訊息為 13 個 32-bit 字（加上固定 padding）：
//
//	w[0..4]  nazo（依版本與語系固定）
//	w[5]     bswap(vcount<<16 | timer0)
//	w[6]     mac & 0xffff
//	w[7]     (mac>>16) ^ (vframe<<24) ^ gxstat
//	w[8]     BCD 日期 yy<<24 | mm<<16 | dd<<8 | weekday
//	w[9]     BCD 時間 hh<<24 | mi<<16 | ss<<8（非 3DS 且下午時 hh += 0x40）
//	w[12]    bswap(0x2fff ^ buttons)
//
// 搜尋時只有 w[9] 隨秒數變動，因此 Precompute 先算完與時間無關的 round 0..8，
// HashSeed 再從該中間狀態補完剩餘 round。
package seedhash

import (
	"math/bits"
	"time"
)

// DSType 為主機種類。
type DSType uint8

const (
	DS DSType = iota
	DSi
	DS3
)

// Console 為推導 seed 所需的主機參數。
type Console struct {
	Nazo   [5]uint32
	VCount uint8
	GxStat uint32
	VFrame uint8
	MAC    uint64
	DSType DSType
}

// Alpha 為 round 0..8 之後的中間狀態。
type Alpha struct {
	A, B, C, D, E uint32
}

const (
	h0 = 0x67452301
	h1 = 0xefcdab89
	h2 = 0x98badcfe
	h3 = 0x10325476
	h4 = 0xc3d2e1f0
)

// 與時間無關的 round 數：w[0..8]。
const precomputeRounds = 9

// SHA1 為單一 lane 的 seed hasher。非並行安全。
type SHA1 struct {
	w   [16]uint32
	ds3 bool
}

// New 依主機參數與 timer0 建立 hasher。
func New(c Console, timer0 uint16) *SHA1 {
	h := &SHA1{ds3: c.DSType == DS3}
	h.w = baseMessage(c, timer0)
	return h
}

func baseMessage(c Console, timer0 uint16) [16]uint32 {
	var w [16]uint32
	copy(w[:5], c.Nazo[:])
	w[5] = bits.ReverseBytes32(uint32(c.VCount)<<16 | uint32(timer0))
	w[6] = uint32(c.MAC & 0xffff)
	w[7] = uint32(c.MAC>>16) ^ uint32(c.VFrame)<<24 ^ c.GxStat
	w[12] = bits.ReverseBytes32(0x2fff)
	w[13] = 0x80000000
	w[15] = 0x1a0
	return w
}

// SetTimer0 更新 timer0（vcount 不變）。
func (h *SHA1) SetTimer0(timer0 uint16) {
	h.w[5] = bits.ReverseBytes32(bits.ReverseBytes32(h.w[5])&0xffff0000 | uint32(timer0))
}

// SetDate 設定日期字。
func (h *SHA1) SetDate(d time.Time) { h.w[8] = DateWord(d) }

// SetTime 設定時間字。
func (h *SHA1) SetTime(hour, minute, second int) {
	h.w[9] = TimeWord(hour, minute, second, h.ds3)
}

// SetButton 設定按鍵字（由 KeyWord 產生）。
func (h *SHA1) SetButton(word uint32) { h.w[12] = word }

// Words 回傳目前的 16 字訊息區塊。
func (h *SHA1) Words() [16]uint32 { return h.w }

// Precompute 計算與時間無關的前段 round。
func (h *SHA1) Precompute() Alpha {
	a, b, c, d, e := uint32(h0), uint32(h1), uint32(h2), uint32(h3), uint32(h4)
	for t := 0; t < precomputeRounds; t++ {
		tmp := bits.RotateLeft32(a, 5) + (b&c | ^b&d) + e + 0x5a827999 + h.w[t]
		e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, tmp
	}
	return Alpha{A: a, B: b, C: c, D: d, E: e}
}

// HashSeed 自中間狀態完成壓縮並回傳 64-bit seed。
func (h *SHA1) HashSeed(alpha Alpha) uint64 {
	var w [80]uint32
	copy(w[:16], h.w[:])
	expand(&w)
	return finish(&w, alpha)
}

// Seed 為 Precompute + HashSeed 的便捷方法。
func (h *SHA1) Seed() uint64 { return h.HashSeed(h.Precompute()) }

func expand(w *[80]uint32) {
	for t := 16; t < 80; t++ {
		w[t] = bits.RotateLeft32(w[t-3]^w[t-8]^w[t-14]^w[t-16], 1)
	}
}

func finish(w *[80]uint32, alpha Alpha) uint64 {
	a, b, c, d, e := alpha.A, alpha.B, alpha.C, alpha.D, alpha.E
	for t := precomputeRounds; t < 80; t++ {
		var f, k uint32
		switch {
		case t < 20:
			f, k = b&c|^b&d, 0x5a827999
		case t < 40:
			f, k = b^c^d, 0x6ed9eba1
		case t < 60:
			f, k = b&c|b&d|c&d, 0x8f1bbcdc
		default:
			f, k = b^c^d, 0xca62c1d6
		}
		tmp := bits.RotateLeft32(a, 5) + f + e + k + w[t]
		e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, tmp
	}
	return seedFromDigest(a+h0, b+h1)
}

func seedFromDigest(a, b uint32) uint64 {
	return uint64(bits.ReverseBytes32(b))<<32 | uint64(bits.ReverseBytes32(a))
}
