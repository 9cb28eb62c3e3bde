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

// Package gen4 實作 DPPt / HGSS 的野生（Method J / K）與定點（Method 1）機制，
// 以及 Gen 4 seed 與時間、延遲（delay）之間的換算。
package gen4

import "github.com/zintix-labs/seedlab/sdk/encounter"

// method 為 Method J 與 Method K 對 16-bit 抽值的不同解讀方式。
type method interface {
	name() string
	slot(kind encounter.Kind, v uint16) uint8
	nature(v uint16) uint8
	syncOK(v uint16) bool
	charmOK(v uint16) bool
}

// methodJ 為 DPPt：以除法取值。
type methodJ struct{}

func (methodJ) name() string { return "J" }

func (methodJ) slot(kind encounter.Kind, v uint16) uint8 { return kind.SlotOf(uint8(v / 656)) }

func (methodJ) nature(v uint16) uint8 { return uint8(v / 0xa3e) }

func (methodJ) syncOK(v uint16) bool { return v>>15 == 0 }

func (methodJ) charmOK(v uint16) bool { return v/0x5556 != 0 }

// methodK 為 HGSS：以取餘數取值。
type methodK struct{}

func (methodK) name() string { return "K" }

func (methodK) slot(kind encounter.Kind, v uint16) uint8 { return kind.SlotOf(uint8(v % 100)) }

func (methodK) nature(v uint16) uint8 { return uint8(v % 25) }

func (methodK) syncOK(v uint16) bool { return v%2 == 0 }

func (methodK) charmOK(v uint16) bool { return v%3 != 0 }
