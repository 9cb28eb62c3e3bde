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

import (
	"math/bits"
	"strings"
)

// Button 為 DS 按鍵位元。
type Button uint16

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonR
	ButtonL
	ButtonX
	ButtonY
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down", "R", "L", "X", "Y"}

const buttonCount = len(buttonNames)

// String 以 "+" 串接按鍵名稱，無按鍵時回傳 "None"。
func (b Button) String() string {
	if b == 0 {
		return "None"
	}
	var parts []string
	for i := 0; i < buttonCount; i++ {
		if b&(1<<i) != 0 {
			parts = append(parts, buttonNames[i])
		}
	}
	return strings.Join(parts, "+")
}

// KeyWord 回傳按鍵組合對應的 w[12]。
func KeyWord(b Button) uint32 {
	return bits.ReverseBytes32(0x2fff ^ uint32(b))
}

// Keypress 為一組可能的按鍵輸入。
type Keypress struct {
	Buttons Button
	Word    uint32
}

// Keypresses 列出按下 counts 中指定數量（0..3）按鍵的所有組合。
//
// 上下、左右同時按下的組合不可能出現；skipLR 時排除 L 與 R。
// 輸出依按鍵數、再依按鍵位元的字典序排列。
func Keypresses(counts []int, skipLR bool) []Keypress {
	var want [4]bool
	for _, c := range counts {
		if c >= 0 && c < len(want) {
			want[c] = true
		}
	}
	var out []Keypress
	add := func(b Button) {
		if !validCombo(b, skipLR) {
			return
		}
		out = append(out, Keypress{Buttons: b, Word: KeyWord(b)})
	}
	if want[0] {
		add(0)
	}
	if want[1] {
		for i := 0; i < buttonCount; i++ {
			add(1 << i)
		}
	}
	if want[2] {
		for i := 0; i < buttonCount; i++ {
			for j := i + 1; j < buttonCount; j++ {
				add(1<<i | 1<<j)
			}
		}
	}
	if want[3] {
		for i := 0; i < buttonCount; i++ {
			for j := i + 1; j < buttonCount; j++ {
				for k := j + 1; k < buttonCount; k++ {
					add(1<<i | 1<<j | 1<<k)
				}
			}
		}
	}
	return out
}

func validCombo(b Button, skipLR bool) bool {
	if b&(ButtonUp|ButtonDown) == ButtonUp|ButtonDown {
		return false
	}
	if b&(ButtonLeft|ButtonRight) == ButtonLeft|ButtonRight {
		return false
	}
	if skipLR && b&(ButtonL|ButtonR) != 0 {
		return false
	}
	return true
}
