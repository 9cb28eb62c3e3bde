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

// BCD 將 0..99 轉為兩位 BCD。
func BCD(v int) uint32 {
	return uint32(v/10)<<4 | uint32(v%10)
}

// DateWord 回傳 w[8]：BCD(yy)<<24 | BCD(mm)<<16 | BCD(dd)<<8 | weekday（週日為 0）。
func DateWord(d time.Time) uint32 {
	return BCD(d.Year()-2000)<<24 | BCD(int(d.Month()))<<16 | BCD(d.Day())<<8 | uint32(d.Weekday())
}

// TimeWord 回傳 w[9]。DS/DSi 在 12 點後的小時字會多帶 0x40。
func TimeWord(hour, minute, second int, ds3 bool) uint32 {
	h := BCD(hour)
	if hour >= 12 && !ds3 {
		h += 0x40
	}
	return h<<24 | BCD(minute)<<16 | BCD(second)<<8
}
