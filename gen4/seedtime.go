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

package gen4

import (
	"time"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
)

// SeedFromTime 依 Gen 4 的公式組出 seed：
//
//	ab   = (month*day + minute + second) & 0xff
//	cd   = hour
//	efgh = delay + (year - 2000)
func SeedFromTime(t time.Time, delay uint32) uint32 {
	ab := (uint32(t.Month())*uint32(t.Day()) + uint32(t.Minute()) + uint32(t.Second())) & 0xff
	return ab<<24 | uint32(t.Hour())<<16 | (delay+uint32(t.Year()-2000))&0xffff
}

// SeedTime 為一個可以得到目標 seed 的日期時間與延遲。
type SeedTime struct {
	Time  time.Time
	Delay uint32
}

// SeedToTime 列出 year 年中所有符合 seed 的 (日期, 時間, 延遲)。
// seed 的小時欄位超過 23 時沒有任何解。
func SeedToTime(seed uint32, year int) []SeedTime {
	ab := seed >> 24
	hour := int(seed >> 16 & 0xff)
	if hour > 23 {
		return nil
	}
	delay := (seed&0xffff - uint32(year-2000)) & 0xffff

	var out []SeedTime
	for month := time.January; month <= time.December; month++ {
		days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for day := 1; day <= days; day++ {
			for minute := 0; minute < 60; minute++ {
				for second := 0; second < 60; second++ {
					if (uint32(month)*uint32(day)+uint32(minute)+uint32(second))&0xff != ab {
						continue
					}
					out = append(out, SeedTime{
						Time:  time.Date(year, month, day, hour, minute, second, 0, time.UTC),
						Delay: delay,
					})
				}
			}
		}
	}
	return out
}

// DelaySpace 為 Gen 4 搜尋的外層空間：ab (0..255) × hours × [minDelay, maxDelay]。
type DelaySpace struct {
	year     int
	hours    []uint32
	minDelay uint32
	delays   uint64
}

// NewDelaySpace 驗證並建立延遲空間。
func NewDelaySpace(year int, hours []int, minDelay, maxDelay uint32) (*DelaySpace, error) {
	if year < 2000 || year > 2099 {
		return nil, errs.Warnf("year %d out of range 2000..2099", year)
	}
	if minDelay > maxDelay || maxDelay > 0xffff {
		return nil, errs.Warnf("invalid delay range %d-%d", minDelay, maxDelay)
	}
	if len(hours) == 0 {
		hours = make([]int, 24)
		for i := range hours {
			hours[i] = i
		}
	}
	s := &DelaySpace{year: year, minDelay: minDelay, delays: uint64(maxDelay-minDelay) + 1}
	for _, h := range hours {
		if h < 0 || h > 23 {
			return nil, errs.Warnf("hour %d out of range", h)
		}
		s.hours = append(s.hours, uint32(h))
	}
	return s, nil
}

func (s *DelaySpace) Len() uint64 {
	return 256 * uint64(len(s.hours)) * s.delays
}

// Seeds 將外層索引以 (ab, hour, delay) 的順序展開，delay 變化最快。
func (s *DelaySpace) Seeds(idx uint64, dst []mech.Origin) []mech.Origin {
	outer := idx
	delay := s.minDelay + uint32(idx%s.delays)
	idx /= s.delays
	hour := s.hours[idx%uint64(len(s.hours))]
	ab := uint32(idx / uint64(len(s.hours)))
	seed := ab<<24 | hour<<16 | (delay+uint32(s.year-2000))&0xffff
	return append(dst, mech.Origin{Seed: uint64(seed), Index: outer, Delay: delay})
}
