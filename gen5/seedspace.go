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

package gen5

import (
	"time"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/seedhash"
)

// SecondsPerPoint 為一個外層索引展開的 seed 數（一分鐘內的每一秒）。
const SecondsPerPoint = 60

// x8 lane 涵蓋 0..55 秒，剩下 56..59 交給 x4。
const x8Seconds = 56

// SeedAt 回傳單一時間點的 seed。
func SeedAt(c seedhash.Console, timer0 uint16, t time.Time, buttons seedhash.Button) uint64 {
	h := seedhash.New(c, timer0)
	h.SetDate(t)
	h.SetTime(t.Hour(), t.Minute(), t.Second())
	h.SetButton(seedhash.KeyWord(buttons))
	return h.Seed()
}

// DateTimeSpace 為 Gen 5 搜尋的外層空間：日期 × 小時 × 分鐘 × timer0 × 按鍵。
//
// 每個外層索引在同一分鐘內展開 60 個 seed。
type DateTimeSpace struct {
	console   seedhash.Console
	start     time.Time
	days      uint64
	hours     []int
	minutes   []int
	timer0Min uint16
	timer0s   uint64
	keys      []seedhash.Keypress
}

// DateTimeConfig 為 DateTimeSpace 的設定。
type DateTimeConfig struct {
	Console    seedhash.Console
	Start, End time.Time
	Hours      []int
	Minutes    []int
	Timer0Min  uint16
	Timer0Max  uint16
	Keypresses []seedhash.Keypress
}

func NewDateTimeSpace(cfg DateTimeConfig) (*DateTimeSpace, error) {
	start := dateOnly(cfg.Start)
	end := dateOnly(cfg.End)
	if start.Year() < 2000 || end.Year() > 2099 {
		return nil, errs.Warnf("date range %s..%s must stay within 2000..2099", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if end.Before(start) {
		return nil, errs.Warnf("end date %s before start date %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if cfg.Timer0Min > cfg.Timer0Max {
		return nil, errs.Warnf("timer0 range %#x-%#x", cfg.Timer0Min, cfg.Timer0Max)
	}
	if len(cfg.Keypresses) == 0 {
		return nil, errs.NewWarn("datetime space needs at least one keypress")
	}
	hours, err := rangeOrAll(cfg.Hours, 24, "hour")
	if err != nil {
		return nil, err
	}
	minutes, err := rangeOrAll(cfg.Minutes, 60, "minute")
	if err != nil {
		return nil, err
	}
	days := uint64(end.Sub(start).Hours()/24) + 1
	return &DateTimeSpace{
		console:   cfg.Console,
		start:     start,
		days:      days,
		hours:     hours,
		minutes:   minutes,
		timer0Min: cfg.Timer0Min,
		timer0s:   uint64(cfg.Timer0Max-cfg.Timer0Min) + 1,
		keys:      cfg.Keypresses,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func rangeOrAll(v []int, n int, field string) ([]int, error) {
	if len(v) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, x := range v {
		if x < 0 || x >= n {
			return nil, errs.Warnf("%s %d out of range", field, x)
		}
	}
	return v, nil
}

func (s *DateTimeSpace) Len() uint64 {
	return s.days * uint64(len(s.hours)) * uint64(len(s.minutes)) * s.timer0s * uint64(len(s.keys))
}

// Seeds 依 (日期, 小時, 分鐘, timer0, 按鍵) 展開外層索引，按鍵變化最快，並回傳該分鐘 60 秒的 seed。
func (s *DateTimeSpace) Seeds(idx uint64, dst []mech.Origin) []mech.Origin {
	outer := idx
	nk := uint64(len(s.keys))
	key := s.keys[idx%nk]
	idx /= nk
	timer0 := s.timer0Min + uint16(idx%s.timer0s)
	idx /= s.timer0s
	minute := s.minutes[idx%uint64(len(s.minutes))]
	idx /= uint64(len(s.minutes))
	hour := s.hours[idx%uint64(len(s.hours))]
	idx /= uint64(len(s.hours))
	day := s.start.AddDate(0, 0, int(idx))

	origin := func(sec int, seed uint64) mech.Origin {
		return mech.Origin{
			Seed:    seed,
			Index:   outer,
			Time:    time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, time.UTC),
			Timer0:  timer0,
			Buttons: uint16(key.Buttons),
		}
	}

	x8 := seedhash.NewX8(s.console, timer0)
	x8.SetDate(day)
	x8.SetButton(key.Word)
	alpha := x8.Precompute()
	for sec := 0; sec < x8Seconds; sec += 8 {
		_ = x8.SetTime(hour, minute, sec)
		for i, seed := range x8.HashSeeds(alpha) {
			dst = append(dst, origin(sec+i, seed))
		}
	}

	x4 := seedhash.NewX4(s.console, timer0)
	x4.SetDate(day)
	x4.SetButton(key.Word)
	_ = x4.SetTime(hour, minute, x8Seconds)
	for i, seed := range x4.HashSeeds(alpha) {
		dst = append(dst, origin(x8Seconds+i, seed))
	}
	return dst
}
