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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/state"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

func checkFormat(f string) error {
	switch f {
	case "text", "json", "yaml":
		return nil
	}
	return errs.Warnf("unknown output format %q (text|json|yaml)", f)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return checkFormat(format)
}

func countLine(w io.Writer, title string, n int) {
	message.NewPrinter(language.English).Fprintf(w, "%s: %d\n", title, n)
}

var shinyMark = [...]string{state.NotShiny: "-", state.Star: "★", state.Square: "◆"}
var genderMark = [...]string{state.Male: "♂", state.Female: "♀", state.Genderless: "-"}

var stateHeader = []string{"Adv", "PID", "Shiny", "Nature", "Ability", "Gender", "IVs", "Hidden Power", "Lv", "Slot"}

func stateRow(s state.State) []string {
	ivs := make([]string, len(s.IVs))
	for i, v := range s.IVs {
		ivs[i] = fmt.Sprint(v)
	}
	lv, slot := "-", "-"
	if s.Level > 0 {
		lv = fmt.Sprint(s.Level)
		slot = fmt.Sprint(s.EncounterSlot)
	}
	return []string{
		fmt.Sprint(s.Advances),
		fmt.Sprintf("%08X", s.PID),
		mark(shinyMark[:], s.Shiny),
		state.NatureName(s.Nature),
		fmt.Sprint(s.Ability),
		mark(genderMark[:], s.Gender),
		strings.Join(ivs, "/"),
		fmt.Sprintf("%s %d", state.HiddenPowerName(s.HiddenPower), s.HiddenPowerStrength),
		lv,
		slot,
	}
}

func mark(tab []string, i uint8) string {
	if int(i) < len(tab) {
		return tab[i]
	}
	return "?"
}

func writeStates(w io.Writer, states []state.State) {
	rows := make([][]string, 0, len(states))
	for _, s := range states {
		rows = append(rows, stateRow(s))
	}
	writeTable(w, stateHeader, rows)
}

func writeMatches(w io.Writer, ms []mech.Match) {
	header := append([]string{"Seed", "Origin"}, stateHeader...)
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, append([]string{fmt.Sprintf("%X", m.Origin.Seed), origin(m.Origin)}, stateRow(m.State)...))
	}
	writeTable(w, header, rows)
}

func origin(o mech.Origin) string {
	switch {
	case o.Delay > 0:
		return fmt.Sprintf("delay %d", o.Delay)
	case !o.Time.IsZero():
		return fmt.Sprintf("%s t0 %X", o.Time.Format("2006-01-02 15:04:05"), o.Timer0)
	}
	return fmt.Sprint(o.Index)
}

// writeTable 以顯示寬度對齊欄位（★ ♀ 等符號寬度因終端而異）。
func writeTable(w io.Writer, header []string, rows [][]string) {
	width := make([]int, len(header))
	for i, h := range header {
		width[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r {
			width[i] = max(width[i], runewidth.StringWidth(c))
		}
	}
	line := func(cells []string) {
		var b strings.Builder
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillRight(c, width[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
	line(header)
	for _, r := range rows {
		line(r)
	}
}
