package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/state"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"lo"`
	Hi float64 `json:"Hi" yaml:"hi"`
}

// SearchReport 搜尋結果統計報告
type SearchReport struct {
	Summary *SummaryReport `json:"Summary" yaml:"summary"`
	Dist    *DistReport    `json:"Dist"    yaml:"dist"`
	isDone  bool
}

type SummaryReport struct {
	Mechanic    string  `json:"Mechanic"    yaml:"mechanic"`
	Profile     string  `json:"Profile"     yaml:"profile"`
	Status      string  `json:"Status"      yaml:"status"`
	Total       uint64  `json:"Total"       yaml:"total"`
	Examined    uint64  `json:"Examined"    yaml:"examined"`
	Seeds       uint64  `json:"Seeds"       yaml:"seeds"`
	Candidates  uint64  `json:"Candidates"  yaml:"candidates"`
	Found       int     `json:"Found"       yaml:"found"`
	SeedsHit    int     `json:"SeedsHit"    yaml:"seeds_hit"`
	HitRate     float64 `json:"HitRate"     yaml:"hit_rate"`
	HitRateCI   CI      `json:"HitRateCI"   yaml:"hit_rate_ci"`
	Shiny       int     `json:"Shiny"       yaml:"shiny"`
	ElapsedSec  float64 `json:"ElapsedSec"  yaml:"elapsed_sec"`
	SeedsPerSec float64 `json:"SeedsPerSec" yaml:"seeds_per_sec"`
}

// DistReport 結果分布
type DistReport struct {
	AdvanceBucket  []string `json:"AdvanceBucket"  yaml:"advance_bucket"`
	AdvanceCollect []int    `json:"AdvanceCollect" yaml:"advance_collect"`
	NatureCollect  []int    `json:"NatureCollect"  yaml:"nature_collect"`
	GenderCollect  []int    `json:"GenderCollect"  yaml:"gender_collect"`
	ShinyCollect   []int    `json:"ShinyCollect"   yaml:"shiny_collect"`
}

// Meta 為報告的描述欄位與計數。
type Meta struct {
	Mechanic string
	Profile  string
	Status   string
	Total    uint64 // 外層索引總數
	Examined uint64 // 已檢查的外層索引數
	Seeds    uint64 // 已重播的 seed 數
	Advances uint32 // 每個 seed 重播的候選數（max_advances + 1）
	Elapsed  time.Duration
}

// NewSearchReport 由搜尋結果建立報告；matches 可以未排序。
func NewSearchReport(meta Meta, matches []mech.Match) *SearchReport {
	L := len(AdvanceBuckets.Labels())
	d := &DistReport{
		AdvanceBucket:  AdvanceBuckets.Labels(),
		AdvanceCollect: make([]int, L),
		NatureCollect:  make([]int, 25),
		GenderCollect:  make([]int, 3),
		ShinyCollect:   make([]int, 3),
	}
	hit := make(map[uint64]struct{}, len(matches))
	shiny := 0
	for i := range matches {
		s := &matches[i].State
		hit[matches[i].Origin.Seed] = struct{}{}
		d.AdvanceCollect[AdvanceBuckets.Index(s.Advances)]++
		if s.Nature < 25 {
			d.NatureCollect[s.Nature]++
		}
		if s.Gender <= state.Genderless {
			d.GenderCollect[s.Gender]++
		}
		if s.Shiny <= state.Square {
			d.ShinyCollect[s.Shiny]++
		}
		if s.Shiny != state.NotShiny {
			shiny++
		}
	}
	return &SearchReport{
		Summary: &SummaryReport{
			Mechanic:   meta.Mechanic,
			Profile:    meta.Profile,
			Status:     meta.Status,
			Total:      meta.Total,
			Examined:   meta.Examined,
			Seeds:      meta.Seeds,
			Candidates: meta.Seeds * uint64(meta.Advances),
			Found:      len(matches),
			SeedsHit:   len(hit),
			Shiny:      shiny,
			ElapsedSec: meta.Elapsed.Seconds(),
		},
		Dist: d,
	}
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 計算命中率、信賴區間與速率，只會執行一次。
func (s *SearchReport) Done() {
	if s.isDone {
		return
	}
	hat, ci := proportionCICP(uint64(s.Summary.SeedsHit), s.Summary.Seeds, 0.95)
	s.Summary.HitRate = hat
	s.Summary.HitRateCI = ci
	if s.Summary.ElapsedSec > 0 {
		s.Summary.SeedsPerSec = float64(s.Summary.Seeds) / s.Summary.ElapsedSec
	}
	s.isDone = true
}

func (s *SearchReport) WriteWith(w io.Writer, rep SearchReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 以表格印出摘要。
func (s *SearchReport) StdOut(w io.Writer) {
	s.Done()
	keys, msg := s.fmtBasic()
	fmt.Fprint(w, fmtTable("Search Report", keys, msg))
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(sec float64) string {
	p := message.NewPrinter(lang)
	d := time.Duration(sec * float64(time.Second))
	if sec < 60.0 {
		return p.Sprintf("%.2f seconds", sec)
	}
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("%dm %ds", m, int(sec)%60)
	}
	return p.Sprintf("%dh:%dm:%ds", h, m, int(sec)%60)
}

func (s *SearchReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	sm := s.Summary
	basic := map[string]string{
		"Mechanic":    sm.Mechanic,
		"Profile":     sm.Profile,
		"Status":      sm.Status,
		"Examined":    p.Sprintf("%d / %d", sm.Examined, sm.Total),
		"Seeds":       p.Sprintf("%d", sm.Seeds),
		"Candidates":  p.Sprintf("%d", sm.Candidates),
		"Found":       p.Sprintf("%d", sm.Found),
		"Seeds Hit":   p.Sprintf("%d", sm.SeedsHit),
		"Hit Rate":    p.Sprintf("%.4f %%", 100.0*sm.HitRate),
		"Hit 95% CI":  p.Sprintf("[%.4f%%,%.4f%%]", 100.0*sm.HitRateCI.Lo, 100.0*sm.HitRateCI.Hi),
		"Shiny":       p.Sprintf("%d", sm.Shiny),
		"Used":        formatDuration(sm.ElapsedSec),
		"Seeds / sec": p.Sprintf("%.0f", sm.SeedsPerSec),
	}
	keys := []string{"Mechanic", "Profile", "Status", "Examined", "Seeds", "Candidates", "Found", "Seeds Hit", "Hit Rate", "Hit 95% CI", "Shiny", "Used", "Seeds / sec"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := max((totalInner-titleW)/2, 0)
	right := max(totalInner-titleW-left, 0)

	var sb strings.Builder
	sb.WriteString(top)
	fmt.Fprintf(&sb, "|%s%s%s|\n", blank(left), title, blank(right))
	sb.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&sb, "| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
