package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/seedhash"
)

// Version 為遊戲版本。
type Version string

const (
	Diamond    Version = "diamond"
	Pearl      Version = "pearl"
	Platinum   Version = "platinum"
	HeartGold  Version = "heartgold"
	SoulSilver Version = "soulsilver"
	Black      Version = "black"
	White      Version = "white"
	Black2     Version = "black2"
	White2     Version = "white2"
)

var versionGen = map[Version]int{
	Diamond: 4, Pearl: 4, Platinum: 4, HeartGold: 4, SoulSilver: 4,
	Black: 5, White: 5, Black2: 5, White2: 5,
}

// Generation 回傳版本所屬世代，未知版本回傳 0。
func (v Version) Generation() int { return versionGen[v] }

// IsHGSS 判斷是否為 HGSS（Method K）。
func (v Version) IsHGSS() bool { return v == HeartGold || v == SoulSilver }

// IsBW2 判斷是否為 BW2。
func (v Version) IsBW2() bool { return v == Black2 || v == White2 }

// Profile 為一位玩家的存檔與主機設定。Gen 5 欄位只在 Gen 5 版本使用。
type Profile struct {
	Name    string  `yaml:"name"        json:"name"`
	Version Version `yaml:"version"     json:"version"`
	TID     uint16  `yaml:"tid"         json:"tid"`
	SID     uint16  `yaml:"sid"         json:"sid"`

	MAC        uint64    `yaml:"mac"         json:"mac"`
	Nazo       [5]uint32 `yaml:"nazo"        json:"nazo"`
	VCount     uint8     `yaml:"vcount"      json:"vcount"`
	GxStat     uint32    `yaml:"gxstat"      json:"gxstat"`
	VFrame     uint8     `yaml:"vframe"      json:"vframe"`
	Timer0Min  uint16    `yaml:"timer0_min"  json:"timer0_min"`
	Timer0Max  uint16    `yaml:"timer0_max"  json:"timer0_max"`
	DSTypeStr  string    `yaml:"ds_type"     json:"ds_type"`
	Keypresses []int     `yaml:"keypresses"  json:"keypresses"`
	SkipLR     bool      `yaml:"skip_lr"     json:"skip_lr"`
	ShinyCharm bool      `yaml:"shiny_charm" json:"shiny_charm"`

	dsType seedhash.DSType
}

// TSV 回傳 tid ^ sid。
func (p *Profile) TSV() uint16 { return p.TID ^ p.SID }

// Generation 回傳版本世代。
func (p *Profile) Generation() int { return p.Version.Generation() }

// Console 回傳推導 seed 所需的主機參數。
func (p *Profile) Console() seedhash.Console {
	return seedhash.Console{
		Nazo:   p.Nazo,
		VCount: p.VCount,
		GxStat: p.GxStat,
		VFrame: p.VFrame,
		MAC:    p.MAC,
		DSType: p.dsType,
	}
}

func (p *Profile) init() error {
	p.Version = Version(strings.ToLower(string(p.Version)))
	switch strings.ToLower(p.DSTypeStr) {
	case "", "ds":
		p.dsType = seedhash.DS
	case "dsi":
		p.dsType = seedhash.DSi
	case "3ds":
		p.dsType = seedhash.DS3
	default:
		return errs.NewFatal(fmt.Sprintf("profile %s err:unknown ds_type %q", p.Name, p.DSTypeStr))
	}
	if p.Generation() == 5 && len(p.Keypresses) == 0 {
		p.Keypresses = []int{0}
	}
	return p.valid()
}

func (p *Profile) valid() error {
	if p.Name == "" {
		return errs.NewFatal("profile err:empty name")
	}
	if p.Generation() == 0 {
		return errs.NewFatal(fmt.Sprintf("profile %s err:unknown version %q", p.Name, p.Version))
	}
	if p.Generation() != 5 {
		return nil
	}
	if p.Timer0Min > p.Timer0Max {
		return errs.NewFatal(fmt.Sprintf("profile %s err:timer0_min %#x > timer0_max %#x", p.Name, p.Timer0Min, p.Timer0Max))
	}
	if p.MAC>>48 != 0 {
		return errs.NewFatal(fmt.Sprintf("profile %s err:mac %#x exceeds 48 bits", p.Name, p.MAC))
	}
	if p.Nazo == [5]uint32{} {
		return errs.NewFatal(fmt.Sprintf("profile %s err:missing nazo", p.Name))
	}
	for _, k := range p.Keypresses {
		if k < 0 || k > 3 {
			return errs.NewFatal(fmt.Sprintf("profile %s err:keypress count %d not in 0..3", p.Name, k))
		}
	}
	return nil
}
