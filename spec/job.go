package spec

import (
	"fmt"

	"github.com/zintix-labs/seedlab/errs"
)

// MechKey 為機制名稱，對應到 mech.Registry 中註冊的 builder。
type MechKey string

const (
	MechGen4Wild   MechKey = "gen4.wild"
	MechGen4Static MechKey = "gen4.static"
	MechGen5Egg    MechKey = "gen5.egg"
)

// MaxAdvancesLimit 為單一 seed 可重播的最大步數。
const MaxAdvancesLimit = 10_000_000

// Job 描述一次產生（generate）或搜尋（search）。
type Job struct {
	Profile         string         `yaml:"profile"          json:"profile"`
	Mechanic        MechKey        `yaml:"mechanic"         json:"mechanic"`
	InitialAdvances uint32         `yaml:"initial_advances" json:"initial_advances"`
	MaxAdvances     uint32         `yaml:"max_advances"     json:"max_advances"`
	Offset          uint32         `yaml:"offset"           json:"offset"`
	Filter          FilterSetting  `yaml:"filter"           json:"filter"`
	Params          map[string]any `yaml:"params"           json:"params"`
	Search          SearchSetting  `yaml:"search"           json:"search"`
}

// SearchSetting 為搜尋專用設定；Space 由各機制的 SeedSpace builder 嚴格解碼。
type SearchSetting struct {
	Workers      int            `yaml:"workers"       json:"workers"`
	ShowProgress bool           `yaml:"show_progress" json:"show_progress"`
	Space        map[string]any `yaml:"space"         json:"space"`
}

func (j *Job) init() error {
	if err := j.Filter.init(); err != nil {
		return err
	}
	return j.valid()
}

func (j *Job) valid() error {
	if j.Mechanic == "" {
		return errs.NewWarn("job err:empty mechanic")
	}
	if j.MaxAdvances > MaxAdvancesLimit {
		return errs.NewWarn(fmt.Sprintf("job err:max_advances %d exceeds %d", j.MaxAdvances, MaxAdvancesLimit))
	}
	if uint64(j.InitialAdvances)+uint64(j.MaxAdvances)+uint64(j.Offset) > 1<<32-1 {
		return errs.NewWarn("job err:initial_advances + max_advances + offset overflows 32 bits")
	}
	if j.Search.Workers < 0 {
		return errs.NewWarn(fmt.Sprintf("job err:invalid workers %d", j.Search.Workers))
	}
	return nil
}
