package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/sdk/filter"
	"github.com/zintix-labs/seedlab/sdk/state"
)

// FilterSetting 為設定檔中的篩選條件，以名稱表示性格、覺醒力量等欄位。
//
// 空白或省略的欄位表示不限制。
type FilterSetting struct {
	IVMin        []int    `yaml:"iv_min"        json:"iv_min"`
	IVMax        []int    `yaml:"iv_max"        json:"iv_max"`
	Natures      []string `yaml:"natures"       json:"natures"`
	HiddenPowers []string `yaml:"hidden_powers" json:"hidden_powers"`
	Ability      string   `yaml:"ability"       json:"ability"`
	Gender       string   `yaml:"gender"        json:"gender"`
	Shiny        string   `yaml:"shiny"         json:"shiny"`
	Slots        []int    `yaml:"slots"         json:"slots"`
	Disabled     bool     `yaml:"disabled"      json:"disabled"`

	built filter.Filter
}

// Build 回傳初始化後的 filter.Filter。
func (fs *FilterSetting) Build() filter.Filter { return fs.built }

func (fs *FilterSetting) init() error {
	f := filter.New()
	f.Disabled = fs.Disabled

	if err := ivBound(fs.IVMin, &f.IVMin, "iv_min"); err != nil {
		return err
	}
	if err := ivBound(fs.IVMax, &f.IVMax, "iv_max"); err != nil {
		return err
	}
	for i := range f.IVMin {
		if f.IVMin[i] > f.IVMax[i] {
			return errs.NewWarn(fmt.Sprintf("filter err:iv_min[%d]=%d > iv_max[%d]=%d", i, f.IVMin[i], i, f.IVMax[i]))
		}
	}

	for _, name := range fs.Natures {
		n, ok := state.NatureByName(name)
		if !ok {
			return errs.NewWarn(fmt.Sprintf("filter err:unknown nature %q", name))
		}
		f.Natures |= filter.NatureMask(n)
	}
	for _, name := range fs.HiddenPowers {
		t, ok := hiddenPowerByName(name)
		if !ok {
			return errs.NewWarn(fmt.Sprintf("filter err:unknown hidden power %q", name))
		}
		f.HiddenPowers |= filter.HiddenPowerMask(t)
	}

	var err error
	if f.Ability, err = pick(fs.Ability, "ability", map[string]uint8{"0": 0, "1": 1, "2": 2, "hidden": 2}); err != nil {
		return err
	}
	if f.Gender, err = pick(fs.Gender, "gender", map[string]uint8{"male": state.Male, "female": state.Female, "genderless": state.Genderless}); err != nil {
		return err
	}
	switch strings.ToLower(fs.Shiny) {
	case "", "any":
	case "star":
		f.Shiny = filter.ShinyStar
	case "square":
		f.Shiny = filter.ShinySquare
	case "either", "shiny":
		f.Shiny = filter.ShinyEither
	default:
		return errs.NewWarn(fmt.Sprintf("filter err:unknown shiny %q", fs.Shiny))
	}
	for _, s := range fs.Slots {
		if s < 0 || s > 15 {
			return errs.NewWarn(fmt.Sprintf("filter err:invalid slot %d", s))
		}
		f.Slots |= filter.SlotMask(uint8(s))
	}

	fs.built = f
	return nil
}

func ivBound(src []int, dst *[6]uint8, field string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != 6 {
		return errs.NewWarn(fmt.Sprintf("filter err:%s needs 6 values, got %d", field, len(src)))
	}
	for i, v := range src {
		if v < 0 || v > 31 {
			return errs.NewWarn(fmt.Sprintf("filter err:%s[%d]=%d not in 0..31", field, i, v))
		}
		dst[i] = uint8(v)
	}
	return nil
}

func pick(v, field string, table map[string]uint8) (uint8, error) {
	key := strings.ToLower(v)
	if key == "" || key == "any" {
		return filter.Any, nil
	}
	out, ok := table[key]
	if !ok {
		return 0, errs.NewWarn(fmt.Sprintf("filter err:unknown %s %q", field, v))
	}
	return out, nil
}

func hiddenPowerByName(name string) (uint8, bool) {
	for t := uint8(0); t < 16; t++ {
		if strings.EqualFold(state.HiddenPowerName(t), name) {
			return t, true
		}
	}
	return 0, false
}
