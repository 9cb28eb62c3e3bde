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

// Package seedlab 提供 Seedlab 引擎的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// Seedlab 把三個必需的地基組裝在一起：
//  1. Catalog：profile 目錄，定義有哪些玩家存檔 / 主機設定，以及各自的設定檔名稱。
//  2. mech.Registry：機制註冊表，依 Job 的 mechanic 建出 Generator 與搜尋用的 SeedSpace。
//  3. personal.Provider：物種參考資料（性別比例），由機制在建構時查詢。
//
// Seedlab 本身不綁定任何檔案路徑：設定檔來源一律以 fs.FS 注入（go:embed 或 os.DirFS）。
//
// 使用流程分成兩階段：
//   - 註冊/組裝階段：建立 catalog、合併 registries、檢查重複與缺漏。
//   - 執行階段：依 Job 建立 Generator（單一 seed 重播）或 Searcher（平行搜尋）。
package seedlab

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/seedlab/catalog"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/gen4"
	"github.com/zintix-labs/seedlab/gen5"
	"github.com/zintix-labs/seedlab/sdk/mech"
	"github.com/zintix-labs/seedlab/sdk/personal"
	"github.com/zintix-labs/seedlab/sdk/state"
	"github.com/zintix-labs/seedlab/spec"
)

// Configs 用來把一或多個 profile 來源（fs.FS）打包成 New() 需要的參數。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Mechanics 用來把一或多個機制註冊表打包成 New() 需要的參數。
//
// New() 會把多個 registries 合併成單一 registry；重複的 mechanic key 直接失敗。
func Mechanics(regs ...*mech.Registry) []*mech.Registry {
	return regs
}

// DefaultMechanics 回傳內建的 Gen 4 與 Gen 5 機制。counter 為 nil 時 Gen 5 初始步數固定為 0。
func DefaultMechanics(counter gen5.AdvanceCounter) (*mech.Registry, error) {
	reg := mech.NewRegistry()
	if err := gen4.Register(reg); err != nil {
		return nil, err
	}
	if err := gen5.Register(reg, counter); err != nil {
		return nil, err
	}
	return reg, nil
}

// Seedlab 是組裝器與運行入口。
//
// Catalog 的名稱唯一性只保證在同一個 Seedlab instance 內。執行階段開始後（Freeze）不再變更 Catalog。
type Seedlab struct {
	cat *catalog.Catalog
	reg *mech.Registry
	pp  personal.Provider
	log *slog.Logger
	sum []catalog.Summary
}

// New 建立一個 Seedlab instance（註冊/組裝階段）。
//
// cfgs 至少一個、mechs 至少一個；logger 為 nil 時不輸出日誌。
func New(cfgs []fs.FS, mechs []*mech.Registry, logger *slog.Logger) (*Seedlab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	if len(mechs) == 0 {
		return nil, errs.NewFatal("mechanic registry required")
	}
	cata, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	reg, err := mech.MergeRegistry(mechs...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Seedlab{
		cat: cata,
		reg: reg,
		pp:  personal.Builtin(),
		log: logger,
	}, nil
}

// NewAuto 以內建機制建立 Seedlab，註冊所有設定檔並直接進入執行階段。
func NewAuto(cfgs []fs.FS, logger *slog.Logger) (*Seedlab, error) {
	reg, err := DefaultMechanics(nil)
	if err != nil {
		return nil, err
	}
	lab, err := New(cfgs, Mechanics(reg), logger)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

// SetPersonal 取代物種參考資料，只能在 Freeze 之前呼叫。
func (l *Seedlab) SetPersonal(pp personal.Provider) error {
	if l.cat.IsFrozen() {
		return errs.NewWarn("can not change personal provider after freeze")
	}
	if pp == nil {
		return errs.NewWarn("personal provider required")
	}
	l.pp = pp
	return nil
}

func (l *Seedlab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

// RegisterAll
//
// 掃描 catalog 持有的設定檔來源，把所有 .yaml/.yml/.json 解析成 *spec.Profile，
// 並以 profile 內宣告的名稱產生 catalog.Entry 一次性註冊。
//
// 任何一個檔案失敗都會立刻回傳 error；只有全部成功才會寫入 catalog。依檔名排序處理。
func (l *Seedlab) RegisterAll() error {
	files := l.cat.Cfg().Files()
	if len(files) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	entries := make([]catalog.Entry, 0, len(files))
	seen := map[string]string{}
	for _, base := range files {
		src, _ := l.cat.Cfg().GetFS(base)
		raw, err := fs.ReadFile(src, base)
		if err != nil {
			return errs.NewFatal(fmt.Sprintf("read config failed: %s", base))
		}
		prof, err := catalog.ParseProfile(base, raw)
		if err != nil {
			return errs.WrapWithExtra(err, fmt.Sprintf("parse profile failed: %s", base), strings.TrimSuffix(base, filepath.Ext(base)))
		}
		key := strings.ToLower(strings.TrimSpace(prof.Name))
		if prev, ok := seen[key]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate profile name: %s (config=%s and %s)", key, prev, base))
		}
		if _, ok := l.cat.GetByName(key); ok {
			return errs.NewFatal(fmt.Sprintf("profile name already registered: %s (config=%s)", key, base))
		}
		seen[key] = base
		entries = append(entries, catalog.Entry{Name: key, Version: prof.Version, ConfigName: base})
	}
	return l.cat.Register(entries...)
}

func (l *Seedlab) Freeze() {
	l.cat.Freeze()
}

func (l *Seedlab) Logger() *slog.Logger {
	return l.log
}

// Mechanics 回傳已註冊的 mechanic key（排序）。
func (l *Seedlab) Mechanics() []spec.MechKey {
	return l.reg.Keys()
}

func (l *Seedlab) Names() []string {
	return l.cat.Names()
}

// Summary 回傳所有 profile 的摘要；需在 Freeze 之後呼叫。
func (l *Seedlab) Summary() ([]catalog.Summary, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if l.sum != nil {
		return l.sum, nil
	}
	names := l.cat.Names()
	cs := make([]catalog.Summary, 0, len(names))
	for _, n := range names {
		p, err := l.cat.ProfileByName(n)
		if err != nil {
			return nil, errs.NewFatal("parse profile failed")
		}
		cs = append(cs, catalog.Summary{
			Name:       n,
			Version:    p.Version,
			Generation: p.Generation(),
			TID:        p.TID,
			SID:        p.SID,
		})
	}
	l.sum = cs
	return l.sum, nil
}

// Profile 依名稱回傳 profile（每次都是新的實例）。
func (l *Seedlab) Profile(name string) (*spec.Profile, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.ProfileByName(name)
}

func (l *Seedlab) env(prof *spec.Profile) mech.Env {
	return mech.Env{Profile: prof, Personal: l.pp, Logger: l.log}
}

// prepareJob 初始化 filter 並驗證 Job；程式內組出的 Job 未經 GetJob* 也會走同一套檢查。重複呼叫無副作用。
func prepareJob(job *spec.Job) error {
	if job == nil {
		return errs.NewWarn("job required")
	}
	return spec.InitJob(job)
}

func (l *Seedlab) jobProfile(job *spec.Job) (*spec.Profile, error) {
	if err := prepareJob(job); err != nil {
		return nil, err
	}
	if job.Profile == "" {
		return nil, errs.NewWarn("job err:empty profile")
	}
	if !l.reg.IsExist(job.Mechanic) {
		return nil, errs.NewWarn(fmt.Sprintf("mechanic not registered: %s", job.Mechanic))
	}
	return l.Profile(job.Profile)
}

// NewGenerator 依 Job 建立 Generator；profile 由 catalog 依 job.Profile 取得。
func (l *Seedlab) NewGenerator(job *spec.Job) (mech.Generator, error) {
	prof, err := l.jobProfile(job)
	if err != nil {
		return nil, err
	}
	return l.NewGeneratorWithProfile(job, prof)
}

// NewGeneratorWithProfile 與 NewGenerator 相同，但由呼叫端直接提供 profile。
func (l *Seedlab) NewGeneratorWithProfile(job *spec.Job, prof *spec.Profile) (mech.Generator, error) {
	if prof == nil {
		return nil, errs.NewWarn("profile required")
	}
	if err := prepareJob(job); err != nil {
		return nil, err
	}
	return l.reg.BuildGenerator(job, l.env(prof))
}

// Generate 以 Job 的設定重播單一 seed。
func (l *Seedlab) Generate(job *spec.Job, seed uint64) ([]state.State, error) {
	gen, err := l.NewGenerator(job)
	if err != nil {
		return nil, err
	}
	return gen.Generate(seed), nil
}

// NewSearcher 依 Job 建立尚未啟動的 Searcher。
func (l *Seedlab) NewSearcher(job *spec.Job) (*Searcher, error) {
	prof, err := l.jobProfile(job)
	if err != nil {
		return nil, err
	}
	return l.NewSearcherWithProfile(job, prof)
}

// NewSearcherWithProfile 與 NewSearcher 相同，但由呼叫端直接提供 profile。
func (l *Seedlab) NewSearcherWithProfile(job *spec.Job, prof *spec.Profile) (*Searcher, error) {
	if prof == nil {
		return nil, errs.NewWarn("profile required")
	}
	if err := prepareJob(job); err != nil {
		return nil, err
	}
	env := l.env(prof)
	gen, err := l.reg.BuildGenerator(job, env)
	if err != nil {
		return nil, err
	}
	space, err := l.reg.BuildSpace(job, env)
	if err != nil {
		return nil, err
	}
	return NewSearcher(SearchConfig{
		Mechanic:     string(job.Mechanic),
		Profile:      prof.Name,
		Generator:    gen,
		Space:        space,
		Workers:      job.Search.Workers,
		Advances:     job.MaxAdvances + 1,
		ShowProgress: job.Search.ShowProgress,
		Logger:       l.log,
	})
}
