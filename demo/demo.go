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


// Package demo 以內嵌的示範 profile 組裝 Seedlab，供命令列工具與測試直接使用。
package demo

import (
	"log/slog"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/demo/demo_configs"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/server/logger"
	"github.com/zintix-labs/seedlab/server/svrcfg"
)

// NewSeedlab 以示範 profile 建立已 Freeze 的 Seedlab；log 為 nil 時不輸出日誌。
func NewSeedlab(log *slog.Logger) (*seedlab.Seedlab, error) {
	return seedlab.NewAuto(seedlab.Configs(demo_configs.FS), log)
}

// NewServerConfig 回傳以示範 profile 運作的伺服器設定（無 store）。
func NewServerConfig(addr string) (*svrcfg.SvrCfg, error) {
	log := logger.NewDefaultAsyncLogger(logger.ModeDev)
	lab, err := NewSeedlab(log)
	if err != nil {
		return nil, errs.NewFatal("new seedlab failed:" + err.Error())
	}
	scfg := &svrcfg.SvrCfg{
		Log:         log,
		Addr:        addr,
		MaxSearches: 2,
		Seedlab:     lab,
	}
	return scfg, scfg.Vaild()
}
