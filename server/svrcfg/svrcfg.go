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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/server/logger"
	"github.com/zintix-labs/seedlab/store"
)

const defaultAddr = ":5808"

// SvrCfg 為 server 的組裝設定；所有依賴由呼叫端注入。
type SvrCfg struct {
	Log         *slog.Logger
	Addr        string
	MaxSearches int
	Seedlab     *seedlab.Seedlab
	// Store 為選用；設定後已結束的搜尋會自動保存。
	Store *store.Store
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Addr == "" {
		sc.Addr = defaultAddr
	}
	// 1 <= MaxSearches <= 16
	sc.MaxSearches = min(16, max(1, sc.MaxSearches))
	if sc.Seedlab == nil {
		return errs.NewFatal("seedlab is required")
	}
	return nil
}
