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

package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/server/api"
	"github.com/zintix-labs/seedlab/server/app"
	"github.com/zintix-labs/seedlab/server/netsvr"
	"github.com/zintix-labs/seedlab/server/svrcfg"
)

// Run 組裝並啟動預設 server：驗證設定、建立搜尋 runtime、註冊路由，阻塞到停止為止。
//
// Run 不讀檔也不讀環境變數，所有依賴都由 SvrCfg 注入。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Vaild(); err != nil {
		// logger 可能不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 與 Run 相同，但由呼叫端提供 NetSvr。
//
// 關閉順序：先停 HTTP server，再取消所有搜尋（搜尋結束的回呼會寫入 store），最後關閉 store。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("default server is not ready")
	}

	rt := sCfg.Seedlab.BuildRuntime(sCfg.MaxSearches)
	if err := api.RegisterRoutes(svr, sCfg, rt); err != nil {
		return err
	}

	a := app.New(sCfg.Log)
	if sCfg.Store != nil {
		a.Register(app.NewCloser(sCfg.Store.Close))
	}
	a.Register(app.NewCloser(func() error {
		rt.Close()
		rt.Wait()
		return nil
	}))
	a.Register(svr)

	addr := ""
	if s, ok := svr.(*netsvr.ChiAdapter); ok {
		addr = s.Address()
	}
	sCfg.Log.Info("[seedlab] listening", slog.String("addr", addr), slog.Int("max_searches", sCfg.MaxSearches))
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
