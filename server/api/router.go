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

package api

import (
	"log/slog"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/server/api/index"
	v1 "github.com/zintix-labs/seedlab/server/api/v1"
	"github.com/zintix-labs/seedlab/server/netsvr"
	"github.com/zintix-labs/seedlab/server/netsvr/middleware"
	"github.com/zintix-labs/seedlab/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、首頁與 v1 api。rt 的生命週期由呼叫端管理。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, rt *seedlab.SearchRuntime) error {
	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", index.IndexHandlerFn)
	return registerV1API(svr, sCfg, rt)
}

func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, rt *seedlab.SearchRuntime) error {
	lab, err := v1.NewLabHandler(sCfg.Seedlab)
	if err != nil {
		return err
	}
	sh, err := v1.NewSearchHandler(rt, sCfg.Store, sCfg.Log)
	if err != nil {
		return errs.Wrap(err, "register v1 api error")
	}
	svr.Group("/v1", func(r netsvr.NetRouter) {
		r.Get("/profiles", lab.Profiles)
		r.Post("/generate", lab.Generate)

		r.Post("/search", sh.Start)
		r.Get("/search", sh.List)
		r.Get("/search/{id}", sh.Get)
		r.Get("/search/{id}/results", sh.Results)
		r.Get("/search/{id}/report", sh.Report)
		r.Delete("/search/{id}", sh.Cancel)
		r.Get("/runs", sh.Runs)

		r.Post("/rng", v1.RNG)
		r.Get("/seedtime", v1.SeedTime)
	})
	return nil
}
