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
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/seedlab"
	"github.com/zintix-labs/seedlab/demo"
	"github.com/zintix-labs/seedlab/server"
	"github.com/zintix-labs/seedlab/server/logger"
	"github.com/zintix-labs/seedlab/server/svrcfg"
	"github.com/zintix-labs/seedlab/store"
)

type config struct {
	addr     string
	logMode  string
	searches int
	profiles string
	db       string
}

func main() {
	cfg := new(config)
	flag.StringVar(&cfg.addr, "addr", ":5808", "listen address")
	flag.StringVar(&cfg.logMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.searches, "max-searches", 2, "max concurrently running searches")
	flag.StringVar(&cfg.profiles, "profiles", "", "profile directory (default: embedded demo profiles)")
	flag.StringVar(&cfg.db, "db", "", "sqlite file for finished searches (empty: disabled)")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		return err
	}
	log, _ := logger.NewAsync(4096, mode)
	defer logger.CloseLogger(log)

	lab, err := newLab(cfg.profiles, log)
	if err != nil {
		return err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:         log,
		Addr:        cfg.addr,
		MaxSearches: cfg.searches,
		Seedlab:     lab,
	}
	if cfg.db != "" {
		st, err := store.Open(cfg.db)
		if err != nil {
			return err
		}
		sCfg.Store = st
	}
	return server.Run(sCfg)
}

func newLab(dir string, log *slog.Logger) (*seedlab.Seedlab, error) {
	if dir == "" {
		return demo.NewSeedlab(log)
	}
	return seedlab.NewAuto(seedlab.Configs(os.DirFS(dir)), log)
}
