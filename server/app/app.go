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

// Package app 管理長期運行元件的啟動與優雅關閉。
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// App 並行啟動所有 Component，收到 SIGINT/SIGTERM 或任一元件結束時依序關閉。
type App struct {
	comps []Component
	log   *slog.Logger
}

func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{log: log}
}

// NewWith 建立 App 並註冊 comps。
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// Run 阻塞直到收到終止信號（回傳 nil）或任一元件的 Run 返回（回傳其錯誤）。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 同 Run，但以 ctx 取代 OS 信號。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func() { errCh <- c.Run() }()
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("app.signal", slog.String("reason", context.Cause(ctx).Error()))
	case err = <-errCh:
	}
	a.shutdown(shutdownTimeout)
	return err
}

// shutdown 依註冊的反序關閉元件。
func (a *App) shutdown(td time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), td)
	defer cancel()
	for i := len(a.comps) - 1; i >= 0; i-- {
		if err := a.comps[i].Shutdown(ctx); err != nil {
			a.log.Error("app.shutdown", slog.Any("err", err))
		}
	}
}
