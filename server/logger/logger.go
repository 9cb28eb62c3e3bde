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

// Package logger 組裝 seedlab 使用的 *slog.Logger。
//
// 兩種注入方式：直接傳入 *slog.Logger（NewDefaultLogger / NewDefaultAsyncLogger），
// 或自行組裝 slog.Handler 後以 NewLogger 包裝。AsyncHandler 可以把任何 handler 變成非阻塞。
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
)

func (m LogMode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	}
	return fmt.Sprintf("LogMode(%d)", uint8(m))
}

// ParseMode 解析命令列的 -log 參數。
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "quiet":
		return ModeSilence, nil
	}
	return ModeDev, fmt.Errorf("unknown log mode %q", s)
}

// NewDefaultLogger returns a *slog.Logger built from LogMode defaults.
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, nil))
}

// NewDefaultAsyncLogger returns an async *slog.Logger built from LogMode defaults.
func NewDefaultAsyncLogger(mode LogMode) *slog.Logger {
	return slog.New(NewAsyncHandler(buildHandler(mode, nil), 8192))
}

// NewWriterLogger 以指定輸出建立 logger（CLI 與測試使用）。
func NewWriterLogger(w io.Writer, mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

// NewLogger wraps a Handler into a *slog.Logger.
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev, nil)
	}
	return slog.New(h)
}

// NewAsync 以 LogMode 預設值建立非阻塞 logger，並回傳 handler 以便關閉時 drain。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode, nil), buf)
	return slog.New(ah), ah
}

// AsyncHandler 把 Handle 變成 enqueue，由背景 goroutine 逐筆寫出。
//
// 佇列滿或已關閉時丟棄紀錄並計數；slog.Logger 會忽略 Handle 回傳的 error。
type AsyncHandler struct {
	next slog.Handler
	q    *queue
}

type queue struct {
	ch      chan pending
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type pending struct {
	ctx context.Context
	rec slog.Record
	h   slog.Handler
}

// NewAsyncHandler wraps next with an async queue of size buf.
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev, nil)
	}
	if buf <= 0 {
		buf = 1024
	}
	q := &queue{ch: make(chan pending, buf), stop: make(chan struct{})}
	q.wg.Add(1)
	go q.drain()
	return &AsyncHandler{next: next, q: q}
}

func (q *queue) drain() {
	defer q.wg.Done()
	for {
		select {
		case p := <-q.ch:
			_ = p.h.Handle(p.ctx, p.rec)
		case <-q.stop:
			for {
				select {
				case p := <-q.ch:
					_ = p.h.Handle(p.ctx, p.rec)
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.q != nil
}

// Dropped returns number of dropped log records.
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.q.dropped.Load()
}

// Close 停止接收新紀錄並寫完佇列中剩餘的紀錄。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.q.once.Do(func() { close(h.q.stop) })
	h.q.wg.Wait()
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.q.stop:
		h.q.dropped.Add(1)
		return nil
	default:
	}
	// Record 內含可變引用，跨 goroutine 前需要 Clone
	select {
	case h.q.ch <- pending{ctx: context.WithoutCancel(ctx), rec: r.Clone(), h: h.next}:
	default:
		h.q.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), q: h.q}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), q: h.q}
}

// CloseLogger 若 logger 使用 AsyncHandler，關閉並 drain。
func CloseLogger(log *slog.Logger) {
	if log == nil {
		return
	}
	if ah, ok := log.Handler().(*AsyncHandler); ok {
		ah.Close()
	}
}

func buildHandler(mode LogMode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		// 正式環境：JSON + stdout
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.DiscardHandler
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
