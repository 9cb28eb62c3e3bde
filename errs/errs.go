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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel 為錯誤分級，讓最上層（CLI / HTTP）決定如何回報。
//
//   - Fatal：系統或設定檔錯誤，無法繼續（HTTP 500）。
//   - Warn：請求或工作參數不合法，呼叫端可修正後重試（HTTP 400）。
//   - Log：僅需記錄。
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvName = [...]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

// ErrLv 回傳分級名稱，未知分級回傳空字串。
func ErrLv(errlv ErrLevel) string {
	if int(errlv) < len(errLvName) {
		return errLvName[errlv]
	}
	return ""
}

// E 是 seedlab 統一的錯誤型別。
// Message 為主訊息；Extra 為額外上下文（例如欄位名稱或設定檔路徑）；Cause 串接下層錯誤。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }

func NewWarn(msg string) *E { return New(Warn, msg) }

func NewLog(msg string) *E { return New(Log, msg) }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }

func Warnf(format string, a ...any) *E { return NewWarn(fmt.Sprintf(format, a...)) }

func Logf(format string, a ...any) *E { return NewLog(fmt.Sprintf(format, a...)) }

// NewWithExtra 與 New 相同，但附加上下文字串。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 以訊息包裝底層錯誤。
//
// 若 cause 已是 *E 則沿用其分級；第三方或標準庫錯誤一律視為 Fatal。
// 可預期的參數錯誤請直接用 NewWarn / Warnf 建立，不要 Wrap。
func Wrap(cause error, msg string) *E {
	return WrapWithExtra(cause, msg, "")
}

// WrapWithExtra 同 Wrap，並附加上下文字串。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := NewWithExtra(Level(cause), msg, extra)
	if r.ErrLv == None {
		r.ErrLv = Fatal
	}
	r.Cause = cause
	return r
}

// AsErr 嘗試把 err 展開為 *E。
func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Level 回傳錯誤鏈上第一個 *E 的分級；非 *E 錯誤回傳 None，nil 亦回傳 None。
func Level(err error) ErrLevel {
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return None
}

// IsWarn 判斷錯誤是否為呼叫端可修正的 Warn 等級。
func IsWarn(err error) bool { return Level(err) == Warn }
