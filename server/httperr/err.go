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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/seedlab/errs"
)

// Body 為錯誤回應的 JSON 格式。
type Body struct {
	Error string `json:"error"`
	Level string `json:"level,omitempty"`
}

// ErrNotFound 放在錯誤鏈中時映射為 404。
var ErrNotFound = errors.New("not found")

// StatusCode 將錯誤映射成 HTTP status code：
// ctx 逾時 504、ctx 取消 408、ErrNotFound 404、errs.Warn 400、其餘 500。
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	if errs.Level(err) == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteJSON 以 status 與 JSON 編碼 v 寫回。
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Errs 依錯誤分級寫回 JSON 錯誤；err 為 nil 時不做事。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	Write(w, StatusCode(err), err)
}

// Write 以指定 status 寫回錯誤。
func Write(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, Body{Error: err.Error(), Level: errs.ErrLv(errs.Level(err))})
}

// Log 只記錄 5xx 與 408/409/429，其他 4xx 屬於呼叫端錯誤不記錄。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status == 408 || status == 409 || status == 429:
		log.Warn(msg, slog.Any("err", err))
	case status >= 500:
		log.Error(msg, slog.Any("err", err))
	}
}
