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

// Package v1 實作 /v1 HTTP API。
package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/server/httperr"
)

// maxBody 為請求 body 上限。
const maxBody = 1 << 20

// decodeBody 以嚴格模式解碼 JSON body。
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errs.NewWarn("empty request body")
		}
		return &errs.E{Message: "invalid request body", Cause: err, ErrLv: errs.Warn}
	}
	return nil
}

// queryInt 讀取整數查詢參數；缺少時回傳 def。
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewWithExtra(errs.Warn, "invalid query parameter", key+"="+v)
	}
	return n, nil
}

func ok(w http.ResponseWriter, v any) { httperr.WriteJSON(w, http.StatusOK, v) }
