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

package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 為壓縮等級設定。
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// encoder 為可重設輸出的壓縮器（gzip.Writer 與 zstd.Encoder 都滿足）。
type encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
}

type codec struct {
	name string
	pool sync.Pool
}

func (c *codec) get(w io.Writer) encoder {
	e := c.pool.Get().(encoder)
	e.Reset(w)
	return e
}

// put 歸還壓縮器；discard 為 true 時丟棄結尾資料（無 body 的回應）。
func (c *codec) put(e encoder, discard bool) {
	if discard {
		e.Reset(io.Discard)
	}
	_ = e.Close()
	c.pool.Put(e)
}

var (
	zstdCodec = &codec{name: "zstd", pool: sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(DefaultCompressConfig.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}}}
	gzipCodec = &codec{name: "gzip", pool: sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(nil, DefaultCompressConfig.GzipLevel)
		return gw
	}}}
)

// negotiate 依 Accept-Encoding 選擇 codec，zstd 優先；q=0 視為拒絕。
func negotiate(header string) *codec {
	accept := map[string]bool{}
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		ok := true
		if q, found := strings.CutPrefix(strings.TrimSpace(params), "q="); found {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				ok = false
			}
		}
		accept[strings.ToLower(strings.TrimSpace(name))] = ok
	}
	switch {
	case accept["zstd"]:
		return zstdCodec
	case accept["gzip"]:
		return gzipCodec
	}
	return nil
}

type compressWriter struct {
	http.ResponseWriter
	enc     encoder
	noBody  bool
	started bool
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.started {
		return
	}
	cw.started = true
	h := cw.Header()
	h.Del("Content-Length")
	// 204 / 304 / 1xx 不帶 body，取消壓縮
	if (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified {
		cw.noBody = true
		h.Del("Content-Encoding")
		h.Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	if !cw.started {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.noBody {
		return cw.ResponseWriter.Write(b)
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) Flush() {
	if !cw.noBody {
		if f, ok := cw.enc.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// Compression 以 zstd 或 gzip 壓縮回應。HEAD、WebSocket 升級與已編碼的回應不處理。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrade := r.Header.Get("Upgrade") != "" ||
			strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
		c := negotiate(r.Header.Get("Accept-Encoding"))
		if r.Method == http.MethodHead || upgrade || c == nil || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", c.name)
		w.Header().Add("Vary", "Accept-Encoding")
		enc := c.get(w)
		cw := &compressWriter{ResponseWriter: w, enc: enc}
		defer func() { c.put(enc, cw.noBody) }()
		next.ServeHTTP(cw, r)
	})
}
