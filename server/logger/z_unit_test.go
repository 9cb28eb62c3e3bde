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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := map[string]LogMode{"": ModeDev, "DEV": ModeDev, "prod": ModeProd, "quiet": ModeSilence}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q)=%v,%v", in, got, err)
		}
	}
	if _, err := ParseMode("verbose"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	ah := NewAsyncHandler(slog.NewTextHandler(&buf, nil), 64)
	log := slog.New(ah).With(slog.String("job", "abc"))
	for i := 0; i < 10; i++ {
		log.Info("search progress", slog.Int("i", i))
	}
	CloseLogger(slog.New(ah))
	out := buf.String()
	if strings.Count(out, "search progress") != 10 || !strings.Contains(out, "job=abc") {
		t.Fatalf("expected 10 drained records with attrs, got:\n%s", out)
	}
	log.Info("after close")
	if ah.Dropped() != 1 {
		t.Fatalf("record after close should be dropped, dropped=%d", ah.Dropped())
	}
}

func TestSilenceMode(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, ModeSilence).Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("silence mode should not write")
	}
	NewWriterLogger(&buf, ModeProd).Info("json")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("prod mode should write json, got %q", buf.String())
	}
}
