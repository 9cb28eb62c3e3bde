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
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapKeepsLevel(t *testing.T) {
	base := Warnf("max_advances %d too large", 10)
	w := Wrap(base, "build generator")
	if w.ErrLv != Warn {
		t.Fatalf("expected warn level, got %s", ErrLv(w.ErrLv))
	}
	if !errors.Is(w, base) {
		t.Fatalf("expected wrapped error to unwrap to base")
	}
	if !IsWarn(w) {
		t.Fatalf("IsWarn should report true")
	}
}

func TestWrapForeignIsFatal(t *testing.T) {
	w := WrapWithExtra(context.Canceled, "search aborted", "job=1")
	if w.ErrLv != Fatal {
		t.Fatalf("foreign cause should be fatal, got %s", ErrLv(w.ErrLv))
	}
	msg := w.Error()
	if !strings.Contains(msg, "errlv=fatal") || !strings.Contains(msg, "extra: job=1") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !errors.Is(w, context.Canceled) {
		t.Fatalf("expected errors.Is to find context.Canceled")
	}
}

func TestLevelOfPlainError(t *testing.T) {
	if Level(errors.New("x")) != None {
		t.Fatalf("plain error should be None")
	}
	if Level(nil) != None {
		t.Fatalf("nil should be None")
	}
	if _, ok := AsErr(errors.New("x")); ok {
		t.Fatalf("AsErr should fail for plain error")
	}
	if ErrLv(ErrLevel(99)) != "" {
		t.Fatalf("unknown level should have empty name")
	}
}
