package perf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zintix-labs/seedlab/errs"
)

func TestRunPProfTo(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	exe := func() error { calls++; return nil }
	for _, mode := range []string{"cpu", "heap", "allocs"} {
		if err := RunPProfTo(exe, mode, dir); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if fi, err := os.Stat(filepath.Join(dir, mode+".pprof")); err != nil || fi.Size() == 0 {
			t.Fatalf("%s profile missing: %v", mode, err)
		}
	}
	if err := RunPProfTo(exe, "", dir); err != nil || calls != 4 {
		t.Fatalf("plain run: %v calls=%d", err, calls)
	}
	if err := RunPProfTo(exe, "trace", dir); !errs.IsWarn(err) || calls != 4 {
		t.Fatalf("unknown mode should warn without running: %v", err)
	}
	boom := errors.New("boom")
	if err := RunPProfTo(func() error { return boom }, "heap", dir); !errors.Is(err, boom) {
		t.Fatalf("exe error should pass through: %v", err)
	}
}
