package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stub struct {
	err      error
	stop     chan struct{}
	shutdown atomic.Int32
	order    *[]string
	name     string
}

func (s *stub) Run() error {
	if s.err != nil {
		return s.err
	}
	<-s.stop
	return nil
}

func (s *stub) Shutdown(context.Context) error {
	if s.shutdown.Add(1) == 1 {
		close(s.stop)
		*s.order = append(*s.order, s.name)
	}
	return nil
}

func TestRunStopsOnComponentError(t *testing.T) {
	var order []string
	a := &stub{name: "a", stop: make(chan struct{}), order: &order}
	b := &stub{name: "b", stop: make(chan struct{}), order: &order, err: errors.New("boom")}
	err := NewWith(nil, a, b).RunContext(context.Background())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("want boom, got %v", err)
	}
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Fatalf("shutdown order = %v", order)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	var ran atomic.Bool
	c := NewCloser(func() error { ran.Store(true); return nil })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := NewWith(nil, c).RunContext(ctx); err != nil {
		t.Fatalf("ctx stop should return nil, got %v", err)
	}
	if !ran.Load() {
		t.Fatalf("closer fn not called")
	}
	// 重複關閉不會 panic
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}
