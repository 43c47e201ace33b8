package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubDeleter struct {
	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
}

func (d *stubDeleter) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, now)
	return d.n, d.err
}

func (d *stubDeleter) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func TestReaper_SweepsImmediatelyAndOnTick(t *testing.T) {
	d := &stubDeleter{n: 2}
	r := NewReaper(d, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for d.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sweeps, got %d", d.count())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestReaper_UsesClock(t *testing.T) {
	d := &stubDeleter{}
	r := NewReaper(d, time.Hour, zerolog.Nop())
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	r.sweep(context.Background())
	if len(d.calls) != 1 || !d.calls[0].Equal(fixed) {
		t.Fatalf("unexpected calls: %v", d.calls)
	}
}

func TestReaper_ErrorDoesNotStop(t *testing.T) {
	d := &stubDeleter{err: errors.New("db down")}
	r := NewReaper(d, time.Hour, zerolog.Nop())

	r.sweep(context.Background())
	r.sweep(context.Background())
	if d.count() != 2 {
		t.Fatalf("expected 2 attempts, got %d", d.count())
	}
}

func TestNewReaper_DefaultInterval(t *testing.T) {
	r := NewReaper(&stubDeleter{}, 0, zerolog.Nop())
	if r.interval != defaultInterval {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
}
