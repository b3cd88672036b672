package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eweretech/article-notifier/internal/dispatch"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls int
	err   error
	ran   chan struct{}
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{ran: make(chan struct{}, 16)}
}

func (f *fakeRunner) RunCycle(ctx context.Context) (*dispatch.Report, error) {
	f.mu.Lock()
	f.calls++
	err := f.err
	f.mu.Unlock()

	select {
	case f.ran <- struct{}{}:
	default:
	}

	if err != nil {
		return nil, err
	}
	return &dispatch.Report{NoWork: true}, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForRun(t *testing.T, f *fakeRunner) {
	t.Helper()
	select {
	case <-f.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cycle to run")
	}
}

func TestScheduler_RunsImmediatelyThenOnInterval(t *testing.T) {
	runner := newFakeRunner()
	s := New(runner, Config{Interval: 20 * time.Millisecond, ShutdownTimeout: time.Second}, zerolog.Nop())

	s.Start(context.Background())
	defer s.Stop()

	// First cycle fires before the first tick.
	waitForRun(t, runner)
	// At least one.
	waitForRun(t, runner)

	if got := runner.callCount(); got < 2 {
		t.Errorf("expected at least 2 cycles, got %d", got)
	}
}

func TestScheduler_StopHaltsTicking(t *testing.T) {
	runner := newFakeRunner()
	s := New(runner, Config{Interval: 10 * time.Millisecond, ShutdownTimeout: time.Second}, zerolog.Nop())

	s.Start(context.Background())
	waitForRun(t, runner)

	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	before := runner.callCount()
	time.Sleep(50 * time.Millisecond)
	if after := runner.callCount(); after != before {
		t.Errorf("cycles ran after stop: %d -> %d", before, after)
	}
}

func TestScheduler_ContinuesAfterCycleError(t *testing.T) {
	runner := newFakeRunner()
	runner.err = errors.New("queue unavailable")
	s := New(runner, Config{Interval: 10 * time.Millisecond, ShutdownTimeout: time.Second}, zerolog.Nop())

	s.Start(context.Background())
	defer s.Stop()

	waitForRun(t, runner)
	waitForRun(t, runner)

	if got := runner.callCount(); got < 2 {
		t.Errorf("expected scheduler to keep ticking after error, got %d cycles", got)
	}
}

func TestScheduler_SkipsBusyCycle(t *testing.T) {
	runner := newFakeRunner()
	runner.err = dispatch.ErrCycleInProgress
	s := New(runner, Config{Interval: 10 * time.Millisecond, ShutdownTimeout: time.Second}, zerolog.Nop())

	s.Start(context.Background())
	defer s.Stop()

	waitForRun(t, runner)
	waitForRun(t, runner)
}

func TestNew_DefaultsZeroConfig(t *testing.T) {
	s := New(newFakeRunner(), Config{}, zerolog.Nop())

	def := DefaultConfig()
	if s.config.Interval != def.Interval {
		t.Errorf("expected default interval %s, got %s", def.Interval, s.config.Interval)
	}
	if s.config.ShutdownTimeout != def.ShutdownTimeout {
		t.Errorf("expected default shutdown timeout %s, got %s", def.ShutdownTimeout, s.config.ShutdownTimeout)
	}
}
