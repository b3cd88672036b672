package dispatch

import (
	"context"
	"time"
)

// Pacer throttles the dispatcher between cycles. The pause blocks only
// the dispatcher's own next-cycle eligibility, never the host process.
type Pacer interface {
	Pause(ctx context.Context) error
}

// FixedPacer pauses for a fixed delay, honoring context cancellation.
type FixedPacer struct {
	delay time.Duration
}

// NewFixedPacer creates a FixedPacer with the given delay.
func NewFixedPacer(delay time.Duration) FixedPacer {
	return FixedPacer{delay: delay}
}

// Pause waits for the configured delay or until the context is done.
func (p FixedPacer) Pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer never pauses; used in tests and one-shot tooling.
type NopPacer struct{}

// Pause returns immediately.
func (NopPacer) Pause(context.Context) error { return nil }
