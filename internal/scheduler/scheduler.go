package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eweretech/article-notifier/internal/dispatch"
	"github.com/eweretech/article-notifier/internal/logger"
)

// CycleRunner triggers one queue drain attempt.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*dispatch.Report, error)
}

// Config controls how often cycles fire and how long shutdown waits for an
// in-flight cycle to finish.
type Config struct {
	Interval        time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the standard schedule of one cycle every 30 seconds.
func DefaultConfig() Config {
	return Config{
		Interval:        30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Scheduler invokes a CycleRunner on a fixed interval. Cycles run
// sequentially from a single goroutine, so a slow batch delays the next tick
// rather than overlapping with it.
type Scheduler struct {
	runner CycleRunner
	config Config
	log    zerolog.Logger
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a Scheduler. Zero config fields fall back to defaults.
func New(runner CycleRunner, cfg Config, log zerolog.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	return &Scheduler{runner: runner, config: cfg, log: log}
}

// Start launches the tick loop. The first cycle runs immediately rather than
// waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run(ctx)

	s.log.Info().
		Dur("interval", s.config.Interval).
		Msg("scheduler started")
}

// Stop signals the tick loop to stop and waits up to the configured shutdown
// timeout for any in-flight cycle to finish.
func (s *Scheduler) Stop() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("scheduler stopped gracefully")
		return nil
	case <-time.After(s.config.ShutdownTimeout):
		s.log.Warn().Msg("scheduler shutdown timed out")
		return fmt.Errorf("shutdown timed out after %s", s.config.ShutdownTimeout)
	}
}

// run is the tick loop. Stops cleanly when ctx is cancelled.
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopping")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce triggers a single cycle with a fresh correlation ID so every
// scheduled batch is traceable in the logs.
func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())

	report, err := s.runner.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, dispatch.ErrCycleInProgress) {
			s.log.Debug().Msg("previous cycle still running, skipping tick")
			return
		}
		s.log.Error().Err(err).Msg("scheduled cycle failed")
		return
	}

	if report.NoWork {
		return
	}

	s.log.Info().
		Int("read", report.Read).
		Int("sent", report.Sent()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Msg("scheduled cycle completed")
}
