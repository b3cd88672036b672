// Package dispatch implements the batch dispatch engine: one cycle
// reads a bounded prefix of the notification queue, fans the sends out
// concurrently, trims the prefix it read, and paces before the next
// cycle becomes eligible.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/eweretech/article-notifier/internal/queue"
	"github.com/eweretech/article-notifier/internal/render"
	"github.com/eweretech/article-notifier/internal/transport"
)

// ErrCycleInProgress is returned when a trigger arrives while a cycle
// is already running. Cycles never overlap against the same queue.
var ErrCycleInProgress = errors.New("dispatch: cycle already in progress")

// Config holds dispatcher tuning.
type Config struct {
	// BatchSize is the maximum number of entries read per cycle.
	BatchSize int
	// PacingDelay is the fixed pause after each non-empty cycle.
	PacingDelay time.Duration
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:   50,
		PacingDelay: 10 * time.Second,
	}
}

// Dispatcher drains the queue in rate-limited batches. Consumption is
// trim-after-attempt: every entry read in a cycle is trimmed once its
// send has been attempted, whatever the outcome. Failed and skipped
// entries are not re-enqueued (at-most-once delivery; on a crash before
// trim the whole batch is re-delivered). Re-queueing only the failed
// subset would be the upgrade path to stronger durability.
type Dispatcher struct {
	store     queue.Store
	transport transport.Transport
	renderer  *render.Renderer
	pacer     Pacer
	cfg       Config
	log       zerolog.Logger

	busy atomic.Bool
}

// New creates a Dispatcher. A nil pacer gets a FixedPacer with the
// configured delay; zero config fields fall back to defaults.
func New(
	store queue.Store,
	tr transport.Transport,
	renderer *render.Renderer,
	pacer Pacer,
	cfg Config,
	log zerolog.Logger,
) *Dispatcher {
	def := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.PacingDelay == 0 {
		cfg.PacingDelay = def.PacingDelay
	}
	if pacer == nil {
		pacer = NewFixedPacer(cfg.PacingDelay)
	}

	return &Dispatcher{
		store:     store,
		transport: tr,
		renderer:  renderer,
		pacer:     pacer,
		cfg:       cfg,
		log:       log,
	}
}

// RunCycle executes one read-dispatch-trim-pace cycle. A trigger while
// a cycle is in flight returns ErrCycleInProgress without touching the
// queue. Queue connectivity errors abort the cycle before any further
// mutation; the batch stays re-deliverable. Cancellation of ctx only
// aborts the cycle before dispatching starts: once sends are in flight
// the cycle runs to completion on a detached context, so a trigger
// disconnect cannot strand an attempted batch untrimmed.
func (d *Dispatcher) RunCycle(ctx context.Context) (*Report, error) {
	if !d.busy.CompareAndSwap(false, true) {
		CyclesTotal.WithLabelValues("busy").Inc()
		return nil, ErrCycleInProgress
	}
	defer d.busy.Store(false)

	start := time.Now()

	raw, err := d.store.ReadPrefix(ctx, d.cfg.BatchSize)
	if err != nil {
		CyclesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read queue prefix: %w", err)
	}

	if len(raw) == 0 {
		CyclesTotal.WithLabelValues("empty").Inc()
		d.log.Info().Msg("no emails to process")
		return &Report{NoWork: true}, nil
	}

	report := &Report{
		Read:    len(raw),
		Results: make([]Result, len(raw)),
	}

	// Detach from the trigger's cancellation: once dispatching begins
	// the caller going away must not abort in-flight sends, and above
	// all not the trim that commits them. An attempted batch left
	// untrimmed would be re-sent whole on the next trigger.
	cycleCtx := context.WithoutCancel(ctx)

	entries := d.decodeBatch(raw, report)
	article := sharedArticle(entries)

	d.dispatchBatch(cycleCtx, entries, article, report)

	// Trim exactly what was read, regardless of send outcomes. Entries
	// whose sends failed are gone with the rest of the batch.
	if err := d.store.TrimConsumed(cycleCtx, len(raw)); err != nil {
		CyclesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("trim consumed batch: %w", err)
	}

	CycleDuration.Observe(time.Since(start).Seconds())
	CyclesTotal.WithLabelValues("processed").Inc()

	d.log.Info().
		Int("read", report.Read).
		Int("sent", report.Sent()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Msg("batch processed and trimmed")

	if err := d.pacer.Pause(ctx); err != nil {
		d.log.Warn().Err(err).Msg("pacing interrupted")
	}

	return report, nil
}

// decodeBatch parses every raw entry. Decode failures are recorded as
// skips and leave a nil slot; the entry still occupies its position in
// the batch and is trimmed with it.
func (d *Dispatcher) decodeBatch(raw []string, report *Report) []*queue.Entry {
	entries := make([]*queue.Entry, len(raw))
	for i, r := range raw {
		e, err := queue.DecodeEntry(r)
		if err != nil {
			d.log.Warn().Err(err).Int("index", i).Msg("skipping undecodable queue entry")
			report.Results[i] = Result{Outcome: OutcomeSkipped, Reason: err.Error()}
			NotificationsTotal.WithLabelValues("skipped").Inc()
			continue
		}
		entries[i] = e
	}
	return entries
}

// sharedArticle returns the article data of the first decodable entry.
// Every entry in a batch is produced by one publishing event and shares
// its articleData; the batch is not cross-checked for this.
func sharedArticle(entries []*queue.Entry) *queue.Article {
	for _, e := range entries {
		if e != nil {
			return &e.ArticleData
		}
	}
	return nil
}

// dispatchBatch validates, renders, and sends every decodable entry.
// Sends run concurrently, one goroutine per recipient, each writing a
// distinct result slot; the join is all-settled, never fail-fast, so a
// slow or failing recipient cannot block or cancel its siblings.
func (d *Dispatcher) dispatchBatch(ctx context.Context, entries []*queue.Entry, article *queue.Article, report *Report) {
	if article == nil {
		return
	}

	var wg sync.WaitGroup

	for i, e := range entries {
		if e == nil {
			continue
		}

		if !e.ValidAddress() {
			d.log.Warn().Str("email", e.Email).Msg("invalid email detected, skipping")
			report.Results[i] = Result{To: e.Email, Outcome: OutcomeSkipped, Reason: "invalid address"}
			NotificationsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		subject, body, err := d.renderer.Render(&queue.Entry{
			Email:       e.Email,
			FullName:    e.FullName,
			ArticleData: *article,
		})
		if err != nil {
			d.log.Warn().Err(err).Str("email", e.Email).Msg("render failed, skipping")
			report.Results[i] = Result{To: e.Email, Outcome: OutcomeSkipped, Reason: err.Error()}
			NotificationsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		wg.Add(1)
		go func(slot *Result, to string, email *transport.Email) {
			defer wg.Done()

			res, err := d.transport.Send(ctx, email)
			if err != nil {
				d.log.Error().Err(err).Str("email", to).Msg("failed to send email")
				*slot = Result{To: to, Outcome: OutcomeFailed, Reason: err.Error()}
				NotificationsTotal.WithLabelValues("failed").Inc()
				return
			}

			*slot = Result{To: to, Outcome: OutcomeSent, MessageID: res.MessageID}
			NotificationsTotal.WithLabelValues("sent").Inc()
		}(&report.Results[i], e.Email, &transport.Email{
			To:       e.Email,
			Subject:  subject,
			HTMLBody: body,
		})
	}

	wg.Wait()
}
