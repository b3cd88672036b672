package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/eweretech/article-notifier/internal/dispatch"
)

// CycleRunner runs one dispatch cycle. *dispatch.Dispatcher satisfies it.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*dispatch.Report, error)
}

// Status messages returned by the trigger endpoint. The endpoint always
// answers 200 with one of these; failures surface through logs and
// metrics, not HTTP status codes.
const (
	MsgNoWork    = "No emails to process"
	MsgProcessed = "Processed batch of emails"
	MsgBusy      = "A batch is already being processed"
	MsgFailed    = "Queue processing failed"
)

// ProcessEmailsHandler handles GET /process-emails. It runs one dispatch
// cycle synchronously and reports the outcome as a status message. A
// trigger while a cycle is in flight is a no-op.
func ProcessEmailsHandler(runner CycleRunner, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := runner.RunCycle(r.Context())
		if err != nil {
			if errors.Is(err, dispatch.ErrCycleInProgress) {
				respondMessage(w, MsgBusy)
				return
			}
			log.Error().Err(err).Msg("dispatch cycle failed")
			respondMessage(w, MsgFailed)
			return
		}

		if report.NoWork {
			respondMessage(w, MsgNoWork)
			return
		}

		respondMessage(w, MsgProcessed)
	}
}
