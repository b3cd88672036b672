package dispatch

// Outcome classifies how one queue entry was handled within a cycle.
type Outcome string

const (
	// OutcomeSent means the transport accepted the message.
	OutcomeSent Outcome = "sent"
	// OutcomeSkipped means the entry never reached the transport:
	// malformed JSON, invalid address, or a render failure.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the transport rejected the send.
	OutcomeFailed Outcome = "failed"
)

// Result is the per-recipient outcome of one dispatch attempt. Results
// are collected for logging and metrics only, never persisted.
type Result struct {
	To        string
	Outcome   Outcome
	MessageID string
	Reason    string
}

// Report summarizes one dispatch cycle.
type Report struct {
	// NoWork is set when the queue was empty and nothing was attempted.
	NoWork bool
	// Read is the number of raw entries read (and later trimmed).
	Read int
	// Results holds one entry per raw queue element, index-aligned
	// with the batch.
	Results []Result
}

func (r *Report) count(o Outcome) int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Outcome == o {
			n++
		}
	}
	return n
}

// Sent is the number of entries the transport accepted.
func (r *Report) Sent() int { return r.count(OutcomeSent) }

// Skipped is the number of entries that never reached the transport.
func (r *Report) Skipped() int { return r.count(OutcomeSkipped) }

// Failed is the number of entries the transport rejected.
func (r *Report) Failed() int { return r.count(OutcomeFailed) }
