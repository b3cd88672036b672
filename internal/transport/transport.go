// Package transport abstracts the outbound email send primitive. Each
// Send call is independent: one recipient's failure never affects
// another recipient in the same batch.
package transport

import (
	"context"
	"time"
)

// Transport delivers a single fully-formed notification email.
type Transport interface {
	// Send delivers the email and returns a delivery result.
	Send(ctx context.Context, email *Email) (*Result, error)
	// Name returns the transport identifier (e.g. "ses", "stdout").
	Name() string
}

// Email is a fully-formed outbound message for one recipient.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// Result contains the outcome of a delivery attempt.
type Result struct {
	MessageID string
	Status    Status
	Timestamp time.Time
}

// Status represents the outcome of a delivery attempt.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)
