package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stdout implements Transport by writing messages to standard output.
// Intended for development and debugging; messages are never actually
// delivered.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a Stdout transport that prints to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

func (s *Stdout) Name() string { return "stdout" }

// Send prints the message details and returns a successful result.
func (s *Stdout) Send(_ context.Context, email *Email) (*Result, error) {
	var b strings.Builder
	b.WriteString("--- stdout transport: message ---\n")
	fmt.Fprintf(&b, "To:      %s\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "Body:    (%d bytes)\n", len(email.HTMLBody))
	b.WriteString("--- end ---\n")

	if _, err := io.WriteString(s.writer, b.String()); err != nil {
		return nil, fmt.Errorf("stdout: write: %w", err)
	}

	return &Result{
		MessageID: "stdout-" + uuid.New().String(),
		Status:    StatusSent,
		Timestamp: time.Now(),
	}, nil
}
