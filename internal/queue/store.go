package queue

import "context"

// Store is the adapter over the durable ordered list of pending
// notifications. The dispatcher only ever reads a head prefix and trims
// it after the batch's sends have been attempted; entries are never
// mutated in place.
type Store interface {
	// ReadPrefix returns up to maxCount raw entries from the head of
	// the queue in FIFO order without removing them. An empty queue
	// yields an empty slice and a nil error.
	ReadPrefix(ctx context.Context, maxCount int) ([]string, error)

	// TrimConsumed atomically removes the first count entries from the
	// head of the queue. It must be called with exactly the count read
	// in the same cycle, after all send attempts have completed. A
	// crash before TrimConsumed leaves the batch re-deliverable.
	TrimConsumed(ctx context.Context, count int) error

	// Len reports the current queue depth.
	Len(ctx context.Context) (int64, error)
}
