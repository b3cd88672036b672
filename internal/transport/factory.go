package transport

import (
	"context"
	"fmt"

	"github.com/eweretech/article-notifier/internal/config"
)

// New creates a Transport from the given configuration.
func New(ctx context.Context, cfg config.TransportConfig) (Transport, error) {
	switch cfg.Type {
	case "ses":
		return NewSES(ctx, cfg.Region, cfg.SenderAddress, cfg.SenderName)
	case "stdout":
		return NewStdout(), nil
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", cfg.Type)
	}
}
