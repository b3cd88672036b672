package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisList implements Store over a Redis list using LRANGE for the
// non-destructive prefix read and LTRIM for the commit. Both operations
// are atomic on the Redis side, which is the only atomicity the
// dispatcher relies on.
type RedisList struct {
	client *redis.Client
	key    string
}

// NewRedisList creates a RedisList adapter for the given list key.
func NewRedisList(client *redis.Client, key string) *RedisList {
	return &RedisList{client: client, key: key}
}

// NewClient builds a Redis client from either a redis:// URL or
// discrete addr/password/db fields. The URL wins when both are set.
func NewClient(url, addr, password string, db int) (*redis.Client, error) {
	if url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), nil
}

// ReadPrefix returns up to maxCount entries from the head of the list.
func (s *RedisList) ReadPrefix(ctx context.Context, maxCount int) ([]string, error) {
	if maxCount <= 0 {
		return nil, nil
	}

	raw, err := s.client.LRange(ctx, s.key, 0, int64(maxCount)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}

	EntriesReadTotal.Add(float64(len(raw)))

	return raw, nil
}

// TrimConsumed drops the first count entries, keeping the remainder.
func (s *RedisList) TrimConsumed(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}

	if err := s.client.LTrim(ctx, s.key, int64(count), -1).Err(); err != nil {
		return fmt.Errorf("ltrim %s: %w", s.key, err)
	}

	EntriesTrimmedTotal.Add(float64(count))

	return nil
}

// Len reports the queue depth and refreshes the depth gauge.
func (s *RedisList) Len(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("llen %s: %w", s.key, err)
	}

	QueueDepth.Set(float64(n))

	return n, nil
}

// Ping verifies connectivity to the Redis backing the queue.
func (s *RedisList) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
