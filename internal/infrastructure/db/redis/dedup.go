package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// SubmissionDeduper maps Idempotency-Key headers to the report they created.
// Key format: idempotency:report:<key>
type SubmissionDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionDeduper wraps client; ttl <= 0 uses defaultDedupTTL.
func NewSubmissionDeduper(client *redis.Client, ttl time.Duration) *SubmissionDeduper {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &SubmissionDeduper{client: client, ttl: ttl}
}

// Lookup returns the report code recorded for key, if any.
func (d *SubmissionDeduper) Lookup(ctx context.Context, key string) (string, bool, error) {
	code, err := d.client.Get(ctx, d.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dedup lookup: %w", err)
	}
	return code, true, nil
}

// Remember records the report created for key. An existing entry is kept.
func (d *SubmissionDeduper) Remember(ctx context.Context, key, code string) error {
	if err := d.client.SetNX(ctx, d.key(key), code, d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup remember: %w", err)
	}
	return nil
}

func (d *SubmissionDeduper) key(key string) string {
	return fmt.Sprintf("idempotency:report:%s", key)
}
