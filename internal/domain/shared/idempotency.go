package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which externally delivered events (webhook
// deliveries, domain events) have already been handled.
type IdempotencyStore interface {
	// MarkProcessed records the key with a TTL.
	// Returns true if the key was newly recorded, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key has been recorded and not yet expired
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases resources held by the store
	Close() error
}

// DefaultIdempotencyTTL is how long processed keys are remembered.
// Stripe retries failed deliveries for up to three days.
const DefaultIdempotencyTTL = 72 * time.Hour
