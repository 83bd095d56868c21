package cache

import (
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/auth"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the Redis-or-memory backed stores used by the API
type Stores struct {
	Idempotency shared.IdempotencyStore
	Blacklist   auth.TokenBlacklist
	Distributed bool
}

// NewStores picks Redis-backed stores when a client is available and falls
// back to in-memory stores otherwise. The in-memory stores do not share state
// between instances, so duplicate webhook processing or a revoked token being
// accepted by another replica is possible.
func NewStores(client redis.UniversalClient, log *zap.Logger) *Stores {
	if client != nil {
		log.Info("Using Redis for webhook idempotency and token revocation")
		return &Stores{
			Idempotency: NewRedisIdempotencyStore(client, ""),
			Blacklist:   auth.NewRedisTokenBlacklist(client),
			Distributed: true,
		}
	}

	log.Warn("Redis disabled, using in-memory idempotency and token blacklist")
	return &Stores{
		Idempotency: NewInMemoryIdempotencyStore(),
		Blacklist:   auth.NewInMemoryTokenBlacklist(),
	}
}

// Close releases the stores' resources
func (s *Stores) Close() error {
	return s.Idempotency.Close()
}
