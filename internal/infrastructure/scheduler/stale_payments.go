package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const stalePaymentBatchSize = 100

// StalePaymentSweeper fails payments that stayed pending longer than the TTL.
// Providers normally confirm within minutes; a payment left pending means the
// fan abandoned checkout or the webhook never arrived.
type StalePaymentSweeper struct {
	payments  finance.PaymentRepository
	publisher shared.EventPublisher
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewStalePaymentSweeper creates the sweeper. publisher may be nil.
func NewStalePaymentSweeper(payments finance.PaymentRepository, publisher shared.EventPublisher, ttl time.Duration, logger *zap.Logger) *StalePaymentSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StalePaymentSweeper{
		payments:  payments,
		publisher: publisher,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// Name identifies the job
func (s *StalePaymentSweeper) Name() string { return "stale_payment_sweeper" }

// Run fails stale payments in batches until none remain
func (s *StalePaymentSweeper) Run(ctx context.Context) error {
	cutoff := s.now().Add(-s.ttl)
	failed := 0

	for {
		batch, err := s.payments.FindStalePending(ctx, cutoff, stalePaymentBatchSize)
		if err != nil {
			return fmt.Errorf("find stale payments: %w", err)
		}
		for _, p := range batch {
			if err := p.Fail(); err != nil {
				return fmt.Errorf("fail payment %s: %w", p.ID, err)
			}
			if err := s.payments.Update(ctx, p); err != nil {
				return fmt.Errorf("update payment %s: %w", p.ID, err)
			}
			if s.publisher != nil {
				if err := s.publisher.Publish(ctx, p.GetDomainEvents()...); err != nil {
					s.logger.Warn("Failed to publish payment events", zap.String("payment_id", p.ID.String()), zap.Error(err))
				}
			}
			p.ClearDomainEvents()
			failed++
		}
		if len(batch) < stalePaymentBatchSize {
			break
		}
	}

	if failed > 0 {
		s.logger.Info("Marked stale payments as failed",
			zap.Int("count", failed),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
