package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"go.uber.org/zap"
)

// OverdueGauge records how many open requests are past their delivery date
type OverdueGauge interface {
	SetOverdueRequests(n int)
}

// OverdueRequestReporter logs open audio requests that missed their
// expected delivery date and publishes the count.
type OverdueRequestReporter struct {
	requests audiorequest.AudioRequestRepository
	gauge    OverdueGauge
	logger   *zap.Logger
	now      func() time.Time
}

// NewOverdueRequestReporter creates the reporter. gauge may be nil.
func NewOverdueRequestReporter(requests audiorequest.AudioRequestRepository, gauge OverdueGauge, logger *zap.Logger) *OverdueRequestReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueRequestReporter{
		requests: requests,
		gauge:    gauge,
		logger:   logger,
		now:      time.Now,
	}
}

// Name identifies the job
func (r *OverdueRequestReporter) Name() string { return "overdue_request_report" }

// Run counts overdue requests
func (r *OverdueRequestReporter) Run(ctx context.Context) error {
	now := r.now()
	overdue, err := r.requests.FindOverdue(ctx, now)
	if err != nil {
		return fmt.Errorf("find overdue requests: %w", err)
	}

	byCreator := make(map[string]int)
	for _, req := range overdue {
		byCreator[req.CreatorID.String()]++
	}
	if r.gauge != nil {
		r.gauge.SetOverdueRequests(len(overdue))
	}

	if len(overdue) == 0 {
		return nil
	}
	r.logger.Warn("Audio requests past expected delivery date",
		zap.Int("count", len(overdue)),
		zap.Int("creators", len(byCreator)))
	for creatorID, n := range byCreator {
		r.logger.Info("Overdue requests for creator", zap.String("creator_id", creatorID), zap.Int("count", n))
	}
	return nil
}
