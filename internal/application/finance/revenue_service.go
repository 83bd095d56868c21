package finance

import (
	"context"
	"strings"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidDate is returned for report bounds that are neither dates nor timestamps
var ErrInvalidDate = shared.NewDomainError("INVALID_DATE", "Dates must be YYYY-MM-DD or RFC 3339 timestamps")

const dateLayout = "2006-01-02"

// ParseRevenuePeriod parses optional report bounds. A date-only end covers
// the whole day; empty bounds leave that side open.
func ParseRevenuePeriod(start, end string) (finance.RevenuePeriod, error) {
	var period finance.RevenuePeriod
	var err error
	if period.Start, _, err = parseBound(start); err != nil {
		return period, err
	}
	var dateOnly bool
	if period.End, dateOnly, err = parseBound(end); err != nil {
		return period, err
	}
	if dateOnly {
		period.End = period.End.Add(24*time.Hour - time.Nanosecond)
	}
	return period, nil
}

func parseBound(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, ErrInvalidDate
}

// RevenueService builds the admin revenue report
type RevenueService struct {
	reporter finance.RevenueReporter
	logger   *zap.Logger
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(reporter finance.RevenueReporter, logger *zap.Logger) *RevenueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevenueService{reporter: reporter, logger: logger}
}

// Report aggregates completed payments created within the period
func (s *RevenueService) Report(ctx context.Context, period finance.RevenuePeriod) (*RevenueReport, error) {
	report := &RevenueReport{
		RevenueByMethod: []finance.MethodRevenue{},
		DailyRevenue:    []finance.DailyRevenue{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.reporter.Totals(gctx, period)
		report.TotalRevenue = totals
		return err
	})
	g.Go(func() error {
		rows, err := s.reporter.ByMethod(gctx, period)
		if len(rows) > 0 {
			report.RevenueByMethod = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.reporter.Daily(gctx, period)
		if len(rows) > 0 {
			report.DailyRevenue = rows
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build revenue report", zap.Error(err))
		return nil, err
	}
	return report, nil
}
