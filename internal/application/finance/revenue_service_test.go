package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseRevenuePeriod(t *testing.T) {
	t.Run("date bounds cover whole days", func(t *testing.T) {
		period, err := ParseRevenuePeriod("2024-01-01", "2024-01-31")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.True(t, period.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, period.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("timestamps are exact", func(t *testing.T) {
		period, err := ParseRevenuePeriod("2024-01-01T10:00:00+02:00", "2024-01-02T00:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("empty bounds are open", func(t *testing.T) {
		period, err := ParseRevenuePeriod("", " ")
		require.NoError(t, err)
		assert.True(t, period.Start.IsZero())
		assert.True(t, period.End.IsZero())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseRevenuePeriod("yesterday", "")
		assert.ErrorIs(t, err, ErrInvalidDate)
		_, err = ParseRevenuePeriod("", "2024-13-01")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestRevenueService_Report(t *testing.T) {
	ctx := context.Background()
	period := finance.RevenuePeriod{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	t.Run("combines the aggregates", func(t *testing.T) {
		reporter := new(MockRevenueReporter)
		reporter.On("Totals", mock.Anything, period).Return(finance.RevenueTotals{
			TotalAmount: 3000, TotalPlatformFee: 1200, TotalCreatorAmount: 1800, Count: 2,
		}, nil)
		reporter.On("ByMethod", mock.Anything, period).Return([]finance.MethodRevenue{
			{Method: finance.PaymentMethodStripe, TotalAmount: 1000, TotalPlatformFee: 400, Count: 1},
			{Method: finance.PaymentMethodPayPal, TotalAmount: 2000, TotalPlatformFee: 800, Count: 1},
		}, nil)
		reporter.On("Daily", mock.Anything, period).Return([]finance.DailyRevenue{
			{Date: "2024-01-02", TotalAmount: 3000, TotalPlatformFee: 1200, Count: 2},
		}, nil)

		report, err := NewRevenueService(reporter, nil).Report(ctx, period)
		require.NoError(t, err)
		assert.Equal(t, int64(1800), report.TotalRevenue.TotalCreatorAmount)
		assert.Len(t, report.RevenueByMethod, 2)
		require.Len(t, report.DailyRevenue, 1)
		assert.Equal(t, "2024-01-02", report.DailyRevenue[0].Date)
	})

	t.Run("empty report has zero totals and empty lists", func(t *testing.T) {
		reporter := new(MockRevenueReporter)
		reporter.On("Totals", mock.Anything, mock.Anything).Return(finance.RevenueTotals{}, nil)
		reporter.On("ByMethod", mock.Anything, mock.Anything).Return([]finance.MethodRevenue(nil), nil)
		reporter.On("Daily", mock.Anything, mock.Anything).Return([]finance.DailyRevenue(nil), nil)

		report, err := NewRevenueService(reporter, nil).Report(ctx, finance.RevenuePeriod{})
		require.NoError(t, err)
		assert.Zero(t, report.TotalRevenue.Count)
		assert.NotNil(t, report.RevenueByMethod)
		assert.NotNil(t, report.DailyRevenue)
	})

	t.Run("any failing aggregate fails the report", func(t *testing.T) {
		reporter := new(MockRevenueReporter)
		reporter.On("Totals", mock.Anything, mock.Anything).Return(finance.RevenueTotals{}, nil)
		reporter.On("ByMethod", mock.Anything, mock.Anything).Return([]finance.MethodRevenue(nil), errors.New("query timeout"))
		reporter.On("Daily", mock.Anything, mock.Anything).Return([]finance.DailyRevenue(nil), nil).Maybe()

		_, err := NewRevenueService(reporter, nil).Report(ctx, period)
		assert.EqualError(t, err, "query timeout")
	})
}
