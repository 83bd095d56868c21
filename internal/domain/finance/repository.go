package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// FindByOrderID looks up a payment by its provider order or intent id
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	// FindByTransferID looks up a payment by the capture or charge id
	// recorded when it completed
	FindByTransferID(ctx context.Context, transferID string) (*Payment, error)
	// FindStalePending returns pending payments created before the cutoff
	FindStalePending(ctx context.Context, before time.Time, limit int) ([]*Payment, error)
}

// RevenuePeriod bounds a revenue report; both ends inclusive.
// A zero Start or End leaves that side open.
type RevenuePeriod struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the period
func (p RevenuePeriod) Contains(t time.Time) bool {
	return (p.Start.IsZero() || !t.Before(p.Start)) && (p.End.IsZero() || !t.After(p.End))
}

// RevenueTotals sums completed payments, in cents
type RevenueTotals struct {
	TotalAmount        int64 `db:"total_amount" json:"totalAmount"`
	TotalPlatformFee   int64 `db:"total_platform_fee" json:"totalPlatformFee"`
	TotalCreatorAmount int64 `db:"total_creator_amount" json:"totalCreatorAmount"`
	Count              int64 `db:"count" json:"count"`
}

// MethodRevenue is revenue grouped by payment method
type MethodRevenue struct {
	Method           PaymentMethod `db:"method" json:"method"`
	TotalAmount      int64         `db:"total_amount" json:"totalAmount"`
	TotalPlatformFee int64         `db:"total_platform_fee" json:"totalPlatformFee"`
	Count            int64         `db:"count" json:"count"`
}

// DailyRevenue is revenue grouped by calendar day (UTC, YYYY-MM-DD)
type DailyRevenue struct {
	Date             string `db:"day" json:"date"`
	TotalAmount      int64  `db:"total_amount" json:"totalAmount"`
	TotalPlatformFee int64  `db:"total_platform_fee" json:"totalPlatformFee"`
	Count            int64  `db:"count" json:"count"`
}

// RevenueReporter aggregates completed payments for the admin report
type RevenueReporter interface {
	Totals(ctx context.Context, period RevenuePeriod) (RevenueTotals, error)
	ByMethod(ctx context.Context, period RevenuePeriod) ([]MethodRevenue, error)
	// Daily returns one row per day with payments, ascending
	Daily(ctx context.Context, period RevenuePeriod) ([]DailyRevenue, error)
}
