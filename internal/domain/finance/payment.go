package finance

import (
	"strings"
	"time"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the share of every payment kept by the platform
var PlatformFeeRate = decimal.RequireFromString("0.40")

// Payment errors
var (
	ErrPaymentNotFound      = shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	ErrInvalidAmount        = shared.NewDomainError("INVALID_AMOUNT", "Amount must be a positive number of cents")
	ErrInvalidOrderID       = shared.NewDomainError("INVALID_ORDER_ID", "Provider order id is required")
	ErrInvalidPaymentMethod = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be stripe or paypal")
)

// PaymentMethod is the provider a payment went through
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// IsValid reports whether the method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodStripe || m == PaymentMethodPayPal
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus is the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// FeeSplit divides a payment between platform and creator. All amounts are in cents.
type FeeSplit struct {
	Amount        int64
	PlatformFee   int64
	CreatorAmount int64
}

// CalculateFeeSplit rounds the platform share half away from zero and gives
// the remainder to the creator, so the two parts always sum to the amount.
func CalculateFeeSplit(amountCents int64) (FeeSplit, error) {
	if amountCents <= 0 {
		return FeeSplit{}, ErrInvalidAmount
	}
	fee := decimal.NewFromInt(amountCents).Mul(PlatformFeeRate).Round(0).IntPart()
	return FeeSplit{
		Amount:        amountCents,
		PlatformFee:   fee,
		CreatorAmount: amountCents - fee,
	}, nil
}

// CentsToDollars converts cents into a two-decimal dollar amount
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// DollarsToCents converts a dollar amount into cents, rounding to the nearest cent
func DollarsToCents(dollars decimal.Decimal) int64 {
	return dollars.Shift(2).Round(0).IntPart()
}

// Payment records money moving from a fan to a creator through a provider
type Payment struct {
	shared.BaseAggregateRoot
	OrderID         string
	Amount          int64
	PlatformFee     int64
	CreatorAmount   int64
	PodcasterID     uuid.UUID
	CustomerID      uuid.UUID
	PricingOptionID uuid.UUID
	AudioRequestID  *uuid.UUID
	Method          PaymentMethod
	Status          PaymentStatus
	TransferID      string
	CompletedAt     *time.Time
}

// NewPaymentInput contains the data required to record a payment
type NewPaymentInput struct {
	OrderID         string
	Method          PaymentMethod
	Amount          int64
	PodcasterID     uuid.UUID
	CustomerID      uuid.UUID
	PricingOptionID uuid.UUID
	AudioRequestID  *uuid.UUID
}

// NewPendingPayment records a payment that is waiting for provider confirmation
func NewPendingPayment(input NewPaymentInput) (*Payment, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if !input.Method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	split, err := CalculateFeeSplit(input.Amount)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           input.OrderID,
		Amount:            split.Amount,
		PlatformFee:       split.PlatformFee,
		CreatorAmount:     split.CreatorAmount,
		PodcasterID:       input.PodcasterID,
		CustomerID:        input.CustomerID,
		PricingOptionID:   input.PricingOptionID,
		AudioRequestID:    input.AudioRequestID,
		Method:            input.Method,
		Status:            PaymentStatusPending,
	}
	p.AddDomainEvent(NewPaymentCreatedEvent(p))
	return p, nil
}

// Complete marks the payment as captured.
// Returns false when it was already completed.
func (p *Payment) Complete(transferID string, at time.Time) (bool, error) {
	switch p.Status {
	case PaymentStatusCompleted:
		return false, nil
	case PaymentStatusRefunded:
		return false, shared.NewDomainError("INVALID_STATE", "A refunded payment cannot be completed")
	}

	p.Status = PaymentStatusCompleted
	if transferID != "" {
		p.TransferID = transferID
	}
	p.CompletedAt = &at
	p.Touch()
	p.AddDomainEvent(NewPaymentCompletedEvent(p))
	return true, nil
}

// Fail marks a pending payment as failed
func (p *Payment) Fail() error {
	if p.Status == PaymentStatusFailed {
		return nil
	}
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can fail")
	}
	p.Status = PaymentStatusFailed
	p.Touch()
	p.AddDomainEvent(NewPaymentFailedEvent(p))
	return nil
}

// Refund marks a completed payment as refunded
func (p *Payment) Refund() error {
	if p.Status == PaymentStatusRefunded {
		return nil
	}
	if p.Status != PaymentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only completed payments can be refunded")
	}
	p.Status = PaymentStatusRefunded
	p.Touch()
	p.AddDomainEvent(NewPaymentRefundedEvent(p))
	return nil
}

// IsStale reports whether a pending payment has waited longer than ttl
func (p *Payment) IsStale(now time.Time, ttl time.Duration) bool {
	return p.Status == PaymentStatusPending && now.Sub(p.CreatedAt) > ttl
}

// LinkAudioRequest attaches the audio request the payment pays for
func (p *Payment) LinkAudioRequest(id uuid.UUID) {
	p.AudioRequestID = &id
	p.Touch()
}
