package finance

import (
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// StripeAccountLinkInput starts Stripe Connect onboarding for a creator
type StripeAccountLinkInput struct {
	UserID  uuid.UUID
	Country string
}

// StripeAccountLinkResult carries the hosted onboarding URL
type StripeAccountLinkResult struct {
	URL string `json:"url"`
}

// CheckoutInput describes a fan paying a creator. Amount is in cents.
type CheckoutInput struct {
	CustomerID      uuid.UUID
	PodcasterID     uuid.UUID
	PricingOptionID uuid.UUID
	AudioRequestID  *uuid.UUID
	Amount          int64
}

func (in CheckoutInput) metadata() finance.PaymentMetadata {
	return finance.PaymentMetadata{
		PodcasterID:     in.PodcasterID,
		CustomerID:      in.CustomerID,
		PricingOptionID: in.PricingOptionID,
		AudioRequestID:  in.AudioRequestID,
	}
}

// PaymentIntentResult is returned to the client to confirm a card payment.
// Amounts are in cents.
type PaymentIntentResult struct {
	ClientSecret         string `json:"clientSecret"`
	ApplicationFeeAmount int64  `json:"applicationFeeAmount"`
	CreatorAmount        int64  `json:"creatorAmount"`
}

// PayPalOrderResult is returned to the client to approve a PayPal order.
// Amounts are in dollars.
type PayPalOrderResult struct {
	OrderID       string  `json:"orderId"`
	ApproveURL    string  `json:"approveUrl,omitempty"`
	PlatformFee   float64 `json:"platformFee"`
	CreatorAmount float64 `json:"creatorAmount"`
}

// RevenueReport is the admin revenue overview
type RevenueReport struct {
	TotalRevenue    finance.RevenueTotals   `json:"totalRevenue"`
	RevenueByMethod []finance.MethodRevenue `json:"revenueByMethod"`
	DailyRevenue    []finance.DailyRevenue  `json:"dailyRevenue"`
}
