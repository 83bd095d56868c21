package finance

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Gateway Errors
// ---------------------------------------------------------------------------

var (
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrGatewayInvalidCallback = errors.New("payment: invalid callback signature")
)

// ---------------------------------------------------------------------------
// Webhook events
// ---------------------------------------------------------------------------

// PaymentEventKind is the normalized meaning of a provider webhook
type PaymentEventKind string

const (
	PaymentEventSucceeded PaymentEventKind = "succeeded"
	PaymentEventFailed    PaymentEventKind = "failed"
	PaymentEventRefunded  PaymentEventKind = "refunded"
	// PaymentEventIgnored covers event types the platform does not act on
	PaymentEventIgnored PaymentEventKind = "ignored"
)

// PaymentMetadata is the context attached to a provider payment at creation.
// Zero ids mean the provider did not echo the value back.
type PaymentMetadata struct {
	PodcasterID     uuid.UUID
	CustomerID      uuid.UUID
	PricingOptionID uuid.UUID
	AudioRequestID  *uuid.UUID
}

// PaymentEvent is a verified, provider-neutral webhook notification
type PaymentEvent struct {
	EventID    string
	Provider   PaymentMethod
	Type       string
	Kind       PaymentEventKind
	OrderID    string
	Amount     int64
	Metadata   PaymentMetadata
	TransferID string
	// CaptureID names the settled charge a refund reverses when the
	// provider does not repeat the order id
	CaptureID  string
	OccurredAt time.Time
}

// IdempotencyKey identifies a webhook delivery across retries
func (e *PaymentEvent) IdempotencyKey() string {
	return "webhook:" + e.Provider.String() + ":" + e.EventID
}

// ---------------------------------------------------------------------------
// Stripe Connect
// ---------------------------------------------------------------------------

// ConnectedAccountRequest describes an Express account to open for a creator
type ConnectedAccountRequest struct {
	UserID     uuid.UUID
	Email      string
	Country    string
	ProfileURL string
}

// OnboardingLinkRequest asks for a hosted onboarding URL
type OnboardingLinkRequest struct {
	AccountID  string
	RefreshURL string
	ReturnURL  string
}

// PaymentIntentRequest creates a destination charge with an application fee
type PaymentIntentRequest struct {
	Amount             int64
	Currency           string
	ApplicationFee     int64
	DestinationAccount string
	Metadata           PaymentMetadata
}

// PaymentIntent is the client-facing result of a created intent
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// StripeGateway is the port to Stripe Connect
type StripeGateway interface {
	CreateConnectedAccount(ctx context.Context, req ConnectedAccountRequest) (string, error)
	CreateOnboardingLink(ctx context.Context, req OnboardingLinkRequest) (string, error)
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
	// ParseWebhook verifies the signature header and normalizes the event
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

// ---------------------------------------------------------------------------
// PayPal Orders
// ---------------------------------------------------------------------------

// PayPalOrderRequest creates a CAPTURE intent order
type PayPalOrderRequest struct {
	Amount      int64
	Currency    string
	Metadata    PaymentMetadata
	Description string
}

// PayPalOrder is the created order
type PayPalOrder struct {
	ID         string
	Status     string
	ApproveURL string
}

// PayPalGateway is the port to the PayPal Orders v2 API
type PayPalGateway interface {
	CreateOrder(ctx context.Context, req PayPalOrderRequest) (*PayPalOrder, error)
	// ParseWebhook verifies the transmission headers (when a webhook id is configured)
	// and normalizes the event
	ParseWebhook(ctx context.Context, headers http.Header, payload []byte) (*PaymentEvent, error)
}
