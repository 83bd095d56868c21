// Package billing adapts Stripe Connect to the finance gateway port.
package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"go.uber.org/zap"
)

// Metadata keys attached to payment intents and echoed back in webhooks
const (
	MetadataPodcasterID     = "podcasterId"
	MetadataCustomerID      = "customerId"
	MetadataPricingOptionID = "pricingOptionId"
	MetadataAudioRequestID  = "audioRequestId"
	MetadataUserID          = "userId"
)

// StripeConnectAdapter implements finance.StripeGateway with Express accounts
// and destination charges.
type StripeConnectAdapter struct {
	api            *client.API
	webhookSecret  string
	defaultCountry string
	currency       string
	logger         *zap.Logger
}

// StripeOption configures the adapter
type StripeOption func(*stripeOptions)

type stripeOptions struct {
	backends *stripe.Backends
}

// WithBackends replaces the HTTP backends, used by tests
func WithBackends(backends *stripe.Backends) StripeOption {
	return func(o *stripeOptions) {
		o.backends = backends
	}
}

// NewStripeConnectAdapter creates the adapter
func NewStripeConnectAdapter(cfg config.StripeConfig, logger *zap.Logger, opts ...StripeOption) (*StripeConnectAdapter, error) {
	if err := ValidateStripeConfig(cfg); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	o := &stripeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	country := cfg.DefaultCountry
	if country == "" {
		country = "US"
	}
	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "usd"
	}

	return &StripeConnectAdapter{
		api:            client.New(cfg.SecretKey, o.backends),
		webhookSecret:  cfg.WebhookSecret,
		defaultCountry: country,
		currency:       currency,
		logger:         logger,
	}, nil
}

var _ finance.StripeGateway = (*StripeConnectAdapter)(nil)

// CreateConnectedAccount opens an Express account for a creator
func (a *StripeConnectAdapter) CreateConnectedAccount(ctx context.Context, req finance.ConnectedAccountRequest) (string, error) {
	country := req.Country
	if country == "" {
		country = a.defaultCountry
	}

	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Country: stripe.String(strings.ToUpper(country)),
		Email:   stripe.String(req.Email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
		BusinessType: stripe.String(string(stripe.AccountBusinessTypeIndividual)),
	}
	if req.ProfileURL != "" {
		params.BusinessProfile = &stripe.AccountBusinessProfileParams{URL: stripe.String(req.ProfileURL)}
	}
	params.AddMetadata(MetadataUserID, req.UserID.String())
	params.Context = ctx

	acct, err := a.api.Accounts.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe account",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err))
		return "", providerError("create account", err)
	}

	a.logger.Info("Created Stripe Express account",
		zap.String("user_id", req.UserID.String()),
		zap.String("account_id", acct.ID))
	return acct.ID, nil
}

// CreateOnboardingLink returns the hosted onboarding URL for an account
func (a *StripeConnectAdapter) CreateOnboardingLink(ctx context.Context, req finance.OnboardingLinkRequest) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(req.AccountID),
		RefreshURL: stripe.String(req.RefreshURL),
		ReturnURL:  stripe.String(req.ReturnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := a.api.AccountLinks.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe account link",
			zap.String("account_id", req.AccountID),
			zap.Error(err))
		return "", providerError("create account link", err)
	}
	return link.URL, nil
}

// CreatePaymentIntent creates a destination charge that routes the creator
// share to the connected account and keeps the application fee.
func (a *StripeConnectAdapter) CreatePaymentIntent(ctx context.Context, req finance.PaymentIntentRequest) (*finance.PaymentIntent, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = a.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(req.Amount),
		Currency:             stripe.String(currency),
		ApplicationFeeAmount: stripe.Int64(req.ApplicationFee),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(req.DestinationAccount),
		},
	}
	for k, v := range metadataToStripe(req.Metadata) {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	pi, err := a.api.PaymentIntents.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe payment intent",
			zap.Int64("amount", req.Amount),
			zap.String("destination", req.DestinationAccount),
			zap.Error(err))
		return nil, providerError("create payment intent", err)
	}

	a.logger.Info("Created Stripe payment intent",
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount", req.Amount),
		zap.Int64("application_fee", req.ApplicationFee))
	return &finance.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func metadataToStripe(m finance.PaymentMetadata) map[string]string {
	out := map[string]string{
		MetadataPodcasterID:     m.PodcasterID.String(),
		MetadataCustomerID:      m.CustomerID.String(),
		MetadataPricingOptionID: m.PricingOptionID.String(),
	}
	if m.AudioRequestID != nil {
		out[MetadataAudioRequestID] = m.AudioRequestID.String()
	}
	return out
}

// providerError keeps Stripe's message for logs while classifying the failure
func providerError(op string, err error) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		return fmt.Errorf("%w: stripe %s: %s (%s)", finance.ErrGatewayRequestFailed, op, stripeErr.Msg, stripeErr.Code)
	}
	return fmt.Errorf("%w: stripe %s: %v", finance.ErrGatewayRequestFailed, op, err)
}
