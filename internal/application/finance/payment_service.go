package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Payment setup errors
var (
	ErrPaymentNotConfigured = shared.NewDomainError("PAYMENT_NOT_CONFIGURED", "Payment provider is not configured")
	ErrPaymentSetupRequired = shared.NewDomainError("PAYMENT_SETUP_REQUIRED", "Podcaster has not set up this payment method")
	ErrPodcasterNotFound    = shared.NewDomainError("PODCASTER_NOT_FOUND", "Podcaster not found")
)

// Defaults applied to PaymentOptions
const (
	DefaultCountry  = "US"
	DefaultCurrency = "usd"
)

// PaymentOptions holds provider settings used when starting checkouts
type PaymentOptions struct {
	ClientURL      string
	DefaultCountry string
	Currency       string
}

func (o PaymentOptions) withDefaults() PaymentOptions {
	o.ClientURL = strings.TrimRight(o.ClientURL, "/")
	if o.DefaultCountry == "" {
		o.DefaultCountry = DefaultCountry
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	o.Currency = strings.ToLower(o.Currency)
	return o
}

// PaymentService starts payments with Stripe Connect and PayPal
type PaymentService struct {
	paymentRepo finance.PaymentRepository
	userRepo    identity.UserRepository
	stripe      finance.StripeGateway
	paypal      finance.PayPalGateway
	opts        PaymentOptions
	publisher   shared.EventPublisher
	metrics     *telemetry.Metrics
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. Either gateway may be nil
// when the provider is disabled.
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	userRepo identity.UserRepository,
	stripe finance.StripeGateway,
	paypal finance.PayPalGateway,
	opts PaymentOptions,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		stripe:      stripe,
		paypal:      paypal,
		opts:        opts.withDefaults(),
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateStripeAccountLink returns a Stripe onboarding URL for the caller,
// creating the connected account on first use.
func (s *PaymentService) CreateStripeAccountLink(ctx context.Context, input StripeAccountLinkInput) (*StripeAccountLinkResult, error) {
	if s.stripe == nil {
		return nil, ErrPaymentNotConfigured
	}
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	accountID := user.StripeAccountID()
	if accountID == "" {
		country := strings.ToUpper(strings.TrimSpace(input.Country))
		if country == "" {
			country = s.opts.DefaultCountry
		}
		accountID, err = s.stripe.CreateConnectedAccount(ctx, finance.ConnectedAccountRequest{
			UserID:     user.ID,
			Email:      user.Email,
			Country:    country,
			ProfileURL: s.opts.ClientURL,
		})
		if err != nil {
			s.logger.Error("Failed to create Stripe account", zap.String("user_id", user.ID.String()), zap.Error(err))
			return nil, providerError(err)
		}
		user.SetStripeAccountID(accountID)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Stripe account created",
			zap.String("user_id", user.ID.String()),
			zap.String("account_id", accountID))
	}

	settingsURL := s.opts.ClientURL + "/settings?tab=payments"
	url, err := s.stripe.CreateOnboardingLink(ctx, finance.OnboardingLinkRequest{
		AccountID:  accountID,
		RefreshURL: settingsURL,
		ReturnURL:  settingsURL + "&stripe=success",
	})
	if err != nil {
		return nil, providerError(err)
	}
	return &StripeAccountLinkResult{URL: url}, nil
}

// CreateStripePaymentIntent starts a card payment routed to the podcaster's
// connected account, keeping the platform fee as the application fee.
func (s *PaymentService) CreateStripePaymentIntent(ctx context.Context, input CheckoutInput) (result *PaymentIntentResult, err error) {
	if s.stripe == nil {
		return nil, ErrPaymentNotConfigured
	}
	split, err := finance.CalculateFeeSplit(input.Amount)
	if err != nil {
		return nil, err
	}
	podcaster, err := s.loadPodcaster(ctx, input.PodcasterID)
	if err != nil {
		return nil, err
	}
	if podcaster.StripeAccountID() == "" {
		return nil, ErrPaymentSetupRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "payment.stripe_intent", attribute.Int64("amount", split.Amount))
	defer func() { telemetry.EndSpan(span, err) }()

	intent, err := s.stripe.CreatePaymentIntent(ctx, finance.PaymentIntentRequest{
		Amount:             split.Amount,
		Currency:           s.opts.Currency,
		ApplicationFee:     split.PlatformFee,
		DestinationAccount: podcaster.StripeAccountID(),
		Metadata:           input.metadata(),
	})
	if err != nil {
		s.logger.Error("Failed to create payment intent", zap.String("podcaster_id", podcaster.ID.String()), zap.Error(err))
		return nil, providerError(err)
	}

	if err = s.recordPending(ctx, intent.ID, finance.PaymentMethodStripe, input); err != nil {
		return nil, err
	}
	return &PaymentIntentResult{
		ClientSecret:         intent.ClientSecret,
		ApplicationFeeAmount: split.PlatformFee,
		CreatorAmount:        split.CreatorAmount,
	}, nil
}

// CreatePayPalOrder opens a PayPal order for the podcaster and records it as
// a pending payment.
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, input CheckoutInput) (result *PayPalOrderResult, err error) {
	if s.paypal == nil {
		return nil, ErrPaymentNotConfigured
	}
	split, err := finance.CalculateFeeSplit(input.Amount)
	if err != nil {
		return nil, err
	}
	podcaster, err := s.loadPodcaster(ctx, input.PodcasterID)
	if err != nil {
		return nil, err
	}
	if podcaster.PayPalEmail() == "" {
		return nil, ErrPaymentSetupRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "payment.paypal_order", attribute.Int64("amount", split.Amount))
	defer func() { telemetry.EndSpan(span, err) }()

	fee := finance.CentsToDollars(split.PlatformFee)
	creator := finance.CentsToDollars(split.CreatorAmount)
	order, err := s.paypal.CreateOrder(ctx, finance.PayPalOrderRequest{
		Amount:   split.Amount,
		Currency: s.opts.Currency,
		Metadata: input.metadata(),
		Description: fmt.Sprintf("Audio service payment (Platform fee: $%s, Creator: $%s)",
			fee.StringFixed(2), creator.StringFixed(2)),
	})
	if err != nil {
		s.logger.Error("Failed to create PayPal order", zap.String("podcaster_id", podcaster.ID.String()), zap.Error(err))
		return nil, providerError(err)
	}

	if err = s.recordPending(ctx, order.ID, finance.PaymentMethodPayPal, input); err != nil {
		return nil, err
	}
	return &PayPalOrderResult{
		OrderID:       order.ID,
		ApproveURL:    order.ApproveURL,
		PlatformFee:   fee.InexactFloat64(),
		CreatorAmount: creator.InexactFloat64(),
	}, nil
}

func (s *PaymentService) recordPending(ctx context.Context, orderID string, method finance.PaymentMethod, input CheckoutInput) error {
	payment, err := finance.NewPendingPayment(finance.NewPaymentInput{
		OrderID:         orderID,
		Method:          method,
		Amount:          input.Amount,
		PodcasterID:     input.PodcasterID,
		CustomerID:      input.CustomerID,
		PricingOptionID: input.PricingOptionID,
		AudioRequestID:  input.AudioRequestID,
	})
	if err != nil {
		return err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to record pending payment", zap.String("order_id", orderID), zap.Error(err))
		return err
	}
	s.metrics.RecordPayment(method.String(), string(finance.PaymentStatusPending), payment.Amount)
	publishEvents(ctx, s.publisher, s.logger, payment)

	s.logger.Info("Payment started",
		zap.String("order_id", orderID),
		zap.String("method", method.String()),
		zap.Int64("amount", payment.Amount),
		zap.Int64("platform_fee", payment.PlatformFee))
	return nil
}

func (s *PaymentService) loadPodcaster(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrPodcasterNotFound
		}
		return nil, err
	}
	return user, nil
}

// providerError maps gateway failures onto domain errors
func providerError(err error) error {
	switch {
	case errors.Is(err, finance.ErrGatewayNotConfigured):
		return errors.Join(ErrPaymentNotConfigured, err)
	case errors.Is(err, finance.ErrGatewayRequestFailed), errors.Is(err, finance.ErrGatewayInvalidResponse):
		return errors.Join(shared.ErrPaymentProvider, err)
	}
	return err
}

func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, agg interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	events := agg.GetDomainEvents()
	agg.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish events", zap.String("event_type", events[0].EventType()), zap.Error(err))
	}
}
