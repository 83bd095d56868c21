package finance

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Webhook errors
var (
	ErrInvalidSignature = shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	ErrInvalidWebhook   = shared.NewDomainError("INVALID_WEBHOOK", "Webhook payload could not be parsed")
)

// Webhook outcomes reported to metrics
const (
	webhookProcessed = "processed"
	webhookDuplicate = "duplicate"
	webhookIgnored   = "ignored"
	webhookRejected  = "rejected"
)

// WebhookService applies provider notifications to payments and the audio
// requests they pay for. Deliveries are deduplicated by provider event id.
type WebhookService struct {
	paymentRepo finance.PaymentRepository
	requestRepo audiorequest.AudioRequestRepository
	stripe      finance.StripeGateway
	paypal      finance.PayPalGateway
	processed   shared.IdempotencyStore
	publisher   shared.EventPublisher
	metrics     *telemetry.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewWebhookService creates a new WebhookService. processed may be nil, in
// which case redelivered events are applied again.
func NewWebhookService(
	paymentRepo finance.PaymentRepository,
	requestRepo audiorequest.AudioRequestRepository,
	stripe finance.StripeGateway,
	paypal finance.PayPalGateway,
	processed shared.IdempotencyStore,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		paymentRepo: paymentRepo,
		requestRepo: requestRepo,
		stripe:      stripe,
		paypal:      paypal,
		processed:   processed,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleStripe verifies and applies a Stripe webhook delivery
func (s *WebhookService) HandleStripe(ctx context.Context, payload []byte, signature string) error {
	if s.stripe == nil {
		return ErrPaymentNotConfigured
	}
	event, err := s.stripe.ParseWebhook(payload, signature)
	if err != nil {
		return s.rejected(finance.PaymentMethodStripe, err)
	}
	return s.apply(ctx, event)
}

// HandlePayPal verifies and applies a PayPal webhook delivery
func (s *WebhookService) HandlePayPal(ctx context.Context, headers http.Header, payload []byte) error {
	if s.paypal == nil {
		return ErrPaymentNotConfigured
	}
	event, err := s.paypal.ParseWebhook(ctx, headers, payload)
	if err != nil {
		return s.rejected(finance.PaymentMethodPayPal, err)
	}
	return s.apply(ctx, event)
}

func (s *WebhookService) rejected(provider finance.PaymentMethod, err error) error {
	s.metrics.RecordWebhook(provider.String(), webhookRejected)
	s.logger.Warn("Webhook rejected", zap.String("provider", provider.String()), zap.Error(err))
	switch {
	case errors.Is(err, finance.ErrGatewayInvalidCallback):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, finance.ErrGatewayNotConfigured):
		return errors.Join(ErrPaymentNotConfigured, err)
	case errors.Is(err, finance.ErrGatewayInvalidResponse):
		return errors.Join(ErrInvalidWebhook, err)
	}
	return providerError(err)
}

func (s *WebhookService) apply(ctx context.Context, event *finance.PaymentEvent) (err error) {
	provider := event.Provider.String()
	ctx, span := telemetry.StartSpan(ctx, "payment.webhook",
		attribute.String("provider", provider),
		attribute.String("event_type", event.Type))
	defer func() { telemetry.EndSpan(span, err) }()

	log := s.logger.With(
		zap.String("provider", provider),
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.Type),
		zap.String("order_id", event.OrderID))

	key := event.IdempotencyKey()
	if s.processed != nil {
		done, checkErr := s.processed.IsProcessed(ctx, key)
		if checkErr != nil {
			log.Warn("Idempotency check failed", zap.Error(checkErr))
		} else if done {
			s.metrics.RecordWebhook(provider, webhookDuplicate)
			log.Debug("Duplicate webhook ignored")
			return nil
		}
	}

	outcome := webhookProcessed
	switch event.Kind {
	case finance.PaymentEventSucceeded:
		err = s.applySucceeded(ctx, event, log)
	case finance.PaymentEventFailed:
		err = s.applyFailed(ctx, event, log)
	case finance.PaymentEventRefunded:
		err = s.applyRefunded(ctx, event, log)
	default:
		outcome = webhookIgnored
	}
	if err != nil {
		s.metrics.RecordWebhook(provider, webhookRejected)
		log.Error("Webhook processing failed", zap.Error(err))
		return err
	}

	if s.processed != nil {
		if _, markErr := s.processed.MarkProcessed(ctx, key, shared.DefaultIdempotencyTTL); markErr != nil {
			log.Warn("Failed to record processed webhook", zap.Error(markErr))
		}
	}
	s.metrics.RecordWebhook(provider, outcome)
	return nil
}

// applySucceeded completes the payment and marks the linked audio request
// paid. Unknown Stripe intents are recorded from their metadata; unknown
// PayPal orders are an error.
func (s *WebhookService) applySucceeded(ctx context.Context, event *finance.PaymentEvent, log *zap.Logger) error {
	payment, err := s.paymentRepo.FindByOrderID(ctx, event.OrderID)
	created := false
	switch {
	case isMissing(err):
		if event.Provider != finance.PaymentMethodStripe {
			return finance.ErrPaymentNotFound
		}
		payment, err = finance.NewPendingPayment(finance.NewPaymentInput{
			OrderID:         event.OrderID,
			Method:          event.Provider,
			Amount:          event.Amount,
			PodcasterID:     event.Metadata.PodcasterID,
			CustomerID:      event.Metadata.CustomerID,
			PricingOptionID: event.Metadata.PricingOptionID,
			AudioRequestID:  event.Metadata.AudioRequestID,
		})
		if err != nil {
			return err
		}
		created = true
	case err != nil:
		return err
	}

	if payment.AudioRequestID == nil && event.Metadata.AudioRequestID != nil {
		payment.LinkAudioRequest(*event.Metadata.AudioRequestID)
	}
	completed, err := payment.Complete(event.TransferID, s.now())
	if err != nil {
		return err
	}

	req, err := s.linkedRequest(ctx, payment, true)
	if err != nil {
		return err
	}
	if req != nil && payment.AudioRequestID == nil {
		payment.LinkAudioRequest(req.ID)
	}

	if created {
		err = s.paymentRepo.Create(ctx, payment)
	} else {
		err = s.paymentRepo.Update(ctx, payment)
	}
	if err != nil {
		return err
	}
	if completed {
		s.metrics.RecordPayment(payment.Method.String(), string(finance.PaymentStatusCompleted), payment.Amount)
		log.Info("Payment completed",
			zap.Int64("amount", payment.Amount),
			zap.String("transfer_id", payment.TransferID))
	}
	publishEvents(ctx, s.publisher, s.logger, payment)

	if req != nil && req.MarkPaid(payment.OrderID, audiorequest.PaymentMethod(payment.Method)) {
		if err := s.requestRepo.Update(ctx, req); err != nil {
			return err
		}
		publishEvents(ctx, s.publisher, s.logger, req)
		log.Info("Audio request paid", zap.String("request_id", req.ID.String()))
	}
	return nil
}

func (s *WebhookService) applyFailed(ctx context.Context, event *finance.PaymentEvent, log *zap.Logger) error {
	payment, err := s.eventPayment(ctx, event)
	if err != nil {
		if isMissing(err) {
			log.Warn("Failure reported for unknown payment")
			return nil
		}
		return err
	}
	if err := payment.Fail(); err != nil {
		log.Warn("Payment failure ignored", zap.String("status", string(payment.Status)), zap.Error(err))
		return nil
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}
	s.metrics.RecordPayment(payment.Method.String(), string(finance.PaymentStatusFailed), payment.Amount)
	publishEvents(ctx, s.publisher, s.logger, payment)
	log.Info("Payment failed")
	return nil
}

func (s *WebhookService) applyRefunded(ctx context.Context, event *finance.PaymentEvent, log *zap.Logger) error {
	payment, err := s.eventPayment(ctx, event)
	if err != nil {
		if isMissing(err) {
			log.Warn("Refund reported for unknown payment")
			return nil
		}
		return err
	}
	if err := payment.Refund(); err != nil {
		log.Warn("Payment refund ignored", zap.String("status", string(payment.Status)), zap.Error(err))
		return nil
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}
	s.metrics.RecordPayment(payment.Method.String(), string(finance.PaymentStatusRefunded), payment.Amount)
	publishEvents(ctx, s.publisher, s.logger, payment)
	log.Info("Payment refunded")

	req, err := s.linkedRequest(ctx, payment, false)
	if err != nil || req == nil {
		return err
	}
	if req.Refund() {
		if err := s.requestRepo.Update(ctx, req); err != nil {
			return err
		}
		publishEvents(ctx, s.publisher, s.logger, req)
	}
	return nil
}

// eventPayment finds the payment an event refers to, by order id or, for
// refunds that only name the settled capture, by transfer id
func (s *WebhookService) eventPayment(ctx context.Context, event *finance.PaymentEvent) (*finance.Payment, error) {
	if event.OrderID == "" && event.CaptureID != "" {
		return s.paymentRepo.FindByTransferID(ctx, event.CaptureID)
	}
	return s.paymentRepo.FindByOrderID(ctx, event.OrderID)
}

func isMissing(err error) bool {
	return errors.Is(err, shared.ErrNotFound) || errors.Is(err, finance.ErrPaymentNotFound)
}

// linkedRequest resolves the audio request a payment pays for: the stored
// link first, then (when fallback is set) the customer's newest request
// awaiting payment for the same creator and pricing option.
func (s *WebhookService) linkedRequest(ctx context.Context, payment *finance.Payment, fallback bool) (*audiorequest.AudioRequest, error) {
	var (
		req *audiorequest.AudioRequest
		err error
	)
	switch {
	case payment.AudioRequestID != nil:
		req, err = s.requestRepo.FindByID(ctx, *payment.AudioRequestID)
	case fallback && payment.CustomerID != uuid.Nil:
		req, err = s.requestRepo.FindLatestAwaitingPayment(ctx, payment.CustomerID, payment.PodcasterID, payment.PricingOptionID)
	default:
		return nil, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Debug("No audio request linked to payment", zap.String("order_id", payment.OrderID))
		return nil, nil
	}
	return req, err
}
