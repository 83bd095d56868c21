package billing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// Stripe event types the platform acts on
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
	EventChargeRefunded         = "charge.refunded"
)

// ParseWebhook verifies the Stripe-Signature header and normalizes the event.
// Events are accepted regardless of the API version they were rendered with.
func (a *StripeConnectAdapter) ParseWebhook(payload []byte, signature string) (*finance.PaymentEvent, error) {
	if a.webhookSecret == "" {
		return nil, fmt.Errorf("%w: stripe webhook secret", finance.ErrGatewayNotConfigured)
	}
	if signature == "" {
		return nil, fmt.Errorf("%w: missing Stripe-Signature header", finance.ErrGatewayInvalidCallback)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, a.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		a.logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", finance.ErrGatewayInvalidCallback, err)
	}

	out := &finance.PaymentEvent{
		EventID:    event.ID,
		Provider:   finance.PaymentMethodStripe,
		Type:       string(event.Type),
		Kind:       finance.PaymentEventIgnored,
		OccurredAt: time.Unix(event.Created, 0).UTC(),
	}

	switch string(event.Type) {
	case EventPaymentIntentSucceeded, EventPaymentIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("%w: payment intent: %v", finance.ErrGatewayInvalidResponse, err)
		}
		out.OrderID = pi.ID
		out.Amount = pi.Amount
		out.Metadata = metadataFromStripe(pi.Metadata)
		if pi.LatestCharge != nil {
			out.TransferID = pi.LatestCharge.ID
		}
		out.Kind = finance.PaymentEventSucceeded
		if string(event.Type) == EventPaymentIntentFailed {
			out.Kind = finance.PaymentEventFailed
		}

	case EventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("%w: charge: %v", finance.ErrGatewayInvalidResponse, err)
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			a.logger.Warn("Refunded charge has no payment intent", zap.String("charge_id", charge.ID))
			return out, nil
		}
		out.OrderID = charge.PaymentIntent.ID
		out.Amount = charge.AmountRefunded
		out.Metadata = metadataFromStripe(charge.Metadata)
		out.TransferID = charge.ID
		out.Kind = finance.PaymentEventRefunded
	}

	return out, nil
}

func metadataFromStripe(md map[string]string) finance.PaymentMetadata {
	parse := func(key string) uuid.UUID {
		id, err := uuid.Parse(md[key])
		if err != nil {
			return uuid.Nil
		}
		return id
	}

	out := finance.PaymentMetadata{
		PodcasterID:     parse(MetadataPodcasterID),
		CustomerID:      parse(MetadataCustomerID),
		PricingOptionID: parse(MetadataPricingOptionID),
	}
	if id := parse(MetadataAudioRequestID); id != uuid.Nil {
		out.AudioRequestID = &id
	}
	return out
}
