package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PayPal webhook event types the platform acts on
const (
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	EventCaptureRefunded  = "PAYMENT.CAPTURE.REFUNDED"
	EventCaptureDenied    = "PAYMENT.CAPTURE.DENIED"
)

// transmission headers PayPal signs every webhook delivery with
var transmissionHeaders = map[string]string{
	"auth_algo":         "Paypal-Auth-Algo",
	"cert_url":          "Paypal-Cert-Url",
	"transmission_id":   "Paypal-Transmission-Id",
	"transmission_sig":  "Paypal-Transmission-Sig",
	"transmission_time": "Paypal-Transmission-Time",
}

// ParseWebhook verifies the delivery through PayPal's verification API when a
// webhook id is configured, then normalizes the event.
func (a *PayPalAdapter) ParseWebhook(ctx context.Context, headers http.Header, payload []byte) (*finance.PaymentEvent, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: paypal webhook body is not JSON", finance.ErrGatewayInvalidCallback)
	}
	if a.cfg.WebhookID != "" {
		if err := a.verifySignature(ctx, headers, payload); err != nil {
			return nil, err
		}
	}

	event := gjson.ParseBytes(payload)
	out := &finance.PaymentEvent{
		EventID:  event.Get("id").String(),
		Provider: finance.PaymentMethodPayPal,
		Type:     event.Get("event_type").String(),
		Kind:     finance.PaymentEventIgnored,
	}
	if out.EventID == "" {
		return nil, fmt.Errorf("%w: paypal webhook has no id", finance.ErrGatewayInvalidCallback)
	}
	if t, err := time.Parse(time.RFC3339, event.Get("create_time").String()); err == nil {
		out.OccurredAt = t.UTC()
	}

	switch out.Type {
	case EventCaptureCompleted:
		out.Kind = finance.PaymentEventSucceeded
	case EventCaptureRefunded:
		out.Kind = finance.PaymentEventRefunded
	case EventCaptureDenied:
		out.Kind = finance.PaymentEventFailed
	default:
		return out, nil
	}

	resource := event.Get("resource")
	out.OrderID = resource.Get("supplementary_data.related_ids.order_id").String()
	out.TransferID = resource.Get("id").String()
	out.Amount = amountCents(resource.Get("amount.value").String())
	out.Metadata = ParseCustomID(resource.Get("custom_id").String())
	if out.Kind == finance.PaymentEventRefunded {
		out.CaptureID = refundedCaptureID(resource)
	}

	if out.OrderID == "" && out.CaptureID == "" {
		a.logger.Warn("PayPal webhook resource has no related order id",
			zap.String("event_id", out.EventID),
			zap.String("event_type", out.Type))
	}
	return out, nil
}

// refundedCaptureID reads the capture a refund belongs to from its "up" link,
// e.g. https://api.paypal.com/v2/payments/captures/2GG279541U471931P
func refundedCaptureID(refund gjson.Result) string {
	href := refund.Get(`links.#(rel=="up").href`).String()
	if href == "" {
		return ""
	}
	href = strings.TrimRight(href, "/")
	if !strings.Contains(href, "/captures/") {
		return ""
	}
	return href[strings.LastIndex(href, "/")+1:]
}

func (a *PayPalAdapter) verifySignature(ctx context.Context, headers http.Header, payload []byte) error {
	body := map[string]any{
		"webhook_id":    a.cfg.WebhookID,
		"webhook_event": json.RawMessage(payload),
	}
	for field, header := range transmissionHeaders {
		value := headers.Get(header)
		if value == "" {
			return fmt.Errorf("%w: missing %s header", finance.ErrGatewayInvalidCallback, header)
		}
		body[field] = value
	}

	resp, err := a.callJSON(ctx, http.MethodPost, paypalVerifyWebhookURL, body, nil)
	if err != nil {
		return err
	}
	if status := gjson.GetBytes(resp, "verification_status").String(); status != "SUCCESS" {
		a.logger.Warn("PayPal webhook signature rejected", zap.String("verification_status", status))
		return fmt.Errorf("%w: verification status %q", finance.ErrGatewayInvalidCallback, status)
	}
	return nil
}

// CustomID encodes the payment context as "customer_podcaster_option"
func CustomID(m finance.PaymentMetadata) string {
	return m.CustomerID.String() + "_" + m.PodcasterID.String() + "_" + m.PricingOptionID.String()
}

// ParseCustomID reverses CustomID; malformed parts decode to uuid.Nil
func ParseCustomID(s string) finance.PaymentMetadata {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return finance.PaymentMetadata{}
	}
	parse := func(v string) uuid.UUID {
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil
		}
		return id
	}
	return finance.PaymentMetadata{
		CustomerID:      parse(parts[0]),
		PodcasterID:     parse(parts[1]),
		PricingOptionID: parse(parts[2]),
	}
}

func amountCents(value string) int64 {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	return finance.DollarsToCents(d)
}
