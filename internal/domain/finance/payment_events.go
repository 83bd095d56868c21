package finance

import (
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Payment
const AggregateTypePayment = "Payment"

// Payment domain event types
const (
	EventTypePaymentCreated   = "payment.created"
	EventTypePaymentCompleted = "payment.completed"
	EventTypePaymentFailed    = "payment.failed"
	EventTypePaymentRefunded  = "payment.refunded"
)

// PaymentEventPayload is shared by every payment lifecycle event
type PaymentEventPayload struct {
	OrderID        string        `json:"order_id"`
	Amount         int64         `json:"amount"`
	PlatformFee    int64         `json:"platform_fee"`
	CreatorAmount  int64         `json:"creator_amount"`
	PodcasterID    uuid.UUID     `json:"podcaster_id"`
	CustomerID     uuid.UUID     `json:"customer_id"`
	AudioRequestID *uuid.UUID    `json:"audio_request_id,omitempty"`
	Method         PaymentMethod `json:"method"`
}

func payloadOf(p *Payment) PaymentEventPayload {
	return PaymentEventPayload{
		OrderID:        p.OrderID,
		Amount:         p.Amount,
		PlatformFee:    p.PlatformFee,
		CreatorAmount:  p.CreatorAmount,
		PodcasterID:    p.PodcasterID,
		CustomerID:     p.CustomerID,
		AudioRequestID: p.AudioRequestID,
		Method:         p.Method,
	}
}

// PaymentCreatedEvent is published when a pending payment is recorded
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentEventPayload
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID),
		PaymentEventPayload: payloadOf(p),
	}
}

// PaymentCompletedEvent is published when the provider confirms the capture
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	PaymentEventPayload
	TransferID string `json:"transfer_id,omitempty"`
}

// NewPaymentCompletedEvent creates a new PaymentCompletedEvent
func NewPaymentCompletedEvent(p *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypePaymentCompleted, AggregateTypePayment, p.ID),
		PaymentEventPayload: payloadOf(p),
		TransferID:          p.TransferID,
	}
}

// PaymentFailedEvent is published when a payment fails or goes stale
type PaymentFailedEvent struct {
	shared.BaseDomainEvent
	PaymentEventPayload
}

// NewPaymentFailedEvent creates a new PaymentFailedEvent
func NewPaymentFailedEvent(p *Payment) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypePaymentFailed, AggregateTypePayment, p.ID),
		PaymentEventPayload: payloadOf(p),
	}
}

// PaymentRefundedEvent is published when a completed payment is refunded
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	PaymentEventPayload
}

// NewPaymentRefundedEvent creates a new PaymentRefundedEvent
func NewPaymentRefundedEvent(p *Payment) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypePaymentRefunded, AggregateTypePayment, p.ID),
		PaymentEventPayload: payloadOf(p),
	}
}
