package audiorequest

import (
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Audio request domain event types
const (
	EventTypeAudioRequestCreated       = "audio_request.created"
	EventTypeAudioRequestStatusChanged = "audio_request.status_changed"
	EventTypeAudioRequestPaid          = "audio_request.paid"
)

// AudioRequestCreatedEvent is published when a fan places a request
type AudioRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequesterID    *uuid.UUID      `json:"requester_id,omitempty"`
	CreatorID      uuid.UUID       `json:"creator_id"`
	RequestDetails string          `json:"request_details"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
}

// NewAudioRequestCreatedEvent creates a new AudioRequestCreatedEvent
func NewAudioRequestCreatedEvent(r *AudioRequest) *AudioRequestCreatedEvent {
	return &AudioRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAudioRequestCreated, AggregateTypeAudioRequest, r.ID),
		RequesterID:     r.RequesterID,
		CreatorID:       r.CreatorID,
		RequestDetails:  r.RequestDetails,
		Title:           r.PricingDetails.Title,
		Price:           r.PricingDetails.Price,
	}
}

// AudioRequestStatusChangedEvent is published on every status transition
type AudioRequestStatusChangedEvent struct {
	shared.BaseDomainEvent
	RequesterID *uuid.UUID `json:"requester_id,omitempty"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	Title       string     `json:"title"`
	OldStatus   Status     `json:"old_status"`
	NewStatus   Status     `json:"new_status"`
}

// NewAudioRequestStatusChangedEvent creates a new AudioRequestStatusChangedEvent
func NewAudioRequestStatusChangedEvent(r *AudioRequest, previous Status) *AudioRequestStatusChangedEvent {
	return &AudioRequestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAudioRequestStatusChanged, AggregateTypeAudioRequest, r.ID),
		RequesterID:     r.RequesterID,
		CreatorID:       r.CreatorID,
		Title:           r.PricingDetails.Title,
		OldStatus:       previous,
		NewStatus:       r.Status,
	}
}

// AudioRequestPaidEvent is published once the linked payment completes
type AudioRequestPaidEvent struct {
	shared.BaseDomainEvent
	PaymentID string        `json:"payment_id"`
	Method    PaymentMethod `json:"method"`
}

// NewAudioRequestPaidEvent creates a new AudioRequestPaidEvent
func NewAudioRequestPaidEvent(r *AudioRequest) *AudioRequestPaidEvent {
	return &AudioRequestPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAudioRequestPaid, AggregateTypeAudioRequest, r.ID),
		PaymentID:       r.PaymentID,
		Method:          r.PaymentMethod,
	}
}
