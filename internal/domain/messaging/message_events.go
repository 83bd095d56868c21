package messaging

import (
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventTypeMessageSent is published for every new message
const EventTypeMessageSent = "message.sent"

// MessageSentEvent is published when a message is delivered to an inbox
type MessageSentEvent struct {
	shared.BaseDomainEvent
	SenderID    uuid.UUID   `json:"sender_id"`
	RecipientID uuid.UUID   `json:"recipient_id"`
	Type        MessageType `json:"type"`
}

// NewMessageSentEvent creates a new MessageSentEvent
func NewMessageSentEvent(m *Message) *MessageSentEvent {
	return &MessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageSent, AggregateTypeMessage, m.ID),
		SenderID:        m.SenderID,
		RecipientID:     m.RecipientID,
		Type:            m.Type,
	}
}
