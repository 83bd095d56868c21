package messaging

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/google/uuid"
)

// SendInput contains the data for sending a direct message
type SendInput struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
}

// MessageResult is a message as returned to its participants
type MessageResult struct {
	ID             uuid.UUID                 `json:"id"`
	SenderID       uuid.UUID                 `json:"senderId"`
	RecipientID    uuid.UUID                 `json:"recipientId"`
	Type           messaging.MessageType     `json:"type"`
	Content        string                    `json:"content"`
	RecordingID    *uuid.UUID                `json:"recordingId,omitempty"`
	RequestDetails *messaging.RequestDetails `json:"requestDetails,omitempty"`
	Read           bool                      `json:"read"`
	CreatedAt      time.Time                 `json:"createdAt"`
	Sender         *identity.Summary         `json:"sender,omitempty"`
	Recipient      *identity.Summary         `json:"recipient,omitempty"`
}

// ToMessageResult converts a domain message to a MessageResult
func ToMessageResult(m *messaging.Message) MessageResult {
	return MessageResult{
		ID:             m.ID,
		SenderID:       m.SenderID,
		RecipientID:    m.RecipientID,
		Type:           m.Type,
		Content:        m.Content,
		RecordingID:    m.RecordingID,
		RequestDetails: m.RequestDetails,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// UnreadCountResult carries the number of unread messages
type UnreadCountResult struct {
	Count int64 `json:"count"`
}

// MarkAllReadResult carries the number of messages marked read
type MarkAllReadResult struct {
	Updated int64 `json:"updated"`
}
