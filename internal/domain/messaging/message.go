package messaging

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Message
const AggregateTypeMessage = "Message"

// Message errors
var (
	ErrMessageNotFound   = shared.NewDomainError("MESSAGE_NOT_FOUND", "Message not found")
	ErrContentRequired   = shared.NewDomainError("CONTENT_REQUIRED", "Message content is required")
	ErrRecipientRequired = shared.NewDomainError("RECIPIENT_REQUIRED", "Recipient is required")
	ErrNotRecipient      = shared.NewDomainError("FORBIDDEN", "Only the recipient can mark this message as read")
	ErrNotParticipant    = shared.NewDomainError("FORBIDDEN", "Not authorized to delete this message")
)

// MessageType distinguishes plain messages from request notifications
type MessageType string

const (
	MessageTypeAudioRequest MessageType = "AUDIO_REQUEST"
	MessageTypeGeneral      MessageType = "GENERAL"
)

// RequestStatus mirrors the state of the request a message refers to
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusAccepted  RequestStatus = "ACCEPTED"
	RequestStatusDeclined  RequestStatus = "DECLINED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

// RequestDetails is attached to AUDIO_REQUEST messages
type RequestDetails struct {
	Price  decimal.Decimal `json:"price"`
	Status RequestStatus   `json:"status"`
}

// Value implements driver.Valuer for JSONB storage
func (d RequestDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *RequestDetails) Scan(value any) error {
	return shared.ScanJSON(value, d)
}

// Message is a direct message between two users
type Message struct {
	shared.BaseAggregateRoot
	SenderID       uuid.UUID
	RecipientID    uuid.UUID
	Type           MessageType
	Content        string
	RecordingID    *uuid.UUID
	RequestDetails *RequestDetails
	Read           bool
}

// NewMessage creates an unread GENERAL message
func NewMessage(senderID, recipientID uuid.UUID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if recipientID == uuid.Nil {
		return nil, ErrRecipientRequired
	}

	m := &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SenderID:          senderID,
		RecipientID:       recipientID,
		Type:              MessageTypeGeneral,
		Content:           content,
	}
	m.AddDomainEvent(NewMessageSentEvent(m))
	return m, nil
}

// NewAudioRequestMessage creates the message a fan's request produces in the creator's inbox
func NewAudioRequestMessage(senderID, recipientID uuid.UUID, content string, price decimal.Decimal) (*Message, error) {
	m, err := NewMessage(senderID, recipientID, content)
	if err != nil {
		return nil, err
	}
	m.Type = MessageTypeAudioRequest
	m.RequestDetails = &RequestDetails{Price: price, Status: RequestStatusPending}
	return m, nil
}

// AttachRecording links a shared recording to the message
func (m *Message) AttachRecording(recordingID uuid.UUID) {
	m.RecordingID = &recordingID
}

// MarkRead marks the message as read by its recipient
func (m *Message) MarkRead(actorID uuid.UUID) error {
	if m.RecipientID != actorID {
		return ErrNotRecipient
	}
	if !m.Read {
		m.Read = true
		m.Touch()
	}
	return nil
}

// CanDelete reports whether actorID may delete the message
func (m *Message) CanDelete(actorID uuid.UUID) bool {
	return m.SenderID == actorID || m.RecipientID == actorID
}
