package recording

import (
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Recording domain event types
const (
	EventTypeRecordingUploaded = "recording.uploaded"
	EventTypeRecordingShared   = "recording.shared"
)

// RecordingUploadedEvent is published when a new recording is stored
type RecordingUploadedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Title  string    `json:"title"`
}

// NewRecordingUploadedEvent creates a new RecordingUploadedEvent
func NewRecordingUploadedEvent(r *Recording) *RecordingUploadedEvent {
	return &RecordingUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordingUploaded, AggregateTypeRecording, r.ID),
		UserID:          r.UserID,
		Title:           r.Title,
	}
}

// RecordingSharedEvent is published when a recording is sent to another user
type RecordingSharedEvent struct {
	shared.BaseDomainEvent
	OwnerID     uuid.UUID `json:"owner_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
}

// NewRecordingSharedEvent creates a new RecordingSharedEvent
func NewRecordingSharedEvent(r *Recording, recipientID uuid.UUID) *RecordingSharedEvent {
	return &RecordingSharedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordingShared, AggregateTypeRecording, r.ID),
		OwnerID:         r.UserID,
		RecipientID:     recipientID,
	}
}
