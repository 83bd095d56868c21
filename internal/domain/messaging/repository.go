package messaging

import (
	"context"

	"github.com/google/uuid"
)

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	Update(ctx context.Context, message *Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindInbox returns messages received by a user, newest first
	FindInbox(ctx context.Context, recipientID uuid.UUID) ([]*Message, error)

	// FindSent returns messages sent by a user, newest first
	FindSent(ctx context.Context, senderID uuid.UUID) ([]*Message, error)

	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// MarkAllRead marks every unread message of the recipient and returns how many changed
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
