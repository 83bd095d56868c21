package request

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines the interface for request persistence
type RequestRepository interface {
	Create(ctx context.Context, request *Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// FindByParticipant returns requests the user sent or received, newest first
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Request, error)
}
