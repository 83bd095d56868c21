package audiorequest

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AudioRequestRepository defines the interface for audio request persistence
type AudioRequestRepository interface {
	Create(ctx context.Context, request *AudioRequest) error
	Update(ctx context.Context, request *AudioRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*AudioRequest, error)

	// FindByRequester returns requests placed by a user, newest first
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*AudioRequest, error)

	// FindByCreator returns requests addressed to a creator, newest first
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*AudioRequest, error)

	// FindPublicCompleted returns completed public requests by completion date desc
	FindPublicCompleted(ctx context.Context, creatorID uuid.UUID, limit int) ([]*AudioRequest, error)

	// FindLatestAwaitingPayment returns the newest unpaid request matching the
	// customer, creator and pricing option
	FindLatestAwaitingPayment(ctx context.Context, requesterID, creatorID, pricingOptionID uuid.UUID) (*AudioRequest, error)

	// FindOverdue returns pending or accepted requests whose delivery date passed
	FindOverdue(ctx context.Context, now time.Time) ([]*AudioRequest, error)
}
