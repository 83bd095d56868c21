package recording

import (
	"context"

	"github.com/google/uuid"
)

// CreatorRecordingCount is a user together with how many recordings they own
type CreatorRecordingCount struct {
	UserID uuid.UUID
	Count  int64
}

// RecordingRepository defines the interface for recording persistence
type RecordingRepository interface {
	Create(ctx context.Context, recording *Recording) error
	Update(ctx context.Context, recording *Recording) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Recording, error)

	// FindByUser returns a user's recordings newest first.
	// When publicOnly is set private recordings are skipped.
	FindByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*Recording, error)

	// TopCreators returns users with at least one recording ordered by count desc
	TopCreators(ctx context.Context, limit int) ([]CreatorRecordingCount, error)
}
