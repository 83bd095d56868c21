package persistence

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Create creates a new request
func (r *GormRequestRepository) Create(ctx context.Context, req *request.Request) error {
	return r.db.WithContext(ctx).Create(models.RequestModelFromDomain(req)).Error
}

// FindByID finds a request by ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	var model models.RequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByParticipant returns requests the user sent or received, newest first
func (r *GormRequestRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*request.Request, error) {
	var requestModels []*models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]*request.Request, len(requestModels))
	for i, model := range requestModels {
		requests[i] = model.ToDomain()
	}
	return requests, nil
}
