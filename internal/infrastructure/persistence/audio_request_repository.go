package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAudioRequestRepository implements AudioRequestRepository using GORM
type GormAudioRequestRepository struct {
	db *gorm.DB
}

// NewGormAudioRequestRepository creates a new GormAudioRequestRepository
func NewGormAudioRequestRepository(db *gorm.DB) *GormAudioRequestRepository {
	return &GormAudioRequestRepository{db: db}
}

// Create creates a new audio request
func (r *GormAudioRequestRepository) Create(ctx context.Context, req *audiorequest.AudioRequest) error {
	return r.db.WithContext(ctx).Create(models.AudioRequestModelFromDomain(req)).Error
}

// Update updates an existing audio request
func (r *GormAudioRequestRepository) Update(ctx context.Context, req *audiorequest.AudioRequest) error {
	return updateExisting(ctx, r.db, models.AudioRequestModelFromDomain(req))
}

// FindByID finds an audio request by ID
func (r *GormAudioRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audiorequest.AudioRequest, error) {
	var model models.AudioRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRequester returns requests placed by a user, newest first
func (r *GormAudioRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	return r.findMany(r.db.WithContext(ctx).Where("requester_id = ?", requesterID).Order("created_at DESC"))
}

// FindByCreator returns requests addressed to a creator, newest first
func (r *GormAudioRequestRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	return r.findMany(r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC"))
}

// FindPublicCompleted returns completed public requests by completion date desc
func (r *GormAudioRequestRepository) FindPublicCompleted(ctx context.Context, creatorID uuid.UUID, limit int) ([]*audiorequest.AudioRequest, error) {
	return r.findMany(r.db.WithContext(ctx).
		Where("creator_id = ? AND status = ? AND is_public = ?", creatorID, string(audiorequest.StatusCompleted), true).
		Order("completed_date DESC").
		Limit(limit))
}

// FindLatestAwaitingPayment returns the newest unpaid request for the customer, creator and option
func (r *GormAudioRequestRepository) FindLatestAwaitingPayment(ctx context.Context, requesterID, creatorID, pricingOptionID uuid.UUID) (*audiorequest.AudioRequest, error) {
	var model models.AudioRequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND creator_id = ? AND pricing_option_id = ? AND payment_status = ?",
			requesterID, creatorID, pricingOptionID, string(audiorequest.PaymentStatusPending)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOverdue returns open requests whose expected delivery date passed
func (r *GormAudioRequestRepository) FindOverdue(ctx context.Context, now time.Time) ([]*audiorequest.AudioRequest, error) {
	return r.findMany(r.db.WithContext(ctx).
		Where("status IN ? AND expected_delivery_date < ?",
			[]string{string(audiorequest.StatusPending), string(audiorequest.StatusAccepted)}, now).
		Order("expected_delivery_date ASC"))
}

func (r *GormAudioRequestRepository) findMany(query *gorm.DB) ([]*audiorequest.AudioRequest, error) {
	var requestModels []*models.AudioRequestModel
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]*audiorequest.AudioRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = model.ToDomain()
	}
	return requests, nil
}
