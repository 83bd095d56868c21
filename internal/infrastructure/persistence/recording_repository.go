package persistence

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecordingRepository implements RecordingRepository using GORM
type GormRecordingRepository struct {
	db *gorm.DB
}

// NewGormRecordingRepository creates a new GormRecordingRepository
func NewGormRecordingRepository(db *gorm.DB) *GormRecordingRepository {
	return &GormRecordingRepository{db: db}
}

// Create creates a new recording
func (r *GormRecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	return r.db.WithContext(ctx).Create(models.RecordingModelFromDomain(rec)).Error
}

// Update updates an existing recording
func (r *GormRecordingRepository) Update(ctx context.Context, rec *recording.Recording) error {
	return updateExisting(ctx, r.db, models.RecordingModelFromDomain(rec))
}

// Delete deletes a recording by ID
func (r *GormRecordingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RecordingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a recording by ID
func (r *GormRecordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*recording.Recording, error) {
	var model models.RecordingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns a user's recordings newest first
func (r *GormRecordingRepository) FindByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*recording.Recording, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var recordingModels []*models.RecordingModel
	if err := query.Order("created_at DESC").Find(&recordingModels).Error; err != nil {
		return nil, err
	}

	recordings := make([]*recording.Recording, len(recordingModels))
	for i, model := range recordingModels {
		recordings[i] = model.ToDomain()
	}
	return recordings, nil
}

// TopCreators returns users ordered by how many recordings they own
func (r *GormRecordingRepository) TopCreators(ctx context.Context, limit int) ([]recording.CreatorRecordingCount, error) {
	var rows []struct {
		UserID uuid.UUID
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.RecordingModel{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]recording.CreatorRecordingCount, len(rows))
	for i, row := range rows {
		result[i] = recording.CreatorRecordingCount{UserID: row.UserID, Count: row.Count}
	}
	return result, nil
}
