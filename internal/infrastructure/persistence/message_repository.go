package persistence

import (
	"context"
	"errors"

	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	return r.db.WithContext(ctx).Create(models.MessageModelFromDomain(msg)).Error
}

// Update updates an existing message
func (r *GormMessageRepository) Update(ctx context.Context, msg *messaging.Message) error {
	return updateExisting(ctx, r.db, models.MessageModelFromDomain(msg))
}

// Delete deletes a message by ID
func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindInbox returns messages received by a user, newest first
func (r *GormMessageRepository) FindInbox(ctx context.Context, recipientID uuid.UUID) ([]*messaging.Message, error) {
	return r.findMany(r.db.WithContext(ctx).Where("recipient_id = ?", recipientID))
}

// FindSent returns messages sent by a user, newest first
func (r *GormMessageRepository) FindSent(ctx context.Context, senderID uuid.UUID) ([]*messaging.Message, error) {
	return r.findMany(r.db.WithContext(ctx).Where("sender_id = ?", senderID))
}

// CountUnread counts unread messages of a recipient
func (r *GormMessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAllRead marks every unread message of the recipient as read
func (r *GormMessageRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]any{
			"read":       true,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"version":    gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *GormMessageRepository) findMany(query *gorm.DB) ([]*messaging.Message, error) {
	var messageModels []*models.MessageModel
	if err := query.Order("created_at DESC").Find(&messageModels).Error; err != nil {
		return nil, err
	}
	messages := make([]*messaging.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = model.ToDomain()
	}
	return messages, nil
}
