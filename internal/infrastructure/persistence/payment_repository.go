package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new payment; a duplicate order id yields ErrAlreadyExists
func (r *GormPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	if err := r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *finance.Payment) error {
	return updateExisting(ctx, r.db, models.PaymentModelFromDomain(payment))
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByOrderID finds a payment by provider order or intent id
func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*finance.Payment, error) {
	return r.findOne(ctx, "order_id = ?", orderID)
}

// FindByTransferID finds a payment by the capture or charge id it completed with
func (r *GormPaymentRepository) FindByTransferID(ctx context.Context, transferID string) (*finance.Payment, error) {
	if transferID == "" {
		return nil, finance.ErrPaymentNotFound
	}
	return r.findOne(ctx, "transfer_id = ?", transferID)
}

// FindStalePending returns pending payments created before the cutoff, oldest first
func (r *GormPaymentRepository) FindStalePending(ctx context.Context, before time.Time, limit int) ([]*finance.Payment, error) {
	var paymentModels []*models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(finance.PaymentStatusPending), before).
		Order("created_at ASC").
		Limit(limit).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*finance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = model.ToDomain()
	}
	return payments, nil
}

func (r *GormPaymentRepository) findOne(ctx context.Context, query string, args ...any) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrPaymentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
