package models

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// PaymentModel is the persistence model for the Payment domain entity.
// Amounts are stored in cents.
type PaymentModel struct {
	AggregateModel
	OrderID         string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount          int64      `gorm:"not null"`
	PlatformFee     int64      `gorm:"not null"`
	CreatorAmount   int64      `gorm:"not null"`
	PodcasterID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PricingOptionID uuid.UUID  `gorm:"type:uuid;not null"`
	AudioRequestID  *uuid.UUID `gorm:"type:uuid;index"`
	PaymentMethod   string     `gorm:"type:varchar(20);not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransferID      string     `gorm:"type:varchar(100)"`
	CompletedAt     *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderID:           m.OrderID,
		Amount:            m.Amount,
		PlatformFee:       m.PlatformFee,
		CreatorAmount:     m.CreatorAmount,
		PodcasterID:       m.PodcasterID,
		CustomerID:        m.CustomerID,
		PricingOptionID:   m.PricingOptionID,
		AudioRequestID:    m.AudioRequestID,
		Method:            finance.PaymentMethod(m.PaymentMethod),
		Status:            finance.PaymentStatus(m.Status),
		TransferID:        m.TransferID,
		CompletedAt:       m.CompletedAt,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		PlatformFee:     p.PlatformFee,
		CreatorAmount:   p.CreatorAmount,
		PodcasterID:     p.PodcasterID,
		CustomerID:      p.CustomerID,
		PricingOptionID: p.PricingOptionID,
		AudioRequestID:  p.AudioRequestID,
		PaymentMethod:   string(p.Method),
		Status:          string(p.Status),
		TransferID:      p.TransferID,
		CompletedAt:     p.CompletedAt,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
