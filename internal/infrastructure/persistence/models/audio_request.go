package models

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/google/uuid"
)

// AudioRequestModel is the persistence model for the AudioRequest domain entity.
type AudioRequestModel struct {
	AggregateModel
	RequesterID          *uuid.UUID                   `gorm:"type:uuid;index"`
	RequesterEmail       string                       `gorm:"type:varchar(255)"`
	RequesterName        string                       `gorm:"type:varchar(200)"`
	CreatorID            uuid.UUID                    `gorm:"type:uuid;not null;index"`
	PricingOptionID      uuid.UUID                    `gorm:"type:uuid;not null"`
	PricingDetails       audiorequest.PricingDetails  `gorm:"type:jsonb"`
	RequestDetails       string                       `gorm:"type:text;not null"`
	Occasion             string                       `gorm:"type:varchar(200)"`
	ForWhom              string                       `gorm:"type:varchar(200)"`
	Pronunciation        string                       `gorm:"type:varchar(500)"`
	IsPublic             bool                         `gorm:"not null;default:false"`
	Status               string                       `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus        string                       `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod        string                       `gorm:"type:varchar(20);not null"`
	PaymentID            string                       `gorm:"type:varchar(100);index"`
	CompletedAudio       *audiorequest.CompletedAudio `gorm:"type:jsonb"`
	ExpectedDeliveryDate time.Time                    `gorm:"not null"`
	CompletedDate        *time.Time
}

// TableName returns the table name for GORM
func (AudioRequestModel) TableName() string {
	return "audio_requests"
}

// ToDomain converts the persistence model to a domain AudioRequest entity.
func (m *AudioRequestModel) ToDomain() *audiorequest.AudioRequest {
	return &audiorequest.AudioRequest{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		RequesterID:          m.RequesterID,
		RequesterEmail:       m.RequesterEmail,
		RequesterName:        m.RequesterName,
		CreatorID:            m.CreatorID,
		PricingOptionID:      m.PricingOptionID,
		PricingDetails:       m.PricingDetails,
		RequestDetails:       m.RequestDetails,
		Occasion:             m.Occasion,
		ForWhom:              m.ForWhom,
		Pronunciation:        m.Pronunciation,
		IsPublic:             m.IsPublic,
		Status:               audiorequest.Status(m.Status),
		PaymentStatus:        audiorequest.PaymentStatus(m.PaymentStatus),
		PaymentMethod:        audiorequest.PaymentMethod(m.PaymentMethod),
		PaymentID:            m.PaymentID,
		CompletedAudio:       m.CompletedAudio,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		CompletedDate:        m.CompletedDate,
	}
}

// AudioRequestModelFromDomain creates a new persistence model from a domain AudioRequest entity.
func AudioRequestModelFromDomain(r *audiorequest.AudioRequest) *AudioRequestModel {
	m := &AudioRequestModel{
		RequesterID:          r.RequesterID,
		RequesterEmail:       r.RequesterEmail,
		RequesterName:        r.RequesterName,
		CreatorID:            r.CreatorID,
		PricingOptionID:      r.PricingOptionID,
		PricingDetails:       r.PricingDetails,
		RequestDetails:       r.RequestDetails,
		Occasion:             r.Occasion,
		ForWhom:              r.ForWhom,
		Pronunciation:        r.Pronunciation,
		IsPublic:             r.IsPublic,
		Status:               string(r.Status),
		PaymentStatus:        string(r.PaymentStatus),
		PaymentMethod:        string(r.PaymentMethod),
		PaymentID:            r.PaymentID,
		CompletedAudio:       r.CompletedAudio,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		CompletedDate:        r.CompletedDate,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
