package models

import (
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MessageModel is the persistence model for the Message domain entity.
type MessageModel struct {
	AggregateModel
	SenderID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	RecipientID    uuid.UUID                 `gorm:"type:uuid;not null;index:idx_messages_recipient_read"`
	Type           string                    `gorm:"type:varchar(20);not null;default:'GENERAL'"`
	Content        string                    `gorm:"type:text;not null"`
	RecordingID    *uuid.UUID                `gorm:"type:uuid"`
	RequestDetails *messaging.RequestDetails `gorm:"type:jsonb"`
	Read           bool                      `gorm:"not null;default:false;index:idx_messages_recipient_read"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message entity.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SenderID:          m.SenderID,
		RecipientID:       m.RecipientID,
		Type:              messaging.MessageType(m.Type),
		Content:           m.Content,
		RecordingID:       m.RecordingID,
		RequestDetails:    m.RequestDetails,
		Read:              m.Read,
	}
}

// MessageModelFromDomain creates a new persistence model from a domain Message entity.
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		Type:           string(msg.Type),
		Content:        msg.Content,
		RecordingID:    msg.RecordingID,
		RequestDetails: msg.RequestDetails,
		Read:           msg.Read,
	}
	m.FromDomainAggregateRoot(msg.BaseAggregateRoot)
	return m
}

// RequestModel is the persistence model for the simple paid Request entity.
type RequestModel struct {
	AggregateModel
	SenderID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	RecipientID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Details        string                 `gorm:"type:text;not null"`
	Price          decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	Status         string                 `gorm:"type:varchar(20);not null;default:'pending'"`
	ResponseAudio  string                 `gorm:"type:varchar(1000)"`
	PaymentStatus  string                 `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDetails request.PaymentDetails `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (RequestModel) TableName() string {
	return "requests"
}

// ToDomain converts the persistence model to a domain Request entity.
func (m *RequestModel) ToDomain() *request.Request {
	return &request.Request{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SenderID:          m.SenderID,
		RecipientID:       m.RecipientID,
		Details:           m.Details,
		Price:             m.Price,
		Status:            request.Status(m.Status),
		ResponseAudio:     m.ResponseAudio,
		PaymentStatus:     request.PaymentStatus(m.PaymentStatus),
		PaymentDetails:    m.PaymentDetails,
	}
}

// RequestModelFromDomain creates a new persistence model from a domain Request entity.
func RequestModelFromDomain(r *request.Request) *RequestModel {
	m := &RequestModel{
		SenderID:       r.SenderID,
		RecipientID:    r.RecipientID,
		Details:        r.Details,
		Price:          r.Price,
		Status:         string(r.Status),
		ResponseAudio:  r.ResponseAudio,
		PaymentStatus:  string(r.PaymentStatus),
		PaymentDetails: r.PaymentDetails,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
