package request

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput contains the data for sending a paid request
type CreateInput struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Details     string
	Price       decimal.Decimal
}

// RequestResult is a request as returned to its participants
type RequestResult struct {
	ID             uuid.UUID              `json:"id"`
	SenderID       uuid.UUID              `json:"senderId"`
	RecipientID    uuid.UUID              `json:"recipientId"`
	Details        string                 `json:"details"`
	Price          decimal.Decimal        `json:"price"`
	Status         request.Status         `json:"status"`
	ResponseAudio  string                 `json:"responseAudio,omitempty"`
	PaymentStatus  request.PaymentStatus  `json:"paymentStatus"`
	PaymentDetails request.PaymentDetails `json:"paymentDetails"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
	Sender         *identity.Summary      `json:"sender,omitempty"`
	Recipient      *identity.Summary      `json:"recipient,omitempty"`
}

// ToRequestResult converts a domain request to a RequestResult
func ToRequestResult(r *request.Request) RequestResult {
	return RequestResult{
		ID:             r.ID,
		SenderID:       r.SenderID,
		RecipientID:    r.RecipientID,
		Details:        r.Details,
		Price:          r.Price,
		Status:         r.Status,
		ResponseAudio:  r.ResponseAudio,
		PaymentStatus:  r.PaymentStatus,
		PaymentDetails: r.PaymentDetails,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
