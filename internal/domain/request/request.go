package request

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Request
const AggregateTypeRequest = "Request"

// MinPrice is the smallest price a paid request may carry
var MinPrice = decimal.NewFromInt(1)

// Request errors
var (
	ErrRequestNotFound  = shared.NewDomainError("REQUEST_NOT_FOUND", "Request not found")
	ErrDetailsRequired  = shared.NewDomainError("DETAILS_REQUIRED", "Request details are required")
	ErrPriceTooLow      = shared.NewDomainError("INVALID_PRICE", "Price must be at least 1")
	ErrRecipientMissing = shared.NewDomainError("RECIPIENT_REQUIRED", "Recipient is required")
)

// Status is the state of a simple paid request
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// PaymentStatus is the payment state of a request
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// PaymentDetails records the payment once it happens
type PaymentDetails struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentID     string          `json:"paymentId"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (d PaymentDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *PaymentDetails) Scan(value any) error {
	return shared.ScanJSON(value, d)
}

// Request is a priced message request from one user to another
type Request struct {
	shared.BaseAggregateRoot
	SenderID       uuid.UUID
	RecipientID    uuid.UUID
	Details        string
	Price          decimal.Decimal
	Status         Status
	ResponseAudio  string
	PaymentStatus  PaymentStatus
	PaymentDetails PaymentDetails
}

// NewRequest creates a pending, unpaid request
func NewRequest(senderID, recipientID uuid.UUID, details string, price decimal.Decimal) (*Request, error) {
	if recipientID == uuid.Nil {
		return nil, ErrRecipientMissing
	}
	details = strings.TrimSpace(details)
	if details == "" {
		return nil, ErrDetailsRequired
	}
	if price.LessThan(MinPrice) {
		return nil, ErrPriceTooLow
	}

	r := &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SenderID:          senderID,
		RecipientID:       recipientID,
		Details:           details,
		Price:             price.Round(2),
		Status:            StatusPending,
		PaymentStatus:     PaymentStatusPending,
		PaymentDetails:    PaymentDetails{Amount: price.Round(2), Currency: "USD"},
	}
	return r, nil
}

// Involves reports whether userID sent or received the request
func (r *Request) Involves(userID uuid.UUID) bool {
	return r.SenderID == userID || r.RecipientID == userID
}
