package audiorequest

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for AudioRequest
const AggregateTypeAudioRequest = "AudioRequest"

// Audio request errors
var (
	ErrAudioRequestNotFound = shared.NewDomainError("AUDIO_REQUEST_NOT_FOUND", "Audio request not found")
	ErrNotCreator           = shared.NewDomainError("FORBIDDEN", "Only the creator can perform this action")
	ErrNotParticipant       = shared.NewDomainError("FORBIDDEN", "Not authorized to view this request")
	ErrInvalidStatus        = shared.NewDomainError("INVALID_STATUS", "Invalid status")
	ErrStatusLocked         = shared.NewDomainError("INVALID_STATE", "The request is already closed and its status cannot change")
	ErrDetailsRequired      = shared.NewDomainError("REQUEST_DETAILS_REQUIRED", "Request details are required")
	ErrInvalidPaymentMethod = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be paypal, stripe or other")
	ErrRequesterRequired    = shared.NewDomainError("REQUESTER_REQUIRED", "Requester name and email are required")
)

// Status is the fulfilment state of an audio request
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether the request can no longer change status
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// IsCreatorTarget reports whether a creator may move a request into s
func (s Status) IsCreatorTarget() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// PaymentStatus is the payment state of an audio request
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the fan intends to pay
type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodOther  PaymentMethod = "other"
)

// IsValid reports whether m is a known method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodOther:
		return true
	}
	return false
}

// PricingDetails is a snapshot of the pricing option at request time
type PricingDetails struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Type  string          `json:"type"`
}

// Value implements driver.Valuer for JSONB storage
func (p PricingDetails) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *PricingDetails) Scan(value any) error {
	return shared.ScanJSON(value, p)
}

// CompletedAudio describes the delivered file
type CompletedAudio struct {
	URL       string  `json:"url"`
	ObjectKey string  `json:"objectKey,omitempty"`
	Duration  float64 `json:"duration"`
	FileSize  int64   `json:"fileSize"`
	FileName  string  `json:"fileName"`
}

// Value implements driver.Valuer for JSONB storage
func (c CompletedAudio) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *CompletedAudio) Scan(value any) error {
	return shared.ScanJSON(value, c)
}

// AudioRequest is a fan's order for a personalized audio message
type AudioRequest struct {
	shared.BaseAggregateRoot
	RequesterID          *uuid.UUID
	RequesterEmail       string
	RequesterName        string
	CreatorID            uuid.UUID
	PricingOptionID      uuid.UUID
	PricingDetails       PricingDetails
	RequestDetails       string
	Occasion             string
	ForWhom              string
	Pronunciation        string
	IsPublic             bool
	Status               Status
	PaymentStatus        PaymentStatus
	PaymentMethod        PaymentMethod
	PaymentID            string
	CompletedAudio       *CompletedAudio
	ExpectedDeliveryDate time.Time
	CompletedDate        *time.Time
}

// NewAudioRequestInput contains the data of a new request
type NewAudioRequestInput struct {
	RequesterID     *uuid.UUID
	RequesterEmail  string
	RequesterName   string
	CreatorID       uuid.UUID
	PricingOptionID uuid.UUID
	PricingDetails  PricingDetails
	DeliveryDays    int
	RequestDetails  string
	Occasion        string
	ForWhom         string
	Pronunciation   string
	IsPublic        bool
	PaymentMethod   PaymentMethod
}

// NewAudioRequest creates a pending, unpaid request.
// A request without RequesterID is a guest request and needs name and email.
func NewAudioRequest(input NewAudioRequestInput) (*AudioRequest, error) {
	details := strings.TrimSpace(input.RequestDetails)
	if details == "" {
		return nil, ErrDetailsRequired
	}
	if !input.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	email := strings.ToLower(strings.TrimSpace(input.RequesterEmail))
	name := strings.TrimSpace(input.RequesterName)
	if input.RequesterID == nil && (email == "" || name == "") {
		return nil, ErrRequesterRequired
	}
	days := input.DeliveryDays
	if days < 1 {
		days = 7
	}

	r := &AudioRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequesterID:       input.RequesterID,
		RequesterEmail:    email,
		RequesterName:     name,
		CreatorID:         input.CreatorID,
		PricingOptionID:   input.PricingOptionID,
		PricingDetails:    input.PricingDetails,
		RequestDetails:    details,
		Occasion:          strings.TrimSpace(input.Occasion),
		ForWhom:           strings.TrimSpace(input.ForWhom),
		Pronunciation:     strings.TrimSpace(input.Pronunciation),
		IsPublic:          input.IsPublic,
		Status:            StatusPending,
		PaymentStatus:     PaymentStatusPending,
		PaymentMethod:     input.PaymentMethod,
	}
	r.ExpectedDeliveryDate = r.CreatedAt.AddDate(0, 0, days)
	r.AddDomainEvent(NewAudioRequestCreatedEvent(r))
	return r, nil
}

// IsGuest reports whether the request was placed without an account
func (r *AudioRequest) IsGuest() bool {
	return r.RequesterID == nil
}

// IsRequester reports whether userID placed the request
func (r *AudioRequest) IsRequester(userID uuid.UUID) bool {
	return r.RequesterID != nil && *r.RequesterID == userID
}

// IsCreator reports whether userID fulfils the request
func (r *AudioRequest) IsCreator(userID uuid.UUID) bool {
	return r.CreatorID == userID
}

// CanView reports whether userID may read the request.
// Guest requests are visible to the creator only.
func (r *AudioRequest) CanView(userID uuid.UUID) bool {
	return r.IsCreator(userID) || r.IsRequester(userID)
}

// ChangeStatus applies a creator-driven transition.
// Setting the current status again is a no-op.
func (r *AudioRequest) ChangeStatus(actorID uuid.UUID, target Status, at time.Time) error {
	if !r.IsCreator(actorID) {
		return ErrNotCreator
	}
	if !target.IsCreatorTarget() {
		return ErrInvalidStatus
	}
	return r.transition(target, at)
}

// CompleteWithAudio attaches the delivered file and completes the request
func (r *AudioRequest) CompleteWithAudio(actorID uuid.UUID, audio CompletedAudio, at time.Time) error {
	if !r.IsCreator(actorID) {
		return ErrNotCreator
	}
	if r.Status.IsTerminal() && r.Status != StatusCompleted {
		return ErrStatusLocked
	}
	r.CompletedAudio = &audio
	if r.Status == StatusCompleted {
		r.Touch()
		return nil
	}
	return r.transition(StatusCompleted, at)
}

// MarkPaid records the provider payment; repeated calls are no-ops
func (r *AudioRequest) MarkPaid(paymentID string, method PaymentMethod) bool {
	if r.PaymentStatus == PaymentStatusPaid {
		return false
	}
	r.PaymentStatus = PaymentStatusPaid
	if paymentID != "" {
		r.PaymentID = paymentID
	}
	if method.IsValid() {
		r.PaymentMethod = method
	}
	r.Touch()
	r.AddDomainEvent(NewAudioRequestPaidEvent(r))
	return true
}

// Refund closes the request after its payment was refunded
func (r *AudioRequest) Refund() bool {
	if r.Status == StatusRefunded && r.PaymentStatus == PaymentStatusRefunded {
		return false
	}
	previous := r.Status
	r.Status = StatusRefunded
	r.PaymentStatus = PaymentStatusRefunded
	r.Touch()
	r.AddDomainEvent(NewAudioRequestStatusChangedEvent(r, previous))
	return true
}

// IsOverdue reports whether an open request passed its expected delivery date
func (r *AudioRequest) IsOverdue(now time.Time) bool {
	return (r.Status == StatusPending || r.Status == StatusAccepted) && now.After(r.ExpectedDeliveryDate)
}

// Public returns a copy safe to show on the creator's public page
func (r *AudioRequest) Public() *AudioRequest {
	cp := *r
	cp.RequesterEmail = ""
	cp.PaymentID = ""
	cp.ClearDomainEvents()
	return &cp
}

func (r *AudioRequest) transition(target Status, at time.Time) error {
	if r.Status == target {
		return nil
	}
	if r.Status.IsTerminal() {
		return ErrStatusLocked
	}
	previous := r.Status
	r.Status = target
	if target == StatusCompleted {
		r.CompletedDate = &at
	}
	r.Touch()
	r.AddDomainEvent(NewAudioRequestStatusChangedEvent(r, previous))
	return nil
}
