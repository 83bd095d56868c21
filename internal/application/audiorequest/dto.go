package audiorequest

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateInput is a request placed by a signed-in fan or a guest.
// RequesterID is nil for guests, who must supply name and email.
type CreateInput struct {
	RequesterID     *uuid.UUID
	RequesterName   string
	RequesterEmail  string
	CreatorID       uuid.UUID
	PricingOptionID uuid.UUID
	RequestDetails  string
	Occasion        string
	ForWhom         string
	Pronunciation   string
	IsPublic        bool
	PaymentMethod   audiorequest.PaymentMethod
}

// DeliverInput carries the creator's finished audio
type DeliverInput struct {
	CreatorID uuid.UUID
	RequestID uuid.UUID
	Audio     shared.FileUpload
}

// AudioRequestResult is the API view of an audio request
type AudioRequestResult struct {
	ID                   uuid.UUID                    `json:"id"`
	RequesterID          *uuid.UUID                   `json:"requesterId,omitempty"`
	Requester            *identity.Summary            `json:"requester,omitempty"`
	RequesterEmail       string                       `json:"requesterEmail,omitempty"`
	RequesterName        string                       `json:"requesterName"`
	CreatorID            uuid.UUID                    `json:"creatorId"`
	Creator              *identity.Summary            `json:"creator,omitempty"`
	PricingOptionID      uuid.UUID                    `json:"pricingOptionId"`
	PricingDetails       audiorequest.PricingDetails  `json:"pricingDetails"`
	RequestDetails       string                       `json:"requestDetails"`
	Occasion             string                       `json:"occasion"`
	ForWhom              string                       `json:"forWhom"`
	Pronunciation        string                       `json:"pronunciation"`
	IsPublic             bool                         `json:"isPublic"`
	Status               audiorequest.Status          `json:"status"`
	PaymentStatus        audiorequest.PaymentStatus   `json:"paymentStatus"`
	PaymentMethod        audiorequest.PaymentMethod   `json:"paymentMethod"`
	PaymentID            string                       `json:"paymentId,omitempty"`
	CompletedAudio       *audiorequest.CompletedAudio `json:"completedAudio,omitempty"`
	ExpectedDeliveryDate time.Time                    `json:"expectedDeliveryDate"`
	CompletedDate        *time.Time                   `json:"completedDate,omitempty"`
	CreatedAt            time.Time                    `json:"createdAt"`
	UpdatedAt            time.Time                    `json:"updatedAt"`
}

// ToAudioRequestResult converts a domain request to its API view
func ToAudioRequestResult(r *audiorequest.AudioRequest) AudioRequestResult {
	return AudioRequestResult{
		ID:                   r.ID,
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
		Status:               r.Status,
		PaymentStatus:        r.PaymentStatus,
		PaymentMethod:        r.PaymentMethod,
		PaymentID:            r.PaymentID,
		CompletedAudio:       r.CompletedAudio,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		CompletedDate:        r.CompletedDate,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func summaryOf(summaries map[uuid.UUID]identity.Summary, id uuid.UUID) *identity.Summary {
	s, ok := summaries[id]
	if !ok {
		return nil
	}
	return &s
}
