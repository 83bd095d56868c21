package handler

import (
	"bytes"
	"encoding/json"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MediaLinkRequest creates or partially updates a media link
type MediaLinkRequest struct {
	Title *string                 `json:"title" binding:"omitempty,max=200"`
	URL   *string                 `json:"url" binding:"omitempty,max=2048"`
	Type  *identity.MediaLinkType `json:"type" binding:"omitempty,oneof=website social music video podcast other"`
	Icon  *string                 `json:"icon" binding:"omitempty,max=100"`
}

func (r MediaLinkRequest) toInput() identity.MediaLinkInput {
	return identity.MediaLinkInput{Title: r.Title, URL: r.URL, Type: r.Type, Icon: r.Icon}
}

// PricingOptionRequest creates or partially updates a pricing option
type PricingOptionRequest struct {
	ID           *uuid.UUID                  `json:"id"`
	Title        *string                     `json:"title" binding:"omitempty,max=200"`
	Description  *string                     `json:"description" binding:"omitempty,max=2000"`
	Price        *decimal.Decimal            `json:"price" swaggertype:"number"`
	DeliveryTime *int                        `json:"deliveryTime"`
	IsActive     *bool                       `json:"isActive"`
	Type         *identity.PricingOptionType `json:"type" binding:"omitempty,oneof=personal business custom"`
}

func (r PricingOptionRequest) toInput() identity.PricingOptionInput {
	return identity.PricingOptionInput{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		DeliveryTime: r.DeliveryTime,
		IsActive:     r.IsActive,
		Type:         r.Type,
	}
}

// ReorderMediaLinksRequest lists every media link id in the new order
type ReorderMediaLinksRequest struct {
	LinkIDs []uuid.UUID `json:"linkIds" binding:"required"`
}

// ReorderPricingOptionsRequest lists every pricing option id in the new order
type ReorderPricingOptionsRequest struct {
	OptionIDs []uuid.UUID `json:"optionIds" binding:"required"`
}

// ReplacePricingOptionsRequest replaces all pricing options at once
type ReplacePricingOptionsRequest struct {
	PricingOptions []PricingOptionRequest `json:"pricingOptions" binding:"required,dive"`
}

// RequestsInfoRequest updates the copy above a creator's request form
type RequestsInfoRequest struct {
	Headline     *string `json:"headline" binding:"omitempty,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	ResponseTime *int    `json:"responseTime"`
	// PaymentMethods is accepted as an object or as a JSON-encoded string
	PaymentMethods json.RawMessage `json:"paymentMethods" swaggertype:"object"`
}

func (r RequestsInfoRequest) toUpdate() (identity.RequestsInfoUpdate, error) {
	update := identity.RequestsInfoUpdate{
		Headline:     r.Headline,
		Description:  r.Description,
		ResponseTime: r.ResponseTime,
	}
	methods, err := decodePaymentMethods(r.PaymentMethods)
	if err != nil {
		return update, err
	}
	update.PaymentMethods = methods
	return update, nil
}

func decodePaymentMethods(raw json.RawMessage) (*identity.PaymentMethods, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		raw = []byte(encoded)
	}
	var methods identity.PaymentMethods
	if err := json.Unmarshal(raw, &methods); err != nil {
		return nil, err
	}
	return &methods, nil
}

// PaymentSettingsRequest is the settings page payment form
type PaymentSettingsRequest struct {
	AcceptsPayments   bool   `json:"acceptsPayments"`
	StripeAccountID   string `json:"stripeAccountId" binding:"max=255"`
	PayPalEmail       string `json:"paypalEmail" binding:"omitempty,email"`
	PreferredCurrency string `json:"preferredCurrency" binding:"omitempty,currency"`
}

func (r PaymentSettingsRequest) toUpdate() identity.PaymentSettingsUpdate {
	return identity.PaymentSettingsUpdate{
		AcceptsPayments:   r.AcceptsPayments,
		StripeAccountID:   r.StripeAccountID,
		PayPalEmail:       r.PayPalEmail,
		PreferredCurrency: r.PreferredCurrency,
	}
}
