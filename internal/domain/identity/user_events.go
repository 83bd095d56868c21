package identity

import (
	"github.com/audiozoom/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered         = "user.registered"
	EventTypePaymentSettingsUpdated = "user.payment_settings_updated"
)

// UserRegisteredEvent is published when an account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email  string `json:"email"`
	Name   string `json:"name"`
	Method string `json:"method"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User, method string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Email:           user.Email,
		Name:            user.Name,
		Method:          method,
	}
}

// PaymentSettingsUpdatedEvent is published when payout accounts change
type PaymentSettingsUpdatedEvent struct {
	shared.BaseDomainEvent
	AcceptsPayments bool `json:"accepts_payments"`
	HasStripe       bool `json:"has_stripe"`
	HasPayPal       bool `json:"has_paypal"`
}

// NewPaymentSettingsUpdatedEvent creates a new PaymentSettingsUpdatedEvent
func NewPaymentSettingsUpdatedEvent(user *User) *PaymentSettingsUpdatedEvent {
	return &PaymentSettingsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSettingsUpdated, AggregateTypeUser, user.ID),
		AcceptsPayments: user.PaymentSettings.AcceptsPayments,
		HasStripe:       user.PaymentSettings.StripeAccountID != "",
		HasPayPal:       user.PaymentSettings.PayPalEmail != "",
	}
}
