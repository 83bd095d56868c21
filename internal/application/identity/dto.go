package identity

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterInput contains the input for email sign-up
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the tokens issued after register, login or Google sign-in
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  *UserProfile
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID to revoke
	TokenTTL time.Duration // remaining lifetime of the token
}

// UpdateProfileInput carries a profile form submission.
// Picture is nil when no new picture was uploaded.
type UpdateProfileInput struct {
	identity.ProfileUpdate
	Picture *shared.FileUpload
}

// UserProfile is the owner's view of their account, without credentials
type UserProfile struct {
	ID                   uuid.UUID                `json:"id"`
	Email                string                   `json:"email"`
	Name                 string                   `json:"name"`
	Picture              string                   `json:"picture,omitempty"`
	IsPodcaster          bool                     `json:"isPodcaster"`
	IsAdmin              bool                     `json:"isAdmin"`
	HasGoogleAccount     bool                     `json:"hasGoogleAccount"`
	Bio                  string                   `json:"bio"`
	PricePerMessage      decimal.Decimal          `json:"pricePerMessage"`
	AvailableForRequests bool                     `json:"availableForRequests"`
	DisplayName          string                   `json:"displayName,omitempty"`
	Location             string                   `json:"location,omitempty"`
	Profession           string                   `json:"profession,omitempty"`
	ProfileTheme         identity.ProfileTheme    `json:"profileTheme"`
	CustomColors         identity.CustomColors    `json:"customColors"`
	MediaLinks           identity.MediaLinks      `json:"mediaLinks"`
	PricingOptions       identity.PricingOptions  `json:"pricingOptions"`
	AcceptsRequests      bool                     `json:"acceptsRequests"`
	RequestsInfo         identity.RequestsInfo    `json:"requestsInfo"`
	PaymentSettings      identity.PaymentSettings `json:"paymentSettings"`
	CreatedAt            time.Time                `json:"createdAt"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

// ToUserProfile converts a domain user to the owner's view
func ToUserProfile(u *identity.User) *UserProfile {
	return &UserProfile{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Picture:              u.Picture,
		IsPodcaster:          u.IsPodcaster,
		IsAdmin:              u.IsAdmin,
		HasGoogleAccount:     u.GoogleID != "",
		Bio:                  u.Bio,
		PricePerMessage:      u.PricePerMessage,
		AvailableForRequests: u.AvailableForRequests,
		DisplayName:          u.DisplayName,
		Location:             u.Location,
		Profession:           u.Profession,
		ProfileTheme:         u.ProfileTheme,
		CustomColors:         u.CustomColors,
		MediaLinks:           nonNilLinks(u.MediaLinks),
		PricingOptions:       nonNilOptions(u.PricingOptions),
		AcceptsRequests:      u.AcceptsRequests,
		RequestsInfo:         u.RequestsInfo,
		PaymentSettings:      u.PaymentSettings,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// PublicProfile is what other users see on a creator page
type PublicProfile struct {
	ID                uuid.UUID               `json:"id"`
	Name              string                  `json:"name"`
	Picture           string                  `json:"picture,omitempty"`
	Bio               string                  `json:"bio"`
	DisplayName       string                  `json:"displayName,omitempty"`
	Location          string                  `json:"location,omitempty"`
	Profession        string                  `json:"profession,omitempty"`
	IsPodcaster       bool                    `json:"isPodcaster"`
	ProfileTheme      identity.ProfileTheme   `json:"profileTheme"`
	CustomColors      identity.CustomColors   `json:"customColors"`
	MediaLinks        identity.MediaLinks     `json:"mediaLinks"`
	PricingOptions    identity.PricingOptions `json:"pricingOptions"`
	AcceptsRequests   bool                    `json:"acceptsRequests"`
	RequestsInfo      identity.RequestsInfo   `json:"requestsInfo"`
	AcceptsPayments   bool                    `json:"acceptsPayments"`
	HasPricingOptions bool                    `json:"hasPricingOptions"`
	CreatedAt         time.Time               `json:"createdAt"`
}

// ToPublicProfile projects a user for a viewer. Only the owner sees inactive
// pricing options.
func ToPublicProfile(u *identity.User, owner bool) *PublicProfile {
	options := u.PricingOptions
	if !owner {
		options = options.Active()
	}
	return &PublicProfile{
		ID:                u.ID,
		Name:              u.Name,
		Picture:           u.Picture,
		Bio:               u.Bio,
		DisplayName:       u.DisplayName,
		Location:          u.Location,
		Profession:        u.Profession,
		IsPodcaster:       u.IsPodcaster,
		ProfileTheme:      u.ProfileTheme,
		CustomColors:      u.CustomColors,
		MediaLinks:        nonNilLinks(u.MediaLinks),
		PricingOptions:    nonNilOptions(options),
		AcceptsRequests:   u.AcceptsRequests,
		RequestsInfo:      u.RequestsInfo,
		AcceptsPayments:   u.PaymentSettings.AcceptsPayments,
		HasPricingOptions: u.HasPricingOptions(),
		CreatedAt:         u.CreatedAt,
	}
}

// FeaturedCreator is one entry of the featured creators strip
type FeaturedCreator struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Bio             string    `json:"bio"`
	Avatar          string    `json:"avatar,omitempty"`
	RecordingsCount int64     `json:"recordingsCount"`
}

// SearchResult is one user matching a search query
type SearchResult struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	DisplayName       string    `json:"displayName,omitempty"`
	Picture           string    `json:"picture,omitempty"`
	Bio               string    `json:"bio"`
	Profession        string    `json:"profession,omitempty"`
	HasPricingOptions bool      `json:"hasPricingOptions"`
}

func nonNilLinks(l identity.MediaLinks) identity.MediaLinks {
	if l == nil {
		return identity.MediaLinks{}
	}
	return l
}

func nonNilOptions(o identity.PricingOptions) identity.PricingOptions {
	if o == nil {
		return identity.PricingOptions{}
	}
	return o
}
