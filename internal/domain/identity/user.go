package identity

import (
	"regexp"
	"strings"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// minPasswordLength mirrors the sign-up form rule
const minPasswordLength = 6

// ProfileTheme is the colour scheme a creator picks for their public page
type ProfileTheme string

const (
	ProfileThemeDefault  ProfileTheme = "default"
	ProfileThemeDark     ProfileTheme = "dark"
	ProfileThemeLight    ProfileTheme = "light"
	ProfileThemeColorful ProfileTheme = "colorful"
)

// IsValid reports whether the theme is one of the known themes
func (t ProfileTheme) IsValid() bool {
	switch t {
	case ProfileThemeDefault, ProfileThemeDark, ProfileThemeLight, ProfileThemeColorful:
		return true
	}
	return false
}

// User is the aggregate root for accounts, public profiles and creator settings.
// Media links, pricing options, requests info and payment settings are owned
// by the user and persisted with it.
type User struct {
	shared.BaseAggregateRoot
	Email                string
	PasswordHash         string
	Name                 string
	GoogleID             string
	Picture              string
	IsPodcaster          bool
	Bio                  string
	PricePerMessage      decimal.Decimal
	AvailableForRequests bool
	DisplayName          string
	Location             string
	Profession           string
	ProfileTheme         ProfileTheme
	CustomColors         CustomColors
	MediaLinks           MediaLinks
	PricingOptions       PricingOptions
	AcceptsRequests      bool
	RequestsInfo         RequestsInfo
	PaymentSettings      PaymentSettings
	IsAdmin              bool
}

// NewUser registers a user with email and password
func NewUser(email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := newUser(email, name)
	user.PasswordHash = passwordHash
	user.AddDomainEvent(NewUserRegisteredEvent(user, "password"))

	return user, nil
}

// NewGoogleUser registers a user from a verified Google identity
func NewGoogleUser(email, name, googleID, picture string) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(googleID) == "" {
		return nil, shared.NewDomainError("INVALID_GOOGLE_ID", "Google account id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user := newUser(email, name)
	user.GoogleID = googleID
	user.Picture = picture
	user.AddDomainEvent(NewUserRegisteredEvent(user, "google"))

	return user, nil
}

func newUser(email, name string) *User {
	return &User{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		Email:                email,
		Name:                 name,
		PricePerMessage:      decimal.Zero,
		AvailableForRequests: true,
		ProfileTheme:         ProfileThemeDefault,
		MediaLinks:           MediaLinks{},
		PricingOptions:       PricingOptions{},
		RequestsInfo:         DefaultRequestsInfo(),
		PaymentSettings:      DefaultPaymentSettings(),
	}
}

// VerifyPassword verifies if the provided password matches.
// Accounts created through Google have no password and never match.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// LinkGoogleAccount attaches a Google identity to an existing account
func (u *User) LinkGoogleAccount(googleID, picture string) {
	u.GoogleID = googleID
	if u.Picture == "" {
		u.Picture = picture
	}
	u.Touch()
}

// ProfileUpdate carries optional profile field changes.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name            *string
	Bio             *string
	DisplayName     *string
	Location        *string
	Profession      *string
	ProfileTheme    *ProfileTheme
	AcceptsRequests *bool
	CustomColors    *CustomColors
	RequestsInfo    *RequestsInfoUpdate
}

// UpdateProfile applies a partial profile update
func (u *User) UpdateProfile(update ProfileUpdate) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		u.Name = name
	}
	if update.Bio != nil {
		u.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.DisplayName != nil {
		if len(*update.DisplayName) > 200 {
			return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
		}
		u.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Location != nil {
		u.Location = strings.TrimSpace(*update.Location)
	}
	if update.Profession != nil {
		u.Profession = strings.TrimSpace(*update.Profession)
	}
	if update.ProfileTheme != nil {
		if !update.ProfileTheme.IsValid() {
			return shared.NewDomainError("INVALID_PROFILE_THEME", "Unknown profile theme")
		}
		u.ProfileTheme = *update.ProfileTheme
	}
	if update.AcceptsRequests != nil {
		u.AcceptsRequests = *update.AcceptsRequests
	}
	if update.CustomColors != nil {
		u.CustomColors = u.CustomColors.Merge(*update.CustomColors)
	}
	if update.RequestsInfo != nil {
		if err := u.RequestsInfo.Apply(*update.RequestsInfo); err != nil {
			return err
		}
	}
	u.Touch()
	return nil
}

// SetPicture replaces the profile picture and returns the previous URL
func (u *User) SetPicture(url string) string {
	old := u.Picture
	u.Picture = url
	u.Touch()
	return old
}

// UpdateRequestsInfo merges changes into the requests info block
func (u *User) UpdateRequestsInfo(update RequestsInfoUpdate) error {
	if err := u.RequestsInfo.Apply(update); err != nil {
		return err
	}
	u.Touch()
	return nil
}

// UpdatePaymentSettings replaces payment settings, keeping stored account
// identifiers when the update leaves them empty
func (u *User) UpdatePaymentSettings(update PaymentSettingsUpdate) error {
	settings, err := u.PaymentSettings.With(update)
	if err != nil {
		return err
	}
	u.PaymentSettings = settings
	u.Touch()
	u.AddDomainEvent(NewPaymentSettingsUpdatedEvent(u))
	return nil
}

// SetStripeAccountID records the connected Stripe account created for the user
func (u *User) SetStripeAccountID(accountID string) {
	u.PaymentSettings.StripeAccountID = accountID
	u.Touch()
	u.AddDomainEvent(NewPaymentSettingsUpdatedEvent(u))
}

// StripeAccountID returns the connected Stripe account, if any
func (u *User) StripeAccountID() string {
	return u.PaymentSettings.StripeAccountID
}

// PayPalEmail returns the PayPal address the user is paid at, if any
func (u *User) PayPalEmail() string {
	return u.PaymentSettings.PayPalEmail
}

// HasPricingOptions reports whether fans can currently order from this user
func (u *User) HasPricingOptions() bool {
	return u.AcceptsRequests && len(u.PricingOptions) > 0
}

// PublicName returns the display name if set, otherwise the account name
func (u *User) PublicName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
