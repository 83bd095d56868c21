package identity

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Profile sub-document errors
var (
	ErrMediaLinkNotFound     = shared.NewDomainError("MEDIA_LINK_NOT_FOUND", "Media link not found")
	ErrPricingOptionNotFound = shared.NewDomainError("PRICING_OPTION_NOT_FOUND", "Pricing option not found")
	ErrInvalidReorder        = shared.NewDomainError("INVALID_REORDER", "Invalid order: every existing item must be listed exactly once")
)

// Defaults applied to new sub-documents
const (
	DefaultMediaLinkIcon     = "link"
	DefaultDeliveryTimeDays  = 7
	DefaultRequestsHeadline  = "Request a personalized audio message"
	DefaultResponseTimeDays  = 7
	DefaultPreferredCurrency = "USD"
)

// CustomColors overrides the theme colours of a public profile
type CustomColors struct {
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	Buttons    string `json:"buttons,omitempty"`
}

// Merge returns a copy with the non-empty fields of other applied
func (c CustomColors) Merge(other CustomColors) CustomColors {
	if other.Background != "" {
		c.Background = other.Background
	}
	if other.Text != "" {
		c.Text = other.Text
	}
	if other.Buttons != "" {
		c.Buttons = other.Buttons
	}
	return c
}

// Value implements driver.Valuer for JSONB storage
func (c CustomColors) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *CustomColors) Scan(value any) error {
	*c = CustomColors{}
	return shared.ScanJSON(value, c)
}

// MediaLinkType classifies an external link on a profile
type MediaLinkType string

const (
	MediaLinkTypeWebsite MediaLinkType = "website"
	MediaLinkTypeSocial  MediaLinkType = "social"
	MediaLinkTypeMusic   MediaLinkType = "music"
	MediaLinkTypeVideo   MediaLinkType = "video"
	MediaLinkTypePodcast MediaLinkType = "podcast"
	MediaLinkTypeOther   MediaLinkType = "other"
)

// IsValid reports whether the link type is known
func (t MediaLinkType) IsValid() bool {
	switch t {
	case MediaLinkTypeWebsite, MediaLinkTypeSocial, MediaLinkTypeMusic,
		MediaLinkTypeVideo, MediaLinkTypePodcast, MediaLinkTypeOther:
		return true
	}
	return false
}

// MediaLink is an external link shown on a profile
type MediaLink struct {
	ID    uuid.UUID     `json:"id"`
	Title string        `json:"title"`
	URL   string        `json:"url"`
	Type  MediaLinkType `json:"type"`
	Icon  string        `json:"icon"`
}

// MediaLinkInput carries fields for creating or updating a media link
type MediaLinkInput struct {
	Title *string
	URL   *string
	Type  *MediaLinkType
	Icon  *string
}

// MediaLinks is an ordered list of links stored as JSONB
type MediaLinks []MediaLink

// Value implements driver.Valuer for JSONB storage
func (l MediaLinks) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage
func (l *MediaLinks) Scan(value any) error {
	*l = MediaLinks{}
	return shared.ScanJSON(value, l)
}

// PricingOptionType is the audience a pricing tier is aimed at
type PricingOptionType string

const (
	PricingOptionTypePersonal PricingOptionType = "personal"
	PricingOptionTypeBusiness PricingOptionType = "business"
	PricingOptionTypeCustom   PricingOptionType = "custom"
)

// IsValid reports whether the option type is known
func (t PricingOptionType) IsValid() bool {
	switch t {
	case PricingOptionTypePersonal, PricingOptionTypeBusiness, PricingOptionTypeCustom:
		return true
	}
	return false
}

// PricingOption is a priced service tier a creator offers.
// Price is in dollars.
type PricingOption struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Price        decimal.Decimal   `json:"price"`
	DeliveryTime int               `json:"deliveryTime"`
	IsActive     bool              `json:"isActive"`
	Type         PricingOptionType `json:"type"`
}

// PricingOptionInput carries fields for creating or updating a pricing option.
// Nil fields take defaults on create and are left untouched on update.
type PricingOptionInput struct {
	// ID keeps an existing option's id on bulk replace
	ID           *uuid.UUID
	Title        *string
	Description  *string
	Price        *decimal.Decimal
	DeliveryTime *int
	IsActive     *bool
	Type         *PricingOptionType
}

// PricingOptions is an ordered list of options stored as JSONB
type PricingOptions []PricingOption

// Value implements driver.Valuer for JSONB storage
func (o PricingOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	return json.Marshal(o)
}

// Scan implements sql.Scanner for JSONB storage
func (o *PricingOptions) Scan(value any) error {
	*o = PricingOptions{}
	return shared.ScanJSON(value, o)
}

// Active returns only the options currently offered
func (o PricingOptions) Active() PricingOptions {
	active := make(PricingOptions, 0, len(o))
	for _, opt := range o {
		if opt.IsActive {
			active = append(active, opt)
		}
	}
	return active
}

// Find returns the option with the given id
func (o PricingOptions) Find(id uuid.UUID) (*PricingOption, error) {
	for i := range o {
		if o[i].ID == id {
			opt := o[i]
			return &opt, nil
		}
	}
	return nil, ErrPricingOptionNotFound
}

// PaymentMethods lists how a creator advertises being paid
type PaymentMethods struct {
	PayPal          bool   `json:"paypal"`
	Stripe          bool   `json:"stripe"`
	PayPalEmail     string `json:"paypalEmail,omitempty"`
	StripeAccountID string `json:"stripeAccountId,omitempty"`
}

// RequestsInfo is the copy shown above a creator's request form
type RequestsInfo struct {
	Headline       string         `json:"headline"`
	Description    string         `json:"description"`
	ResponseTime   int            `json:"responseTime"`
	PaymentMethods PaymentMethods `json:"paymentMethods"`
}

// RequestsInfoUpdate carries optional requests info changes
type RequestsInfoUpdate struct {
	Headline       *string
	Description    *string
	ResponseTime   *int
	PaymentMethods *PaymentMethods
}

// DefaultRequestsInfo returns the requests info of a new account
func DefaultRequestsInfo() RequestsInfo {
	return RequestsInfo{
		Headline:     DefaultRequestsHeadline,
		ResponseTime: DefaultResponseTimeDays,
	}
}

// Apply merges the update into the requests info
func (r *RequestsInfo) Apply(update RequestsInfoUpdate) error {
	if update.ResponseTime != nil && *update.ResponseTime < 1 {
		return shared.NewDomainError("INVALID_RESPONSE_TIME", "Response time must be at least 1 day")
	}
	if update.Headline != nil {
		r.Headline = strings.TrimSpace(*update.Headline)
	}
	if update.Description != nil {
		r.Description = strings.TrimSpace(*update.Description)
	}
	if update.ResponseTime != nil {
		r.ResponseTime = *update.ResponseTime
	}
	if update.PaymentMethods != nil {
		r.PaymentMethods = *update.PaymentMethods
	}
	return nil
}

// Value implements driver.Valuer for JSONB storage
func (r RequestsInfo) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB storage
func (r *RequestsInfo) Scan(value any) error {
	*r = RequestsInfo{}
	return shared.ScanJSON(value, r)
}

// PaymentSettings holds payout accounts of a creator
type PaymentSettings struct {
	AcceptsPayments   bool   `json:"acceptsPayments"`
	StripeAccountID   string `json:"stripeAccountId,omitempty"`
	PayPalEmail       string `json:"paypalEmail,omitempty"`
	PreferredCurrency string `json:"preferredCurrency"`
}

// PaymentSettingsUpdate is a full settings submission from the settings page
type PaymentSettingsUpdate struct {
	AcceptsPayments   bool
	StripeAccountID   string
	PayPalEmail       string
	PreferredCurrency string
}

// DefaultPaymentSettings returns the payment settings of a new account
func DefaultPaymentSettings() PaymentSettings {
	return PaymentSettings{PreferredCurrency: DefaultPreferredCurrency}
}

// With returns the settings produced by applying update.
// Empty account identifiers keep their stored values.
func (p PaymentSettings) With(update PaymentSettingsUpdate) (PaymentSettings, error) {
	code := strings.TrimSpace(update.PreferredCurrency)
	if code == "" {
		code = DefaultPreferredCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p, shared.NewDomainError("INVALID_CURRENCY", "Preferred currency must be an ISO 4217 code")
	}

	next := PaymentSettings{
		AcceptsPayments:   update.AcceptsPayments,
		StripeAccountID:   p.StripeAccountID,
		PayPalEmail:       p.PayPalEmail,
		PreferredCurrency: unit.String(),
	}
	if update.StripeAccountID != "" {
		next.StripeAccountID = strings.TrimSpace(update.StripeAccountID)
	}
	if update.PayPalEmail != "" {
		email := normalizeEmail(update.PayPalEmail)
		if err := validateEmail(email); err != nil {
			return p, shared.NewDomainError("INVALID_PAYPAL_EMAIL", "PayPal email is not a valid email address")
		}
		next.PayPalEmail = email
	}
	return next, nil
}

// Value implements driver.Valuer for JSONB storage
func (p PaymentSettings) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *PaymentSettings) Scan(value any) error {
	*p = PaymentSettings{}
	return shared.ScanJSON(value, p)
}

// AddMediaLink appends a link to the profile
func (u *User) AddMediaLink(input MediaLinkInput) (*MediaLink, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" ||
		input.URL == nil || strings.TrimSpace(*input.URL) == "" {
		return nil, shared.NewDomainError("INVALID_MEDIA_LINK", "Title and URL are required")
	}

	link := MediaLink{
		ID:    uuid.New(),
		Title: strings.TrimSpace(*input.Title),
		URL:   strings.TrimSpace(*input.URL),
		Type:  MediaLinkTypeWebsite,
		Icon:  DefaultMediaLinkIcon,
	}
	if err := applyMediaLinkInput(&link, input); err != nil {
		return nil, err
	}

	u.MediaLinks = append(u.MediaLinks, link)
	u.Touch()
	return &link, nil
}

// UpdateMediaLink applies a partial update to one link
func (u *User) UpdateMediaLink(id uuid.UUID, input MediaLinkInput) (*MediaLink, error) {
	for i := range u.MediaLinks {
		if u.MediaLinks[i].ID != id {
			continue
		}
		updated := u.MediaLinks[i]
		if err := applyMediaLinkInput(&updated, input); err != nil {
			return nil, err
		}
		u.MediaLinks[i] = updated
		u.Touch()
		return &updated, nil
	}
	return nil, ErrMediaLinkNotFound
}

// RemoveMediaLink deletes one link
func (u *User) RemoveMediaLink(id uuid.UUID) error {
	for i := range u.MediaLinks {
		if u.MediaLinks[i].ID == id {
			u.MediaLinks = append(u.MediaLinks[:i], u.MediaLinks[i+1:]...)
			u.Touch()
			return nil
		}
	}
	return ErrMediaLinkNotFound
}

// ReorderMediaLinks rearranges links to the given order
func (u *User) ReorderMediaLinks(ids []uuid.UUID) error {
	byID := make(map[uuid.UUID]MediaLink, len(u.MediaLinks))
	for _, l := range u.MediaLinks {
		byID[l.ID] = l
	}
	ordered, err := reorder(ids, byID)
	if err != nil {
		return err
	}
	u.MediaLinks = ordered
	u.Touch()
	return nil
}

// AddPricingOption appends a pricing tier
func (u *User) AddPricingOption(input PricingOptionInput) (*PricingOption, error) {
	opt, err := newPricingOption(input)
	if err != nil {
		return nil, err
	}
	u.PricingOptions = append(u.PricingOptions, *opt)
	u.Touch()
	return opt, nil
}

// UpdatePricingOption applies a partial update to one pricing tier
func (u *User) UpdatePricingOption(id uuid.UUID, input PricingOptionInput) (*PricingOption, error) {
	for i := range u.PricingOptions {
		if u.PricingOptions[i].ID != id {
			continue
		}
		updated := u.PricingOptions[i]
		if err := applyPricingOptionInput(&updated, input); err != nil {
			return nil, err
		}
		u.PricingOptions[i] = updated
		u.Touch()
		return &updated, nil
	}
	return nil, ErrPricingOptionNotFound
}

// RemovePricingOption deletes one pricing tier
func (u *User) RemovePricingOption(id uuid.UUID) error {
	for i := range u.PricingOptions {
		if u.PricingOptions[i].ID == id {
			u.PricingOptions = append(u.PricingOptions[:i], u.PricingOptions[i+1:]...)
			u.Touch()
			return nil
		}
	}
	return ErrPricingOptionNotFound
}

// ReorderPricingOptions rearranges pricing tiers to the given order
func (u *User) ReorderPricingOptions(ids []uuid.UUID) error {
	byID := make(map[uuid.UUID]PricingOption, len(u.PricingOptions))
	for _, o := range u.PricingOptions {
		byID[o.ID] = o
	}
	ordered, err := reorder(ids, byID)
	if err != nil {
		return err
	}
	u.PricingOptions = ordered
	u.Touch()
	return nil
}

// ReplacePricingOptions swaps the whole list of pricing tiers. An input whose
// ID names a current option keeps that id; any other input gets a new one.
func (u *User) ReplacePricingOptions(inputs []PricingOptionInput) (PricingOptions, error) {
	current := make(map[uuid.UUID]bool, len(u.PricingOptions))
	for _, o := range u.PricingOptions {
		current[o.ID] = true
	}
	options := make(PricingOptions, 0, len(inputs))
	for _, input := range inputs {
		opt, err := newPricingOption(input)
		if err != nil {
			return nil, err
		}
		if input.ID != nil && current[*input.ID] {
			opt.ID = *input.ID
			delete(current, *input.ID)
		}
		options = append(options, *opt)
	}
	u.PricingOptions = options
	u.Touch()
	return options, nil
}

// FindPricingOption returns one of the user's pricing tiers
func (u *User) FindPricingOption(id uuid.UUID) (*PricingOption, error) {
	return u.PricingOptions.Find(id)
}

func newPricingOption(input PricingOptionInput) (*PricingOption, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" || input.Price == nil {
		return nil, shared.NewDomainError("INVALID_PRICING_OPTION", "Title and price are required")
	}
	opt := &PricingOption{
		ID:           uuid.New(),
		DeliveryTime: DefaultDeliveryTimeDays,
		IsActive:     true,
		Type:         PricingOptionTypePersonal,
	}
	if err := applyPricingOptionInput(opt, input); err != nil {
		return nil, err
	}
	return opt, nil
}

func applyPricingOptionInput(opt *PricingOption, input PricingOptionInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return shared.NewDomainError("INVALID_PRICING_OPTION", "Title cannot be empty")
		}
		opt.Title = title
	}
	if input.Description != nil {
		opt.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		opt.Price = input.Price.Round(2)
	}
	if input.DeliveryTime != nil {
		if *input.DeliveryTime < 1 {
			return shared.NewDomainError("INVALID_DELIVERY_TIME", "Delivery time must be at least 1 day")
		}
		opt.DeliveryTime = *input.DeliveryTime
	}
	if input.IsActive != nil {
		opt.IsActive = *input.IsActive
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return shared.NewDomainError("INVALID_PRICING_OPTION_TYPE", "Unknown pricing option type")
		}
		opt.Type = *input.Type
	}
	return nil
}

func applyMediaLinkInput(link *MediaLink, input MediaLinkInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return shared.NewDomainError("INVALID_MEDIA_LINK", "Title cannot be empty")
		}
		link.Title = title
	}
	if input.URL != nil {
		url := strings.TrimSpace(*input.URL)
		if url == "" {
			return shared.NewDomainError("INVALID_MEDIA_LINK", "URL cannot be empty")
		}
		link.URL = url
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return shared.NewDomainError("INVALID_MEDIA_LINK_TYPE", "Unknown media link type")
		}
		link.Type = *input.Type
	}
	if input.Icon != nil && *input.Icon != "" {
		link.Icon = *input.Icon
	}
	return nil
}

// reorder arranges items by ids; every item must appear exactly once
func reorder[T any](ids []uuid.UUID, byID map[uuid.UUID]T) ([]T, error) {
	if len(ids) != len(byID) {
		return nil, ErrInvalidReorder
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, ErrInvalidReorder
		}
		if _, dup := seen[id]; dup {
			return nil, ErrInvalidReorder
		}
		seen[id] = struct{}{}
		ordered = append(ordered, item)
	}
	return ordered, nil
}
