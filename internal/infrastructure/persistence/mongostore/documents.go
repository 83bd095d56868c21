package mongostore

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseDocument carries the aggregate identity and bookkeeping fields.
// It is exported so the BSON codec can inline it.
type BaseDocument struct {
	ID        uuid.UUID `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	Version   int       `bson:"version"`
}

func baseFromDomain(a shared.BaseAggregateRoot) BaseDocument {
	return BaseDocument{ID: a.ID, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt, Version: a.Version}
}

func (d BaseDocument) toDomain() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Version:    d.Version,
	}
}

type userDocument struct {
	BaseDocument         `bson:",inline"`
	Email                string                   `bson:"email"`
	PasswordHash         string                   `bson:"passwordHash,omitempty"`
	Name                 string                   `bson:"name"`
	GoogleID             string                   `bson:"googleId,omitempty"`
	Picture              string                   `bson:"picture,omitempty"`
	IsPodcaster          bool                     `bson:"isPodcaster"`
	Bio                  string                   `bson:"bio"`
	PricePerMessage      decimal.Decimal          `bson:"pricePerMessage"`
	AvailableForRequests bool                     `bson:"availableForRequests"`
	DisplayName          string                   `bson:"displayName,omitempty"`
	Location             string                   `bson:"location"`
	Profession           string                   `bson:"profession"`
	ProfileTheme         string                   `bson:"profileTheme"`
	CustomColors         identity.CustomColors    `bson:"customColors"`
	MediaLinks           identity.MediaLinks      `bson:"mediaLinks"`
	PricingOptions       identity.PricingOptions  `bson:"pricingOptions"`
	AcceptsRequests      bool                     `bson:"acceptsRequests"`
	RequestsInfo         identity.RequestsInfo    `bson:"requestsInfo"`
	PaymentSettings      identity.PaymentSettings `bson:"paymentSettings"`
	IsAdmin              bool                     `bson:"isAdmin"`
}

func userFromDomain(u *identity.User) *userDocument {
	return &userDocument{
		BaseDocument:         baseFromDomain(u.BaseAggregateRoot),
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Name:                 u.Name,
		GoogleID:             u.GoogleID,
		Picture:              u.Picture,
		IsPodcaster:          u.IsPodcaster,
		Bio:                  u.Bio,
		PricePerMessage:      u.PricePerMessage,
		AvailableForRequests: u.AvailableForRequests,
		DisplayName:          u.DisplayName,
		Location:             u.Location,
		Profession:           u.Profession,
		ProfileTheme:         string(u.ProfileTheme),
		CustomColors:         u.CustomColors,
		MediaLinks:           u.MediaLinks,
		PricingOptions:       u.PricingOptions,
		AcceptsRequests:      u.AcceptsRequests,
		RequestsInfo:         u.RequestsInfo,
		PaymentSettings:      u.PaymentSettings,
		IsAdmin:              u.IsAdmin,
	}
}

func (d *userDocument) toDomain() *identity.User {
	u := &identity.User{
		BaseAggregateRoot:    d.BaseDocument.toDomain(),
		Email:                d.Email,
		PasswordHash:         d.PasswordHash,
		Name:                 d.Name,
		GoogleID:             d.GoogleID,
		Picture:              d.Picture,
		IsPodcaster:          d.IsPodcaster,
		Bio:                  d.Bio,
		PricePerMessage:      d.PricePerMessage,
		AvailableForRequests: d.AvailableForRequests,
		DisplayName:          d.DisplayName,
		Location:             d.Location,
		Profession:           d.Profession,
		ProfileTheme:         identity.ProfileTheme(d.ProfileTheme),
		CustomColors:         d.CustomColors,
		MediaLinks:           d.MediaLinks,
		PricingOptions:       d.PricingOptions,
		AcceptsRequests:      d.AcceptsRequests,
		RequestsInfo:         d.RequestsInfo,
		PaymentSettings:      d.PaymentSettings,
		IsAdmin:              d.IsAdmin,
	}
	if u.MediaLinks == nil {
		u.MediaLinks = identity.MediaLinks{}
	}
	if u.PricingOptions == nil {
		u.PricingOptions = identity.PricingOptions{}
	}
	return u
}

type recordingDocument struct {
	BaseDocument        `bson:",inline"`
	Title               string     `bson:"title"`
	Description         string     `bson:"description"`
	URL                 string     `bson:"url"`
	ObjectKey           string     `bson:"objectKey,omitempty"`
	ArtworkURL          string     `bson:"artworkUrl,omitempty"`
	ArtworkKey          string     `bson:"artworkKey,omitempty"`
	UserID              uuid.UUID  `bson:"userId"`
	OriginalRecordingID *uuid.UUID `bson:"originalRecordingId,omitempty"`
	IsCompressed        bool       `bson:"isCompressed"`
	IsShared            bool       `bson:"isShared"`
	IsPublic            bool       `bson:"isPublic"`
}

func recordingFromDomain(r *recording.Recording) *recordingDocument {
	return &recordingDocument{
		BaseDocument:        baseFromDomain(r.BaseAggregateRoot),
		Title:               r.Title,
		Description:         r.Description,
		URL:                 r.URL,
		ObjectKey:           r.ObjectKey,
		ArtworkURL:          r.ArtworkURL,
		ArtworkKey:          r.ArtworkKey,
		UserID:              r.UserID,
		OriginalRecordingID: r.OriginalRecordingID,
		IsCompressed:        r.IsCompressed,
		IsShared:            r.IsShared,
		IsPublic:            r.IsPublic,
	}
}

func (d *recordingDocument) toDomain() *recording.Recording {
	return &recording.Recording{
		BaseAggregateRoot:   d.BaseDocument.toDomain(),
		Title:               d.Title,
		Description:         d.Description,
		URL:                 d.URL,
		ObjectKey:           d.ObjectKey,
		ArtworkURL:          d.ArtworkURL,
		ArtworkKey:          d.ArtworkKey,
		UserID:              d.UserID,
		OriginalRecordingID: d.OriginalRecordingID,
		IsCompressed:        d.IsCompressed,
		IsShared:            d.IsShared,
		IsPublic:            d.IsPublic,
	}
}

type audioRequestDocument struct {
	BaseDocument         `bson:",inline"`
	RequesterID          *uuid.UUID                   `bson:"requesterId,omitempty"`
	RequesterEmail       string                       `bson:"requesterEmail,omitempty"`
	RequesterName        string                       `bson:"requesterName,omitempty"`
	CreatorID            uuid.UUID                    `bson:"creatorId"`
	PricingOptionID      uuid.UUID                    `bson:"pricingOptionId"`
	PricingDetails       audiorequest.PricingDetails  `bson:"pricingDetails"`
	RequestDetails       string                       `bson:"requestDetails"`
	Occasion             string                       `bson:"occasion,omitempty"`
	ForWhom              string                       `bson:"forWhom,omitempty"`
	Pronunciation        string                       `bson:"pronunciation,omitempty"`
	IsPublic             bool                         `bson:"isPublic"`
	Status               string                       `bson:"status"`
	PaymentStatus        string                       `bson:"paymentStatus"`
	PaymentMethod        string                       `bson:"paymentMethod"`
	PaymentID            string                       `bson:"paymentId,omitempty"`
	CompletedAudio       *audiorequest.CompletedAudio `bson:"completedAudio,omitempty"`
	ExpectedDeliveryDate time.Time                    `bson:"expectedDeliveryDate"`
	CompletedDate        *time.Time                   `bson:"completedDate,omitempty"`
}

func audioRequestFromDomain(r *audiorequest.AudioRequest) *audioRequestDocument {
	return &audioRequestDocument{
		BaseDocument:         baseFromDomain(r.BaseAggregateRoot),
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
		Status:               string(r.Status),
		PaymentStatus:        string(r.PaymentStatus),
		PaymentMethod:        string(r.PaymentMethod),
		PaymentID:            r.PaymentID,
		CompletedAudio:       r.CompletedAudio,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		CompletedDate:        r.CompletedDate,
	}
}

func (d *audioRequestDocument) toDomain() *audiorequest.AudioRequest {
	return &audiorequest.AudioRequest{
		BaseAggregateRoot:    d.BaseDocument.toDomain(),
		RequesterID:          d.RequesterID,
		RequesterEmail:       d.RequesterEmail,
		RequesterName:        d.RequesterName,
		CreatorID:            d.CreatorID,
		PricingOptionID:      d.PricingOptionID,
		PricingDetails:       d.PricingDetails,
		RequestDetails:       d.RequestDetails,
		Occasion:             d.Occasion,
		ForWhom:              d.ForWhom,
		Pronunciation:        d.Pronunciation,
		IsPublic:             d.IsPublic,
		Status:               audiorequest.Status(d.Status),
		PaymentStatus:        audiorequest.PaymentStatus(d.PaymentStatus),
		PaymentMethod:        audiorequest.PaymentMethod(d.PaymentMethod),
		PaymentID:            d.PaymentID,
		CompletedAudio:       d.CompletedAudio,
		ExpectedDeliveryDate: d.ExpectedDeliveryDate,
		CompletedDate:        d.CompletedDate,
	}
}

type paymentDocument struct {
	BaseDocument    `bson:",inline"`
	OrderID         string     `bson:"orderId"`
	Amount          int64      `bson:"amount"`
	PlatformFee     int64      `bson:"platformFee"`
	CreatorAmount   int64      `bson:"creatorAmount"`
	PodcasterID     uuid.UUID  `bson:"podcasterId"`
	CustomerID      uuid.UUID  `bson:"customerId"`
	PricingOptionID uuid.UUID  `bson:"pricingOptionId"`
	AudioRequestID  *uuid.UUID `bson:"audioRequestId,omitempty"`
	PaymentMethod   string     `bson:"paymentMethod"`
	Status          string     `bson:"status"`
	TransferID      string     `bson:"transferId,omitempty"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty"`
}

func paymentFromDomain(p *finance.Payment) *paymentDocument {
	return &paymentDocument{
		BaseDocument:    baseFromDomain(p.BaseAggregateRoot),
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		PlatformFee:     p.PlatformFee,
		CreatorAmount:   p.CreatorAmount,
		PodcasterID:     p.PodcasterID,
		CustomerID:      p.CustomerID,
		PricingOptionID: p.PricingOptionID,
		AudioRequestID:  p.AudioRequestID,
		PaymentMethod:   string(p.Method),
		Status:          string(p.Status),
		TransferID:      p.TransferID,
		CompletedAt:     p.CompletedAt,
	}
}

func (d *paymentDocument) toDomain() *finance.Payment {
	return &finance.Payment{
		BaseAggregateRoot: d.BaseDocument.toDomain(),
		OrderID:           d.OrderID,
		Amount:            d.Amount,
		PlatformFee:       d.PlatformFee,
		CreatorAmount:     d.CreatorAmount,
		PodcasterID:       d.PodcasterID,
		CustomerID:        d.CustomerID,
		PricingOptionID:   d.PricingOptionID,
		AudioRequestID:    d.AudioRequestID,
		Method:            finance.PaymentMethod(d.PaymentMethod),
		Status:            finance.PaymentStatus(d.Status),
		TransferID:        d.TransferID,
		CompletedAt:       d.CompletedAt,
	}
}

type messageDocument struct {
	BaseDocument   `bson:",inline"`
	SenderID       uuid.UUID                 `bson:"senderId"`
	RecipientID    uuid.UUID                 `bson:"recipientId"`
	Type           string                    `bson:"type"`
	Content        string                    `bson:"content"`
	RecordingID    *uuid.UUID                `bson:"recordingId,omitempty"`
	RequestDetails *messaging.RequestDetails `bson:"requestDetails,omitempty"`
	Read           bool                      `bson:"read"`
}

func messageFromDomain(m *messaging.Message) *messageDocument {
	return &messageDocument{
		BaseDocument:   baseFromDomain(m.BaseAggregateRoot),
		SenderID:       m.SenderID,
		RecipientID:    m.RecipientID,
		Type:           string(m.Type),
		Content:        m.Content,
		RecordingID:    m.RecordingID,
		RequestDetails: m.RequestDetails,
		Read:           m.Read,
	}
}

func (d *messageDocument) toDomain() *messaging.Message {
	return &messaging.Message{
		BaseAggregateRoot: d.BaseDocument.toDomain(),
		SenderID:          d.SenderID,
		RecipientID:       d.RecipientID,
		Type:              messaging.MessageType(d.Type),
		Content:           d.Content,
		RecordingID:       d.RecordingID,
		RequestDetails:    d.RequestDetails,
		Read:              d.Read,
	}
}

type requestDocument struct {
	BaseDocument   `bson:",inline"`
	SenderID       uuid.UUID              `bson:"senderId"`
	RecipientID    uuid.UUID              `bson:"recipientId"`
	Details        string                 `bson:"details"`
	Price          decimal.Decimal        `bson:"price"`
	Status         string                 `bson:"status"`
	ResponseAudio  string                 `bson:"responseAudio,omitempty"`
	PaymentStatus  string                 `bson:"paymentStatus"`
	PaymentDetails request.PaymentDetails `bson:"paymentDetails"`
}

func requestFromDomain(r *request.Request) *requestDocument {
	return &requestDocument{
		BaseDocument:   baseFromDomain(r.BaseAggregateRoot),
		SenderID:       r.SenderID,
		RecipientID:    r.RecipientID,
		Details:        r.Details,
		Price:          r.Price,
		Status:         string(r.Status),
		ResponseAudio:  r.ResponseAudio,
		PaymentStatus:  string(r.PaymentStatus),
		PaymentDetails: r.PaymentDetails,
	}
}

func (d *requestDocument) toDomain() *request.Request {
	return &request.Request{
		BaseAggregateRoot: d.BaseDocument.toDomain(),
		SenderID:          d.SenderID,
		RecipientID:       d.RecipientID,
		Details:           d.Details,
		Price:             d.Price,
		Status:            request.Status(d.Status),
		ResponseAudio:     d.ResponseAudio,
		PaymentStatus:     request.PaymentStatus(d.PaymentStatus),
		PaymentDetails:    d.PaymentDetails,
	}
}
