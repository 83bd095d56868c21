package models

import (
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email                string                   `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash         string                   `gorm:"type:varchar(255)"`
	Name                 string                   `gorm:"type:varchar(200);not null"`
	GoogleID             *string                  `gorm:"type:varchar(100);uniqueIndex"`
	Picture              string                   `gorm:"type:varchar(1000)"`
	IsPodcaster          bool                     `gorm:"not null;default:false"`
	Bio                  string                   `gorm:"type:text"`
	PricePerMessage      decimal.Decimal          `gorm:"type:numeric(12,2);not null;default:0"`
	AvailableForRequests bool                     `gorm:"not null"`
	DisplayName          string                   `gorm:"type:varchar(100);index"`
	Location             string                   `gorm:"type:varchar(200)"`
	Profession           string                   `gorm:"type:varchar(200)"`
	ProfileTheme         string                   `gorm:"type:varchar(20);not null;default:'default'"`
	CustomColors         identity.CustomColors    `gorm:"type:jsonb"`
	MediaLinks           identity.MediaLinks      `gorm:"type:jsonb"`
	PricingOptions       identity.PricingOptions  `gorm:"type:jsonb"`
	AcceptsRequests      bool                     `gorm:"not null;default:false"`
	RequestsInfo         identity.RequestsInfo    `gorm:"type:jsonb"`
	PaymentSettings      identity.PaymentSettings `gorm:"type:jsonb"`
	IsAdmin              bool                     `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		Name:                 m.Name,
		Picture:              m.Picture,
		IsPodcaster:          m.IsPodcaster,
		Bio:                  m.Bio,
		PricePerMessage:      m.PricePerMessage,
		AvailableForRequests: m.AvailableForRequests,
		DisplayName:          m.DisplayName,
		Location:             m.Location,
		Profession:           m.Profession,
		ProfileTheme:         identity.ProfileTheme(m.ProfileTheme),
		CustomColors:         m.CustomColors,
		MediaLinks:           m.MediaLinks,
		PricingOptions:       m.PricingOptions,
		AcceptsRequests:      m.AcceptsRequests,
		RequestsInfo:         m.RequestsInfo,
		PaymentSettings:      m.PaymentSettings,
		IsAdmin:              m.IsAdmin,
	}
	if m.GoogleID != nil {
		user.GoogleID = *m.GoogleID
	}
	if user.MediaLinks == nil {
		user.MediaLinks = identity.MediaLinks{}
	}
	if user.PricingOptions == nil {
		user.PricingOptions = identity.PricingOptions{}
	}
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.GoogleID = nil
	if u.GoogleID != "" {
		googleID := u.GoogleID
		m.GoogleID = &googleID
	}
	m.Picture = u.Picture
	m.IsPodcaster = u.IsPodcaster
	m.Bio = u.Bio
	m.PricePerMessage = u.PricePerMessage
	m.AvailableForRequests = u.AvailableForRequests
	m.DisplayName = u.DisplayName
	m.Location = u.Location
	m.Profession = u.Profession
	m.ProfileTheme = string(u.ProfileTheme)
	m.CustomColors = u.CustomColors
	m.MediaLinks = u.MediaLinks
	m.PricingOptions = u.PricingOptions
	m.AcceptsRequests = u.AcceptsRequests
	m.RequestsInfo = u.RequestsInfo
	m.PaymentSettings = u.PaymentSettings
	m.IsAdmin = u.IsAdmin
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
