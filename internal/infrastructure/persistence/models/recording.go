package models

import (
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/google/uuid"
)

// RecordingModel is the persistence model for the Recording domain entity.
type RecordingModel struct {
	AggregateModel
	Title               string     `gorm:"type:varchar(300);not null"`
	Description         string     `gorm:"type:text"`
	URL                 string     `gorm:"type:varchar(1000);not null"`
	ObjectKey           string     `gorm:"type:varchar(500)"`
	ArtworkURL          string     `gorm:"type:varchar(1000)"`
	ArtworkKey          string     `gorm:"type:varchar(500)"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	OriginalRecordingID *uuid.UUID `gorm:"type:uuid"`
	IsCompressed        bool       `gorm:"not null;default:false"`
	IsShared            bool       `gorm:"not null;default:false"`
	IsPublic            bool       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecordingModel) TableName() string {
	return "recordings"
}

// ToDomain converts the persistence model to a domain Recording entity.
func (m *RecordingModel) ToDomain() *recording.Recording {
	return &recording.Recording{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		Title:               m.Title,
		Description:         m.Description,
		URL:                 m.URL,
		ObjectKey:           m.ObjectKey,
		ArtworkURL:          m.ArtworkURL,
		ArtworkKey:          m.ArtworkKey,
		UserID:              m.UserID,
		OriginalRecordingID: m.OriginalRecordingID,
		IsCompressed:        m.IsCompressed,
		IsShared:            m.IsShared,
		IsPublic:            m.IsPublic,
	}
}

// RecordingModelFromDomain creates a new persistence model from a domain Recording entity.
func RecordingModelFromDomain(r *recording.Recording) *RecordingModel {
	m := &RecordingModel{
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
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
