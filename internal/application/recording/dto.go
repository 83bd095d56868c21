package recording

import (
	"time"

	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShareTypeMessage delivers a shared recording as a direct message
const ShareTypeMessage = "message"

// UploadInput carries an uploaded recording and its sharing options
type UploadInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Audio       shared.FileUpload
	// ShareWith is a user id or email address; empty means no sharing
	ShareWith string
	ShareType string
}

// UpdateInput carries a partial metadata change
type UpdateInput struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// RecordingResult is the API view of a recording
type RecordingResult struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	URL                 string     `json:"url"`
	ArtworkURL          string     `json:"artworkUrl,omitempty"`
	UserID              uuid.UUID  `json:"userId"`
	OriginalRecordingID *uuid.UUID `json:"originalRecordingId,omitempty"`
	IsCompressed        bool       `json:"isCompressed"`
	IsShared            bool       `json:"isShared"`
	IsPublic            bool       `json:"isPublic"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ToRecordingResult converts a domain recording to its API view
func ToRecordingResult(r *recording.Recording) RecordingResult {
	return RecordingResult{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		URL:                 r.URL,
		ArtworkURL:          r.ArtworkURL,
		UserID:              r.UserID,
		OriginalRecordingID: r.OriginalRecordingID,
		IsCompressed:        r.IsCompressed,
		IsShared:            r.IsShared,
		IsPublic:            r.IsPublic,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// ToRecordingResults converts a list of recordings
func ToRecordingResults(recs []*recording.Recording) []RecordingResult {
	results := make([]RecordingResult, len(recs))
	for i, r := range recs {
		results[i] = ToRecordingResult(r)
	}
	return results
}
