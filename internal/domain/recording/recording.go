package recording

import (
	"strings"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Recording
const AggregateTypeRecording = "Recording"

// Recording errors
var (
	ErrRecordingNotFound = shared.NewDomainError("RECORDING_NOT_FOUND", "Recording not found")
	ErrNotOwner          = shared.NewDomainError("FORBIDDEN", "Not authorized to modify this recording")
	ErrTitleRequired     = shared.NewDomainError("TITLE_REQUIRED", "Title is required")
	ErrURLRequired       = shared.NewDomainError("URL_REQUIRED", "Recording URL is required")
)

// Recording is an audio file a user recorded or uploaded
type Recording struct {
	shared.BaseAggregateRoot
	Title               string
	Description         string
	URL                 string
	ObjectKey           string
	ArtworkURL          string
	ArtworkKey          string
	UserID              uuid.UUID
	OriginalRecordingID *uuid.UUID
	IsCompressed        bool
	IsShared            bool
	IsPublic            bool
}

// NewRecordingInput contains the data of an uploaded recording
type NewRecordingInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	URL         string
	ObjectKey   string
}

// NewRecording creates a public, unshared recording
func NewRecording(input NewRecordingInput) (*Recording, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrURLRequired
	}
	if input.UserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Owner is required")
	}

	r := &Recording{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       strings.TrimSpace(input.Description),
		URL:               input.URL,
		ObjectKey:         input.ObjectKey,
		UserID:            input.UserID,
		IsPublic:          true,
	}
	r.AddDomainEvent(NewRecordingUploadedEvent(r))
	return r, nil
}

// IsOwnedBy reports whether userID owns the recording
func (r *Recording) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Update applies a partial metadata change. Nil fields are left as they are.
func (r *Recording) Update(title, description *string, isPublic *bool) error {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return ErrTitleRequired
		}
		r.Title = t
	}
	if description != nil {
		r.Description = strings.TrimSpace(*description)
	}
	if isPublic != nil {
		r.IsPublic = *isPublic
	}
	r.Touch()
	return nil
}

// ReplaceArtwork sets new artwork and returns the previous artwork URL
func (r *Recording) ReplaceArtwork(url, key string) string {
	old := r.ArtworkURL
	r.ArtworkURL = url
	r.ArtworkKey = key
	r.Touch()
	return old
}

// MarkShared records that the recording was sent to another user
func (r *Recording) MarkShared(recipientID uuid.UUID) {
	if !r.IsShared {
		r.IsShared = true
		r.Touch()
	}
	r.AddDomainEvent(NewRecordingSharedEvent(r, recipientID))
}

// ObjectURLs returns the URLs of every stored object belonging to the recording
func (r *Recording) ObjectURLs() []string {
	urls := make([]string, 0, 2)
	if r.URL != "" {
		urls = append(urls, r.URL)
	}
	if r.ArtworkURL != "" {
		urls = append(urls, r.ArtworkURL)
	}
	return urls
}
