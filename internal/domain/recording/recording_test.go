package recording

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecording(t *testing.T) *Recording {
	t.Helper()
	r, err := NewRecording(NewRecordingInput{
		UserID:      uuid.New(),
		Title:       "  Morning show ",
		Description: " intro ",
		URL:         "https://cdn.example/audio/1.webm",
		ObjectKey:   "audio/1.webm",
	})
	require.NoError(t, err)
	return r
}

func TestNewRecording(t *testing.T) {
	r := newTestRecording(t)
	assert.Equal(t, "Morning show", r.Title)
	assert.Equal(t, "intro", r.Description)
	assert.True(t, r.IsPublic)
	assert.False(t, r.IsShared)
	assert.False(t, r.IsCompressed)
	require.Len(t, r.GetDomainEvents(), 1)

	_, err := NewRecording(NewRecordingInput{UserID: uuid.New(), Title: " ", URL: "u"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewRecording(NewRecordingInput{UserID: uuid.New(), Title: "t"})
	assert.ErrorIs(t, err, ErrURLRequired)
}

func TestRecording_Update(t *testing.T) {
	r := newTestRecording(t)
	private := false
	title := "Evening show"

	require.NoError(t, r.Update(&title, nil, &private))
	assert.Equal(t, "Evening show", r.Title)
	assert.Equal(t, "intro", r.Description)
	assert.False(t, r.IsPublic)
	assert.Equal(t, 2, r.Version)

	blank := "   "
	assert.ErrorIs(t, r.Update(&blank, nil, nil), ErrTitleRequired)
}

func TestRecording_ArtworkAndObjectURLs(t *testing.T) {
	r := newTestRecording(t)
	assert.Equal(t, []string{"https://cdn.example/audio/1.webm"}, r.ObjectURLs())

	old := r.ReplaceArtwork("https://cdn.example/art/1.png", "art/1.png")
	assert.Empty(t, old)
	old = r.ReplaceArtwork("https://cdn.example/art/2.png", "art/2.png")
	assert.Equal(t, "https://cdn.example/art/1.png", old)
	assert.Equal(t, "art/2.png", r.ArtworkKey)
	assert.Equal(t, []string{"https://cdn.example/audio/1.webm", "https://cdn.example/art/2.png"}, r.ObjectURLs())
}

func TestRecording_MarkShared(t *testing.T) {
	r := newTestRecording(t)
	r.ClearDomainEvents()
	recipient := uuid.New()

	r.MarkShared(recipient)
	assert.True(t, r.IsShared)
	require.Len(t, r.GetDomainEvents(), 1)
	evt, ok := r.GetDomainEvents()[0].(*RecordingSharedEvent)
	require.True(t, ok)
	assert.Equal(t, recipient, evt.RecipientID)
	assert.True(t, r.IsOwnedBy(r.UserID))
	assert.False(t, r.IsOwnedBy(recipient))
}
