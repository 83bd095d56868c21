package handler

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	appmessaging "github.com/audiozoom/backend/internal/application/messaging"
	apprecording "github.com/audiozoom/backend/internal/application/recording"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mp3(content string) testFile {
	return testFile{Field: "audio", Filename: "take.mp3", ContentType: "audio/mpeg", Content: []byte(content)}
}

func (ts *testServer) uploadRecording(t *testing.T, token, title string, fields map[string]string) apprecording.RecordingResult {
	t.Helper()
	if fields == nil {
		fields = map[string]string{}
	}
	fields["title"] = title
	w := ts.send(multipartRequest(t, http.MethodPost, "/api/recordings/upload", fields, mp3("ID3")), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rec apprecording.RecordingResult
	decodeData(t, w, &rec)
	return rec
}

func TestRecordingHandler_Upload(t *testing.T) {
	ts := newTestServer(t)
	user, token := ts.createUser(t, "creator@example.com", "Creator")

	rec := ts.uploadRecording(t, token, "Episode 1", map[string]string{"description": "Pilot"})
	assert.Equal(t, "Episode 1", rec.Title)
	assert.Equal(t, "Pilot", rec.Description)
	assert.Equal(t, user.ID, rec.UserID)
	assert.True(t, rec.IsPublic)
	assert.True(t, strings.HasPrefix(rec.URL, testStorageURL+"/"), rec.URL)

	tests := []struct {
		name     string
		fields   map[string]string
		files    []testFile
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing file",
			fields:   map[string]string{"title": "No audio"},
			wantCode: http.StatusBadRequest,
			wantErr:  "ERR_FILE_REQUIRED",
		},
		{
			name:     "not audio",
			fields:   map[string]string{"title": "Picture"},
			files:    []testFile{{Field: "audio", Filename: "a.png", ContentType: "image/png", Content: []byte("png")}},
			wantCode: http.StatusBadRequest,
			wantErr:  "ERR_INVALID_FILE_TYPE",
		},
		{
			name:     "too large",
			fields:   map[string]string{"title": "Long"},
			files:    []testFile{{Field: "audio", Filename: "long.mp3", ContentType: "audio/mpeg", Content: bytes.Repeat([]byte("a"), testMaxAudioSize+1)}},
			wantCode: http.StatusRequestEntityTooLarge,
			wantErr:  "ERR_FILE_TOO_LARGE",
		},
		{
			name:     "missing title",
			fields:   map[string]string{},
			files:    []testFile{mp3("ID3")},
			wantCode: http.StatusBadRequest,
			wantErr:  "ERR_TITLE_REQUIRED",
		},
		{
			name:     "unsupported share type",
			fields:   map[string]string{"title": "Shared", "shareType": "email"},
			files:    []testFile{mp3("ID3")},
			wantCode: http.StatusBadRequest,
			wantErr:  "ERR_INVALID_SHARE_TYPE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ts.storage.Len()
			w := ts.send(multipartRequest(t, http.MethodPost, "/api/recordings/upload", tt.fields, tt.files...), token)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, errorCode(t, w))
			assert.Equal(t, before, ts.storage.Len())
		})
	}

	t.Run("not a multipart form", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/recordings/upload", `{"title":"json"}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_FORM", errorCode(t, w))
	})
}

func TestRecordingHandler_UploadSharesWithRecipient(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "creator@example.com", "Creator")
	_, fanToken := ts.createUser(t, "fan@example.com", "Fan")

	rec := ts.uploadRecording(t, token, "For you", map[string]string{"shareWith": "FAN@example.com", "shareType": "message"})
	assert.True(t, rec.IsShared)

	w := ts.do(t, http.MethodGet, "/api/messages", nil, fanToken)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox []appmessaging.MessageResult
	decodeData(t, w, &inbox)
	require.Len(t, inbox, 1)
	require.NotNil(t, inbox[0].RecordingID)
	assert.Equal(t, rec.ID, *inbox[0].RecordingID)
	assert.Contains(t, inbox[0].Content, "For you")

	t.Run("unknown recipient still uploads", func(t *testing.T) {
		rec := ts.uploadRecording(t, token, "Lost", map[string]string{"shareWith": "nobody@example.com"})
		assert.False(t, rec.IsShared)
	})
}

func TestRecordingHandler_Visibility(t *testing.T) {
	ts := newTestServer(t)
	owner, ownerToken := ts.createUser(t, "creator@example.com", "Creator")
	_, fanToken := ts.createUser(t, "fan@example.com", "Fan")

	public := ts.uploadRecording(t, ownerToken, "Public", nil)
	private := ts.uploadRecording(t, ownerToken, "Private", nil)

	w := ts.do(t, http.MethodPatch, "/api/recordings/"+private.ID.String(), `{"isPublic":false}`, ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	listFor := func(token string) []apprecording.RecordingResult {
		w := ts.do(t, http.MethodGet, "/api/recordings/user/"+owner.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var recs []apprecording.RecordingResult
		decodeData(t, w, &recs)
		return recs
	}

	fanView := listFor(fanToken)
	require.Len(t, fanView, 1)
	assert.Equal(t, public.ID, fanView[0].ID)
	assert.Len(t, listFor(ownerToken), 2)

	w = ts.do(t, http.MethodGet, "/api/recordings", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var own []apprecording.RecordingResult
	decodeData(t, w, &own)
	assert.Len(t, own, 2)
}

func TestRecordingHandler_OwnerOnly(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.createUser(t, "creator@example.com", "Creator")
	_, otherToken := ts.createUser(t, "other@example.com", "Other")
	rec := ts.uploadRecording(t, ownerToken, "Mine", nil)

	t.Run("update by another user", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, "/api/recordings/"+rec.ID.String(), `{"title":"Stolen"}`, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ERR_FORBIDDEN", errorCode(t, w))
	})

	t.Run("delete by another user", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/recordings/"+rec.ID.String(), nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown recording", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/recordings/"+uuid.NewString(), nil, ownerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ERR_RECORDING_NOT_FOUND", errorCode(t, w))
	})

	t.Run("artwork then delete removes stored objects", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPatch, "/api/recordings/"+rec.ID.String()+"/artwork", nil,
			testFile{Field: "artwork", Filename: "cover.jpg", ContentType: "image/jpeg", Content: []byte("jpg")})
		w := ts.send(req, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated apprecording.RecordingResult
		decodeData(t, w, &updated)
		assert.NotEmpty(t, updated.ArtworkURL)
		require.Equal(t, 2, ts.storage.Len())

		w = ts.do(t, http.MethodDelete, "/api/recordings/"+rec.ID.String(), nil, ownerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 0, ts.storage.Len())
	})
}
