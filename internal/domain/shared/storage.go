package shared

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage stores uploaded media and returns the URL clients fetch it from
type ObjectStorage interface {
	// Upload stores body under key and returns its public URL
	Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error)

	// Delete removes the object behind a URL returned by Upload.
	// URLs the store does not own are ignored.
	Delete(ctx context.Context, objectURL string) error
}

// NewObjectKey builds a unique key such as "audio/3f0c...e1.mp3" that keeps
// the original file extension.
func NewObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	return strings.Trim(folder, "/") + "/" + uuid.NewString() + ext
}

// FileUpload is a file received from a client, already size-checked
type FileUpload struct {
	Body        io.ReadSeeker
	Filename    string
	Size        int64
	ContentType string
}
