package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// Upload errors
var (
	ErrFileRequired  = shared.NewDomainError("FILE_REQUIRED", "No file uploaded")
	ErrFileTooLarge  = shared.NewDomainError("FILE_TOO_LARGE", "Uploaded file is too large")
	ErrInvalidFile   = shared.NewDomainError("INVALID_FILE_TYPE", "Unsupported file type")
	errMultipartForm = shared.NewDomainError("INVALID_FORM", "Expected a multipart form")
)

const (
	audioContentPrefix = "audio/"
	imageContentPrefix = "image/"
)

// fileRule describes an accepted multipart file field
type fileRule struct {
	Field         string
	ContentPrefix string
	MaxSize       int64
}

// formFile opens a multipart file. It returns (nil, nil, nil) when the field
// is absent; the caller closes the returned file.
func formFile(c *gin.Context, rule fileRule) (*shared.FileUpload, multipart.File, error) {
	header, err := c.FormFile(rule.Field)
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			return nil, nil, ErrFileTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return nil, nil, nil
		case errors.Is(err, http.ErrNotMultipart):
			return nil, nil, errMultipartForm
		}
		return nil, nil, err
	}

	if rule.MaxSize > 0 && header.Size > rule.MaxSize {
		return nil, nil, ErrFileTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, rule.ContentPrefix) {
		return nil, nil, ErrInvalidFile
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &shared.FileUpload{
		Body:        f,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
	}, f, nil
}

// requireFormFile is formFile with a missing field reported as an error
func requireFormFile(c *gin.Context, rule fileRule) (*shared.FileUpload, multipart.File, error) {
	upload, f, err := formFile(c, rule)
	if err == nil && upload == nil {
		return nil, nil, ErrFileRequired
	}
	return upload, f, err
}
