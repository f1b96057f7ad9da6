package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/platform/media"
)

// ErrUploadTooLarge is returned when a file exceeds the configured size.
var ErrUploadTooLarge = errors.New("upload too large")

// ReadImage reads the optional image file in form field and validates its content.
// It returns (nil, nil) when the request carries no such file.
func ReadImage(c *gin.Context, field string, maxBytes int64) (*media.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, ErrUploadTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open form file: %w", err)
	}
	defer func() { _ = f.Close() }()

	limit := maxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read form file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}
	if _, _, err := media.DetectImage(data); err != nil {
		return nil, err
	}
	return &media.Upload{Data: data, Filename: header.Filename}, nil
}

// UploadErrorStatus maps a ReadImage error to an HTTP status and message.
func UploadErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, "image too large"
	case errors.Is(err, media.ErrUnsupportedType), errors.Is(err, media.ErrEmptyUpload):
		return http.StatusBadRequest, "images only (jpeg, png, gif)"
	default:
		return http.StatusBadRequest, "invalid upload"
	}
}
