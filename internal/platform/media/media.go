// Package media stores uploaded images and returns the URL they are served from.
package media

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrEmptyUpload is returned when an upload carries no bytes.
	ErrEmptyUpload = errors.New("empty upload")

	// ErrUnsupportedType is returned when the bytes are not a supported image.
	ErrUnsupportedType = errors.New("unsupported media type")
)

// supportedImageTypes maps accepted MIME types to the extension used on disk.
var supportedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Upload is a single uploaded file held in memory.
type Upload struct {
	Data     []byte
	Filename string
}

// Store persists an upload under a folder and returns its public URL.
type Store interface {
	Store(ctx context.Context, folder string, upload Upload) (string, error)
}

// DetectImage sniffs data and returns its MIME type and file extension.
// The declared filename is ignored; only the content decides.
func DetectImage(data []byte) (mimeType, ext string, err error) {
	if len(data) == 0 {
		return "", "", ErrEmptyUpload
	}
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))
	ext, ok := supportedImageTypes[mt]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return mt, ext, nil
}

// cleanFolder keeps folder names to a single safe path segment.
func cleanFolder(folder string) string {
	folder = strings.Trim(folder, "/ ")
	folder = strings.ReplaceAll(folder, "..", "")
	folder = strings.ReplaceAll(folder, "/", "_")
	if folder == "" {
		return "misc"
	}
	return folder
}
