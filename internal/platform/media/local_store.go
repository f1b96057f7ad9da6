package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path under which LocalStore files are served.
const PublicPrefix = "/uploads"

// LocalStore writes uploads to a directory served by the API itself.
type LocalStore struct {
	dir     string
	baseURL string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a LocalStore rooted at dir. baseURL is the public
// origin of the API, e.g. "https://api.example.com"; it may be empty for
// host-relative URLs.
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Dir returns the root directory of the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Store writes the upload and returns its URL.
func (s *LocalStore) Store(ctx context.Context, folder string, upload Upload) (string, error) {
	_, ext, err := DetectImage(upload.Data)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	folder = cleanFolder(folder)
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	// Write to a temp file first so a partial write is never served.
	tmp, err := os.CreateTemp(target, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(upload.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(target, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move upload: %w", err)
	}

	slog.Debug("media stored", "folder", folder, "name", name, "bytes", len(upload.Data))
	return fmt.Sprintf("%s%s/%s/%s", s.baseURL, PublicPrefix, folder, name), nil
}
