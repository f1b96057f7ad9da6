package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HTTPStore uploads objects to a remote object store with a PUT per object.
// The remote may answer with {"url": "..."}; otherwise the object URL is
// the PUT target itself.
type HTTPStore struct {
	client   *http.Client
	endpoint string
	token    string
}

var _ Store = (*HTTPStore)(nil)

// NewHTTPStore creates an HTTPStore. token is sent as a bearer token when non-empty.
func NewHTTPStore(client *http.Client, endpoint, token string) *HTTPStore {
	return &HTTPStore{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Store uploads the bytes and returns the object URL.
func (s *HTTPStore) Store(ctx context.Context, folder string, upload Upload) (string, error) {
	mimeType, ext, err := DetectImage(upload.Data)
	if err != nil {
		return "", err
	}

	target := fmt.Sprintf("%s/%s/%s%s", s.endpoint, cleanFolder(folder), uuid.NewString(), ext)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(upload.Data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.ContentLength = int64(len(upload.Data))
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}

	var out uploadResponse
	if len(body) > 0 && json.Unmarshal(body, &out) == nil && out.URL != "" {
		return out.URL, nil
	}
	return target, nil
}
