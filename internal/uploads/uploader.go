package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MaxImageSize is the largest blob the upload collaborator accepts.
const MaxImageSize = 5 << 20 // 5MB

var ErrImageTooLarge = errors.New("image exceeds the 5MB limit")

// Uploader stores a binary blob and returns a publicly fetchable URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type uploadResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// HTTPUploader posts blobs to the media upload endpoint.
type HTTPUploader struct {
	baseURL string
	client  *http.Client
}

func NewHTTPUploader(baseURL string, timeout time.Duration) *HTTPUploader {
	return &HTTPUploader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	endpoint := fmt.Sprintf("%s/upload?filename=%s", u.baseURL, url.QueryEscape(filename))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %s", body.Error)
	}
	return body.URL, nil
}
