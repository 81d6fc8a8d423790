// Package storage uploads identity-proof files to a Supabase storage bucket.
// The rest of the system only ever stores the returned public URL; file
// contents are never inspected.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrUploadFailed wraps any upload failure. Callers treat it as non-fatal:
// registration proceeds without the proof URL.
var ErrUploadFailed = errors.New("storage upload failed")

// Client talks to the Supabase storage REST API
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

// New creates a storage client
func New(baseURL, apiKey, bucket string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewFromEnv builds a client from SUPABASE_URL, SUPABASE_KEY and
// SUPABASE_BUCKET (default "id_proof"). Returns nil when SUPABASE_URL is not
// set, which disables identity-proof uploads.
func NewFromEnv() *Client {
	baseURL := os.Getenv("SUPABASE_URL")
	if baseURL == "" {
		return nil
	}
	bucket := os.Getenv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "id_proof"
	}
	return New(baseURL, os.Getenv("SUPABASE_KEY"), bucket)
}

// Upload stores the bytes under key and returns the public URL
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return c.PublicURL(key), nil
}

// PublicURL returns the public fetch URL for a stored key
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key)
}
