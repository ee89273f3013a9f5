package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseBucket talks to the Supabase storage REST API with the service key.
type SupabaseBucket struct {
	HTTP    *http.Client
	BaseURL string
	Key     string
	Bucket  string
}

func NewSupabaseBucket(baseURL, serviceKey, bucket string, timeout time.Duration) *SupabaseBucket {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseBucket{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Key:     serviceKey,
		Bucket:  bucket,
	}
}

// Error is a non-2xx answer from the storage API.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: status %d: %s", e.StatusCode, e.Body)
}

func (b *SupabaseBucket) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.objectURL(key), r)
	if err != nil {
		return err
	}
	if size >= 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "false")
	return b.do(req)
}

func (b *SupabaseBucket) Delete(ctx context.Context, key string) error {
	body, err := json.Marshal(map[string][]string{"prefixes": {key}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		b.BaseURL+"/storage/v1/object/"+b.Bucket, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *SupabaseBucket) PublicURL(key string) string {
	return b.BaseURL + "/storage/v1/object/public/" + b.Bucket + "/" + key
}

func (b *SupabaseBucket) objectURL(key string) string {
	return b.BaseURL + "/storage/v1/object/" + b.Bucket + "/" + key
}

func (b *SupabaseBucket) do(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Key)
	req.Header.Set("apikey", b.Key)

	resp, err := b.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
