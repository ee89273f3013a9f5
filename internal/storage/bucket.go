// Package storage stores uploaded product media in a bucket: the managed
// Supabase object store, or a local directory served by the admin service.
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid object key")

// Bucket is an object store addressed by slash-separated keys.
type Bucket interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
