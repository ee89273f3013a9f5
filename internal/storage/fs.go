package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSBucket keeps objects under Root; the admin service serves Root at
// PublicBase.
type FSBucket struct {
	Root       string
	PublicBase string
}

func NewFSBucket(root, publicBase string) *FSBucket {
	return &FSBucket{Root: root, PublicBase: strings.TrimRight(publicBase, "/")}
}

func (b *FSBucket) Put(_ context.Context, key, _ string, r io.Reader, _ int64) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return err
	}
	return f.Close()
}

func (b *FSBucket) Delete(_ context.Context, key string) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (b *FSBucket) PublicURL(key string) string {
	return b.PublicBase + "/" + key
}

func (b *FSBucket) path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if key == "" || clean == string(filepath.Separator) || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(b.Root, clean), nil
}
