package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const (
	MaxUploadBytes = 5 << 20
	DefaultFolder  = "products"
)

var (
	ErrInvalidType = errors.New("Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
	ErrTooLarge    = errors.New("File too large. Maximum size: 5MB")
	ErrEmptyFile   = errors.New("No file provided")
)

// allowedTypes lists the extensions each sniffed type may be stored under;
// the first is used when the filename's does not match.
var allowedTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

var (
	folderInvalid = regexp.MustCompile(`[^a-z0-9_\-/]+`)
	multiSlash    = regexp.MustCompile(`/{2,}`)
)

// Upload is a stored object.
// swagger:model UploadResponse
type Upload struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"-"`
	Size        int64  `json:"-"`
}

type Uploader struct {
	bucket   Bucket
	maxBytes int64
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewUploader(bucket Bucket, log logrus.FieldLogger) *Uploader {
	return &Uploader{bucket: bucket, maxBytes: MaxUploadBytes, log: log, now: time.Now}
}

// SanitizeFolder lowercases folder and strips anything outside [a-z0-9_-/],
// dot segments and surrounding slashes. Empty input gives DefaultFolder.
func SanitizeFolder(folder string) string {
	f := strings.ToLower(strings.TrimSpace(folder))
	f = strings.ReplaceAll(f, "..", "")
	f = folderInvalid.ReplaceAllString(f, "")
	f = multiSlash.ReplaceAllString(f, "/")
	f = strings.Trim(f, "/")
	if f == "" {
		return DefaultFolder
	}
	return f
}

// Upload sniffs r, checks type and size, then writes it under folder.
// size is the declared length, or -1 when unknown.
func (u *Uploader) Upload(ctx context.Context, folder, filename string, r io.Reader, size int64) (*Upload, error) {
	if size > u.maxBytes {
		return nil, ErrTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > u.maxBytes {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	ctype := mt.String()
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}
	exts, ok := allowedTypes[ctype]
	if !ok {
		return nil, ErrInvalidType
	}

	ext := exts[0]
	if want := strings.ToLower(path.Ext(filename)); slices.Contains(exts, want) {
		ext = want
	}
	key := fmt.Sprintf("%s/%d-%s%s", SanitizeFolder(folder), u.now().UnixMilli(), randomSuffix(6), ext)

	if err := u.bucket.Put(ctx, key, ctype, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	u.log.WithFields(logrus.Fields{"path": key, "type": ctype, "bytes": len(data)}).Info("file uploaded")
	return &Upload{URL: u.bucket.PublicURL(key), Path: key, ContentType: ctype, Size: int64(len(data))}, nil
}

func (u *Uploader) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidKey
	}
	if err := u.bucket.Delete(ctx, key); err != nil {
		return err
	}
	u.log.WithField("path", key).Info("file deleted")
	return nil
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}
