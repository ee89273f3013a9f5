package storage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/boutique-ecom/internal/storage"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSanitizeFolder(t *testing.T) {
	cases := map[string]string{
		"":                 "products",
		"  ":               "products",
		"collections":      "collections",
		"/Products/Rings/": "products/rings",
		"../../etc":        "etc",
		"a//b":             "a/b",
		"hero images!":     "heroimages",
		"summer_2026-drop": "summer_2026-drop",
		"//..//":           "products",
	}
	for in, want := range cases {
		assert.Equal(t, want, storage.SanitizeFolder(in), "input %q", in)
	}
}

func TestUploadFS(t *testing.T) {
	dir := t.TempDir()
	up := storage.NewUploader(storage.NewFSBucket(dir, "http://localhost:8082/assets/"), quietLog())

	res, err := up.Upload(context.Background(), "Rings", "Bague Émeraude.PNG", bytes.NewReader(pngBytes), int64(len(pngBytes)))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^rings/\d{13}-[a-z0-9]{6}\.png$`), res.Path)
	assert.Equal(t, "http://localhost:8082/assets/"+res.Path, res.URL)
	assert.Equal(t, "image/png", res.ContentType)

	got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Path)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)

	require.NoError(t, up.Delete(context.Background(), res.Path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Path)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, up.Delete(context.Background(), res.Path), "missing object is not an error")
}

func TestUploadExtensionFromContent(t *testing.T) {
	up := storage.NewUploader(storage.NewFSBucket(t.TempDir(), "/assets"), quietLog())

	res, err := up.Upload(context.Background(), "", "blob", bytes.NewReader(gifBytes), -1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, "products/"))
	assert.True(t, strings.HasSuffix(res.Path, ".gif"))

	res, err = up.Upload(context.Background(), "", "photo", bytes.NewReader(jpegBytes), -1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Path, ".jpg"))

	res, err = up.Upload(context.Background(), "", "portrait.JPEG", bytes.NewReader(jpegBytes), -1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Path, ".jpeg"), res.Path)
}

func TestUploadIgnoresMismatchedExtension(t *testing.T) {
	up := storage.NewUploader(storage.NewFSBucket(t.TempDir(), "/assets"), quietLog())
	polyglot := append([]byte("GIF89a<script>alert(1)</script>"), make([]byte, 32)...)

	for _, name := range []string{"x.html", "pic.svg", "shot.png", "a.js"} {
		res, err := up.Upload(context.Background(), "", name, bytes.NewReader(polyglot), -1)
		require.NoError(t, err, name)
		assert.Equal(t, "image/gif", res.ContentType, name)
		assert.True(t, strings.HasSuffix(res.Path, ".gif"), "%s stored as %s", name, res.Path)
	}
}

func TestUploadRejects(t *testing.T) {
	up := storage.NewUploader(storage.NewFSBucket(t.TempDir(), "/assets"), quietLog())
	ctx := context.Background()

	_, err := up.Upload(ctx, "", "notes.png", strings.NewReader("just some text, not an image"), -1)
	assert.ErrorIs(t, err, storage.ErrInvalidType)
	assert.Equal(t, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF", err.Error())

	big := append(append([]byte{}, pngBytes...), make([]byte, storage.MaxUploadBytes)...)
	_, err = up.Upload(ctx, "", "big.png", bytes.NewReader(big), -1)
	assert.ErrorIs(t, err, storage.ErrTooLarge)
	assert.Equal(t, "File too large. Maximum size: 5MB", err.Error())

	_, err = up.Upload(ctx, "", "big.png", bytes.NewReader(pngBytes), storage.MaxUploadBytes+1)
	assert.ErrorIs(t, err, storage.ErrTooLarge)

	_, err = up.Upload(ctx, "", "empty.png", bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, storage.ErrEmptyFile)

	assert.ErrorIs(t, up.Delete(ctx, "  "), storage.ErrInvalidKey)
}

func TestFSBucketRejectsTraversal(t *testing.T) {
	b := storage.NewFSBucket(t.TempDir(), "/assets")
	err := b.Put(context.Background(), "../outside.png", "image/png", bytes.NewReader(pngBytes), -1)
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
	assert.ErrorIs(t, b.Delete(context.Background(), ""), storage.ErrInvalidKey)
}

func TestSupabaseBucket(t *testing.T) {
	type call struct {
		method, path, auth, apikey, ctype string
		body                              []byte
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get("Authorization"), r.Header.Get("apikey"), r.Header.Get("Content-Type"), body})
		if strings.Contains(r.URL.Path, "conflict") {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"error":"Duplicate"}`)
			return
		}
		_, _ = io.WriteString(w, `{"Key":"ok"}`)
	}))
	defer srv.Close()

	b := storage.NewSupabaseBucket(srv.URL+"/", "service-key", "product-images", 0)
	up := storage.NewUploader(b, quietLog())

	res, err := up.Upload(context.Background(), "products", "ring.png", bytes.NewReader(pngBytes), int64(len(pngBytes)))
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "/storage/v1/object/product-images/"+res.Path, calls[0].path)
	assert.Equal(t, "Bearer service-key", calls[0].auth)
	assert.Equal(t, "service-key", calls[0].apikey)
	assert.Equal(t, "image/png", calls[0].ctype)
	assert.Equal(t, pngBytes, calls[0].body)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/product-images/"+res.Path, res.URL)

	require.NoError(t, up.Delete(context.Background(), res.Path))
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodDelete, calls[1].method)
	assert.Equal(t, "/storage/v1/object/product-images", calls[1].path)
	var del struct{ Prefixes []string }
	require.NoError(t, json.Unmarshal(calls[1].body, &del))
	assert.Equal(t, []string{res.Path}, del.Prefixes)

	err = b.Put(context.Background(), "conflict/a.png", "image/png", bytes.NewReader(pngBytes), -1)
	var se *storage.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)
}
