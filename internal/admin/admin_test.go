package admin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/boutique-ecom/internal/admin"
	"github.com/MikeMC777/boutique-ecom/internal/admin/admintest"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setup(t *testing.T) (*admin.Service, *admintest.MemRepo, *admin.Tokens, *admin.Admin) {
	t.Helper()
	repo := admintest.NewMemRepo()
	tokens := admin.NewTokens("test-secret")
	svc := admin.NewService(repo, tokens, quietLog())
	a, err := svc.Create(context.Background(), "maison", "s3cret!")
	require.NoError(t, err)
	return svc, repo, tokens, a
}

func TestPasswordHash(t *testing.T) {
	h, err := admin.HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$2a$10$"))
	assert.True(t, admin.CheckPassword(h, "hunter2"))
	assert.False(t, admin.CheckPassword(h, "hunter3"))
	assert.False(t, admin.CheckPassword("not-a-hash", "hunter2"))
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, repo, _, a := setup(t)
	ctx := context.Background()

	signed, sess, err := svc.Login(ctx, "maison", "s3cret!", false)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.WithinDuration(t, time.Now().Add(admin.SessionTTL), sess.ExpiresAt, time.Minute)
	assert.Equal(t, 1, repo.SessionCount())

	got, err := svc.Authenticate(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.AdminID)
	assert.Equal(t, "maison", got.Username)
	assert.Len(t, strings.Split(signed, "."), 3)
}

func TestLoginRemember(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, sess, err := svc.Login(context.Background(), "maison", "s3cret!", true)
	require.NoError(t, err)
	assert.True(t, sess.RememberMe)
	assert.WithinDuration(t, time.Now().Add(admin.RememberTTL), sess.ExpiresAt, time.Minute)
}

func TestLoginRejected(t *testing.T) {
	svc, repo, _, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "maison", "wrong", false)
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody", "s3cret!", false)
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
	assert.Equal(t, 0, repo.SessionCount())
}

func TestAuthenticateRejects(t *testing.T) {
	svc, repo, tokens, a := setup(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, admin.ErrUnauthorized)

	// signed by someone else
	other := admin.NewTokens("other-secret")
	forged, err := other.Issue(&admin.Session{Token: "abc", AdminID: a.ID, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)

	// valid signature, unknown session row
	ghost, err := tokens.Issue(&admin.Session{Token: "missing", AdminID: a.ID, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)

	// none alg
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{ID: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, unsigned)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
	assert.Equal(t, 0, repo.SessionCount())
}

func TestExpiredSessionIsDeleted(t *testing.T) {
	svc, repo, tokens, a := setup(t)
	ctx := context.Background()

	// row expired but the envelope itself is still within its exp
	sess := &admin.Session{
		ID:        uuid.NewString(),
		AdminID:   a.ID,
		Token:     "expired-token",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.CreateSession(ctx, sess))
	signed, err := tokens.Issue(&admin.Session{Token: sess.Token, AdminID: a.ID, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
	assert.Equal(t, 0, repo.SessionCount())
}

func TestExpiredEnvelopeDropsSession(t *testing.T) {
	svc, repo, tokens, a := setup(t)
	ctx := context.Background()

	sess := &admin.Session{
		ID:        uuid.NewString(),
		AdminID:   a.ID,
		Token:     "lapsed-token",
		CreatedAt: time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, sess))
	signed, err := tokens.Issue(sess)
	require.NoError(t, err)

	token, err := tokens.Parse(signed)
	assert.ErrorIs(t, err, admin.ErrTokenExpired)
	assert.Equal(t, "lapsed-token", token)

	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
	assert.Equal(t, 0, repo.SessionCount())
}

func TestExpiredEnvelopeWrongKey(t *testing.T) {
	svc, repo, _, a := setup(t)
	ctx := context.Background()

	sess := &admin.Session{
		ID:        uuid.NewString(),
		AdminID:   a.ID,
		Token:     "foreign-token",
		CreatedAt: time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, sess))
	signed, err := admin.NewTokens("some-other-secret").Issue(sess)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
	assert.Equal(t, 1, repo.SessionCount(), "unsigned envelopes never delete rows")
}

func TestLogout(t *testing.T) {
	svc, repo, _, _ := setup(t)
	ctx := context.Background()

	signed, _, err := svc.Login(ctx, "maison", "s3cret!", false)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, signed))
	assert.Equal(t, 0, repo.SessionCount())
	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, admin.ErrUnauthorized)

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestChangePassword(t *testing.T) {
	svc, repo, _, a := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, a.ID, "", "new"), admin.ErrMissingFields)
	assert.ErrorIs(t, svc.ChangePassword(ctx, a.ID, "s3cret!", ""), admin.ErrMissingFields)
	assert.ErrorIs(t, svc.ChangePassword(ctx, a.ID, "wrong", "new-pass"), admin.ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, uuid.NewString(), "s3cret!", "new-pass"), admin.ErrNotFound)

	require.NoError(t, svc.ChangePassword(ctx, a.ID, "s3cret!", "new-pass"))
	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, admin.CheckPassword(stored.PasswordHash, "new-pass"))

	_, _, err = svc.Login(ctx, "maison", "s3cret!", false)
	assert.ErrorIs(t, err, admin.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "maison", "new-pass", false)
	assert.NoError(t, err)
}

func TestCreateDuplicate(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.Create(context.Background(), "maison", "other")
	assert.ErrorIs(t, err, admin.ErrAlreadyExist)
	_, err = svc.Create(context.Background(), " ", "x")
	assert.Error(t, err)
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _, _ := setup(t)
	signed, _, err := svc.Login(context.Background(), "maison", "s3cret!", false)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", admin.RequireSession(svc), func(c *gin.Context) {
		s, ok := admin.SessionFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, s.Username)
	})

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: admin.CookieName, Value: signed}) }, http.StatusOK},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+signed) }, http.StatusOK},
		{"bad bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "maison", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error":"Unauthorized"`)
			}
		})
	}
}
