package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/boutique-ecom/internal/httpx"
)

const (
	CookieName = "admin_session"
	sessionKey = "admin.session"
)

// TokenFromRequest takes the envelope from the session cookie, falling back
// to an Authorization: Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func RequireSession(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.Authenticate(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			if !errors.Is(err, ErrUnauthorized) {
				svc.log.WithError(err).Error("session lookup failed")
			}
			httpx.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}

func SetCookie(c *gin.Context, signed string, expires time.Time, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
