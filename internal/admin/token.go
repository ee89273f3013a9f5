package admin

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// Tokens signs session envelopes: HS256 JWTs whose jti is the session token.
type Tokens struct {
	secret []byte
}

// NewTokens with an empty secret uses a random per-process key.
func NewTokens(secret string) *Tokens {
	if secret == "" {
		return &Tokens{secret: []byte(randomHex(32))}
	}
	return &Tokens{secret: []byte(secret)}
}

func (t *Tokens) Issue(s *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.Token,
		Subject:   s.AdminID,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies signed and returns the session token it carries. A
// correctly signed but expired envelope still yields its token, together
// with ErrTokenExpired.
func (t *Tokens) Parse(signed string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(5*time.Second))
	switch {
	case claims.ID == "":
		return "", ErrInvalidToken
	case err != nil && errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return claims.ID, ErrTokenExpired
	case err != nil || !parsed.Valid:
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
