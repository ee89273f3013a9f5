// Package admin holds back-office accounts, their sessions and the gin
// middleware guarding /api/admin.
package admin

import "time"

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is a server-side login. Token is opaque and only travels inside
// the signed envelope.
type Session struct {
	ID         string
	AdminID    string
	Username   string
	Token      string
	ExpiresAt  time.Time
	RememberMe bool
	CreatedAt  time.Time
}

func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// swagger:model LoginRequest
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	Success   bool      `json:"success" example:"true"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// swagger:model SessionResponse
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Fields are checked by the service so a missing one yields the same
// message as the storefront admin UI expects.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
