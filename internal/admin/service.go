package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	SessionTTL  = 24 * time.Hour
	RememberTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingFields      = errors.New("current and new password are required")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type Service struct {
	repo   Repository
	tokens *Tokens
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(repo Repository, tokens *Tokens, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, tokens: tokens, log: log, now: time.Now}
}

// Login checks the credentials and opens a session. The returned string is
// the signed envelope handed to the client.
func (s *Service) Login(ctx context.Context, username, password string, remember bool) (string, *Session, error) {
	a, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !CheckPassword(a.PasswordHash, password) {
		s.log.WithField("username", a.Username).Warn("admin login rejected")
		return "", nil, ErrInvalidCredentials
	}

	ttl := SessionTTL
	if remember {
		ttl = RememberTTL
	}
	now := s.now().UTC()
	sess := &Session{
		ID:         uuid.NewString(),
		AdminID:    a.ID,
		Username:   a.Username,
		Token:      randomHex(32),
		ExpiresAt:  now.Add(ttl),
		RememberMe: remember,
		CreatedAt:  now,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return "", nil, err
	}
	signed, err := s.tokens.Issue(sess)
	if err != nil {
		return "", nil, err
	}
	s.log.WithFields(logrus.Fields{"admin_id": a.ID, "remember_me": remember}).Info("admin logged in")
	return signed, sess, nil
}

// Authenticate resolves a signed envelope to a live session. Expired
// sessions are removed on sight.
func (s *Service) Authenticate(ctx context.Context, signed string) (*Session, error) {
	if signed == "" {
		return nil, ErrUnauthorized
	}
	token, err := s.tokens.Parse(signed)
	if errors.Is(err, ErrTokenExpired) {
		s.dropExpired(ctx, token)
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, ErrUnauthorized
	}
	sess, err := s.repo.SessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		s.dropExpired(ctx, token)
		return nil, ErrUnauthorized
	}
	return sess, nil
}

func (s *Service) dropExpired(ctx context.Context, token string) {
	if err := s.repo.DeleteSession(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		s.log.WithError(err).Warn("delete expired session")
	}
}

// Logout drops the session behind signed, if any.
func (s *Service) Logout(ctx context.Context, signed string) error {
	if signed == "" {
		return nil
	}
	token, err := s.tokens.Parse(signed)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

func (s *Service) ChangePassword(ctx context.Context, adminID, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingFields
	}
	a, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !CheckPassword(a.PasswordHash, current) {
		return ErrWrongPassword
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, a.ID, hash); err != nil {
		return err
	}
	s.log.WithField("admin_id", a.ID).Info("admin password changed")
	return nil
}

// Create registers a new admin account.
func (s *Service) Create(ctx context.Context, username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &Admin{ID: uuid.NewString(), Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
