// Package admintest provides an in-memory admin.Repository for tests.
package admintest

import (
	"context"
	"sync"
	"time"

	"github.com/MikeMC777/boutique-ecom/internal/admin"
)

type MemRepo struct {
	mu       sync.Mutex
	admins   map[string]*admin.Admin
	sessions map[string]*admin.Session
}

func NewMemRepo() *MemRepo {
	return &MemRepo{admins: map[string]*admin.Admin{}, sessions: map[string]*admin.Session{}}
}

func (m *MemRepo) Create(_ context.Context, a *admin.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.admins {
		if x.Username == a.Username {
			return admin.ErrAlreadyExist
		}
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	cp := *a
	m.admins[a.ID] = &cp
	return nil
}

func (m *MemRepo) GetByID(_ context.Context, id string) (*admin.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, admin.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemRepo) GetByUsername(_ context.Context, username string) (*admin.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, admin.ErrNotFound
}

func (m *MemRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return admin.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveAdmin deletes the account and its sessions.
func (m *MemRepo) RemoveAdmin(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.admins, id)
	for tok, s := range m.sessions {
		if s.AdminID == id {
			delete(m.sessions, tok)
		}
	}
}

func (m *MemRepo) CreateSession(_ context.Context, s *admin.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.Token] = &cp
	return nil
}

func (m *MemRepo) SessionByToken(_ context.Context, token string) (*admin.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, admin.ErrSessionNotFound
	}
	cp := *s
	if a, ok := m.admins[s.AdminID]; ok {
		cp.Username = a.Username
	}
	return &cp, nil
}

func (m *MemRepo) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemRepo) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
