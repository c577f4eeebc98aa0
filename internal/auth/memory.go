package auth

import (
	"context"
	"sync"
	"time"
)

var _ UserStore = (*MemoryUserStore)(nil)

// MemoryUserStore is an in-memory UserStore for tests and local development.
type MemoryUserStore struct {
	mu         sync.RWMutex
	byID       map[string]*User
	byUsername map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[string]*User),
		byUsername: make(map[string]string),
	}
}

func (s *MemoryUserStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[u.Username]; ok {
		return ErrAlreadyExists
	}
	now := time.Now().UTC()
	stored := *u
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID] = &stored
	s.byUsername[stored.Username] = stored.ID
	return nil
}

func (s *MemoryUserStore) Find(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.byID[id]
	return &copied, nil
}

func (s *MemoryUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}
