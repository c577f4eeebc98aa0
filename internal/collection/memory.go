package collection

import (
	"context"
	"sync"
)

var _ OwnershipStore = (*MemoryOwnershipStore)(nil)

// MemoryOwnershipStore is an in-memory OwnershipStore for tests and local
// development.
type MemoryOwnershipStore struct {
	mu      sync.RWMutex
	records map[ownershipKey]Ownership
}

type ownershipKey struct {
	userID string
	cardID string
}

func NewMemoryOwnershipStore() *MemoryOwnershipStore {
	return &MemoryOwnershipStore{records: make(map[ownershipKey]Ownership)}
}

func (s *MemoryOwnershipStore) ListByUser(ctx context.Context, userID string) ([]Ownership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Ownership
	for key, rec := range s.records {
		if key.userID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryOwnershipStore) Get(ctx context.Context, userID, cardID string) (Ownership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[ownershipKey{userID, cardID}]
	if !ok {
		return Ownership{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryOwnershipStore) Upsert(ctx context.Context, o Ownership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[ownershipKey{o.UserID, o.CardID}] = o
	return nil
}
