// Package revocation tracks revoked token ids until their natural expiry.
// Logout writes here; the auth middleware reads on every request.
package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore tracks revoked JTIs with their expiry deadlines. Entries are
// pruned lazily on access; the set stays small because tokens are short-lived.
type InMemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{revoked: make(map[string]time.Time)}
}

// Revoke marks the token id as revoked until expiresAt.
func (s *InMemoryStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = expiresAt
	return nil
}

func (s *InMemoryStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}
