// Package store provides the in-memory and PostgreSQL user stores.
package store

import (
	"context"
	"sync"

	"bankpanel/internal/auth"
	"bankpanel/pkg/platform/sentinel"
)

// InMemoryUserStore keeps operator accounts in a mutex-guarded map.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]auth.User
}

var _ auth.UserStore = (*InMemoryUserStore)(nil)

func NewInMemory() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]auth.User)}
}

func (s *InMemoryUserStore) Save(_ context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
	return nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return auth.User{}, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok, nil
}
