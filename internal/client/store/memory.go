// Package store provides the in-memory and PostgreSQL implementations of the
// client store boundary.
package store

import (
	"context"
	"sort"
	"sync"

	"bankpanel/internal/client"
	"bankpanel/pkg/platform/sentinel"
)

// InMemoryStore keeps client aggregates in maps guarded by a RWMutex. It
// favors clarity over performance and backs unit tests and dependency-free
// local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	clients map[int64]client.Client
	nextID  int64
}

var _ client.Store = (*InMemoryStore)(nil)

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{clients: make(map[int64]client.Client), nextID: 1}
}

func (s *InMemoryStore) ListPage(_ context.Context, page, pageSize int) ([]client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	skip := (page - 1) * pageSize
	if skip >= len(ids) {
		return []client.Client{}, nil
	}
	end := skip + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	out := make([]client.Client, 0, end-skip)
	for _, id := range ids[skip:end] {
		out = append(out, cloneClient(s.clients[id]))
	}
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return cloneClient(c), nil
	}
	return client.Client{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Create(_ context.Context, c client.Client) (client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	c.Address.ID = c.ID
	for i := range c.Accounts {
		c.Accounts[i].ID = s.nextID
		s.nextID++
	}
	s.clients[c.ID] = cloneClient(c)
	return c, nil
}

func (s *InMemoryStore) Update(_ context.Context, c client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.clients[c.ID] = cloneClient(c)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
	return nil
}

func (s *InMemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	return s.exists(func(c client.Client) bool {
		return c.Email == email
	}), nil
}

func (s *InMemoryStore) PersonalIDExists(_ context.Context, personalID string) (bool, error) {
	return s.exists(func(c client.Client) bool {
		return c.PersonalID == personalID
	}), nil
}

func (s *InMemoryStore) EmailExistsForOther(_ context.Context, id int64, email string) (bool, error) {
	return s.exists(func(c client.Client) bool {
		return c.ID != id && c.Email == email
	}), nil
}

func (s *InMemoryStore) PersonalIDExistsForOther(_ context.Context, id int64, personalID string) (bool, error) {
	return s.exists(func(c client.Client) bool {
		return c.ID != id && c.PersonalID == personalID
	}), nil
}

func (s *InMemoryStore) AccountNumberExists(_ context.Context, accountNumber string) (bool, error) {
	return s.exists(func(c client.Client) bool {
		for _, a := range c.Accounts {
			if a.AccountNumber == accountNumber {
				return true
			}
		}
		return false
	}), nil
}

func (s *InMemoryStore) exists(match func(client.Client) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if match(c) {
			return true
		}
	}
	return false
}

// cloneClient copies the aggregate so callers never share the stored slice.
func cloneClient(c client.Client) client.Client {
	accounts := make([]client.Account, len(c.Accounts))
	copy(accounts, c.Accounts)
	c.Accounts = accounts
	return c
}
