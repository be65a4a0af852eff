package client

import "context"

// Store is the persistence boundary for client aggregates. Implementations
// are transactional per call; the service never spans a transaction across
// calls. Every read returns the full aggregate (client + address + accounts).
type Store interface {
	// ListPage returns one page of clients ordered by id. Pages past the end
	// yield an empty slice, not an error.
	ListPage(ctx context.Context, page, pageSize int) ([]Client, error)
	// FindByID returns sentinel.ErrNotFound when the id is absent.
	FindByID(ctx context.Context, id int64) (Client, error)
	// Create persists the aggregate and returns it with ids assigned.
	Create(ctx context.Context, c Client) (Client, error)
	// Update replaces the aggregate stored under c.ID. Returns
	// sentinel.ErrNotFound when the id is absent.
	Update(ctx context.Context, c Client) error
	// Delete removes the aggregate and its owned address and accounts.
	// Deleting an absent id is a no-op.
	Delete(ctx context.Context, id int64) error

	EmailExists(ctx context.Context, email string) (bool, error)
	PersonalIDExists(ctx context.Context, personalID string) (bool, error)
	// EmailExistsForOther scopes the existence check to clients other than id,
	// so updates do not collide with the target's own email.
	EmailExistsForOther(ctx context.Context, id int64, email string) (bool, error)
	PersonalIDExistsForOther(ctx context.Context, id int64, personalID string) (bool, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}
