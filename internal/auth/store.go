package auth

import "context"

// UserStore is the persistence boundary for operator accounts.
type UserStore interface {
	Save(ctx context.Context, user User) error
	// FindByUsername returns sentinel.ErrNotFound when the username is absent.
	FindByUsername(ctx context.Context, username string) (User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
