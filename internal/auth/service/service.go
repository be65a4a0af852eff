// Package service implements registration, login, and logout for operator
// accounts.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bankpanel/internal/auth"
	dErrors "bankpanel/pkg/domain-errors"
	"bankpanel/pkg/platform/sentinel"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, username, role string, expiresIn time.Duration) (string, error)
}

// Revoker marks a token id revoked until its expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

// Service wires the user store, token issuer, and revocation store together.
type Service struct {
	store    auth.UserStore
	issuer   TokenIssuer
	revoker  Revoker
	tokenTTL time.Duration
}

func New(store auth.UserStore, issuer TokenIssuer, revoker Revoker, tokenTTL time.Duration) *Service {
	return &Service{store: store, issuer: issuer, revoker: revoker, tokenTTL: tokenTTL}
}

// Register creates a new operator account with a bcrypt-hashed password.
// Unknown roles and duplicate usernames are rejected.
func (s *Service) Register(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "username and password are required")
	}
	if !auth.ValidRole(role) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid role")
	}

	exists, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return dErrors.New(dErrors.CodeBadRequest, "username already exists try with another username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.store.Save(ctx, auth.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, sentinel.ErrConflict) {
		// A concurrent registration won the username.
		return dErrors.New(dErrors.CodeBadRequest, "username already exists try with another username")
	}
	return err
}

// Login verifies the credentials and returns a signed access token. Missing
// users and wrong passwords produce the same error so usernames cannot be
// probed.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	return s.issuer.GenerateAccessToken(user.ID, user.Username, user.Role, s.tokenTTL)
}

// Logout revokes the presented token id. Without a configured revoker this is
// a no-op; the token simply ages out.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, jti, expiresAt)
}

// TokenTTL exposes the configured token lifetime for revocation deadlines.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
