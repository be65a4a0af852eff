// Package auth manages operator accounts and token lifecycle for the control
// panel: registration, login, and logout with token revocation.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the API. Admin may mutate the client registry; User is
// read-only.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is an operator account. Only the bcrypt hash of the password is ever
// stored.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
