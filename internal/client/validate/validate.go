// Package validate implements the pre-mutation checks for client aggregates:
// shape validation followed by a strict ordered chain of uniqueness checks.
// Each step stops at the first violation; errors are never aggregated.
package validate

import (
	"context"
	"net/mail"
	"regexp"

	"bankpanel/internal/client"
	dErrors "bankpanel/pkg/domain-errors"
)

var mobileNumberRe = regexp.MustCompile(`^\+\d{1,3}\d{1,14}$`)

const (
	maxNameLength    = 60
	personalIDLength = 11
)

// UniquenessStore is the slice of the client store the checker consults.
type UniquenessStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	PersonalIDExists(ctx context.Context, personalID string) (bool, error)
	EmailExistsForOther(ctx context.Context, id int64, email string) (bool, error)
	PersonalIDExistsForOther(ctx context.Context, id int64, personalID string) (bool, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// Checker runs the create and update validation workflows. The HTTP boundary
// invokes it before handing a mutation to the service.
type Checker struct {
	store UniquenessStore
}

func NewChecker(store UniquenessStore) *Checker {
	return &Checker{store: store}
}

// ForCreate validates a new aggregate: shape first, then email uniqueness,
// then personal-id uniqueness, then each submitted account in order (balance
// sign before account-number uniqueness).
func (v *Checker) ForCreate(ctx context.Context, c client.Client) error {
	if err := shape(c); err != nil {
		return err
	}

	exists, err := v.store.EmailExists(ctx, c.Email)
	if err != nil {
		return err
	}
	if exists {
		return dErrors.New(dErrors.CodeEmailExists, "email already exists")
	}

	exists, err = v.store.PersonalIDExists(ctx, c.PersonalID)
	if err != nil {
		return err
	}
	if exists {
		return dErrors.New(dErrors.CodePersonalIDExists, "personal ID already exists")
	}

	for _, account := range c.Accounts {
		if account.Balance.IsNegative() {
			return dErrors.New(dErrors.CodeNegativeBalance, "balance cannot be negative")
		}
		exists, err := v.store.AccountNumberExists(ctx, account.AccountNumber)
		if err != nil {
			return err
		}
		if exists {
			return dErrors.New(dErrors.CodeAccountNumberExists, "account number "+account.AccountNumber+" already exists")
		}
	}
	return nil
}

// ForUpdate validates a replacement aggregate for the client stored under id:
// shape, personal-id uniqueness excluding the target, email uniqueness
// excluding the target, then a negative-balance scan of the submitted
// accounts. Account numbers are not re-checked on update.
func (v *Checker) ForUpdate(ctx context.Context, id int64, c client.Client) error {
	if err := shape(c); err != nil {
		return err
	}

	exists, err := v.store.PersonalIDExistsForOther(ctx, id, c.PersonalID)
	if err != nil {
		return err
	}
	if exists {
		return dErrors.New(dErrors.CodePersonalIDExists, "personal ID already exists for other client")
	}

	exists, err = v.store.EmailExistsForOther(ctx, id, c.Email)
	if err != nil {
		return err
	}
	if exists {
		return dErrors.New(dErrors.CodeEmailExists, "email already exists for other client")
	}

	for _, account := range c.Accounts {
		if account.Balance.IsNegative() {
			return dErrors.New(dErrors.CodeNegativeBalance, "balance cannot be negative")
		}
	}
	return nil
}

// shape checks required fields and formats, reporting the first failing
// field.
func shape(c client.Client) error {
	if c.Email == "" {
		return dErrors.WithField(dErrors.CodeValidation, "email", "must not be empty")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return dErrors.WithField(dErrors.CodeValidation, "email", "must be a valid email address")
	}
	if c.FirstName == "" {
		return dErrors.WithField(dErrors.CodeValidation, "firstName", "must not be empty")
	}
	if len(c.FirstName) > maxNameLength {
		return dErrors.WithField(dErrors.CodeValidation, "firstName", "must be at most 60 characters")
	}
	if c.LastName == "" {
		return dErrors.WithField(dErrors.CodeValidation, "lastName", "must not be empty")
	}
	if len(c.LastName) > maxNameLength {
		return dErrors.WithField(dErrors.CodeValidation, "lastName", "must be at most 60 characters")
	}
	if len(c.PersonalID) != personalIDLength {
		return dErrors.WithField(dErrors.CodeValidation, "personalId", "must be exactly 11 characters")
	}
	if !mobileNumberRe.MatchString(c.MobileNumber) {
		return dErrors.WithField(dErrors.CodeValidation, "mobileNumber", "must be an international number like +995555123456")
	}
	if !c.Sex.Valid() {
		return dErrors.WithField(dErrors.CodeValidation, "sex", "must be Male or Female")
	}
	if len(c.Accounts) == 0 {
		return dErrors.WithField(dErrors.CodeValidation, "accounts", "at least one account is required")
	}
	return nil
}
