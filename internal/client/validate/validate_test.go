package validate

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankpanel/internal/client"
	clientstore "bankpanel/internal/client/store"
	dErrors "bankpanel/pkg/domain-errors"
)

func validClient() client.Client {
	return client.Client{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane.doe@example.com",
		PersonalID:   "12345678901",
		MobileNumber: "+995555123456",
		Sex:          client.SexFemale,
		Address:      client.Address{Country: "Georgia", City: "Tbilisi", Street: "Rustaveli 1", ZipCode: "0108"},
		Accounts: []client.Account{
			{AccountNumber: "GE01BK0000000001", Balance: decimal.NewFromInt(100)},
		},
	}
}

func newChecker(t *testing.T) (*Checker, *clientstore.InMemoryStore) {
	t.Helper()
	store := clientstore.NewInMemory()
	return NewChecker(store), store
}

func TestShapeValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*client.Client)
		field  string
	}{
		{"empty email", func(c *client.Client) { c.Email = "" }, "email"},
		{"malformed email", func(c *client.Client) { c.Email = "not-an-email" }, "email"},
		{"empty first name", func(c *client.Client) { c.FirstName = "" }, "firstName"},
		{"overlong first name", func(c *client.Client) { c.FirstName = string(make([]byte, 61)) }, "firstName"},
		{"empty last name", func(c *client.Client) { c.LastName = "" }, "lastName"},
		{"short personal id", func(c *client.Client) { c.PersonalID = "123" }, "personalId"},
		{"long personal id", func(c *client.Client) { c.PersonalID = "123456789012" }, "personalId"},
		{"mobile without plus", func(c *client.Client) { c.MobileNumber = "995555123456" }, "mobileNumber"},
		{"mobile with letters", func(c *client.Client) { c.MobileNumber = "+995abc" }, "mobileNumber"},
		{"unknown sex", func(c *client.Client) { c.Sex = "Other" }, "sex"},
		{"no accounts", func(c *client.Client) { c.Accounts = nil }, "accounts"},
	}

	checker, _ := newChecker(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validClient()
			tc.mutate(&c)
			err := checker.ForCreate(context.Background(), c)
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
			var de *dErrors.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.field, de.Field)
		})
	}

	t.Run("valid client passes against an empty store", func(t *testing.T) {
		checker, _ := newChecker(t)
		assert.NoError(t, checker.ForCreate(context.Background(), validClient()))
	})
}

func TestForCreate_UniquenessChain(t *testing.T) {
	seed := func(t *testing.T, store *clientstore.InMemoryStore) {
		t.Helper()
		_, err := store.Create(context.Background(), validClient())
		require.NoError(t, err)
	}

	t.Run("duplicate email fails before any account check", func(t *testing.T) {
		checker, store := newChecker(t)
		seed(t, store)

		c := validClient()
		c.PersonalID = "99999999999"
		// Same account number as the seed: if the account check ran first,
		// the error code would differ.
		err := checker.ForCreate(context.Background(), c)
		assert.True(t, dErrors.Is(err, dErrors.CodeEmailExists))
	})

	t.Run("duplicate personal id fails after email passes", func(t *testing.T) {
		checker, store := newChecker(t)
		seed(t, store)

		c := validClient()
		c.Email = "other@example.com"
		err := checker.ForCreate(context.Background(), c)
		assert.True(t, dErrors.Is(err, dErrors.CodePersonalIDExists))
	})

	t.Run("negative balance fails before the account number check", func(t *testing.T) {
		checker, store := newChecker(t)
		seed(t, store)

		c := validClient()
		c.Email = "other@example.com"
		c.PersonalID = "99999999999"
		c.Accounts[0].Balance = decimal.NewFromInt(-1)
		err := checker.ForCreate(context.Background(), c)
		assert.True(t, dErrors.Is(err, dErrors.CodeNegativeBalance))
	})

	t.Run("duplicate account number fails last", func(t *testing.T) {
		checker, store := newChecker(t)
		seed(t, store)

		c := validClient()
		c.Email = "other@example.com"
		c.PersonalID = "99999999999"
		err := checker.ForCreate(context.Background(), c)
		assert.True(t, dErrors.Is(err, dErrors.CodeAccountNumberExists))
	})

	t.Run("accounts are checked in submission order", func(t *testing.T) {
		checker, store := newChecker(t)
		seed(t, store)

		c := validClient()
		c.Email = "other@example.com"
		c.PersonalID = "99999999999"
		c.Accounts = []client.Account{
			{AccountNumber: "GE02BK0000000002", Balance: decimal.NewFromInt(-5)},
			{AccountNumber: "GE01BK0000000001", Balance: decimal.NewFromInt(10)},
		}
		err := checker.ForCreate(context.Background(), c)
		assert.True(t, dErrors.Is(err, dErrors.CodeNegativeBalance))
	})
}

func TestForUpdate(t *testing.T) {
	seedTwo := func(t *testing.T, store *clientstore.InMemoryStore) (int64, int64) {
		t.Helper()
		a, err := store.Create(context.Background(), validClient())
		require.NoError(t, err)
		b := validClient()
		b.Email = "b@example.com"
		b.PersonalID = "22222222222"
		b.Accounts[0].AccountNumber = "GE02BK0000000002"
		created, err := store.Create(context.Background(), b)
		require.NoError(t, err)
		return a.ID, created.ID
	}

	t.Run("personal id of another client is rejected", func(t *testing.T) {
		checker, store := newChecker(t)
		aID, bID := seedTwo(t, store)
		_ = aID

		c := validClient() // carries A's personal id and email
		c.Email = "b@example.com"
		err := checker.ForUpdate(context.Background(), bID, c)
		assert.True(t, dErrors.Is(err, dErrors.CodePersonalIDExists))
	})

	t.Run("email of another client is rejected after personal id passes", func(t *testing.T) {
		checker, store := newChecker(t)
		_, bID := seedTwo(t, store)

		c := validClient() // A's email
		c.PersonalID = "22222222222"
		err := checker.ForUpdate(context.Background(), bID, c)
		assert.True(t, dErrors.Is(err, dErrors.CodeEmailExists))
	})

	t.Run("keeping your own email and personal id is not a collision", func(t *testing.T) {
		checker, store := newChecker(t)
		aID, _ := seedTwo(t, store)

		assert.NoError(t, checker.ForUpdate(context.Background(), aID, validClient()))
	})

	t.Run("negative balance is rejected", func(t *testing.T) {
		checker, store := newChecker(t)
		aID, _ := seedTwo(t, store)

		c := validClient()
		c.Accounts[0].Balance = decimal.NewFromInt(-1)
		err := checker.ForUpdate(context.Background(), aID, c)
		assert.True(t, dErrors.Is(err, dErrors.CodeNegativeBalance))
	})

	t.Run("account numbers are not re-checked on update", func(t *testing.T) {
		checker, store := newChecker(t)
		aID, _ := seedTwo(t, store)

		c := validClient()
		c.Accounts[0].AccountNumber = "GE02BK0000000002" // already owned by B
		assert.NoError(t, checker.ForUpdate(context.Background(), aID, c))
	})
}
