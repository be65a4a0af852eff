// Package client holds the client aggregate (client + address + accounts)
// and the store boundary it is persisted through.
package client

import "github.com/shopspring/decimal"

// Sex is the enumerated sex attribute of a client.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Valid reports whether s is one of the known enum values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Client is the identity aggregate. ID is assigned by the store on create and
// immutable thereafter. Email and PersonalID are globally unique among
// clients; the validation workflow enforces this before any mutation reaches
// the store.
type Client struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PersonalID   string
	MobileNumber string
	Sex          Sex
	Address      Address
	Accounts     []Account
}

// Address is owned one-to-one by a client.
type Address struct {
	ID      int64
	Country string
	City    string
	Street  string
	ZipCode string
}

// Account is owned exclusively by one client and cascade-deleted with it.
// Balance must be non-negative at creation time.
type Account struct {
	ID            int64
	AccountNumber string
	Balance       decimal.Decimal
}
