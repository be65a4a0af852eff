package handler

import (
	"github.com/shopspring/decimal"

	"bankpanel/internal/client"
)

// Wire representations of the client aggregate. Mapping to and from the
// domain types is explicit and field-for-field in both directions; balances
// travel as decimal strings.
type ClientDTO struct {
	ID           int64        `json:"id"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	PersonalID   string       `json:"personalId"`
	MobileNumber string       `json:"mobileNumber"`
	Sex          string       `json:"sex"`
	Address      AddressDTO   `json:"address"`
	Accounts     []AccountDTO `json:"accounts"`
}

type AddressDTO struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
	ZipCode string `json:"zipCode"`
}

type AccountDTO struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

func toDomain(dto ClientDTO) client.Client {
	accounts := make([]client.Account, 0, len(dto.Accounts))
	for _, a := range dto.Accounts {
		accounts = append(accounts, client.Account{
			ID:            a.ID,
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance,
		})
	}
	return client.Client{
		ID:           dto.ID,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PersonalID:   dto.PersonalID,
		MobileNumber: dto.MobileNumber,
		Sex:          client.Sex(dto.Sex),
		Address: client.Address{
			ID:      dto.Address.ID,
			Country: dto.Address.Country,
			City:    dto.Address.City,
			Street:  dto.Address.Street,
			ZipCode: dto.Address.ZipCode,
		},
		Accounts: accounts,
	}
}

func fromDomain(c client.Client) ClientDTO {
	accounts := make([]AccountDTO, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		accounts = append(accounts, AccountDTO{
			ID:            a.ID,
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance,
		})
	}
	return ClientDTO{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PersonalID:   c.PersonalID,
		MobileNumber: c.MobileNumber,
		Sex:          string(c.Sex),
		Address: AddressDTO{
			ID:      c.Address.ID,
			Country: c.Address.Country,
			City:    c.Address.City,
			Street:  c.Address.Street,
			ZipCode: c.Address.ZipCode,
		},
		Accounts: accounts,
	}
}

func fromDomainList(clients []client.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, fromDomain(c))
	}
	return out
}
