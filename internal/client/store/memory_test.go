package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"bankpanel/internal/client"
	"bankpanel/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) newClient(email, personalID, accountNumber string) client.Client {
	return client.Client{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PersonalID:   personalID,
		MobileNumber: "+995555123456",
		Sex:          client.SexFemale,
		Address:      client.Address{Country: "Georgia", City: "Tbilisi", Street: "Rustaveli 1", ZipCode: "0108"},
		Accounts: []client.Account{
			{AccountNumber: accountNumber, Balance: decimal.NewFromInt(100)},
		},
	}
}

func (s *InMemoryStoreSuite) TestCreateAssignsIDs() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)
	s.Equal(int64(1), created.ID)
	s.NotZero(created.Accounts[0].ID)

	second, err := s.store.Create(context.Background(), s.newClient("b@x.com", "22222222222", "ACC-2"))
	s.Require().NoError(err)
	s.Greater(second.ID, created.ID)
}

func (s *InMemoryStoreSuite) TestFindByID() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)

	found, err := s.store.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(created, found)

	_, err = s.store.FindByID(context.Background(), 999)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListPageOrdersByID() {
	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := s.store.Create(context.Background(), s.newClient(email, "1111111111"+string(rune('0'+i)), "ACC-"+email))
		s.Require().NoError(err)
	}

	page, err := s.store.ListPage(context.Background(), 1, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("a@x.com", page[0].Email)
	s.Equal("b@x.com", page[1].Email)

	rest, err := s.store.ListPage(context.Background(), 2, 2)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("c@x.com", rest[0].Email)

	empty, err := s.store.ListPage(context.Background(), 3, 2)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *InMemoryStoreSuite) TestUpdate() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)

	created.FirstName = "Janet"
	s.Require().NoError(s.store.Update(context.Background(), created))

	found, err := s.store.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Janet", found.FirstName)

	missing := s.newClient("x@x.com", "99999999999", "ACC-9")
	missing.ID = 777
	s.Require().ErrorIs(s.store.Update(context.Background(), missing), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDeleteIsIdempotent() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(context.Background(), created.ID))
	_, err = s.store.FindByID(context.Background(), created.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// Deleting an absent id is a no-op.
	s.Require().NoError(s.store.Delete(context.Background(), created.ID))
}

func (s *InMemoryStoreSuite) TestUniquenessPredicates() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)

	ctx := context.Background()

	exists, err := s.store.EmailExists(ctx, "a@x.com")
	s.Require().NoError(err)
	s.True(exists)
	exists, err = s.store.EmailExists(ctx, "other@x.com")
	s.Require().NoError(err)
	s.False(exists)

	exists, err = s.store.PersonalIDExists(ctx, "11111111111")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.AccountNumberExists(ctx, "ACC-1")
	s.Require().NoError(err)
	s.True(exists)

	// Self is excluded from the scoped variants.
	exists, err = s.store.EmailExistsForOther(ctx, created.ID, "a@x.com")
	s.Require().NoError(err)
	s.False(exists)
	exists, err = s.store.EmailExistsForOther(ctx, created.ID+1, "a@x.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.PersonalIDExistsForOther(ctx, created.ID, "11111111111")
	s.Require().NoError(err)
	s.False(exists)
	exists, err = s.store.PersonalIDExistsForOther(ctx, created.ID+1, "11111111111")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *InMemoryStoreSuite) TestAggregatesDoNotShareAccountSlices() {
	created, err := s.store.Create(context.Background(), s.newClient("a@x.com", "11111111111", "ACC-1"))
	s.Require().NoError(err)

	found, err := s.store.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	found.Accounts[0].AccountNumber = "TAMPERED"

	again, err := s.store.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("ACC-1", again.Accounts[0].AccountNumber)
}
