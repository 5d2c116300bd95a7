package localstore

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.store = New(kvstore.NewMemStore())
	s.ctx = context.Background()
}

func (s *StoreTestSuite) sample(id string, cents int64) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        core.Expense,
		Amount:      core.Money{Cents: cents},
		Category:    "Food & Dining",
		Description: "lunch",
		Date:        core.NewDate(2024, 3, 5),
		CreatedAt:   time.Now().UTC(),
	}
}

func (s *StoreTestSuite) TestInsertPrepends() {
	require.NoError(s.T(), s.store.Insert(s.ctx, s.sample("a", 100)))
	require.NoError(s.T(), s.store.Insert(s.ctx, s.sample("b", 200)))

	list, err := s.store.List(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "b", list[0].ID, "newest record must come first")
	assert.Equal(s.T(), "a", list[1].ID)
}

func (s *StoreTestSuite) TestUpdateReplacesInPlace() {
	require.NoError(s.T(), s.store.Insert(s.ctx, s.sample("a", 100)))
	require.NoError(s.T(), s.store.Insert(s.ctx, s.sample("b", 200)))

	updated := s.sample("a", 999)
	updated.Description = "dinner"
	require.NoError(s.T(), s.store.Update(s.ctx, updated))

	list, err := s.store.List(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "b", list[0].ID, "update must not reorder the list")
	assert.Equal(s.T(), int64(999), list[1].Amount.Cents)
	assert.Equal(s.T(), "dinner", list[1].Description)
}

func (s *StoreTestSuite) TestUpdateUnknownID() {
	err := s.store.Update(s.ctx, s.sample("ghost", 1))
	assert.ErrorIs(s.T(), err, core.ErrTransactionNotFound)
}

func (s *StoreTestSuite) TestDeleteIsIdempotent() {
	require.NoError(s.T(), s.store.Insert(s.ctx, s.sample("a", 100)))

	require.NoError(s.T(), s.store.Delete(s.ctx, "a"))
	require.NoError(s.T(), s.store.Delete(s.ctx, "a"))

	list, err := s.store.List(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}

func (s *StoreTestSuite) TestCorruptTransactionsReadAsEmpty() {
	kv := kvstore.NewMemStore()
	require.NoError(s.T(), kv.Set("finance-transactions", []byte(`{broken`)))
	store := New(kv)

	list, err := store.List(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list, "corruption degrades to empty, never to an error")
}

func (s *StoreTestSuite) TestSessionLifecycle() {
	_, ok, err := s.store.Session(s.ctx)
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)

	u := core.User{ID: "u1", Email: "a@x.com", Name: "A", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.store.SetSession(s.ctx, u))

	got, ok, err := s.store.Session(s.ctx)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "a@x.com", got.Email)

	require.NoError(s.T(), s.store.ClearSession(s.ctx))
	_, ok, err = s.store.Session(s.ctx)
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)

	// Clearing with no session is a no-op
	require.NoError(s.T(), s.store.ClearSession(s.ctx))
}

func (s *StoreTestSuite) TestUsersAndCredentials() {
	u := core.User{ID: "u1", Email: "a@x.com", Name: "A", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.store.AddUser(s.ctx, u))
	require.NoError(s.T(), s.store.AddCredential(s.ctx, core.Credential{Email: "a@x.com", Password: "pw", UserID: "u1"}))

	users, err := s.store.ListUsers(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), users, 1)
	assert.Equal(s.T(), "a@x.com", users[0].Email)

	creds, err := s.store.ListCredentials(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), creds, 1)
	assert.Equal(s.T(), "u1", creds[0].UserID)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
