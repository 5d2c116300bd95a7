// Package localstore persists the tracker's record sets as JSON blobs in
// a key-value store, one key per record set. The keys match the ones the
// original browser version used in localStorage.
package localstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/kvstore"
)

const (
	keyTransactions = "finance-transactions"
	keySession      = "finance-tracker-user"
	keyUsers        = "finance-tracker-users"
	keyCredentials  = "finance-tracker-credentials"
)

// Store implements the transaction and credential repositories over a
// kvstore.Store. Each mutation is a read-modify-write of a whole blob, so
// a mutex serializes mutators to prevent lost updates from interleaved
// writers.
type Store struct {
	mu sync.Mutex
	kv kvstore.Store
}

func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Insert prepends the transaction to the stored list.
func (s *Store) Insert(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := kvstore.Read(s.kv, keyTransactions, []core.Transaction(nil))
	list = append([]core.Transaction{t}, list...)
	if err := kvstore.Write(s.kv, keyTransactions, list); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return nil
}

// Update replaces the record matching t.ID in place.
func (s *Store) Update(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := kvstore.Read(s.kv, keyTransactions, []core.Transaction(nil))
	for i := range list {
		if list[i].ID == t.ID {
			list[i] = t
			if err := kvstore.Write(s.kv, keyTransactions, list); err != nil {
				return fmt.Errorf("write transactions: %w", err)
			}
			return nil
		}
	}
	return core.ErrTransactionNotFound
}

// Delete removes the record matching id. Absent ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := kvstore.Read(s.kv, keyTransactions, []core.Transaction(nil))
	kept := list[:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	if err := kvstore.Write(s.kv, keyTransactions, kept); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}

// List returns the full stored list, newest first.
func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.Read(s.kv, keyTransactions, []core.Transaction(nil)), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.Read(s.kv, keyUsers, []core.User(nil)), nil
}

func (s *Store) AddUser(ctx context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := kvstore.Read(s.kv, keyUsers, []core.User(nil))
	users = append(users, u)
	if err := kvstore.Write(s.kv, keyUsers, users); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

func (s *Store) ListCredentials(ctx context.Context) ([]core.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.Read(s.kv, keyCredentials, []core.Credential(nil)), nil
}

func (s *Store) AddCredential(ctx context.Context, c core.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := kvstore.Read(s.kv, keyCredentials, []core.Credential(nil))
	creds = append(creds, c)
	if err := kvstore.Write(s.kv, keyCredentials, creds); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Session returns the active session's user, if any. A corrupted session
// blob reads as "no session".
func (s *Store) Session(ctx context.Context) (core.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := kvstore.Read(s.kv, keySession, core.User{})
	if u.ID == "" {
		return core.User{}, false, nil
	}
	return u, true, nil
}

func (s *Store) SetSession(ctx context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := kvstore.Write(s.kv, keySession, u); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(keySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
