// Package transactions implements the create/update/remove/list
// operations over the persisted transaction list.
package transactions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/core"

	"github.com/google/uuid"
)

// Service validates field sets and assigns identity; the repository owns
// ordering and persistence.
type Service struct {
	repo backend.TransactionRepository
	now  func() time.Time
}

func NewService(repo backend.TransactionRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add assigns a fresh id and a creation timestamp, prepends the record to
// the list and returns it.
func (s *Service) Add(ctx context.Context, fields core.TransactionFields) (core.Transaction, error) {
	if err := fields.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}.WithFields(fields)

	if err := s.repo.Insert(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

// Update replaces the mutable fields of the record matching id, leaving
// its id and creation timestamp unchanged. Returns
// core.ErrTransactionNotFound when no record matches.
func (s *Service) Update(ctx context.Context, id string, fields core.TransactionFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	for _, t := range list {
		if t.ID == id {
			if err := s.repo.Update(ctx, t.WithFields(fields)); err != nil {
				return fmt.Errorf("update transaction: %w", err)
			}
			return nil
		}
	}
	return core.ErrTransactionNotFound
}

// Remove deletes the record matching id. Removing an absent id is a
// no-op.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return nil
}

// List returns the full current list in stored order, newest first.
func (s *Service) List(ctx context.Context) ([]core.Transaction, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}
