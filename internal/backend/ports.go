package backend

import (
	"context"

	"fintrack/internal/core"
)

// Ports implemented by every storage backend. Update returns
// core.ErrTransactionNotFound when no record matches; Delete deliberately
// does not, since removing an absent record is a no-op.
type (
	// TransactionRepository persists the single ordered transaction list.
	// List returns records in stored order, newest first; Insert prepends.
	TransactionRepository interface {
		Insert(ctx context.Context, t core.Transaction) error
		Update(ctx context.Context, t core.Transaction) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]core.Transaction, error)
	}

	// CredentialRepository persists the three credential-related records:
	// the user directory, the credential directory, and the single active
	// session.
	CredentialRepository interface {
		ListUsers(ctx context.Context) ([]core.User, error)
		AddUser(ctx context.Context, u core.User) error
		ListCredentials(ctx context.Context) ([]core.Credential, error)
		AddCredential(ctx context.Context, c core.Credential) error

		// Session returns the active session's user, or false when none.
		Session(ctx context.Context) (core.User, bool, error)
		SetSession(ctx context.Context, u core.User) error
		ClearSession(ctx context.Context) error
	}
)
