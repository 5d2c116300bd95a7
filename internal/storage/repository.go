package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements the transaction and credential repository
// ports over a single SQLite database file. Transactions are listed by
// descending rowid, which reproduces the prepend order of the JSON
// localstore: last inserted comes first.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements backend.TransactionRepository.
func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, amount_cents, category, description, tx_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.Amount.Cents, t.Category, t.Description, t.Date.String(), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return nil
}

// Update implements backend.TransactionRepository. Only the mutable
// columns change; created_at stays as inserted.
func (r *SQLiteRepository) Update(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET type = ?, amount_cents = ?, category = ?, description = ?, tx_date = ?
		 WHERE id = ?`,
		string(t.Type), t.Amount.Cents, t.Category, t.Description, t.Date.String(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

// Delete implements backend.TransactionRepository.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List implements backend.TransactionRepository.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount_cents, category, description, tx_date, created_at
		 FROM transactions ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			typ     string
			dateStr string
		)
		if err := rows.Scan(&t.ID, &typ, &t.Amount.Cents, &t.Category, &t.Description, &dateStr, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(typ)
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		t.Date = core.Date{Time: d}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListUsers implements backend.CredentialRepository.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, created_at FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AddUser implements backend.CredentialRepository.
func (r *SQLiteRepository) AddUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ListCredentials implements backend.CredentialRepository.
func (r *SQLiteRepository) ListCredentials(ctx context.Context) ([]core.Credential, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email, password, user_id FROM credentials ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []core.Credential
	for rows.Next() {
		var c core.Credential
		if err := rows.Scan(&c.Email, &c.Password, &c.UserID); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

// AddCredential implements backend.CredentialRepository.
func (r *SQLiteRepository) AddCredential(ctx context.Context, c core.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (email, password, user_id) VALUES (?, ?, ?)`,
		c.Email, c.Password, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// Session implements backend.CredentialRepository. A session row whose
// user no longer exists reads as "no session".
func (r *SQLiteRepository) Session(ctx context.Context) (core.User, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.name, u.created_at
		 FROM session s JOIN users u ON s.user_id = u.id
		 WHERE s.id = 1`)

	var u core.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, false, nil
		}
		return core.User{}, false, fmt.Errorf("read session: %w", err)
	}
	return u, true, nil
}

// SetSession implements backend.CredentialRepository.
func (r *SQLiteRepository) SetSession(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session (id, user_id) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id`,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// ClearSession implements backend.CredentialRepository. Idempotent.
func (r *SQLiteRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
