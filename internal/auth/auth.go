// Package auth implements signup, login and session handling over a
// credential repository. Passwords are stored and compared in plaintext:
// this is a local, single-user tracker simulating a backend, and the
// non-authentication is documented rather than hidden. The session lives
// in an explicit Service value, not in package state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/core"

	"github.com/google/uuid"
)

var (
	// ErrMissingField rejects a signup with a blank email, password or
	// name before any state is touched.
	ErrMissingField = errors.New("email, password and name are required")

	// ErrEmailTaken is the signup conflict: an existing user already has
	// this exact email.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers every login failure (unknown email,
	// wrong password, credential whose user record is missing) so callers
	// cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service is the credential store front. It holds no session state of its
// own; the active session is a persisted record read and written through
// the repository.
type Service struct {
	repo backend.CredentialRepository
	now  func() time.Time
}

func NewService(repo backend.CredentialRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Signup registers a new user and establishes it as the active session.
// The User record is written before the Credential so that a crash
// between the two writes can never leave a credential referencing a
// missing user.
func (s *Service) Signup(ctx context.Context, email, password, name string) (core.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return core.User{}, ErrMissingField
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return core.User{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return core.User{}, ErrEmailTaken
		}
	}

	user := core.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.AddUser(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("add user: %w", err)
	}
	if err := s.repo.AddCredential(ctx, core.Credential{Email: email, Password: password, UserID: user.ID}); err != nil {
		return core.User{}, fmt.Errorf("add credential: %w", err)
	}
	if err := s.repo.SetSession(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("set session: %w", err)
	}

	slog.InfoContext(ctx, "User signed up", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login matches email and password exactly against the credential
// directory and establishes the session on success.
func (s *Service) Login(ctx context.Context, email, password string) (core.User, error) {
	creds, err := s.repo.ListCredentials(ctx)
	if err != nil {
		return core.User{}, fmt.Errorf("list credentials: %w", err)
	}

	var match *core.Credential
	for i := range creds {
		if creds[i].Email == email && creds[i].Password == password {
			match = &creds[i]
			break
		}
	}
	if match == nil {
		return core.User{}, ErrInvalidCredentials
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return core.User{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.ID == match.UserID {
			if err := s.repo.SetSession(ctx, u); err != nil {
				return core.User{}, fmt.Errorf("set session: %w", err)
			}
			slog.InfoContext(ctx, "User logged in", "user_id", u.ID, "email", u.Email)
			return u, nil
		}
	}

	// Credential with no user record: a data-integrity failure, reported
	// exactly like a bad password.
	slog.WarnContext(ctx, "Credential references missing user", "user_id", match.UserID)
	return core.User{}, ErrInvalidCredentials
}

// Logout clears the active session. Calling it with no session is a
// no-op, not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentSession returns the active session's user, used at process start
// to restore a previous login.
func (s *Service) CurrentSession(ctx context.Context) (core.User, bool, error) {
	u, ok, err := s.repo.Session(ctx)
	if err != nil {
		return core.User{}, false, fmt.Errorf("read session: %w", err)
	}
	return u, ok, nil
}
