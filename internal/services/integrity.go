package services

import (
	"context"
	"fmt"

	"fintrack/internal/backend"
	"fintrack/internal/core"

	"golang.org/x/sync/errgroup"
)

// IntegrityReport lists every structural violation found in the stored
// data. An empty Findings slice means the store is consistent.
type IntegrityReport struct {
	Users        int
	Credentials  int
	Transactions int
	Findings     []string
}

func (r IntegrityReport) OK() bool { return len(r.Findings) == 0 }

// IntegrityService checks the cross-record invariants the write paths
// maintain: unique user emails, credentials that reference an existing
// user, unique transaction ids, and a session pointing at a known user.
// It exists because the stores are plain files that other programs (or a
// crash mid-write) can leave inconsistent.
type IntegrityService struct {
	repo backend.Backend
}

func NewIntegrityService(repo backend.Backend) *IntegrityService {
	return &IntegrityService{repo: repo}
}

// Check loads the four record sets concurrently and cross-references
// them. Load errors abort the check; violations are collected as
// findings, not errors.
func (s *IntegrityService) Check(ctx context.Context) (IntegrityReport, error) {
	var (
		users        []core.User
		creds        []core.Credential
		transactions []core.Transaction
		session      core.User
		hasSession   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.repo.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		creds, err = s.repo.ListCredentials(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		session, hasSession, err = s.repo.Session(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return IntegrityReport{}, fmt.Errorf("load records: %w", err)
	}

	report := IntegrityReport{
		Users:        len(users),
		Credentials:  len(creds),
		Transactions: len(transactions),
	}

	byID := make(map[string]bool, len(users))
	byEmail := make(map[string]bool, len(users))
	for _, u := range users {
		if byEmail[u.Email] {
			report.Findings = append(report.Findings, fmt.Sprintf("duplicate user email %q", u.Email))
		}
		byEmail[u.Email] = true
		byID[u.ID] = true
	}

	for _, c := range creds {
		if !byID[c.UserID] {
			report.Findings = append(report.Findings, fmt.Sprintf("credential %q references missing user %q", c.Email, c.UserID))
		}
	}

	seen := make(map[string]bool, len(transactions))
	for _, t := range transactions {
		if seen[t.ID] {
			report.Findings = append(report.Findings, fmt.Sprintf("duplicate transaction id %q", t.ID))
		}
		seen[t.ID] = true
		if err := t.Fields().Validate(); err != nil {
			report.Findings = append(report.Findings, fmt.Sprintf("transaction %q: %v", t.ID, err))
		}
	}

	if hasSession && !byID[session.ID] {
		report.Findings = append(report.Findings, fmt.Sprintf("session references missing user %q", session.ID))
	}

	return report, nil
}
