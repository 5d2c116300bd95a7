// Package services composes the repositories into the read models the
// presentation layer renders. Every figure is recomputed from the full
// transaction list on each call; nothing here caches.
package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/core"
)

// recentLimit caps the recent-activity section of the dashboard.
const recentLimit = 10

// Dashboard is the month-at-a-glance view: current-month totals, the
// derived net and savings figures, per-category breakdowns for both
// directions, and the newest transactions across all months.
type Dashboard struct {
	Year  int
	Month time.Month

	Income      core.Money
	Expenses    core.Money
	Net         core.Money
	SavingsRate float64

	ExpensesByCategory map[string]core.Money
	IncomeByCategory   map[string]core.Money

	Recent []core.Transaction
}

// DashboardService builds the overview for a given reference time.
type DashboardService struct {
	repo backend.TransactionRepository
}

func NewDashboardService(repo backend.TransactionRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Build loads the transaction list once and derives every dashboard
// figure from that single snapshot, so the totals, breakdowns and recent
// section can never disagree with each other.
func (s *DashboardService) Build(ctx context.Context, at time.Time) (Dashboard, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list transactions: %w", err)
	}

	monthly := core.FilterByMonth(list, at)

	recent := list
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Dashboard{
		Year:               at.Year(),
		Month:              at.Month(),
		Income:             core.TotalByType(monthly, core.Income),
		Expenses:           core.TotalByType(monthly, core.Expense),
		Net:                core.NetIncome(monthly),
		SavingsRate:        core.SavingsRate(monthly),
		ExpensesByCategory: core.GroupSumByCategory(monthly, core.Expense),
		IncomeByCategory:   core.GroupSumByCategory(monthly, core.Income),
		Recent:             recent,
	}, nil
}
