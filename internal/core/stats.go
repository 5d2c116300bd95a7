package core

import "time"

// Aggregation over a snapshot of the transaction list. Every function
// here is pure: it filters and reduces over the full input on each call
// and never assumes a particular list order. At the data volumes this
// tracker targets (thousands of records at most) recomputing from scratch
// is the right tradeoff; there is deliberately no cached or incremental
// aggregate state.

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// FilterByMonth returns the transactions whose date falls within the
// calendar month containing ref, both boundaries inclusive.
func FilterByMonth(list []Transaction, ref time.Time) []Transaction {
	var out []Transaction
	for _, t := range list {
		if t.Date.Time.Year() == ref.Year() && t.Date.Time.Month() == ref.Month() {
			out = append(out, t)
		}
	}
	return out
}

// FilterByYear returns the transactions whose date falls within the
// calendar year containing ref.
func FilterByYear(list []Transaction, ref time.Time) []Transaction {
	var out []Transaction
	for _, t := range list {
		if t.Date.Time.Year() == ref.Year() {
			out = append(out, t)
		}
	}
	return out
}

// TotalByType sums the amounts of all transactions of the given type.
// Returns zero for an empty input and is never negative, since amounts
// are magnitudes.
func TotalByType(list []Transaction, typ TransactionType) Money {
	var sum int64
	for _, t := range list {
		if t.Type == typ {
			sum += t.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// GroupSumByCategory sums amounts per distinct category among the
// transactions of the given type. Categories not present in the input are
// absent from the result, not zero-filled.
func GroupSumByCategory(list []Transaction, typ TransactionType) map[string]Money {
	sums := make(map[string]Money)
	for _, t := range list {
		if t.Type != typ {
			continue
		}
		m := sums[t.Category]
		m.Cents += t.Amount.Cents
		sums[t.Category] = m
	}
	return sums
}

// NetIncome is total income minus total expenses. It may be negative.
func NetIncome(list []Transaction) Money {
	return Money{Cents: TotalByType(list, Income).Cents - TotalByType(list, Expense).Cents}
}

// SavingsRate is net income as a percentage of total income. When total
// income is zero the rate is defined as 0. That is a policy choice to
// keep the value meaningful with expenses but no income, not just a guard
// against dividing by zero.
func SavingsRate(list []Transaction) float64 {
	income := TotalByType(list, Income)
	if income.Cents == 0 {
		return 0
	}
	return float64(NetIncome(list).Cents) / float64(income.Cents) * 100
}
