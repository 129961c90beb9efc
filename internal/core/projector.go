package core

import (
	"sort"
	"strings"
)

// BudgetRow is one entry of the monthly budget view: the configured budget,
// the amount spent in its category, and the derived display fields.
type BudgetRow struct {
	Budget Budget
	Spent  Money
	Eval   Evaluation
}

// BudgetOrder selects the ordering of the budget list view.
type BudgetOrder int

const (
	BudgetByCategoryAZ BudgetOrder = iota
	BudgetByCategoryZA
	BudgetByHighestLimit
	BudgetByLowestLimit
	BudgetByMostSpentPct
	BudgetByLeastSpentPct
)

// SortBudgetRows orders rows in place. Sorting is stable: ties keep their
// encounter order, so re-sorting by the same key is idempotent.
func SortBudgetRows(rows []BudgetRow, order BudgetOrder) {
	less := func(a, b BudgetRow) bool { return false }
	switch order {
	case BudgetByCategoryAZ:
		less = func(a, b BudgetRow) bool {
			return strings.ToLower(a.Budget.Category) < strings.ToLower(b.Budget.Category)
		}
	case BudgetByCategoryZA:
		less = func(a, b BudgetRow) bool {
			return strings.ToLower(b.Budget.Category) < strings.ToLower(a.Budget.Category)
		}
	case BudgetByHighestLimit:
		less = func(a, b BudgetRow) bool { return b.Budget.Limit.Cents < a.Budget.Limit.Cents }
	case BudgetByLowestLimit:
		less = func(a, b BudgetRow) bool { return a.Budget.Limit.Cents < b.Budget.Limit.Cents }
	case BudgetByMostSpentPct:
		less = func(a, b BudgetRow) bool { return b.Eval.PercentSpent < a.Eval.PercentSpent }
	case BudgetByLeastSpentPct:
		less = func(a, b BudgetRow) bool { return a.Eval.PercentSpent < b.Eval.PercentSpent }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// TransactionOrder selects the ordering of a transaction list view.
type TransactionOrder int

const (
	NewestFirst TransactionOrder = iota
	OldestFirst
	HighestAmount
	LowestAmount
)

// FilterTransactions returns the subset of txs matching a free-text query and
// a category filter. A transaction matches the query when the query is empty
// or its category, description, or formatted amount string contains it
// case-insensitively; whitespace in the query is significant. It matches the
// category filter when the filter is AllCategories or an exact category
// match. Input order is preserved.
func FilterTransactions(txs []Transaction, query, category string) []Transaction {
	q := strings.ToLower(query)
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		matchesQuery := q == "" ||
			strings.Contains(strings.ToLower(t.Category), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(t.Amount.String(), q)
		matchesCategory := category == AllCategories || t.Category == category
		if matchesQuery && matchesCategory {
			out = append(out, t)
		}
	}
	return out
}

// SortTransactions orders txs in place, stable for ties.
func SortTransactions(txs []Transaction, order TransactionOrder) {
	less := func(a, b Transaction) bool { return false }
	switch order {
	case NewestFirst:
		less = func(a, b Transaction) bool { return b.Date.Before(a.Date) }
	case OldestFirst:
		less = func(a, b Transaction) bool { return a.Date.Before(b.Date) }
	case HighestAmount:
		less = func(a, b Transaction) bool { return b.Amount.Cents < a.Amount.Cents }
	case LowestAmount:
		less = func(a, b Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	}
	sort.SliceStable(txs, func(i, j int) bool { return less(txs[i], txs[j]) })
}
