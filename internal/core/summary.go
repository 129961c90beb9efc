package core

import "time"

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// PeriodSummary is the dashboard view for one reporting period.
type PeriodSummary struct {
	Start         time.Time
	End           time.Time
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
	ByCategory    []CategoryAmount // expense breakdown, first-seen order
}

// GroupByCategory sums transaction amounts per category, keeping first-seen
// category order so repeated projections render identically.
func GroupByCategory(txs []Transaction) []CategoryAmount {
	index := make(map[string]int, len(txs))
	out := make([]CategoryAmount, 0, len(txs))
	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Name: t.Category})
		}
		out[i].Amount.Cents += t.Amount.Cents
	}
	return out
}
