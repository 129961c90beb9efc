package core

import (
	"testing"
	"time"
)

func budgetRow(category string, limitCents, spentCents int64) BudgetRow {
	b := Budget{Category: category, Limit: Money{Cents: limitCents}, AlertThreshold: 50}
	spent := Money{Cents: spentCents}
	return BudgetRow{Budget: b, Spent: spent, Eval: Evaluate(b, spent)}
}

func categories(rows []BudgetRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Budget.Category
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortBudgetRowsByCategory(t *testing.T) {
	rows := []BudgetRow{
		budgetRow("food", 100, 0),
		budgetRow("Bills", 100, 0),
		budgetRow("Transportation", 100, 0),
	}

	SortBudgetRows(rows, BudgetByCategoryAZ)
	if got := categories(rows); !equalStrings(got, []string{"Bills", "food", "Transportation"}) {
		t.Fatalf("A-Z order = %v", got)
	}

	SortBudgetRows(rows, BudgetByCategoryZA)
	if got := categories(rows); !equalStrings(got, []string{"Transportation", "food", "Bills"}) {
		t.Fatalf("Z-A order = %v", got)
	}
}

func TestSortBudgetRowsReverseIsExactReverse(t *testing.T) {
	rows := []BudgetRow{
		budgetRow("Food", 100, 0),
		budgetRow("Bills", 100, 0),
		budgetRow("Health", 100, 0),
		budgetRow("Shopping", 100, 0),
	}
	SortBudgetRows(rows, BudgetByCategoryAZ)
	forward := categories(rows)

	SortBudgetRows(rows, BudgetByCategoryZA)
	backward := categories(rows)

	for i := range forward {
		if forward[i] != backward[len(backward)-1-i] {
			t.Fatalf("Z-A is not the reverse of A-Z: %v vs %v", forward, backward)
		}
	}
}

func TestSortBudgetRowsByLimitAndPercent(t *testing.T) {
	// limits 100, 50, 200 with spent 10, 40, 20 -> percentages 10%, 80%, 10%
	rows := []BudgetRow{
		budgetRow("A", 10000, 1000),
		budgetRow("B", 5000, 4000),
		budgetRow("C", 20000, 2000),
	}

	SortBudgetRows(rows, BudgetByHighestLimit)
	if got := categories(rows); !equalStrings(got, []string{"C", "A", "B"}) {
		t.Fatalf("highest limit order = %v", got)
	}

	SortBudgetRows(rows, BudgetByLowestLimit)
	if got := categories(rows); !equalStrings(got, []string{"B", "A", "C"}) {
		t.Fatalf("lowest limit order = %v", got)
	}
}

func TestSortBudgetRowsByPercentStableTies(t *testing.T) {
	// A and C tie at 10% and must keep encounter order behind B's 80%.
	rows := []BudgetRow{
		budgetRow("A", 10000, 1000),
		budgetRow("B", 5000, 4000),
		budgetRow("C", 20000, 2000),
	}
	SortBudgetRows(rows, BudgetByMostSpentPct)
	if got := categories(rows); !equalStrings(got, []string{"B", "A", "C"}) {
		t.Fatalf("most spent %% order = %v, want [B A C]", got)
	}

	rows = []BudgetRow{
		budgetRow("A", 10000, 1000),
		budgetRow("B", 5000, 4000),
		budgetRow("C", 20000, 2000),
	}
	SortBudgetRows(rows, BudgetByLeastSpentPct)
	if got := categories(rows); !equalStrings(got, []string{"A", "C", "B"}) {
		t.Fatalf("least spent %% order = %v, want [A C B]", got)
	}
}

func TestSortBudgetRowsIdempotent(t *testing.T) {
	rows := []BudgetRow{
		budgetRow("A", 100, 50),
		budgetRow("B", 100, 50),
		budgetRow("C", 200, 50),
	}
	SortBudgetRows(rows, BudgetByMostSpentPct)
	first := categories(rows)
	SortBudgetRows(rows, BudgetByMostSpentPct)
	if got := categories(rows); !equalStrings(got, first) {
		t.Fatalf("re-sort changed order: %v vs %v", first, got)
	}
}

func tx(id int64, category, description string, cents int64, when time.Time) Transaction {
	return Transaction{
		ID:          id,
		UserEmail:   "a@b.c",
		Amount:      Money{Cents: cents},
		Date:        when,
		Category:    category,
		Description: description,
		Kind:        Expense,
	}
}

func txIDs(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleTransactions() []Transaction {
	base := date(2025, time.March, 1, 12, 0, 0, 0)
	return []Transaction{
		tx(1, "Food", "groceries", 4599, base.AddDate(0, 0, 3)),
		tx(2, "Bills", "electricity", 12000, base.AddDate(0, 0, 1)),
		tx(3, "Food", "lunch", 1250, base.AddDate(0, 0, 5)),
		tx(4, "Health", "pharmacy", 4599, base),
	}
}

func TestFilterTransactionsEmptyQueryAll(t *testing.T) {
	txs := sampleTransactions()
	got := FilterTransactions(txs, "", AllCategories)
	if !equalIDs(txIDs(got), []int64{1, 2, 3, 4}) {
		t.Fatalf("empty query + All must return full input in order, got %v", txIDs(got))
	}
}

func TestFilterTransactionsByQuery(t *testing.T) {
	txs := sampleTransactions()

	cases := []struct {
		query string
		want  []int64
	}{
		{"foo", []int64{1, 3}},   // category, case-insensitive
		{"ELECTR", []int64{2}},   // description, case-insensitive
		{"45.99", []int64{1, 4}}, // formatted amount
		{"nomatch", nil},         // nothing
		{" lunch", nil},          // leading whitespace is significant
		{"  ", nil},              // whitespace-only query is not empty
	}
	for _, tc := range cases {
		got := txIDs(FilterTransactions(txs, tc.query, AllCategories))
		if !equalIDs(got, tc.want) {
			t.Fatalf("query %q = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFilterTransactionsByCategory(t *testing.T) {
	txs := sampleTransactions()

	got := txIDs(FilterTransactions(txs, "", "Food"))
	if !equalIDs(got, []int64{1, 3}) {
		t.Fatalf("category Food = %v", got)
	}

	// Category filter is an exact match, not containment.
	if got := FilterTransactions(txs, "", "Foo"); len(got) != 0 {
		t.Fatalf("category Foo matched %v", txIDs(got))
	}

	// Query and category combine with AND.
	got = txIDs(FilterTransactions(txs, "45.99", "Health"))
	if !equalIDs(got, []int64{4}) {
		t.Fatalf("combined filter = %v", got)
	}
}

func TestSortTransactions(t *testing.T) {
	cases := []struct {
		order TransactionOrder
		want  []int64
	}{
		{NewestFirst, []int64{3, 1, 2, 4}},
		{OldestFirst, []int64{4, 2, 1, 3}},
		{HighestAmount, []int64{2, 1, 4, 3}}, // 1 and 4 tie at 45.99, keep encounter order
		{LowestAmount, []int64{3, 1, 4, 2}},
	}
	for _, tc := range cases {
		txs := sampleTransactions()
		SortTransactions(txs, tc.order)
		if got := txIDs(txs); !equalIDs(got, tc.want) {
			t.Fatalf("order %d = %v, want %v", tc.order, got, tc.want)
		}
	}
}

func TestGroupByCategoryFirstSeenOrder(t *testing.T) {
	txs := sampleTransactions()
	got := GroupByCategory(txs)

	want := []CategoryAmount{
		{Name: "Food", Amount: Money{Cents: 5849}},
		{Name: "Bills", Amount: Money{Cents: 12000}},
		{Name: "Health", Amount: Money{Cents: 4599}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
