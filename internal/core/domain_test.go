package core

import (
	"testing"
	"time"
)

func TestKindValid(t *testing.T) {
	if !Income.Valid() || !Expense.Valid() {
		t.Fatal("income and expense must be valid kinds")
	}
	if Kind("transfer").Valid() || Kind("").Valid() {
		t.Fatal("only income and expense are valid kinds")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		UserEmail: "a@b.c",
		Amount:    Money{Cents: 100},
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Category:  "Food",
		Kind:      Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amounts are allowed; negatives are not.
	zero := good
	zero.Amount = Money{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}

	bads := []Transaction{
		{UserEmail: "a@b.c", Amount: Money{Cents: -1}, Date: good.Date, Category: "Food", Kind: Expense},
		{UserEmail: "a@b.c", Amount: Money{Cents: 1}, Category: "Food", Kind: Expense}, // zero date
		{UserEmail: "a@b.c", Amount: Money{Cents: 1}, Date: good.Date, Category: " ", Kind: Expense},
		{UserEmail: "a@b.c", Amount: Money{Cents: 1}, Date: good.Date, Category: "Food", Kind: "loan"},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace"}
	if got := u.FullName(); got != "Ada Lovelace" {
		t.Fatalf("FullName() = %q", got)
	}
}
