package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// AllCategories is the category filter value that matches every transaction.
const AllCategories = "All"

type (
	// Kind distinguishes income from expense transactions and categories.
	Kind string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          int64
		UserEmail   string
		Amount      Money
		Date        time.Time // millisecond precision
		Category    string
		Description string
		Kind        Kind
	}

	Category struct {
		ID        int64
		UserEmail string
		Name      string
		Kind      Kind
	}

	Budget struct {
		ID             int64
		UserEmail      string
		Category       string
		Limit          Money
		AlertThreshold int // percent, 0-100
		Month          int // 1-12
		Year           int
	}

	User struct {
		Email     string
		FirstName string
		LastName  string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrEmptyCategory    = errors.New("empty category")
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (t Transaction) Validate() error {
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// MonthName returns the short display name of the budget's month.
func (b Budget) MonthName() string {
	return time.Month(b.Month).String()[:3]
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
