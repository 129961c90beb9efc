package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finman/internal/core"
	"finman/internal/storage"
	"finman/internal/worker"
)

var (
	ErrInvalidLimit    = errors.New("budget limit must be a positive amount")
	ErrDuplicateBudget = errors.New("a budget for this category and month already exists")
)

// A blank alert threshold means the user accepted the default.
const defaultAlertThreshold = 50

// BudgetService manages monthly category budgets and builds the budget
// overview projection.
type BudgetService struct {
	storage *storage.SQLiteRepository
	worker  *worker.StoreWorker
}

func NewBudgetService(storage *storage.SQLiteRepository, w *worker.StoreWorker) *BudgetService {
	return &BudgetService{storage: storage, worker: w}
}

// SetBudget creates a budget from form input. limitInput must parse to a
// positive amount; a blank thresholdInput falls back to the default.
// (user, category, month, year) uniqueness is enforced here, before the
// insert.
func (s *BudgetService) SetBudget(ctx context.Context, userEmail, category, limitInput, thresholdInput string, month, year int) (int64, error) {
	limit, threshold, err := parseBudgetInput(limitInput, thresholdInput)
	if err != nil {
		return 0, err
	}

	b := core.Budget{
		UserEmail:      userEmail,
		Category:       category,
		Limit:          limit,
		AlertThreshold: threshold,
		Month:          month,
		Year:           year,
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("validate budget: %w", err)
	}

	existing, err := worker.Do(ctx, s.worker, func(ctx context.Context) (*core.Budget, error) {
		return s.storage.GetBudget(ctx, userEmail, category, month, year)
	})
	if err != nil {
		return 0, fmt.Errorf("check existing budget: %w", err)
	}
	if existing != nil {
		return 0, ErrDuplicateBudget
	}

	id, err := s.storage.AddBudget(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("save budget: %w", err)
	}
	return id, nil
}

// UpdateBudget rewrites an existing budget's limit and threshold.
func (s *BudgetService) UpdateBudget(ctx context.Context, id int64, limitInput, thresholdInput string) error {
	limit, threshold, err := parseBudgetInput(limitInput, thresholdInput)
	if err != nil {
		return err
	}
	if err := s.storage.UpdateBudget(ctx, id, limit, threshold); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id int64) error {
	if err := s.storage.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// Overview builds the per-category budget view for one month. Expense
// categories without a configured budget for (month, year) are absent from
// the result, never present with empty values.
func (s *BudgetService) Overview(ctx context.Context, userEmail string, month, year int, order core.BudgetOrder) ([]core.BudgetRow, error) {
	rows, err := worker.Do(ctx, s.worker, func(ctx context.Context) ([]core.BudgetRow, error) {
		categories, err := s.storage.Categories(ctx, userEmail, core.Expense)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}

		rows := make([]core.BudgetRow, 0, len(categories))
		for _, category := range categories {
			b, err := s.storage.GetBudget(ctx, userEmail, category, month, year)
			if err != nil {
				return nil, fmt.Errorf("load budget for %s: %w", category, err)
			}
			if b == nil {
				continue
			}
			spent, err := s.storage.SpentInCategory(ctx, userEmail, category, month, year)
			if err != nil {
				return nil, fmt.Errorf("aggregate spend for %s: %w", category, err)
			}
			rows = append(rows, core.BudgetRow{
				Budget: *b,
				Spent:  spent,
				Eval:   core.Evaluate(*b, spent),
			})
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	core.SortBudgetRows(rows, order)
	return rows, nil
}

// OverBudgetCount reports how many of the user's budgets for now's month are
// exceeded.
func (s *BudgetService) OverBudgetCount(ctx context.Context, userEmail string, now time.Time) (int, error) {
	rows, err := s.Overview(ctx, userEmail, int(now.Month()), now.Year(), core.BudgetByCategoryAZ)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, row := range rows {
		if row.Eval.Exceeded {
			count++
		}
	}
	return count, nil
}

func parseBudgetInput(limitInput, thresholdInput string) (core.Money, int, error) {
	limit, err := core.ParseAmount(limitInput)
	if err != nil || limit.Cents <= 0 {
		return core.Money{}, 0, ErrInvalidLimit
	}

	threshold := defaultAlertThreshold
	if strings.TrimSpace(thresholdInput) != "" {
		threshold, err = strconv.Atoi(strings.TrimSpace(thresholdInput))
		if err != nil || threshold < 0 || threshold > 100 {
			return core.Money{}, 0, core.ErrInvalidThreshold
		}
	}
	return limit, threshold, nil
}
