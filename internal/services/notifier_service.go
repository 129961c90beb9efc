package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finman/internal/amqp"
	"finman/internal/core"
	"finman/internal/export"
	"finman/internal/storage"
)

// NotifierService turns consumed budget-alert events into report rows and
// runs the periodic budget re-check the daemon schedules.
type NotifierService struct {
	storage *storage.SQLiteRepository
	budgets *BudgetService
	writer  export.AlertWriter
}

func NewNotifierService(storage *storage.SQLiteRepository, budgets *BudgetService, writer export.AlertWriter) *NotifierService {
	return &NotifierService{storage: storage, budgets: budgets, writer: writer}
}

// HandleAlert appends one consumed alert to the report destination.
func (s *NotifierService) HandleAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	row := export.AlertRow{
		When:         msg.Timestamp,
		UserEmail:    msg.UserEmail,
		Category:     msg.Category,
		Month:        msg.Month,
		Year:         msg.Year,
		PercentSpent: msg.PercentSpent,
		Remaining:    core.Money{Cents: msg.RemainingCents},
		Exceeded:     msg.Exceeded,
	}

	ref, err := s.writer.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append alert row: %w", err)
	}

	slog.InfoContext(ctx, "Budget alert recorded",
		"user_email", msg.UserEmail,
		"category", msg.Category,
		"percent_spent", msg.PercentSpent,
		"row_ref", ref)
	return nil
}

// RecheckBudgets walks every account and logs how many of its current-month
// budgets are exceeded. Per-user failures are logged and skipped so one bad
// account never stops the sweep.
func (s *NotifierService) RecheckBudgets(ctx context.Context, now time.Time) error {
	emails, err := s.storage.Emails(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	for _, email := range emails {
		count, err := s.budgets.OverBudgetCount(ctx, email, now)
		if err != nil {
			slog.ErrorContext(ctx, "Budget re-check failed", "user_email", email, "error", err)
			continue
		}
		if count > 0 {
			slog.WarnContext(ctx, "Budgets exceeded",
				"user_email", email,
				"count", count,
				"month", int(now.Month()),
				"year", now.Year())
		}
	}

	slog.InfoContext(ctx, "Budget re-check complete", "accounts", len(emails))
	return nil
}
