package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finman/internal/amqp"
	"finman/internal/core"
	"finman/internal/storage"
	"finman/internal/worker"
)

// AlertPublisher is the outbound port for budget-alert events. *amqp.Client
// satisfies it; tests plug in a recorder.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// TransactionService orchestrates transaction writes, list projections, and
// the post-write budget alert check.
type TransactionService struct {
	storage *storage.SQLiteRepository
	worker  *worker.StoreWorker
	alerts  AlertPublisher
}

func NewTransactionService(storage *storage.SQLiteRepository, w *worker.StoreWorker, alerts AlertPublisher) *TransactionService {
	return &TransactionService{storage: storage, worker: w, alerts: alerts}
}

// Add validates and stores a transaction. For expenses the category's budget
// for the transaction's month is re-evaluated afterwards; crossing the alert
// threshold publishes an event, and a publish failure never fails the write.
func (s *TransactionService) Add(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}

	id, err := s.storage.AddTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"transaction_id", id,
		"user_email", t.UserEmail,
		"category", t.Category,
		"kind", string(t.Kind),
		"amount_cents", t.Amount.Cents)

	if t.Kind == core.Expense {
		s.checkBudgetAlert(ctx, t)
	}
	return id, nil
}

// Update rewrites an existing transaction's editable fields. t.ID selects the
// row; kind is immutable.
func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	if err := s.storage.UpdateTransaction(ctx, t.ID, t.Amount, t.Date, t.Category, t.Description); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if t.Kind == core.Expense {
		s.checkBudgetAlert(ctx, t)
	}
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List loads a user's transactions of one kind and applies the text/category
// filter and the requested ordering.
func (s *TransactionService) List(ctx context.Context, userEmail string, kind core.Kind, query, category string, order core.TransactionOrder) ([]core.Transaction, error) {
	txs, err := worker.Do(ctx, s.worker, func(ctx context.Context) ([]core.Transaction, error) {
		return s.storage.TransactionsByKind(ctx, userEmail, kind)
	})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	filtered := core.FilterTransactions(txs, query, category)
	core.SortTransactions(filtered, order)
	return filtered, nil
}

// Summary builds the dashboard view for a reporting period anchored at now.
func (s *TransactionService) Summary(ctx context.Context, userEmail string, period core.Period, now time.Time) (core.PeriodSummary, error) {
	start, end := period.Range(now)

	type totals struct {
		income   core.Money
		expenses core.Money
		byCat    []core.CategoryAmount
	}

	t, err := worker.Do(ctx, s.worker, func(ctx context.Context) (totals, error) {
		income, err := s.storage.TotalAmount(ctx, userEmail, core.Income, start, end)
		if err != nil {
			return totals{}, err
		}
		expenses, err := s.storage.TotalAmount(ctx, userEmail, core.Expense, start, end)
		if err != nil {
			return totals{}, err
		}
		txs, err := s.storage.TransactionsByPeriod(ctx, userEmail, core.Expense, start, end)
		if err != nil {
			return totals{}, err
		}
		return totals{income: income, expenses: expenses, byCat: core.GroupByCategory(txs)}, nil
	})
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("build period summary: %w", err)
	}

	return core.PeriodSummary{
		Start:         start,
		End:           end,
		TotalIncome:   t.income,
		TotalExpenses: t.expenses,
		Balance:       core.Money{Cents: t.income.Cents - t.expenses.Cents},
		ByCategory:    t.byCat,
	}, nil
}

// checkBudgetAlert evaluates the budget covering the expense's category and
// month. Failures here are logged, never returned: the write has already
// succeeded.
func (s *TransactionService) checkBudgetAlert(ctx context.Context, t core.Transaction) {
	month := int(t.Date.Month())
	year := t.Date.Year()

	b, err := s.storage.GetBudget(ctx, t.UserEmail, t.Category, month, year)
	if err != nil {
		slog.ErrorContext(ctx, "Budget lookup failed after expense write",
			"user_email", t.UserEmail, "category", t.Category, "error", err)
		return
	}
	if b == nil {
		return // no budget configured for this category and month
	}

	spent, err := s.storage.SpentInCategory(ctx, t.UserEmail, t.Category, month, year)
	if err != nil {
		slog.ErrorContext(ctx, "Spend aggregation failed after expense write",
			"user_email", t.UserEmail, "category", t.Category, "error", err)
		return
	}

	eval := core.Evaluate(*b, spent)
	if eval.Severity == core.SeverityOK {
		return
	}

	if s.alerts == nil {
		slog.WarnContext(ctx, "Alert publisher not available, skipping budget alert",
			"user_email", t.UserEmail, "category", t.Category)
		return
	}

	msg := &amqp.BudgetAlertMessage{
		UserEmail:      t.UserEmail,
		Category:       t.Category,
		Month:          month,
		Year:           year,
		PercentSpent:   eval.PercentSpent,
		RemainingCents: eval.Remaining.Cents,
		Exceeded:       eval.Exceeded,
		Timestamp:      time.Now(),
	}
	if err := s.alerts.PublishBudgetAlert(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"user_email", t.UserEmail, "category", t.Category, "error", err)
	}
}
