// Package storage implements the ledger store on sqlite. All amounts are
// stored as integer cents and all instants as unix milliseconds.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finman/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by updates and deletes that matched no row.
var ErrNotFound = errors.New("storage: not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Users

func (r *SQLiteRepository) AddUser(ctx context.Context, u core.User, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, password) VALUES (?, ?, ?, ?)`,
		u.Email, u.FirstName, u.LastName, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateAccount inserts the user and its starter categories in a single
// transaction; a failure anywhere leaves no trace of the account.
func (r *SQLiteRepository) CreateAccount(ctx context.Context, u core.User, passwordHash string, expenseCategories, incomeCategories []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, password) VALUES (?, ?, ?, ?)`,
		u.Email, u.FirstName, u.LastName, passwordHash); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	for _, name := range expenseCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (user_email, name, kind) VALUES (?, ?, ?)`,
			u.Email, name, string(core.Expense)); err != nil {
			return fmt.Errorf("seed expense category %q: %w", name, err)
		}
	}
	for _, name := range incomeCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (user_email, name, kind) VALUES (?, ?, ?)`,
			u.Email, name, string(core.Income)); err != nil {
			return fmt.Errorf("seed income category %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

// CredentialsMatch reports whether a user exists with the given email and
// password hash. Wrong password and unknown email are indistinguishable.
func (r *SQLiteRepository) CredentialsMatch(ctx context.Context, email, passwordHash string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND password = ?`,
		email, passwordHash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check credentials: %w", err)
	}
	return n > 0, nil
}

// GetUser returns nil when no user has the given email.
func (r *SQLiteRepository) GetUser(ctx context.Context, email string) (*core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT email, first_name, last_name FROM users WHERE email = ?`,
		email).Scan(&u.Email, &u.FirstName, &u.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Emails returns every registered account email, alphabetical.
func (r *SQLiteRepository) Emails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM users ORDER BY email ASC`)
	if err != nil {
		return nil, fmt.Errorf("query user emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan user email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user emails: %w", err)
	}
	return emails, nil
}

func (r *SQLiteRepository) UpdateUserProfile(ctx context.Context, email, firstName, lastName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ? WHERE email = ?`,
		firstName, lastName, email)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return rowsAffected(res)
}

func (r *SQLiteRepository) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE email = ?`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return rowsAffected(res)
}

// Transactions

func (r *SQLiteRepository) AddTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_email, amount_cents, date, category, description, kind)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserEmail, t.Amount.Cents, t.Date.UnixMilli(), t.Category, t.Description, string(t.Kind))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction insert id: %w", err)
	}
	return id, nil
}

// TransactionsByKind returns a user's transactions of one kind, newest first.
func (r *SQLiteRepository) TransactionsByKind(ctx context.Context, userEmail string, kind core.Kind) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_email, amount_cents, date, category, description, kind
		 FROM transactions WHERE user_email = ? AND kind = ? ORDER BY date DESC, id DESC`,
		userEmail, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query transactions by kind: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// TransactionsByPeriod returns transactions whose date falls inside
// [start, end], both inclusive.
func (r *SQLiteRepository) TransactionsByPeriod(ctx context.Context, userEmail string, kind core.Kind, start, end time.Time) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_email, amount_cents, date, category, description, kind
		 FROM transactions
		 WHERE user_email = ? AND kind = ? AND date >= ? AND date <= ?
		 ORDER BY date DESC, id DESC`,
		userEmail, string(kind), start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query transactions by period: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id int64, amount core.Money, date time.Time, category, description string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET amount_cents = ?, date = ?, category = ?, description = ? WHERE id = ?`,
		amount.Cents, date.UnixMilli(), category, description, id)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return rowsAffected(res)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return rowsAffected(res)
}

// TotalAmount sums a user's transactions of one kind inside [start, end].
// Zero when nothing matches.
func (r *SQLiteRepository) TotalAmount(ctx context.Context, userEmail string, kind core.Kind, start, end time.Time) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE user_email = ? AND kind = ? AND date >= ? AND date <= ?`,
		userEmail, string(kind), start.UnixMilli(), end.UnixMilli()).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum transactions: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// SpentInCategory sums a user's expenses in one category over a calendar
// month. Income rows never count.
func (r *SQLiteRepository) SpentInCategory(ctx context.Context, userEmail, category string, month, year int) (core.Money, error) {
	start, end := core.MonthBounds(month, year, time.Local)
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		 WHERE user_email = ? AND category = ? AND kind = ? AND date >= ? AND date <= ?`,
		userEmail, category, string(core.Expense), start.UnixMilli(), end.UnixMilli()).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum category spend: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// Categories

func (r *SQLiteRepository) AddCategory(ctx context.Context, userEmail, name string, kind core.Kind) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (user_email, name, kind) VALUES (?, ?, ?)`,
		userEmail, name, string(kind))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Categories returns a user's category names for one kind, alphabetical.
func (r *SQLiteRepository) Categories(ctx context.Context, userEmail string, kind core.Kind) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE user_email = ? AND kind = ? ORDER BY name ASC`,
		userEmail, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return names, nil
}

// DeleteCategory removes the category row only. Transactions and budgets
// referencing the name keep it.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userEmail, name string, kind core.Kind) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_email = ? AND name = ? AND kind = ?`,
		userEmail, name, string(kind))
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return rowsAffected(res)
}

// Budgets

// AddBudget inserts a budget row. Uniqueness of (user, category, month, year)
// is the caller's pre-check, not enforced here.
func (r *SQLiteRepository) AddBudget(ctx context.Context, b core.Budget) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_email, category, limit_cents, alert_threshold, month, year)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserEmail, b.Category, b.Limit.Cents, b.AlertThreshold, b.Month, b.Year)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget insert id: %w", err)
	}
	return id, nil
}

// GetBudget returns nil when no budget is configured for the tuple.
func (r *SQLiteRepository) GetBudget(ctx context.Context, userEmail, category string, month, year int) (*core.Budget, error) {
	var b core.Budget
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_email, category, limit_cents, alert_threshold, month, year
		 FROM budgets WHERE user_email = ? AND category = ? AND month = ? AND year = ?`,
		userEmail, category, month, year).
		Scan(&b.ID, &b.UserEmail, &b.Category, &b.Limit.Cents, &b.AlertThreshold, &b.Month, &b.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, id int64, limit core.Money, alertThreshold int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET limit_cents = ?, alert_threshold = ? WHERE id = ?`,
		limit.Cents, alertThreshold, id)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return rowsAffected(res)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return rowsAffected(res)
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		var (
			t    core.Transaction
			ms   int64
			kind string
		)
		if err := rows.Scan(&t.ID, &t.UserEmail, &t.Amount.Cents, &ms, &t.Category, &t.Description, &kind); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date = time.UnixMilli(ms)
		t.Kind = core.Kind(kind)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
