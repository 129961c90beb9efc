// Package services orchestrates ledger operations across the sqlite store,
// the store worker, and the AMQP alert channel. All user-facing validation
// happens here, before anything reaches the store.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"unicode"

	"finman/internal/core"
	"finman/internal/storage"
	"finman/internal/worker"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidName      = errors.New("name must be between 3 and 10 characters")
	ErrWeakPassword     = errors.New("password must be 6-12 characters with an uppercase letter, a lowercase letter, and a digit")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("an account with this email already exists")

	// ErrInvalidCredentials deliberately covers both a wrong password and an
	// unknown account, so login failures never reveal whether an email is
	// registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Categories every new account starts with.
var (
	defaultExpenseCategories = []string{"Food", "Transportation", "Bills", "Entertainment", "Shopping", "Health", "Other"}
	defaultIncomeCategories  = []string{"Salary", "Scholarship", "Freelance", "Investment", "Gift", "Other"}
)

// AuthService handles account signup, login, and profile changes. Store reads
// go through the store worker so credential checks never block an interactive
// caller's thread.
type AuthService struct {
	storage *storage.SQLiteRepository
	worker  *worker.StoreWorker
}

func NewAuthService(storage *storage.SQLiteRepository, w *worker.StoreWorker) *AuthService {
	return &AuthService{storage: storage, worker: w}
}

// SignUp validates the registration form, creates the account, and seeds the
// default categories.
func (s *AuthService) SignUp(ctx context.Context, firstName, lastName, email, password, confirm string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if !validName(firstName) || !validName(lastName) {
		return ErrInvalidName
	}
	if !validPassword(password) {
		return ErrWeakPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	exists, err := worker.Do(ctx, s.worker, func(ctx context.Context) (bool, error) {
		return s.storage.EmailExists(ctx, email)
	})
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	u := core.User{Email: email, FirstName: firstName, LastName: lastName}
	// One transaction: an account never exists without its starter categories.
	if err := s.storage.CreateAccount(ctx, u, hashPassword(password), defaultExpenseCategories, defaultIncomeCategories); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "Account created", "user_email", email)
	return nil
}

// Login verifies the credentials and returns the account. Wrong password and
// unknown email both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*core.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	ok, err := worker.Do(ctx, s.worker, func(ctx context.Context) (bool, error) {
		return s.storage.CredentialsMatch(ctx, email, hashPassword(password))
	})
	if err != nil {
		return nil, fmt.Errorf("check credentials: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	u, err := worker.Do(ctx, s.worker, func(ctx context.Context) (*core.User, error) {
		return s.storage.GetUser(ctx, email)
	})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile changes the account's display name.
func (s *AuthService) UpdateProfile(ctx context.Context, email, firstName, lastName string) error {
	if !validName(firstName) || !validName(lastName) {
		return ErrInvalidName
	}
	if err := s.storage.UpdateUserProfile(ctx, email, firstName, lastName); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ChangePassword re-verifies the old password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword, confirm string) error {
	ok, err := worker.Do(ctx, s.worker, func(ctx context.Context) (bool, error) {
		return s.storage.CredentialsMatch(ctx, email, hashPassword(oldPassword))
	})
	if err != nil {
		return fmt.Errorf("check credentials: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if !validPassword(newPassword) {
		return ErrWeakPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if err := s.storage.UpdateUserPassword(ctx, email, hashPassword(newPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	slog.InfoContext(ctx, "Password changed", "user_email", email)
	return nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func validName(name string) bool {
	return len(name) >= 3 && len(name) <= 10
}

func validPassword(password string) bool {
	if len(password) < 6 || len(password) > 12 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
