package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"finman/internal/amqp"
	"finman/internal/storage"
	"finman/internal/worker"
)

func newTestDeps(t *testing.T) (*storage.SQLiteRepository, *worker.StoreWorker) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "finman.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	w := worker.NewStoreWorker()
	t.Cleanup(func() {
		w.Stop()
		repo.Close()
	})
	return repo, w
}

// alertRecorder captures published budget alerts instead of talking to
// RabbitMQ.
type alertRecorder struct {
	mu   sync.Mutex
	msgs []*amqp.BudgetAlertMessage
	err  error
}

func (r *alertRecorder) PublishBudgetAlert(_ context.Context, msg *amqp.BudgetAlertMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *alertRecorder) published() []*amqp.BudgetAlertMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*amqp.BudgetAlertMessage(nil), r.msgs...)
}
