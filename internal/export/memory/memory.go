// Package memory is an in-process AlertWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finman/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []export.AlertRow
}

func New() *Store {
	return &Store{}
}

var _ export.AlertWriter = (*Store)(nil)

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row export.AlertRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []export.AlertRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]export.AlertRow(nil), s.rows...)
}
