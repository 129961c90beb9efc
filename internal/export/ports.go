// Package export defines the outbound report ports the notifier daemon
// writes budget alerts through.
package export

import (
	"context"
	"time"

	"finman/internal/core"
)

// AlertRow is one budget-alert report entry.
type AlertRow struct {
	When         time.Time
	UserEmail    string
	Category     string
	Month        int
	Year         int
	PercentSpent float64
	Remaining    core.Money
	Exceeded     bool
}

// AlertWriter appends alert rows to a report destination.
type AlertWriter interface {
	Append(ctx context.Context, row AlertRow) (rowRef string, err error)
}
