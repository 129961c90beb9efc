package amqp

import (
	"encoding/json"
	"time"
)

// BudgetAlertMessage is published when a budget crosses its alert threshold
// after an expense write. It carries the evaluated state so a consumer does
// not need store access to report it.
type BudgetAlertMessage struct {
	UserEmail      string    `json:"user_email"`
	Category       string    `json:"category"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	PercentSpent   float64   `json:"percent_spent"`
	RemainingCents int64     `json:"remaining_cents"`
	Exceeded       bool      `json:"exceeded"`
	Timestamp      time.Time `json:"timestamp"`
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
