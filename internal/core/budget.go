package core

// Severity is the progress-indicator tier for a budget row.
type Severity int

const (
	SeverityOK       Severity = iota // below the alert threshold
	SeverityAlert                    // at or past the threshold, under 100%
	SeverityExceeded                 // at or past 100%
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityAlert:
		return "alert"
	case SeverityExceeded:
		return "exceeded"
	}
	return "unknown"
}

// Evaluation carries the derived display fields for one budget against the
// amount spent in its category and month.
type Evaluation struct {
	PercentSpent float64 // unclamped; exceeds 100 when over budget
	Remaining    Money   // negative when over budget
	Alert        bool    // PercentSpent >= AlertThreshold (inclusive)
	Exceeded     bool    // PercentSpent >= 100, implies Alert for thresholds <= 100
	Severity     Severity
}

// PercentSpent reports spent as a percentage of the limit. A zero limit
// yields 0 rather than dividing by zero.
func (b Budget) PercentSpent(spent Money) float64 {
	if b.Limit.Cents == 0 {
		return 0
	}
	return float64(spent.Cents) / float64(b.Limit.Cents) * 100
}

// Remaining reports the limit minus spent. May be negative.
func (b Budget) Remaining(spent Money) Money {
	return Money{Cents: b.Limit.Cents - spent.Cents}
}

// ShouldAlert reports whether spending has reached the alert threshold.
func (b Budget) ShouldAlert(spent Money) bool {
	return b.PercentSpent(spent) >= float64(b.AlertThreshold)
}

// Evaluate is a total function over a budget and a spent amount; it has no
// error path by design (see PercentSpent for the zero-limit case).
func Evaluate(b Budget, spent Money) Evaluation {
	pct := b.PercentSpent(spent)
	ev := Evaluation{
		PercentSpent: pct,
		Remaining:    b.Remaining(spent),
		Alert:        pct >= float64(b.AlertThreshold),
		Exceeded:     pct >= 100,
	}
	switch {
	case ev.Exceeded:
		ev.Severity = SeverityExceeded
	case ev.Alert:
		ev.Severity = SeverityAlert
	default:
		ev.Severity = SeverityOK
	}
	return ev
}
