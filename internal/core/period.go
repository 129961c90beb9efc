package core

import (
	"fmt"
	"time"
)

// Period selects a named reporting window relative to a reference instant.
type Period int

const (
	ThisMonth Period = iota
	LastMonth
	Last3Months
	Last6Months
	ThisYear
)

func (p Period) String() string {
	switch p {
	case ThisMonth:
		return "this-month"
	case LastMonth:
		return "last-month"
	case Last3Months:
		return "last-3-months"
	case Last6Months:
		return "last-6-months"
	case ThisYear:
		return "this-year"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// Range maps the selector and a reference instant "now" to the reporting
// interval [start, end]. For every selector except LastMonth the interval is
// open-ended at "now"; LastMonth instead closes at the final millisecond of
// that month, independent of now's day-of-month.
//
// An unknown selector is a caller contract violation and panics.
func (p Period) Range(now time.Time) (start, end time.Time) {
	loc := now.Location()
	switch p {
	case ThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), now
	case LastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, loc)
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
		return start, end
	case Last3Months:
		return time.Date(now.Year(), now.Month()-3, 1, 0, 0, 0, 0, loc), now
	case Last6Months:
		return time.Date(now.Year(), now.Month()-6, 1, 0, 0, 0, 0, loc), now
	case ThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now
	}
	panic("core: unknown period selector " + p.String())
}

// MonthBounds returns the inclusive bounds of a calendar month, from its
// first instant to its last millisecond. Budget spend queries are bounded by
// this interval.
func MonthBounds(month, year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end = time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return start, end
}
