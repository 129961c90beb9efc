package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm, ss, ms int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, ms*int(time.Millisecond), time.UTC)
}

func TestPeriodRange(t *testing.T) {
	now := date(2025, time.March, 15, 10, 30, 0, 0)

	cases := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{ThisMonth, date(2025, time.March, 1, 0, 0, 0, 0), now},
		{LastMonth, date(2025, time.February, 1, 0, 0, 0, 0), date(2025, time.February, 28, 23, 59, 59, 999)},
		{Last3Months, date(2024, time.December, 1, 0, 0, 0, 0), now},
		{Last6Months, date(2024, time.September, 1, 0, 0, 0, 0), now},
		{ThisYear, date(2025, time.January, 1, 0, 0, 0, 0), now},
	}
	for _, tc := range cases {
		t.Run(tc.period.String(), func(t *testing.T) {
			start, end := tc.period.Range(now)
			if !start.Equal(tc.start) {
				t.Fatalf("start = %v, want %v", start, tc.start)
			}
			if !end.Equal(tc.end) {
				t.Fatalf("end = %v, want %v", end, tc.end)
			}
		})
	}
}

func TestPeriodRangeLastMonthIndependentOfDay(t *testing.T) {
	// The last-month window must not depend on now's day-of-month.
	for _, day := range []int{1, 15, 31} {
		now := date(2025, time.March, day, 8, 0, 0, 0)
		start, end := LastMonth.Range(now)
		if !start.Equal(date(2025, time.February, 1, 0, 0, 0, 0)) {
			t.Fatalf("day %d: start = %v", day, start)
		}
		if !end.Equal(date(2025, time.February, 28, 23, 59, 59, 999)) {
			t.Fatalf("day %d: end = %v", day, end)
		}
	}
}

func TestPeriodRangeLastMonthLeapYear(t *testing.T) {
	now := date(2024, time.March, 10, 0, 0, 0, 0)
	_, end := LastMonth.Range(now)
	if !end.Equal(date(2024, time.February, 29, 23, 59, 59, 999)) {
		t.Fatalf("end = %v, want Feb 29 23:59:59.999", end)
	}
}

func TestPeriodRangeCrossesYearBoundary(t *testing.T) {
	now := date(2025, time.January, 20, 12, 0, 0, 0)

	start, end := LastMonth.Range(now)
	if !start.Equal(date(2024, time.December, 1, 0, 0, 0, 0)) {
		t.Fatalf("last-month start = %v", start)
	}
	if !end.Equal(date(2024, time.December, 31, 23, 59, 59, 999)) {
		t.Fatalf("last-month end = %v", end)
	}

	start, _ = Last6Months.Range(now)
	if !start.Equal(date(2024, time.July, 1, 0, 0, 0, 0)) {
		t.Fatalf("last-6-months start = %v", start)
	}
}

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		month, year int
		start, end  time.Time
	}{
		{2, 2025, date(2025, time.February, 1, 0, 0, 0, 0), date(2025, time.February, 28, 23, 59, 59, 999)},
		{2, 2024, date(2024, time.February, 1, 0, 0, 0, 0), date(2024, time.February, 29, 23, 59, 59, 999)},
		{12, 2025, date(2025, time.December, 1, 0, 0, 0, 0), date(2025, time.December, 31, 23, 59, 59, 999)},
	}
	for _, tc := range cases {
		start, end := MonthBounds(tc.month, tc.year, time.UTC)
		if !start.Equal(tc.start) || !end.Equal(tc.end) {
			t.Fatalf("MonthBounds(%d, %d) = [%v, %v], want [%v, %v]",
				tc.month, tc.year, start, end, tc.start, tc.end)
		}
	}
}

func TestPeriodRangeUnknownSelectorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown selector")
		}
	}()
	Period(99).Range(time.Now())
}
