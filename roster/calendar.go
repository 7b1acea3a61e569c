package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a plain calendar date. It is comparable, so it can key maps, and
// all engine time arithmetic happens at day granularity.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }

func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

func (d Date) AddDays(n int) Date {
	t := d.Time().AddDate(0, 0, n)
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// =============================================================================
// CALENDAR EXPANDER
// =============================================================================

// EndOfMonth returns the last day of a month, computed as the first day of
// the next month minus one day so December rolls into January correctly.
func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MonthDays expands (year, month) into the ordered sequence of dates from
// day 1 through the last day of the month. Invalid month/year is a caller
// contract violation and produces an undefined date sequence.
func MonthDays(year int, month time.Month) []Date {
	last := EndOfMonth(year, month)
	days := make([]Date, 0, last.Day)
	for day := 1; day <= last.Day; day++ {
		days = append(days, NewDate(year, month, day))
	}
	return days
}

// =============================================================================
// FESTIVITY OVERRIDES
// =============================================================================

// FestivityOverrides is a per-date working-day flag supplied externally.
// Dates not present are ordinary days. A false entry marks the date as
// non-working: generation schedules nothing, and statistics count any
// shifts that do exist there as festive.
type FestivityOverrides map[Date]bool

// WorkingDay reports whether a date is assignable during generation.
func (f FestivityOverrides) WorkingDay(d Date) bool {
	working, ok := f[d]
	if !ok {
		return true
	}
	return working
}

// Festive reports whether a date counts as a non-working festivity for
// statistics. Working festivities and ordinary days are both "normal".
func (f FestivityOverrides) Festive(d Date) bool {
	working, ok := f[d]
	return ok && !working
}
