/*
Package roster implements the core monthly shift scheduling engine.

PURPOSE:
  This package contains the pure scheduling algorithms: expanding a month
  into its calendar days, indexing absences, tracking per-employee hour
  budgets, ranking candidates, generating a full month's roster, repairing
  an existing roster, and aggregating statistics.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: snapshot of an employee with target/accumulated hours and
    per-shift preferences
  - ShiftType: a named daily work period (Morning/Afternoon/Night) with an
    externally configured duration and staffing count
  - Assignment: the roster for one month, date -> shift -> assigned records
  - Warning: a non-fatal staffing shortfall reported by generation

DESIGN PRINCIPLES:
  1. Purity: nothing in this package performs I/O; stores are consumed as
     snapshots and results are returned as values
  2. Precision: hour arithmetic uses decimal.Decimal via the Hours type
  3. Determinism: all orderings are stable so runs are reproducible

SEE ALSO:
  - ledger.go: per-employee hour accounting
  - generator.go: full-month roster generation
  - repairer.go: two-pass in-place roster repair
*/
package roster

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Quantity of work time
// =============================================================================

// Hours is a quantity of worked or budgeted hours. Values are integral in
// practice (durations are configured as whole hours) but decimal arithmetic
// keeps ledger math exact everywhere.
type Hours struct {
	Value decimal.Decimal
}

func HoursOf(n int) Hours {
	return Hours{Value: decimal.NewFromInt(int64(n))}
}

func ZeroHours() Hours { return Hours{Value: decimal.Zero} }

func (h Hours) Add(o Hours) Hours         { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours         { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) Neg() Hours                { return Hours{Value: h.Value.Neg()} }
func (h Hours) IsZero() bool              { return h.Value.IsZero() }
func (h Hours) IsNegative() bool          { return h.Value.IsNegative() }
func (h Hours) IsPositive() bool          { return h.Value.IsPositive() }
func (h Hours) Equal(o Hours) bool        { return h.Value.Equal(o.Value) }
func (h Hours) LessThan(o Hours) bool     { return h.Value.LessThan(o.Value) }
func (h Hours) GreaterThan(o Hours) bool  { return h.Value.GreaterThan(o.Value) }
func (h Hours) Int() int                  { return int(h.Value.IntPart()) }
func (h Hours) String() string            { return h.Value.String() }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// SHIFT TYPES - Closed set of daily work periods
// =============================================================================

type ShiftType string

const (
	ShiftMorning   ShiftType = "Morning"
	ShiftAfternoon ShiftType = "Afternoon"
	ShiftNight     ShiftType = "Night"
)

// ShiftTypes returns the shift types in their fixed declared order.
// Generation and repair iterate shifts in exactly this order.
func ShiftTypes() []ShiftType {
	return []ShiftType{ShiftMorning, ShiftAfternoon, ShiftNight}
}

// ShiftConfig carries the externally configured per-shift duration and
// staffing requirement. Both come from the settings store.
type ShiftConfig struct {
	// Durations maps shift type to its length in whole hours.
	Durations map[ShiftType]int

	// Staffing maps shift type to the number of employees required.
	Staffing map[ShiftType]int
}

// Duration returns the configured duration for a shift type, falling back
// to 8 hours for an unconfigured type.
func (c ShiftConfig) Duration(s ShiftType) int {
	if d, ok := c.Durations[s]; ok {
		return d
	}
	return 8
}

// Required returns the staffing requirement for a shift type (0 if unset).
func (c ShiftConfig) Required(s ShiftType) int {
	return c.Staffing[s]
}

// =============================================================================
// PREFERENCES
// =============================================================================

// Preference is an employee's weight for a shift type.
type Preference int

const (
	PreferenceAvoid   Preference = 0
	PreferenceNeutral Preference = 1
	PreferencePrefer  Preference = 2
)

// =============================================================================
// EMPLOYEE - Snapshot consumed by the engine
// =============================================================================

// Employee is a read-only snapshot supplied by the collaborator store.
// The engine never persists employee edits itself.
type Employee struct {
	ID   EmployeeID
	Name string

	// TargetHours is the monthly contractual hour budget.
	TargetHours int

	// AccumulatedHours is the carry-over surplus from prior completed
	// months, stored clamped to the computed positive surplus.
	AccumulatedHours int

	// Preferences maps shift type to weight. Missing entries mean neutral;
	// NormalizePreferences completes the map at load time.
	Preferences map[ShiftType]Preference
}

// PreferenceFor returns the employee's weight for a shift type, defaulting
// to neutral for unlisted types.
func (e Employee) PreferenceFor(s ShiftType) Preference {
	if p, ok := e.Preferences[s]; ok {
		return p
	}
	return PreferenceNeutral
}

// NormalizePreferences completes an employee's preference map against the
// full shift-type set, filling unlisted types with the neutral default.
// The input map is not modified.
func NormalizePreferences(prefs map[ShiftType]Preference) map[ShiftType]Preference {
	out := make(map[ShiftType]Preference, len(ShiftTypes()))
	for _, s := range ShiftTypes() {
		if p, ok := prefs[s]; ok {
			out[s] = p
		} else {
			out[s] = PreferenceNeutral
		}
	}
	return out
}

// =============================================================================
// SHIFT RECORD - One employee assigned to one shift on one date
// =============================================================================

// ShiftRecord is a single assignment. During generation records have no ID;
// the store assigns identity on insert. During repair the ID is stable and
// must be preserved across employee rewrites.
type ShiftRecord struct {
	ID         string
	Date       Date
	Shift      ShiftType
	EmployeeID EmployeeID
}

// Rewrite is a repair instruction for the store: point an existing shift
// record at a different employee while keeping the record identity.
type Rewrite struct {
	RecordID   string
	EmployeeID EmployeeID
}

// =============================================================================
// ASSIGNMENT - One month's roster
// =============================================================================

// Assignment is the roster for one month: for every calendar date, an
// ordered list of records per shift type. It is created by Generate,
// mutated in place by Repair, and consumed by Aggregate and the store.
type Assignment struct {
	Year  int
	Month time.Month

	days map[Date]map[ShiftType][]ShiftRecord
}

func NewAssignment(year int, month time.Month) *Assignment {
	return &Assignment{
		Year:  year,
		Month: month,
		days:  make(map[Date]map[ShiftType][]ShiftRecord),
	}
}

// RecordDay ensures a (possibly empty) entry exists for the date. Used for
// non-working festivity dates so the roster still covers the whole month.
func (a *Assignment) RecordDay(d Date) {
	if _, ok := a.days[d]; !ok {
		a.days[d] = make(map[ShiftType][]ShiftRecord)
	}
}

// Append adds a record to the end of its (date, shift) slot.
func (a *Assignment) Append(rec ShiftRecord) {
	a.RecordDay(rec.Date)
	a.days[rec.Date][rec.Shift] = append(a.days[rec.Date][rec.Shift], rec)
}

// SetSlot replaces the record list for a (date, shift) slot.
func (a *Assignment) SetSlot(d Date, s ShiftType, recs []ShiftRecord) {
	a.RecordDay(d)
	a.days[d][s] = recs
}

// Slot returns the ordered records for a (date, shift) slot.
func (a *Assignment) Slot(d Date, s ShiftType) []ShiftRecord {
	return a.days[d][s]
}

// HasDay reports whether the roster has an entry (even empty) for the date.
func (a *Assignment) HasDay(d Date) bool {
	_, ok := a.days[d]
	return ok
}

// Records flattens the roster into (date, shift, employee) order: dates
// ascending, shifts in declared order, slot order preserved.
func (a *Assignment) Records() []ShiftRecord {
	var out []ShiftRecord
	for _, d := range MonthDays(a.Year, a.Month) {
		shifts, ok := a.days[d]
		if !ok {
			continue
		}
		for _, s := range ShiftTypes() {
			out = append(out, shifts[s]...)
		}
	}
	return out
}

// AssignmentFromRecords rebuilds a month's Assignment from stored records,
// preserving record identity and slot order.
func AssignmentFromRecords(year int, month time.Month, records []ShiftRecord) *Assignment {
	a := NewAssignment(year, month)
	for _, rec := range records {
		a.Append(rec)
	}
	return a
}

// =============================================================================
// WARNINGS - Non-fatal staffing shortfalls
// =============================================================================

type WarningKind string

const (
	// WarnNoEligible: no employee was available for a (date, shift); the
	// slot is left empty.
	WarnNoEligible WarningKind = "no_eligible_employees"

	// WarnUnderStaffed: fewer eligible employees than required; the top
	// candidate was duplicated to meet the staffing count.
	WarnUnderStaffed WarningKind = "under_staffed"
)

type Warning struct {
	Kind  WarningKind
	Date  Date
	Shift ShiftType
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnNoEligible:
		return fmt.Sprintf("No eligible employees for %s on %s.", w.Shift, w.Date)
	case WarnUnderStaffed:
		return fmt.Sprintf("Not enough unique employees for %s on %s. Filling with top candidate.", w.Shift, w.Date)
	default:
		return fmt.Sprintf("%s for %s on %s", w.Kind, w.Shift, w.Date)
	}
}
