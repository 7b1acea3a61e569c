/*
store.go - Persistence interface consumed and produced by the engine

PURPOSE:
  Defines the collaborator store the engine reads snapshots from and hands
  results back to. The engine itself never touches the database: the
  planner package loads inputs through this interface, runs the pure
  algorithms, and persists the outputs.

MONTH WINDOWS:
  Every per-month query uses the half-open window
  [first day of month, first day of next month), so December correctly
  rolls into January.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - roster/store: in-memory store for tests and dev

SEE ALSO:
  - planner: orchestration over this interface
*/
package roster

import (
	"context"
	"time"
)

// =============================================================================
// STORE - Collaborator persistence interface
// =============================================================================

type Store interface {
	// --- Employees ---

	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	// SaveEmployee inserts when the ID is empty (assigning one) and
	// updates otherwise. Returns the stored employee.
	SaveEmployee(ctx context.Context, e Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id EmployeeID) error
	// UpdateAccumulatedHours overwrites one employee's carry-over figure.
	UpdateAccumulatedHours(ctx context.Context, id EmployeeID, hours int) error

	// --- Absences ---

	// ListAbsences returns every absence overlapping the month.
	ListAbsences(ctx context.Context, year int, month time.Month) ([]Absence, error)
	SaveAbsence(ctx context.Context, a Absence) (Absence, error)
	DeleteAbsence(ctx context.Context, id string) error

	// --- Festivity overrides ---

	ListFestivityOverrides(ctx context.Context, year int, month time.Month) (FestivityOverrides, error)
	SaveFestivityOverride(ctx context.Context, date Date, isWorkingDay bool) error

	// --- Settings ---

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]string, error)

	// --- Shift records ---

	ListShiftsForMonth(ctx context.Context, year int, month time.Month) ([]ShiftRecord, error)
	// ListShiftsThrough returns every shift record dated on or before the
	// given day, for the carry-over recompute.
	ListShiftsThrough(ctx context.Context, day Date) ([]ShiftRecord, error)
	ClearShiftsForMonth(ctx context.Context, year int, month time.Month) error
	// InsertShifts persists new records in order, assigning record IDs,
	// and returns them with identity filled in.
	InsertShifts(ctx context.Context, records []ShiftRecord) ([]ShiftRecord, error)
	// RewriteShift points an existing record at a different employee.
	RewriteShift(ctx context.Context, recordID string, employeeID EmployeeID) error

	// --- Roster snapshots ---

	SaveRosterSnapshot(ctx context.Context, year int, month time.Month, snap Snapshot) error
	// GetRosterSnapshot returns ErrSnapshotNotFound when no snapshot has
	// been saved for the month.
	GetRosterSnapshot(ctx context.Context, year int, month time.Month) (Snapshot, error)
}

// TxStore wraps Store with transaction support so generation (clear +
// insert + snapshot) and repair (rewrites + snapshot) commit atomically and
// a partially written roster is never observed.
type TxStore interface {
	Store

	// WithTx executes fn against a transactional view. If fn returns an
	// error the transaction rolls back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
