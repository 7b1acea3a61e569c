/*
Package sqlite provides the SQLite-backed roster store.

PURPOSE:
  Implements roster.Store and roster.TxStore over SQLite. The engine never
  sees SQL; everything crosses the roster.Store interface as plain values.

KEY TABLES:
  employees:        identity, target/accumulated hours, preferences JSON
  shifts:           one row per (date, shift type, employee) assignment
  absences:         inclusive [start, end] intervals per employee
  festivities:      per-date working-day overrides
  settings:         duration/staffing/target configuration, seeded defaults
  roster_snapshots: cached date -> shift -> names JSON per month

MONTH WINDOWS:
  All per-month queries use [first of month, first of next month) computed
  as YYYY-MM-DD strings, so December correctly rolls into January.

CONCURRENCY:
  SQLite is opened with WAL for better read concurrency; a sync.RWMutex
  serializes writers within the process.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  p := planner.New(store)

SEE ALSO:
  - roster/store.go: interface definitions
  - roster/store/memory.go: in-memory implementation used in tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/roster-engine/roster"
)

// Store implements roster.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ roster.TxStore = (*Store)(nil)
	_ roster.Store   = (*txStore)(nil)
)

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target_hours INTEGER NOT NULL,
		accumulated_hours INTEGER NOT NULL,
		preferences_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		shift_date TEXT NOT NULL,
		shift_type TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		FOREIGN KEY(employee_id) REFERENCES employees(id)
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(shift_date);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shifts(employee_id, shift_date);

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		absence_type TEXT NOT NULL,
		FOREIGN KEY(employee_id) REFERENCES employees(id)
	);

	CREATE INDEX IF NOT EXISTS idx_absences_window
		ON absences(start_date, end_date);

	CREATE TABLE IF NOT EXISTS festivities (
		date TEXT PRIMARY KEY,
		is_working_day BOOLEAN NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	);

	CREATE TABLE IF NOT EXISTS roster_snapshots (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		snapshot_json TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		PRIMARY KEY(year, month)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed defaults; existing values win on subsequent startups.
	for key, value := range roster.DefaultSettings() {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx so every operation can
// run inside or outside an explicit transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// monthWindow returns [first day of month, first day of next month) as
// YYYY-MM-DD strings for SQL range predicates.
func monthWindow(year int, month time.Month) (string, string) {
	first := roster.NewDate(year, month, 1)
	next := roster.EndOfMonth(year, month).AddDays(1)
	return first.String(), next.String()
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listEmployees(ctx, s.db)
}

func listEmployees(ctx context.Context, q querier) ([]roster.Employee, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, target_hours, accumulated_hours, preferences_json
		FROM employees ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		var (
			e         roster.Employee
			prefsJSON string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.TargetHours, &e.AccumulatedHours, &prefsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Preferences = decodePreferences(prefsJSON)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func decodePreferences(prefsJSON string) map[roster.ShiftType]roster.Preference {
	prefs := make(map[roster.ShiftType]roster.Preference)
	if prefsJSON != "" {
		// Malformed JSON degrades to neutral preferences.
		json.Unmarshal([]byte(prefsJSON), &prefs)
	}
	return roster.NormalizePreferences(prefs)
}

func (s *Store) GetEmployee(ctx context.Context, id roster.EmployeeID) (*roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getEmployee(ctx, s.db, id)
}

func getEmployee(ctx context.Context, q querier, id roster.EmployeeID) (*roster.Employee, error) {
	var (
		e         roster.Employee
		prefsJSON string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, name, target_hours, accumulated_hours, preferences_json
		FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.TargetHours, &e.AccumulatedHours, &prefsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.Preferences = decodePreferences(prefsJSON)
	return &e, nil
}

func (s *Store) SaveEmployee(ctx context.Context, e roster.Employee) (roster.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveEmployee(ctx, s.db, e)
}

func saveEmployee(ctx context.Context, q querier, e roster.Employee) (roster.Employee, error) {
	e.Preferences = roster.NormalizePreferences(e.Preferences)
	prefsJSON, err := json.Marshal(e.Preferences)
	if err != nil {
		return e, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if e.ID == "" {
		e.ID = roster.EmployeeID(uuid.NewString())
		_, err := q.ExecContext(ctx, `
			INSERT INTO employees (id, name, target_hours, accumulated_hours, preferences_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.TargetHours, e.AccumulatedHours, string(prefsJSON),
			time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return e, fmt.Errorf("failed to insert employee: %w", err)
		}
		return e, nil
	}

	res, err := q.ExecContext(ctx, `
		UPDATE employees SET name = ?, target_hours = ?, accumulated_hours = ?, preferences_json = ?
		WHERE id = ?`,
		e.Name, e.TargetHours, e.AccumulatedHours, string(prefsJSON), e.ID)
	if err != nil {
		return e, fmt.Errorf("failed to update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return e, roster.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id roster.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteEmployee(ctx, s.db, id)
}

func deleteEmployee(ctx context.Context, q querier, id roster.EmployeeID) error {
	res, err := q.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) UpdateAccumulatedHours(ctx context.Context, id roster.EmployeeID, hours int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateAccumulatedHours(ctx, s.db, id, hours)
}

func updateAccumulatedHours(ctx context.Context, q querier, id roster.EmployeeID, hours int) error {
	res, err := q.ExecContext(ctx,
		"UPDATE employees SET accumulated_hours = ? WHERE id = ?", hours, id)
	if err != nil {
		return fmt.Errorf("failed to update accumulated hours: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrEmployeeNotFound
	}
	return nil
}

// =============================================================================
// ABSENCES
// =============================================================================

func (s *Store) ListAbsences(ctx context.Context, year int, month time.Month) ([]roster.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAbsences(ctx, s.db, year, month)
}

func listAbsences(ctx context.Context, q querier, year int, month time.Month) ([]roster.Absence, error) {
	first, next := monthWindow(year, month)
	rows, err := q.QueryContext(ctx, `
		SELECT id, employee_id, start_date, end_date, absence_type
		FROM absences
		WHERE start_date < ? AND end_date >= ?
		ORDER BY start_date ASC, id ASC`, next, first)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var absences []roster.Absence
	for rows.Next() {
		var (
			a          roster.Absence
			start, end string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &start, &end, &a.Type); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		if a.Start, err = roster.ParseDate(start); err != nil {
			return nil, err
		}
		if a.End, err = roster.ParseDate(end); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}

func (s *Store) SaveAbsence(ctx context.Context, a roster.Absence) (roster.Absence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAbsence(ctx, s.db, a)
}

func saveAbsence(ctx context.Context, q querier, a roster.Absence) (roster.Absence, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO absences (id, employee_id, start_date, end_date, absence_type)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			absence_type = excluded.absence_type`,
		a.ID, a.EmployeeID, a.Start.String(), a.End.String(), a.Type)
	if err != nil {
		return a, fmt.Errorf("failed to save absence: %w", err)
	}
	return a, nil
}

func (s *Store) DeleteAbsence(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteAbsence(ctx, s.db, id)
}

func deleteAbsence(ctx context.Context, q querier, id string) error {
	_, err := q.ExecContext(ctx, "DELETE FROM absences WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	return nil
}

// =============================================================================
// FESTIVITY OVERRIDES
// =============================================================================

func (s *Store) ListFestivityOverrides(ctx context.Context, year int, month time.Month) (roster.FestivityOverrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listFestivityOverrides(ctx, s.db, year, month)
}

func listFestivityOverrides(ctx context.Context, q querier, year int, month time.Month) (roster.FestivityOverrides, error) {
	first, next := monthWindow(year, month)
	rows, err := q.QueryContext(ctx, `
		SELECT date, is_working_day FROM festivities
		WHERE date >= ? AND date < ?`, first, next)
	if err != nil {
		return nil, fmt.Errorf("failed to list festivities: %w", err)
	}
	defer rows.Close()

	out := make(roster.FestivityOverrides)
	for rows.Next() {
		var (
			dateStr string
			working bool
		)
		if err := rows.Scan(&dateStr, &working); err != nil {
			return nil, fmt.Errorf("failed to scan festivity: %w", err)
		}
		d, err := roster.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		out[d] = working
	}
	return out, rows.Err()
}

func (s *Store) SaveFestivityOverride(ctx context.Context, date roster.Date, isWorkingDay bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveFestivityOverride(ctx, s.db, date, isWorkingDay)
}

func saveFestivityOverride(ctx context.Context, q querier, date roster.Date, isWorkingDay bool) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO festivities (date, is_working_day) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET is_working_day = excluded.is_working_day`,
		date.String(), isWorkingDay)
	if err != nil {
		return fmt.Errorf("failed to save festivity: %w", err)
	}
	return nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getSetting(ctx, s.db, key)
}

func getSetting(ctx context.Context, q querier, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setSetting(ctx, s.db, key, value)
}

func setSetting(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return allSettings(ctx, s.db)
}

func allSettings(ctx context.Context, q querier) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// =============================================================================
// SHIFT RECORDS
// =============================================================================

func (s *Store) ListShiftsForMonth(ctx context.Context, year int, month time.Month) ([]roster.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listShiftsForMonth(ctx, s.db, year, month)
}

func listShiftsForMonth(ctx context.Context, q querier, year int, month time.Month) ([]roster.ShiftRecord, error) {
	first, next := monthWindow(year, month)
	return queryShifts(ctx, q, `
		SELECT id, shift_date, shift_type, employee_id FROM shifts
		WHERE shift_date >= ? AND shift_date < ?
		ORDER BY shift_date ASC, shift_type ASC, rowid ASC`, first, next)
}

func (s *Store) ListShiftsThrough(ctx context.Context, day roster.Date) ([]roster.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listShiftsThrough(ctx, s.db, day)
}

func listShiftsThrough(ctx context.Context, q querier, day roster.Date) ([]roster.ShiftRecord, error) {
	return queryShifts(ctx, q, `
		SELECT id, shift_date, shift_type, employee_id FROM shifts
		WHERE shift_date <= ?
		ORDER BY shift_date ASC, shift_type ASC, rowid ASC`, day.String())
}

func queryShifts(ctx context.Context, q querier, query string, args ...any) ([]roster.ShiftRecord, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var records []roster.ShiftRecord
	for rows.Next() {
		var (
			rec     roster.ShiftRecord
			dateStr string
		)
		if err := rows.Scan(&rec.ID, &dateStr, &rec.Shift, &rec.EmployeeID); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		if rec.Date, err = roster.ParseDate(dateStr); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) ClearShiftsForMonth(ctx context.Context, year int, month time.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clearShiftsForMonth(ctx, s.db, year, month)
}

func clearShiftsForMonth(ctx context.Context, q querier, year int, month time.Month) error {
	first, next := monthWindow(year, month)
	_, err := q.ExecContext(ctx,
		"DELETE FROM shifts WHERE shift_date >= ? AND shift_date < ?", first, next)
	if err != nil {
		return fmt.Errorf("failed to clear shifts: %w", err)
	}
	return nil
}

func (s *Store) InsertShifts(ctx context.Context, records []roster.ShiftRecord) ([]roster.ShiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertShifts(ctx, s.db, records)
}

func insertShifts(ctx context.Context, q querier, records []roster.ShiftRecord) ([]roster.ShiftRecord, error) {
	out := make([]roster.ShiftRecord, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO shifts (id, shift_date, shift_type, employee_id)
			VALUES (?, ?, ?, ?)`,
			rec.ID, rec.Date.String(), rec.Shift, rec.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert shift: %w", err)
		}
		out[i] = rec
	}
	return out, nil
}

func (s *Store) RewriteShift(ctx context.Context, recordID string, employeeID roster.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rewriteShift(ctx, s.db, recordID, employeeID)
}

func rewriteShift(ctx context.Context, q querier, recordID string, employeeID roster.EmployeeID) error {
	_, err := q.ExecContext(ctx,
		"UPDATE shifts SET employee_id = ? WHERE id = ?", employeeID, recordID)
	if err != nil {
		return fmt.Errorf("failed to rewrite shift: %w", err)
	}
	return nil
}

// =============================================================================
// ROSTER SNAPSHOTS
// =============================================================================

func (s *Store) SaveRosterSnapshot(ctx context.Context, year int, month time.Month, snap roster.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveRosterSnapshot(ctx, s.db, year, month, snap)
}

func saveRosterSnapshot(ctx context.Context, q querier, year int, month time.Month, snap roster.Snapshot) error {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO roster_snapshots (year, month, snapshot_json, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET
			snapshot_json = excluded.snapshot_json,
			saved_at = excluded.saved_at`,
		year, int(month), string(snapJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *Store) GetRosterSnapshot(ctx context.Context, year int, month time.Month) (roster.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getRosterSnapshot(ctx, s.db, year, month)
}

func getRosterSnapshot(ctx context.Context, q querier, year int, month time.Month) (roster.Snapshot, error) {
	var snapJSON string
	err := q.QueryRowContext(ctx,
		"SELECT snapshot_json FROM roster_snapshots WHERE year = ? AND month = ?",
		year, int(month)).Scan(&snapJSON)
	if err == sql.ErrNoRows {
		return nil, roster.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap roster.Snapshot
	if err := json.Unmarshal([]byte(snapJSON), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn inside a single database transaction. The transaction
// commits only if fn returns nil; any error rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(roster.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore is the view of the store handed to WithTx callbacks. Every method
// routes through the wrapped *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	return listEmployees(ctx, ts.tx)
}

func (ts *txStore) GetEmployee(ctx context.Context, id roster.EmployeeID) (*roster.Employee, error) {
	return getEmployee(ctx, ts.tx, id)
}

func (ts *txStore) SaveEmployee(ctx context.Context, e roster.Employee) (roster.Employee, error) {
	return saveEmployee(ctx, ts.tx, e)
}

func (ts *txStore) DeleteEmployee(ctx context.Context, id roster.EmployeeID) error {
	return deleteEmployee(ctx, ts.tx, id)
}

func (ts *txStore) UpdateAccumulatedHours(ctx context.Context, id roster.EmployeeID, hours int) error {
	return updateAccumulatedHours(ctx, ts.tx, id, hours)
}

func (ts *txStore) ListAbsences(ctx context.Context, year int, month time.Month) ([]roster.Absence, error) {
	return listAbsences(ctx, ts.tx, year, month)
}

func (ts *txStore) SaveAbsence(ctx context.Context, a roster.Absence) (roster.Absence, error) {
	return saveAbsence(ctx, ts.tx, a)
}

func (ts *txStore) DeleteAbsence(ctx context.Context, id string) error {
	return deleteAbsence(ctx, ts.tx, id)
}

func (ts *txStore) ListFestivityOverrides(ctx context.Context, year int, month time.Month) (roster.FestivityOverrides, error) {
	return listFestivityOverrides(ctx, ts.tx, year, month)
}

func (ts *txStore) SaveFestivityOverride(ctx context.Context, date roster.Date, isWorkingDay bool) error {
	return saveFestivityOverride(ctx, ts.tx, date, isWorkingDay)
}

func (ts *txStore) GetSetting(ctx context.Context, key string) (string, error) {
	return getSetting(ctx, ts.tx, key)
}

func (ts *txStore) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(ctx, ts.tx, key, value)
}

func (ts *txStore) AllSettings(ctx context.Context) (map[string]string, error) {
	return allSettings(ctx, ts.tx)
}

func (ts *txStore) ListShiftsForMonth(ctx context.Context, year int, month time.Month) ([]roster.ShiftRecord, error) {
	return listShiftsForMonth(ctx, ts.tx, year, month)
}

func (ts *txStore) ListShiftsThrough(ctx context.Context, day roster.Date) ([]roster.ShiftRecord, error) {
	return listShiftsThrough(ctx, ts.tx, day)
}

func (ts *txStore) ClearShiftsForMonth(ctx context.Context, year int, month time.Month) error {
	return clearShiftsForMonth(ctx, ts.tx, year, month)
}

func (ts *txStore) InsertShifts(ctx context.Context, records []roster.ShiftRecord) ([]roster.ShiftRecord, error) {
	return insertShifts(ctx, ts.tx, records)
}

func (ts *txStore) RewriteShift(ctx context.Context, recordID string, employeeID roster.EmployeeID) error {
	return rewriteShift(ctx, ts.tx, recordID, employeeID)
}

func (ts *txStore) SaveRosterSnapshot(ctx context.Context, year int, month time.Month, snap roster.Snapshot) error {
	return saveRosterSnapshot(ctx, ts.tx, year, month, snap)
}

func (ts *txStore) GetRosterSnapshot(ctx context.Context, year int, month time.Month) (roster.Snapshot, error) {
	return getRosterSnapshot(ctx, ts.tx, year, month)
}
