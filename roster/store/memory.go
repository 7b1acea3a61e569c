// Package store provides an in-memory roster.Store for tests and dev.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	employees   []roster.Employee
	absences    []roster.Absence
	festivities map[roster.Date]bool
	settings    map[string]string
	shifts      []roster.ShiftRecord
	snapshots   map[snapshotKey]roster.Snapshot
}

type snapshotKey struct {
	Year  int
	Month time.Month
}

// Compile-time interface checks.
var (
	_ roster.TxStore = (*Memory)(nil)
	_ roster.Store   = (*txView)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		festivities: make(map[roster.Date]bool),
		settings:    roster.DefaultSettings(),
		snapshots:   make(map[snapshotKey]roster.Snapshot),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) ListEmployees(_ context.Context) ([]roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]roster.Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *Memory) GetEmployee(_ context.Context, id roster.EmployeeID) (*roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.employees {
		if e.ID == id {
			emp := e
			return &emp, nil
		}
	}
	return nil, nil
}

func (m *Memory) SaveEmployee(_ context.Context, e roster.Employee) (roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.Preferences = roster.NormalizePreferences(e.Preferences)
	if e.ID == "" {
		e.ID = roster.EmployeeID(uuid.NewString())
		m.employees = append(m.employees, e)
		return e, nil
	}
	for i := range m.employees {
		if m.employees[i].ID == e.ID {
			m.employees[i] = e
			return e, nil
		}
	}
	m.employees = append(m.employees, e)
	return e, nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id roster.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.employees {
		if e.ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return roster.ErrEmployeeNotFound
}

func (m *Memory) UpdateAccumulatedHours(_ context.Context, id roster.EmployeeID, hours int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees[i].AccumulatedHours = hours
			return nil
		}
	}
	return roster.ErrEmployeeNotFound
}

// =============================================================================
// ABSENCES
// =============================================================================

func (m *Memory) ListAbsences(_ context.Context, year int, month time.Month) ([]roster.Absence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	first := roster.NewDate(year, month, 1)
	next := roster.EndOfMonth(year, month).AddDays(1)

	var out []roster.Absence
	for _, a := range m.absences {
		// Any overlap with [first, next)
		if a.Start.Before(next) && a.End.AfterOrEqual(first) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) SaveAbsence(_ context.Context, a roster.Absence) (roster.Absence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.absences = append(m.absences, a)
	return a, nil
}

func (m *Memory) DeleteAbsence(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.absences {
		if a.ID == id {
			m.absences = append(m.absences[:i], m.absences[i+1:]...)
			return nil
		}
	}
	return nil
}

// =============================================================================
// FESTIVITY OVERRIDES
// =============================================================================

func (m *Memory) ListFestivityOverrides(_ context.Context, year int, month time.Month) (roster.FestivityOverrides, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(roster.FestivityOverrides)
	for d, working := range m.festivities {
		if d.Year == year && d.Month == month {
			out[d] = working
		}
	}
	return out, nil
}

func (m *Memory) SaveFestivityOverride(_ context.Context, date roster.Date, isWorkingDay bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.festivities[date] = isWorkingDay
	return nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *Memory) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *Memory) AllSettings(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out, nil
}

// =============================================================================
// SHIFT RECORDS
// =============================================================================

func (m *Memory) ListShiftsForMonth(_ context.Context, year int, month time.Month) ([]roster.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.ShiftRecord
	for _, rec := range m.shifts {
		if rec.Date.Year == year && rec.Date.Month == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory) ListShiftsThrough(_ context.Context, day roster.Date) ([]roster.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.ShiftRecord
	for _, rec := range m.shifts {
		if rec.Date.BeforeOrEqual(day) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory) ClearShiftsForMonth(_ context.Context, year int, month time.Month) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.shifts[:0]
	for _, rec := range m.shifts {
		if rec.Date.Year != year || rec.Date.Month != month {
			kept = append(kept, rec)
		}
	}
	m.shifts = kept
	return nil
}

func (m *Memory) InsertShifts(_ context.Context, records []roster.ShiftRecord) ([]roster.ShiftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]roster.ShiftRecord, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		m.shifts = append(m.shifts, rec)
		out[i] = rec
	}
	return out, nil
}

func (m *Memory) RewriteShift(_ context.Context, recordID string, employeeID roster.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.shifts {
		if m.shifts[i].ID == recordID {
			m.shifts[i].EmployeeID = employeeID
			return nil
		}
	}
	return nil
}

// =============================================================================
// ROSTER SNAPSHOTS
// =============================================================================

func (m *Memory) SaveRosterSnapshot(_ context.Context, year int, month time.Month, snap roster.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshotKey{Year: year, Month: month}] = snap
	return nil
}

func (m *Memory) GetRosterSnapshot(_ context.Context, year int, month time.Month) (roster.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[snapshotKey{Year: year, Month: month}]
	if !ok {
		return nil, roster.ErrSnapshotNotFound
	}
	return snap, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx simulates a transaction with a deep snapshot + rollback on error.
func (m *Memory) WithTx(_ context.Context, fn func(roster.Store) error) error {
	m.mu.Lock()
	backup := m.copyState()
	m.mu.Unlock()

	if err := fn(&txView{parent: m}); err != nil {
		m.mu.Lock()
		m.restore(backup)
		m.mu.Unlock()
		return err
	}
	return nil
}

type memoryState struct {
	employees   []roster.Employee
	absences    []roster.Absence
	festivities map[roster.Date]bool
	settings    map[string]string
	shifts      []roster.ShiftRecord
	snapshots   map[snapshotKey]roster.Snapshot
}

func (m *Memory) copyState() memoryState {
	s := memoryState{
		employees:   append([]roster.Employee{}, m.employees...),
		absences:    append([]roster.Absence{}, m.absences...),
		shifts:      append([]roster.ShiftRecord{}, m.shifts...),
		festivities: make(map[roster.Date]bool, len(m.festivities)),
		settings:    make(map[string]string, len(m.settings)),
		snapshots:   make(map[snapshotKey]roster.Snapshot, len(m.snapshots)),
	}
	for k, v := range m.festivities {
		s.festivities[k] = v
	}
	for k, v := range m.settings {
		s.settings[k] = v
	}
	for k, v := range m.snapshots {
		s.snapshots[k] = v
	}
	return s
}

func (m *Memory) restore(s memoryState) {
	m.employees = s.employees
	m.absences = s.absences
	m.festivities = s.festivities
	m.settings = s.settings
	m.shifts = s.shifts
	m.snapshots = s.snapshots
}

// txView routes writes back to the parent; rollback happens via restore.
type txView struct {
	parent *Memory
}

func (tv *txView) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	return tv.parent.ListEmployees(ctx)
}

func (tv *txView) GetEmployee(ctx context.Context, id roster.EmployeeID) (*roster.Employee, error) {
	return tv.parent.GetEmployee(ctx, id)
}

func (tv *txView) SaveEmployee(ctx context.Context, e roster.Employee) (roster.Employee, error) {
	return tv.parent.SaveEmployee(ctx, e)
}

func (tv *txView) DeleteEmployee(ctx context.Context, id roster.EmployeeID) error {
	return tv.parent.DeleteEmployee(ctx, id)
}

func (tv *txView) UpdateAccumulatedHours(ctx context.Context, id roster.EmployeeID, hours int) error {
	return tv.parent.UpdateAccumulatedHours(ctx, id, hours)
}

func (tv *txView) ListAbsences(ctx context.Context, year int, month time.Month) ([]roster.Absence, error) {
	return tv.parent.ListAbsences(ctx, year, month)
}

func (tv *txView) SaveAbsence(ctx context.Context, a roster.Absence) (roster.Absence, error) {
	return tv.parent.SaveAbsence(ctx, a)
}

func (tv *txView) DeleteAbsence(ctx context.Context, id string) error {
	return tv.parent.DeleteAbsence(ctx, id)
}

func (tv *txView) ListFestivityOverrides(ctx context.Context, year int, month time.Month) (roster.FestivityOverrides, error) {
	return tv.parent.ListFestivityOverrides(ctx, year, month)
}

func (tv *txView) SaveFestivityOverride(ctx context.Context, date roster.Date, isWorkingDay bool) error {
	return tv.parent.SaveFestivityOverride(ctx, date, isWorkingDay)
}

func (tv *txView) GetSetting(ctx context.Context, key string) (string, error) {
	return tv.parent.GetSetting(ctx, key)
}

func (tv *txView) SetSetting(ctx context.Context, key, value string) error {
	return tv.parent.SetSetting(ctx, key, value)
}

func (tv *txView) AllSettings(ctx context.Context) (map[string]string, error) {
	return tv.parent.AllSettings(ctx)
}

func (tv *txView) ListShiftsForMonth(ctx context.Context, year int, month time.Month) ([]roster.ShiftRecord, error) {
	return tv.parent.ListShiftsForMonth(ctx, year, month)
}

func (tv *txView) ListShiftsThrough(ctx context.Context, day roster.Date) ([]roster.ShiftRecord, error) {
	return tv.parent.ListShiftsThrough(ctx, day)
}

func (tv *txView) ClearShiftsForMonth(ctx context.Context, year int, month time.Month) error {
	return tv.parent.ClearShiftsForMonth(ctx, year, month)
}

func (tv *txView) InsertShifts(ctx context.Context, records []roster.ShiftRecord) ([]roster.ShiftRecord, error) {
	return tv.parent.InsertShifts(ctx, records)
}

func (tv *txView) RewriteShift(ctx context.Context, recordID string, employeeID roster.EmployeeID) error {
	return tv.parent.RewriteShift(ctx, recordID, employeeID)
}

func (tv *txView) SaveRosterSnapshot(ctx context.Context, year int, month time.Month, snap roster.Snapshot) error {
	return tv.parent.SaveRosterSnapshot(ctx, year, month, snap)
}

func (tv *txView) GetRosterSnapshot(ctx context.Context, year int, month time.Month) (roster.Snapshot, error) {
	return tv.parent.GetRosterSnapshot(ctx, year, month)
}
