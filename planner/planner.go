/*
Package planner orchestrates the scheduling engine over a collaborator store.

PURPOSE:
  The roster package is pure; this package does the I/O around it. Each
  operation loads a consistent snapshot of its inputs, runs the engine, and
  persists the outputs inside a single store transaction so a partially
  written roster is never observed.

OPERATIONS:
  GenerateMonth     full regeneration of one month's roster
  RepairMonth       two-pass in-place repair of an existing roster
  MonthStatistics   per-employee display rows for one month
  RecomputeCarryOver full rebuild of accumulated hours from shift history

CONCURRENCY:
  Generation and repair mutate the same month's records; callers must
  serialize roster mutations per month. The planner itself holds no state
  between calls.

SEE ALSO:
  - roster/store.go: the store interface this package drives
  - api: HTTP surface over these operations
*/
package planner

import (
	"context"
	"time"

	"github.com/warp/roster-engine/roster"
)

// Planner binds the pure engine to a transactional store.
type Planner struct {
	Store roster.TxStore
}

func New(store roster.TxStore) *Planner {
	return &Planner{Store: store}
}

// =============================================================================
// GENERATION
// =============================================================================

// GenerateResult is what generation hands back to the caller/UI.
type GenerateResult struct {
	Roster   *roster.Assignment
	Warnings []roster.Warning
	Snapshot roster.Snapshot
}

// GenerateMonth builds a fresh roster for the month and persists it,
// replacing any prior records. Warnings are informational; only
// configuration errors abort before anything is written.
func (p *Planner) GenerateMonth(ctx context.Context, year int, month time.Month) (*GenerateResult, error) {
	employees, cfg, err := p.loadEmployeesAndConfig(ctx)
	if err != nil {
		return nil, err
	}

	absences, err := p.Store.ListAbsences(ctx, year, month)
	if err != nil {
		return nil, err
	}
	festivities, err := p.Store.ListFestivityOverrides(ctx, year, month)
	if err != nil {
		return nil, err
	}

	schedule, warnings := roster.Generate(roster.GenerateInput{
		Year:        year,
		Month:       month,
		Employees:   employees,
		Absences:    roster.BuildAbsenceIndex(absences),
		Config:      cfg,
		Festivities: festivities,
	})

	snapshot := roster.BuildSnapshot(schedule, employees)

	// Clear + insert + snapshot commit together.
	err = p.Store.WithTx(ctx, func(s roster.Store) error {
		if err := s.ClearShiftsForMonth(ctx, year, month); err != nil {
			return err
		}
		if _, err := s.InsertShifts(ctx, schedule.Records()); err != nil {
			return err
		}
		return s.SaveRosterSnapshot(ctx, year, month, snapshot)
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{Roster: schedule, Warnings: warnings, Snapshot: snapshot}, nil
}

// =============================================================================
// REPAIR
// =============================================================================

// RepairResult reports the applied rewrites and the refreshed snapshot.
type RepairResult struct {
	Changes  int
	Rewrites []roster.Rewrite
	Snapshot roster.Snapshot
}

// RepairMonth corrects the persisted roster in place: absence conflicts
// first, then over-assignment rebalancing. Record identity is preserved
// across rewrites.
func (p *Planner) RepairMonth(ctx context.Context, year int, month time.Month) (*RepairResult, error) {
	employees, cfg, err := p.loadEmployeesAndConfig(ctx)
	if err != nil {
		return nil, err
	}

	records, err := p.Store.ListShiftsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	absences, err := p.Store.ListAbsences(ctx, year, month)
	if err != nil {
		return nil, err
	}

	existing := roster.AssignmentFromRecords(year, month, records)
	result := roster.Repair(roster.RepairInput{
		Year:      year,
		Month:     month,
		Roster:    existing,
		Employees: employees,
		Absences:  roster.BuildAbsenceIndex(absences),
		Config:    cfg,
	})

	snapshot := roster.BuildSnapshot(existing, employees)

	err = p.Store.WithTx(ctx, func(s roster.Store) error {
		for _, rw := range result.Rewrites {
			if err := s.RewriteShift(ctx, rw.RecordID, rw.EmployeeID); err != nil {
				return err
			}
		}
		return s.SaveRosterSnapshot(ctx, year, month, snapshot)
	})
	if err != nil {
		return nil, err
	}

	return &RepairResult{Changes: result.Changes, Rewrites: result.Rewrites, Snapshot: snapshot}, nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// MonthStatistics summarizes the month's persisted roster per employee.
func (p *Planner) MonthStatistics(ctx context.Context, year int, month time.Month) ([]roster.StatRow, error) {
	employees, cfg, err := p.loadEmployeesAndConfig(ctx)
	if err != nil {
		return nil, err
	}
	records, err := p.Store.ListShiftsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	festivities, err := p.Store.ListFestivityOverrides(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return roster.Aggregate(records, employees, cfg, festivities), nil
}

// =============================================================================
// CARRY-OVER RECOMPUTE
// =============================================================================

// RecomputeCarryOver rebuilds every employee's accumulated hours from the
// full shift history up to today and persists the result. Idempotent for
// an unchanged history. Returns how many employees' figures changed.
func (p *Planner) RecomputeCarryOver(ctx context.Context, today roster.Date) (int, error) {
	employees, cfg, err := p.loadEmployeesAndConfig(ctx)
	if err != nil {
		return 0, err
	}
	records, err := p.Store.ListShiftsThrough(ctx, today)
	if err != nil {
		return 0, err
	}

	recomputed := roster.RecomputeCarryOver(records, employees, cfg, today)

	updated := 0
	err = p.Store.WithTx(ctx, func(s roster.Store) error {
		for _, e := range employees {
			hours := recomputed[e.ID]
			if hours == e.AccumulatedHours {
				continue
			}
			if err := s.UpdateAccumulatedHours(ctx, e.ID, hours); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (p *Planner) loadEmployeesAndConfig(ctx context.Context) ([]roster.Employee, roster.ShiftConfig, error) {
	settings, err := p.Store.AllSettings(ctx)
	if err != nil {
		return nil, roster.ShiftConfig{}, err
	}
	cfg, err := roster.ParseShiftConfig(settings)
	if err != nil {
		return nil, roster.ShiftConfig{}, err
	}

	employees, err := p.Store.ListEmployees(ctx)
	if err != nil {
		return nil, roster.ShiftConfig{}, err
	}
	for i := range employees {
		employees[i].Preferences = roster.NormalizePreferences(employees[i].Preferences)
	}
	return employees, cfg, nil
}
