package planner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/planner"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/roster/store"
)

func seededPlanner(t *testing.T, names ...string) (*planner.Planner, *store.Memory, []roster.Employee) {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemory()

	employees := make([]roster.Employee, 0, len(names))
	for _, name := range names {
		e, err := m.SaveEmployee(ctx, roster.Employee{Name: name, TargetHours: 160})
		require.NoError(t, err)
		employees = append(employees, e)
	}
	return planner.New(m), m, employees
}

func TestGenerateMonth_PersistsRecordsAndSnapshot(t *testing.T) {
	// GIVEN: four employees and default settings (2/2/1 staffing)
	// WHEN: generating May 2025
	// THEN: 31*5 records are stored and the snapshot is retrievable

	ctx := context.Background()
	p, m, _ := seededPlanner(t, "Ada", "Ben", "Cleo", "Dan")

	result, err := p.GenerateMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	records, err := m.ListShiftsForMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Len(t, records, 31*5)
	for _, rec := range records {
		assert.NotEmpty(t, rec.ID)
	}

	snap, err := m.GetRosterSnapshot(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Equal(t, result.Snapshot, snap)
	assert.Len(t, snap["2025-05-01"][roster.ShiftMorning], 2)
}

func TestGenerateMonth_ReplacesPriorRoster(t *testing.T) {
	ctx := context.Background()
	p, m, _ := seededPlanner(t, "Ada", "Ben", "Cleo", "Dan")

	_, err := p.GenerateMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	_, err = p.GenerateMonth(ctx, 2025, time.May)
	require.NoError(t, err)

	records, err := m.ListShiftsForMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Len(t, records, 31*5, "regeneration must not double up records")
}

func TestGenerateMonth_MissingSettingAborts(t *testing.T) {
	// GIVEN: a store whose staffing_night setting was blanked
	// WHEN: generating
	// THEN: a config error comes back and nothing is persisted

	ctx := context.Background()
	p, m, _ := seededPlanner(t, "Ada")
	require.NoError(t, m.SetSetting(ctx, roster.SettingStaffingNight, ""))

	_, err := p.GenerateMonth(ctx, 2025, time.May)
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrMissingSetting)
	assert.True(t, roster.IsConfigError(err))

	records, _ := m.ListShiftsForMonth(ctx, 2025, time.May)
	assert.Empty(t, records)
}

func TestRepairMonth_RewritesConflictedRecords(t *testing.T) {
	// GIVEN: a generated May and an absence recorded afterwards
	// WHEN: repairing
	// THEN: the absent employee holds no shift on the covered dates and the
	//       snapshot reflects the rewrites

	ctx := context.Background()
	p, m, employees := seededPlanner(t, "Ada", "Ben", "Cleo", "Dan")

	_, err := p.GenerateMonth(ctx, 2025, time.May)
	require.NoError(t, err)

	_, err = m.SaveAbsence(ctx, roster.Absence{
		EmployeeID: employees[0].ID,
		Start:      roster.NewDate(2025, time.May, 10),
		End:        roster.NewDate(2025, time.May, 12),
		Type:       roster.AbsenceSickness,
	})
	require.NoError(t, err)

	result, err := p.RepairMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	require.NotZero(t, result.Changes)
	assert.Len(t, result.Rewrites, result.Changes)

	records, err := m.ListShiftsForMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	for _, rec := range records {
		if rec.EmployeeID != employees[0].ID {
			continue
		}
		day := rec.Date.Day
		assert.False(t, day >= 10 && day <= 12,
			"absent employee still holds %s on %s", rec.Shift, rec.Date)
	}

	snap, err := m.GetRosterSnapshot(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Equal(t, result.Snapshot, snap)

	// Idempotence through the persistence layer.
	again, err := p.RepairMonth(ctx, 2025, time.May)
	require.NoError(t, err)
	assert.Zero(t, again.Changes)
}

func TestMonthStatistics_CoversAllEmployees(t *testing.T) {
	ctx := context.Background()
	p, _, employees := seededPlanner(t, "Ada", "Ben", "Cleo", "Dan")

	_, err := p.GenerateMonth(ctx, 2025, time.May)
	require.NoError(t, err)

	rows, err := p.MonthStatistics(ctx, 2025, time.May)
	require.NoError(t, err)
	require.Len(t, rows, len(employees))

	total := roster.ZeroHours()
	for _, row := range rows {
		total = total.Add(row.WorkedHours())
		assert.Zero(t, row.FestiveShifts, "no festivities were configured")
	}
	// 31 days * (2*7 + 2*8 + 1*8) hours
	assert.True(t, total.Equal(roster.HoursOf(31*38)), "month total %s", total)
}

func TestRecomputeCarryOver_UpdatesOnlyChangedEmployees(t *testing.T) {
	// GIVEN: a completed April where one employee worked past target and
	//        one did not
	// WHEN: recomputing as of mid-May, twice
	// THEN: only the surplus employee is updated, and the second run is a
	//       no-op

	ctx := context.Background()
	m := store.NewMemory()
	p := planner.New(m)

	over, err := m.SaveEmployee(ctx, roster.Employee{Name: "Ada", TargetHours: 16})
	require.NoError(t, err)
	under, err := m.SaveEmployee(ctx, roster.Employee{Name: "Ben", TargetHours: 160})
	require.NoError(t, err)

	var april []roster.ShiftRecord
	for day := 1; day <= 3; day++ {
		april = append(april,
			roster.ShiftRecord{Date: roster.NewDate(2025, time.April, day), Shift: roster.ShiftNight, EmployeeID: over.ID},
			roster.ShiftRecord{Date: roster.NewDate(2025, time.April, day), Shift: roster.ShiftMorning, EmployeeID: under.ID},
		)
	}
	_, err = m.InsertShifts(ctx, april)
	require.NoError(t, err)

	updated, err := p.RecomputeCarryOver(ctx, roster.NewDate(2025, time.May, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, _ := m.GetEmployee(ctx, over.ID)
	assert.Equal(t, 8, got.AccumulatedHours, "3 nights * 8h - 16h target")
	got, _ = m.GetEmployee(ctx, under.ID)
	assert.Zero(t, got.AccumulatedHours)

	updated, err = p.RecomputeCarryOver(ctx, roster.NewDate(2025, time.May, 15))
	require.NoError(t, err)
	assert.Zero(t, updated, "unchanged history must be a no-op")
}
