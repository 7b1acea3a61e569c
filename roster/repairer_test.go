package roster_test

import (
	"testing"
	"time"

	"github.com/warp/roster-engine/roster"
)

func repairInput(a *roster.Assignment, employees []roster.Employee, absences []roster.Absence) roster.RepairInput {
	return roster.RepairInput{
		Year: 2025, Month: time.May,
		Roster:    a,
		Employees: employees,
		Absences:  roster.BuildAbsenceIndex(absences),
		Config:    testConfig(),
	}
}

// =============================================================================
// PASS 1 - ABSENCE REPAIR
// =============================================================================

func TestRepair_SwapsAbsentEmployee(t *testing.T) {
	// GIVEN: a roster with emp-1 on the May 10 morning, and emp-1 now absent
	//        that day
	// WHEN: repairing
	// THEN: the record keeps its identity but points at emp-2, and exactly
	//       one change is counted

	employees := []roster.Employee{
		{ID: "emp-1", Name: "Ada", TargetHours: 160},
		{ID: "emp-2", Name: "Ben", TargetHours: 160},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(10), Shift: roster.ShiftMorning, EmployeeID: "emp-1"})

	result := roster.Repair(repairInput(a, employees, []roster.Absence{
		{EmployeeID: "emp-1", Start: date(10), End: date(10)},
	}))

	if result.Changes != 1 {
		t.Fatalf("got %d changes, want 1", result.Changes)
	}
	if len(result.Rewrites) != 1 || result.Rewrites[0].RecordID != "rec-1" || result.Rewrites[0].EmployeeID != "emp-2" {
		t.Fatalf("unexpected rewrites: %v", result.Rewrites)
	}

	slot := a.Slot(date(10), roster.ShiftMorning)
	if slot[0].ID != "rec-1" || slot[0].EmployeeID != "emp-2" {
		t.Fatalf("slot not rewritten in place: %v", slot[0])
	}
}

func TestRepair_ReplacementScoresPreferenceTimesTen(t *testing.T) {
	// GIVEN: two candidates where raw remaining hours favor one but the
	//        tenfold preference weight favors the other
	// WHEN: repairing an absence
	// THEN: score = remaining + preference*10 decides: 5 + 2*10 beats 8 + 1*10

	employees := []roster.Employee{
		{ID: "absent", TargetHours: 160},
		{ID: "more-hours", TargetHours: 8},
		{ID: "prefers", TargetHours: 5, Preferences: map[roster.ShiftType]roster.Preference{
			roster.ShiftNight: roster.PreferencePrefer,
		}},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(3), Shift: roster.ShiftNight, EmployeeID: "absent"})

	result := roster.Repair(repairInput(a, employees, []roster.Absence{
		{EmployeeID: "absent", Start: date(3), End: date(3)},
	}))

	if len(result.Rewrites) != 1 || result.Rewrites[0].EmployeeID != "prefers" {
		t.Fatalf("expected prefers to win the slot, got %v", result.Rewrites)
	}
}

func TestRepair_NoReplacementLeavesRecordUntouched(t *testing.T) {
	// A sole, absent employee cannot be replaced; the stale assignment
	// stays and the changes count stays flat.

	employees := []roster.Employee{{ID: "emp-1", TargetHours: 160}}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(10), Shift: roster.ShiftMorning, EmployeeID: "emp-1"})

	result := roster.Repair(repairInput(a, employees, []roster.Absence{
		{EmployeeID: "emp-1", Start: date(10), End: date(10)},
	}))

	if result.Changes != 0 {
		t.Fatalf("got %d changes, want 0", result.Changes)
	}
	slot := a.Slot(date(10), roster.ShiftMorning)
	if slot[0].EmployeeID != "emp-1" {
		t.Fatalf("record should be untouched, got %v", slot[0])
	}
}

func TestRepair_ReplacementMustNotAlreadyHoldTheSlot(t *testing.T) {
	// GIVEN: a two-person slot where emp-2 already holds the other record
	// WHEN: emp-1 is absent
	// THEN: the replacement is emp-3, not a second copy of emp-2

	employees := []roster.Employee{
		{ID: "emp-1", TargetHours: 160},
		{ID: "emp-2", TargetHours: 300},
		{ID: "emp-3", TargetHours: 160},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(10), Shift: roster.ShiftMorning, EmployeeID: "emp-1"})
	a.Append(roster.ShiftRecord{ID: "rec-2", Date: date(10), Shift: roster.ShiftMorning, EmployeeID: "emp-2"})

	result := roster.Repair(repairInput(a, employees, []roster.Absence{
		{EmployeeID: "emp-1", Start: date(10), End: date(10)},
	}))

	if len(result.Rewrites) != 1 || result.Rewrites[0].EmployeeID != "emp-3" {
		t.Fatalf("expected emp-3, got %v", result.Rewrites)
	}
}

// =============================================================================
// PASS 2 - REBALANCING
// =============================================================================

func TestRepair_RelievesOverAssignedEmployee(t *testing.T) {
	// GIVEN: emp-1 with target 10 holding two 8-hour shifts (remaining -6,
	//        past the -5 threshold) and emp-2 with plenty of room
	// WHEN: repairing with no absences
	// THEN: one record moves to emp-2, which lifts emp-1 back above the
	//       threshold so the second record stays

	employees := []roster.Employee{
		{ID: "emp-1", TargetHours: 10},
		{ID: "emp-2", TargetHours: 160},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(1), Shift: roster.ShiftNight, EmployeeID: "emp-1"})
	a.Append(roster.ShiftRecord{ID: "rec-2", Date: date(2), Shift: roster.ShiftNight, EmployeeID: "emp-1"})

	result := roster.Repair(repairInput(a, employees, nil))

	if result.Changes != 1 {
		t.Fatalf("got %d changes, want 1", result.Changes)
	}
	if result.Rewrites[0].RecordID != "rec-1" || result.Rewrites[0].EmployeeID != "emp-2" {
		t.Fatalf("unexpected rewrite: %v", result.Rewrites[0])
	}
	if a.Slot(date(2), roster.ShiftNight)[0].EmployeeID != "emp-1" {
		t.Fatal("second record should stay with emp-1 after relief")
	}
}

func TestRepair_ExactlyAtThresholdIsNotRelieved(t *testing.T) {
	// remaining == -5 does not trip the strictly-less-than threshold.
	employees := []roster.Employee{
		{ID: "emp-1", TargetHours: 3}, // 3 - 8 = -5
		{ID: "emp-2", TargetHours: 160},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(1), Shift: roster.ShiftNight, EmployeeID: "emp-1"})

	result := roster.Repair(repairInput(a, employees, nil))
	if result.Changes != 0 {
		t.Fatalf("got %d changes, want 0", result.Changes)
	}
}

func TestRepair_RebalanceNeedsStrictlyPositiveCandidate(t *testing.T) {
	// GIVEN: an over-assigned employee and a candidate sitting exactly at
	//        zero remaining
	// WHEN: repairing
	// THEN: nothing moves; relief requires a strictly positive receiver

	employees := []roster.Employee{
		{ID: "emp-1", TargetHours: 10},
		{ID: "emp-2", TargetHours: 0},
	}
	a := roster.NewAssignment(2025, time.May)
	a.Append(roster.ShiftRecord{ID: "rec-1", Date: date(1), Shift: roster.ShiftNight, EmployeeID: "emp-1"})
	a.Append(roster.ShiftRecord{ID: "rec-2", Date: date(2), Shift: roster.ShiftNight, EmployeeID: "emp-1"})

	result := roster.Repair(repairInput(a, employees, nil))
	if result.Changes != 0 {
		t.Fatalf("got %d changes, want 0", result.Changes)
	}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

func TestRepair_SecondRunIsANoOp(t *testing.T) {
	// GIVEN: a generated month with an absence conflict injected
	// WHEN: repairing twice
	// THEN: the first run fixes it, the second changes nothing

	employees := fourEmployees()
	a, _ := roster.Generate(roster.GenerateInput{
		Year: 2025, Month: time.May, Employees: employees, Config: testConfig(),
	})

	// Stored records carry IDs; simulate that.
	records := a.Records()
	for i := range records {
		records[i].ID = string(rune('a'+i%26)) + records[i].Date.String() + string(records[i].Shift)
	}
	a = roster.AssignmentFromRecords(2025, time.May, records)

	absences := []roster.Absence{
		{EmployeeID: "emp-1", Start: date(10), End: date(12)},
	}

	first := roster.Repair(repairInput(a, employees, absences))
	if first.Changes == 0 {
		t.Fatal("first repair should have fixed the absence conflicts")
	}

	second := roster.Repair(repairInput(a, employees, absences))
	if second.Changes != 0 {
		t.Fatalf("second repair made %d changes, want 0", second.Changes)
	}
}
