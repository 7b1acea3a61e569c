/*
generator.go - Full-month roster generation

PURPOSE:
  Builds a brand-new Assignment for (year, month) from an empty state,
  walking the calendar day by day and the shift types in declared order,
  ranking eligible employees and crediting their hours per assignment.

KNOWN (PRESERVED) BEHAVIORS:
  - Eligibility is computed once per date, independent of assignments made
    earlier the same day: an employee can be picked for Morning and Night
    on one day. Downstream hour accounting depends on this.
  - Under-staffing pads the slot by repeating the top-ranked candidate, so
    the same employee can appear more than once for one shift on one day
    and is credited each time. Fully staffed beats no-duplicates.

FAILURE CONTRACT:
  Pure function; no I/O. Warnings are informational and never abort
  generation. The caller clears prior persisted records for the month
  before invoking and persists the returned roster afterward.
*/
package roster

import "time"

// GenerateInput carries everything generation reads. All fields are
// snapshots; Generate never mutates them.
type GenerateInput struct {
	Year  int
	Month time.Month

	Employees   []Employee
	Absences    *AbsenceIndex
	Config      ShiftConfig
	Festivities FestivityOverrides
}

// Generate produces a full-month roster plus staffing warnings.
func Generate(in GenerateInput) (*Assignment, []Warning) {
	roster := NewAssignment(in.Year, in.Month)
	ledger := NewHourLedger(in.Employees)
	var warnings []Warning

	absences := in.Absences
	if absences == nil {
		absences = BuildAbsenceIndex(nil)
	}

	for _, date := range MonthDays(in.Year, in.Month) {
		roster.RecordDay(date)

		// Non-working festivity: no shifts, no hour accrual.
		if !in.Festivities.WorkingDay(date) {
			continue
		}

		// Absence is per date, not per shift.
		var eligible []Employee
		for _, e := range in.Employees {
			if !absences.IsAbsent(e.ID, date) {
				eligible = append(eligible, e)
			}
		}

		for _, shift := range ShiftTypes() {
			needed := in.Config.Required(shift)

			if len(eligible) == 0 {
				warnings = append(warnings, Warning{Kind: WarnNoEligible, Date: date, Shift: shift})
				roster.SetSlot(date, shift, nil)
				continue
			}

			candidates := RankCandidates(shift, eligible, ledger)
			if len(candidates) < needed {
				warnings = append(warnings, Warning{Kind: WarnUnderStaffed, Date: date, Shift: shift})
				for len(candidates) < needed {
					candidates = append(candidates, candidates[0])
				}
			}

			assigned := candidates[:needed]
			duration := HoursOf(in.Config.Duration(shift))
			for _, e := range assigned {
				ledger.Credit(e.ID, duration)
				roster.Append(ShiftRecord{Date: date, Shift: shift, EmployeeID: e.ID})
			}
		}
	}

	return roster, warnings
}
