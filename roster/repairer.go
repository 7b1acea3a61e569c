/*
repairer.go - Two-pass in-place roster repair

PURPOSE:
  Corrects an existing month's roster without regenerating it:

  Pass 1 (absence repair): every record whose employee has since become
  absent is pointed at the best replacement, scored as

    remaining(candidate) + preference(candidate, shift) * 10

  The preference multiplier of 10 is load-bearing: it makes the preference
  weight dominate raw remaining hours, and must not change.

  Pass 2 (rebalancing): runs over the absence-corrected roster with the
  post-pass-1 ledger, so a pass-1 reassignment can itself become a pass-2
  target. Records held by employees over-assigned past the fixed -5 hour
  threshold move to the candidate with the greatest strictly positive
  remaining hours.

KNOWN LIMITATION:
  When pass 1 finds no replacement, the absent employee stays assigned and
  no warning is emitted; the shortfall is visible only through the changes
  count staying flat.

FAILURE CONTRACT:
  Pure function over its inputs; mutates the given Assignment in place and
  returns the rewrite list for the caller to persist.
*/
package roster

import "time"

// rebalanceThreshold is the fixed over-assignment cutoff for pass 2:
// employees whose remaining hours drop below -5 get relieved.
var rebalanceThreshold = HoursOf(-5)

// preferenceWeight is the fixed multiplier applied to the preference value
// in pass-1 replacement scoring.
const preferenceWeight = 10

// RepairInput carries an existing roster and the context needed to fix it.
type RepairInput struct {
	Year  int
	Month time.Month

	// Roster is the existing assignment with stable record IDs. It is
	// mutated in place.
	Roster *Assignment

	Employees []Employee
	Absences  *AbsenceIndex
	Config    ShiftConfig
}

// RepairResult reports what changed. Changes counts individual record
// rewrites across both passes; Rewrites lists them in the order applied.
type RepairResult struct {
	Changes  int
	Rewrites []Rewrite
}

// Repair corrects the roster in two sequential passes sharing one ledger.
func Repair(in RepairInput) RepairResult {
	absences := in.Absences
	if absences == nil {
		absences = BuildAbsenceIndex(nil)
	}

	// Seed assigned hours from the roster being repaired, not from zero.
	ledger := NewHourLedger(in.Employees)
	ledger.SeedFromRoster(in.Roster, in.Config)

	r := &repairer{
		input:    in,
		absences: absences,
		ledger:   ledger,
	}
	r.fixAbsences()
	r.rebalance()

	return RepairResult{Changes: r.changes, Rewrites: r.rewrites}
}

type repairer struct {
	input    RepairInput
	absences *AbsenceIndex
	ledger   *HourLedger

	changes  int
	rewrites []Rewrite
}

// fixAbsences is pass 1: swap out employees who are absent on their
// assigned date.
func (r *repairer) fixAbsences() {
	for _, date := range MonthDays(r.input.Year, r.input.Month) {
		if !r.input.Roster.HasDay(date) {
			continue
		}
		for _, shift := range ShiftTypes() {
			records := r.input.Roster.Slot(date, shift)
			if len(records) == 0 {
				continue
			}

			// Snapshot of who held this slot before any swaps; a
			// replacement in one record does not make its employee
			// ineligible for the slot's remaining records.
			assigned := slotEmployees(records)

			for i, rec := range records {
				if !r.absences.IsAbsent(rec.EmployeeID, date) {
					continue
				}
				replacement, found := r.bestAbsenceReplacement(shift, date, assigned)
				if !found {
					// No replacement: the stale assignment stays.
					continue
				}
				r.moveRecord(&records[i], replacement, shift)
			}
			r.input.Roster.SetSlot(date, shift, records)
		}
	}
}

// bestAbsenceReplacement scans all employees in input order and returns the
// maximum-score candidate; ties keep the first seen.
func (r *repairer) bestAbsenceReplacement(shift ShiftType, date Date, assigned map[EmployeeID]bool) (EmployeeID, bool) {
	var (
		best      EmployeeID
		bestScore Hours
		found     bool
	)
	for _, cand := range r.input.Employees {
		if r.absences.IsAbsent(cand.ID, date) {
			continue
		}
		if assigned[cand.ID] {
			continue
		}
		score := r.ledger.Remaining(cand.ID).
			Add(HoursOf(int(cand.PreferenceFor(shift)) * preferenceWeight))
		if !found || score.GreaterThan(bestScore) {
			best, bestScore, found = cand.ID, score, true
		}
	}
	return best, found
}

// rebalance is pass 2: relieve employees over-assigned past the threshold,
// using the ledger state left by pass 1.
func (r *repairer) rebalance() {
	for _, date := range MonthDays(r.input.Year, r.input.Month) {
		if !r.input.Roster.HasDay(date) {
			continue
		}
		for _, shift := range ShiftTypes() {
			records := r.input.Roster.Slot(date, shift)
			if len(records) == 0 {
				continue
			}

			assigned := slotEmployees(records)

			for i, rec := range records {
				if !r.ledger.Remaining(rec.EmployeeID).LessThan(rebalanceThreshold) {
					continue
				}
				replacement, found := r.bestRebalanceCandidate(date, assigned)
				if !found {
					continue
				}
				r.moveRecord(&records[i], replacement, shift)
			}
			r.input.Roster.SetSlot(date, shift, records)
		}
	}
}

// bestRebalanceCandidate returns the not-absent, not-already-assigned
// employee with the greatest strictly positive remaining hours.
func (r *repairer) bestRebalanceCandidate(date Date, assigned map[EmployeeID]bool) (EmployeeID, bool) {
	var (
		best          EmployeeID
		bestRemaining Hours
		found         bool
	)
	for _, cand := range r.input.Employees {
		if r.absences.IsAbsent(cand.ID, date) {
			continue
		}
		if assigned[cand.ID] {
			continue
		}
		remaining := r.ledger.Remaining(cand.ID)
		if !remaining.IsPositive() {
			continue
		}
		if !found || remaining.GreaterThan(bestRemaining) {
			best, bestRemaining, found = cand.ID, remaining, true
		}
	}
	return best, found
}

// moveRecord shifts the hour credit to the replacement and rewrites the
// record's employee while preserving its identity.
func (r *repairer) moveRecord(rec *ShiftRecord, replacement EmployeeID, shift ShiftType) {
	duration := HoursOf(r.input.Config.Duration(shift))
	r.ledger.Debit(rec.EmployeeID, duration)
	r.ledger.Credit(replacement, duration)
	rec.EmployeeID = replacement
	r.rewrites = append(r.rewrites, Rewrite{RecordID: rec.ID, EmployeeID: replacement})
	r.changes++
}

func slotEmployees(records []ShiftRecord) map[EmployeeID]bool {
	out := make(map[EmployeeID]bool, len(records))
	for _, rec := range records {
		out[rec.EmployeeID] = true
	}
	return out
}
