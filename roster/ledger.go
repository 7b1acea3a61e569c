/*
ledger.go - Per-employee hour accounting for one planning pass

PURPOSE:
  The HourLedger tracks, for each employee, the contractual monthly target,
  the externally supplied accumulated carry-over, and the hours assigned so
  far in the current generation or repair pass. The principal fairness
  signal is

    remaining = target - accumulated - assigned

CRITICAL INVARIANTS:
  1. SCOPED: a ledger belongs to exactly one pass and is discarded after it
  2. NO CLAMPING: assigned (and therefore remaining) may go negative; a
     negative remaining is a legitimate rebalancing signal, not an error
  3. EXPLICIT: the ledger is passed to the algorithms as a value, never
     captured implicitly by loop closures

SEE ALSO:
  - ranker.go: orders candidates by remaining hours
  - repairer.go: seeds a ledger from an existing roster
*/
package roster

// =============================================================================
// HOUR LEDGER
// =============================================================================

type ledgerEntry struct {
	target      Hours
	accumulated Hours
	assigned    Hours
}

// HourLedger holds one entry per employee for the current planning pass.
type HourLedger struct {
	entries map[EmployeeID]*ledgerEntry
}

// NewHourLedger initializes one entry per employee with assigned = 0.
func NewHourLedger(employees []Employee) *HourLedger {
	l := &HourLedger{entries: make(map[EmployeeID]*ledgerEntry, len(employees))}
	for _, e := range employees {
		l.entries[e.ID] = &ledgerEntry{
			target:      HoursOf(e.TargetHours),
			accumulated: HoursOf(e.AccumulatedHours),
			assigned:    ZeroHours(),
		}
	}
	return l
}

// SeedFromRoster credits each employee's assigned hours with the shifts
// already present in an existing roster. Used by repair, which corrects a
// roster in place rather than starting from zero. Records referencing
// unknown employees are skipped.
func (l *HourLedger) SeedFromRoster(a *Assignment, cfg ShiftConfig) {
	for _, rec := range a.Records() {
		if _, ok := l.entries[rec.EmployeeID]; ok {
			l.Credit(rec.EmployeeID, HoursOf(cfg.Duration(rec.Shift)))
		}
	}
}

// Credit adds hours to the employee's assigned total.
func (l *HourLedger) Credit(id EmployeeID, h Hours) {
	if e, ok := l.entries[id]; ok {
		e.assigned = e.assigned.Add(h)
	}
}

// Debit removes hours from the employee's assigned total. No clamping.
func (l *HourLedger) Debit(id EmployeeID, h Hours) {
	if e, ok := l.entries[id]; ok {
		e.assigned = e.assigned.Sub(h)
	}
}

// Assigned returns the hours assigned so far in this pass.
func (l *HourLedger) Assigned(id EmployeeID) Hours {
	if e, ok := l.entries[id]; ok {
		return e.assigned
	}
	return ZeroHours()
}

// Remaining returns target - accumulated - assigned. May be negative.
func (l *HourLedger) Remaining(id EmployeeID) Hours {
	e, ok := l.entries[id]
	if !ok {
		return ZeroHours()
	}
	return e.target.Sub(e.accumulated).Sub(e.assigned)
}
