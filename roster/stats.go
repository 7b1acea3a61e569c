/*
stats.go - Roster statistics and hour carry-over recompute

PURPOSE:
  Aggregate summarizes a month's finalized shift records into per-employee
  rows, splitting shifts worked on non-working festivity dates from normal
  ones. RecomputeCarryOver rebuilds every employee's accumulated surplus
  from the full shift history, from scratch, so repeated runs over an
  unchanged history agree.

SEE ALSO:
  - calendar.go: the festivity flag that decides the normal/festive split
*/
package roster

import "time"

// =============================================================================
// STATISTICS AGGREGATOR
// =============================================================================

// StatRow is one employee's monthly summary. Employees with zero shifts in
// the month still get a row with zero counts and their stored hour figures.
type StatRow struct {
	EmployeeID EmployeeID
	Name       string

	NormalShifts int
	NormalHours  Hours

	// Shifts on dates flagged non-working by a festivity override. Such
	// shifts exist when a roster was saved before the override did.
	FestiveShifts int
	FestiveHours  Hours

	TargetHours      int
	AccumulatedHours int
}

// WorkedHours is the employee's total for the month across both buckets.
func (r StatRow) WorkedHours() Hours {
	return r.NormalHours.Add(r.FestiveHours)
}

// Aggregate summarizes a month's records. Rows come back in employee
// snapshot order; records for unknown employees are ignored.
func Aggregate(records []ShiftRecord, employees []Employee, cfg ShiftConfig, festivities FestivityOverrides) []StatRow {
	rows := make([]StatRow, len(employees))
	index := make(map[EmployeeID]int, len(employees))
	for i, e := range employees {
		rows[i] = StatRow{
			EmployeeID:       e.ID,
			Name:             e.Name,
			NormalHours:      ZeroHours(),
			FestiveHours:     ZeroHours(),
			TargetHours:      e.TargetHours,
			AccumulatedHours: e.AccumulatedHours,
		}
		index[e.ID] = i
	}

	for _, rec := range records {
		i, ok := index[rec.EmployeeID]
		if !ok {
			continue
		}
		hours := HoursOf(cfg.Duration(rec.Shift))
		if festivities.Festive(rec.Date) {
			rows[i].FestiveShifts++
			rows[i].FestiveHours = rows[i].FestiveHours.Add(hours)
		} else {
			rows[i].NormalShifts++
			rows[i].NormalHours = rows[i].NormalHours.Add(hours)
		}
	}

	return rows
}

// =============================================================================
// HOUR CARRY-OVER RECOMPUTE
// =============================================================================

type monthKey struct {
	employee EmployeeID
	year     int
	month    int
}

// RecomputeCarryOver scans all shift records up to today and recomputes
// each employee's accumulated hours: for every month whose last calendar
// day has already passed, extra = hours worked that month - target hours;
// positive extras sum across all completed months. The result always holds
// an entry per employee (zero when no surplus) and replaces the stored
// accumulated figure wholesale.
func RecomputeCarryOver(records []ShiftRecord, employees []Employee, cfg ShiftConfig, today Date) map[EmployeeID]int {
	targets := make(map[EmployeeID]int, len(employees))
	accumulated := make(map[EmployeeID]int, len(employees))
	for _, e := range employees {
		targets[e.ID] = e.TargetHours
		accumulated[e.ID] = 0
	}

	worked := make(map[monthKey]Hours)
	for _, rec := range records {
		if _, ok := targets[rec.EmployeeID]; !ok {
			continue
		}
		if rec.Date.After(today) {
			continue
		}
		k := monthKey{employee: rec.EmployeeID, year: rec.Date.Year, month: int(rec.Date.Month)}
		total, ok := worked[k]
		if !ok {
			total = ZeroHours()
		}
		worked[k] = total.Add(HoursOf(cfg.Duration(rec.Shift)))
	}

	for k, total := range worked {
		if !EndOfMonth(k.year, time.Month(k.month)).Before(today) {
			// Month not completed yet.
			continue
		}
		extra := total.Sub(HoursOf(targets[k.employee]))
		if extra.IsPositive() {
			accumulated[k.employee] += extra.Int()
		}
	}

	return accumulated
}
