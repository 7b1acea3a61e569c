package roster

// =============================================================================
// ROSTER SNAPSHOT - JSON-serializable month view
// =============================================================================

// Snapshot is the displayable form of one month's roster:
// date string -> shift type -> assigned employee names, in slot order.
// The store caches it so a month can be redisplayed without recomputation.
type Snapshot map[string]map[ShiftType][]string

// BuildSnapshot renders an Assignment with employee names resolved from the
// snapshot list. Unknown employee IDs render as their raw ID so a stale
// roster still displays.
func BuildSnapshot(a *Assignment, employees []Employee) Snapshot {
	names := make(map[EmployeeID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	snap := make(Snapshot)
	for _, date := range MonthDays(a.Year, a.Month) {
		if !a.HasDay(date) {
			continue
		}
		day := make(map[ShiftType][]string, len(ShiftTypes()))
		for _, shift := range ShiftTypes() {
			assigned := []string{}
			for _, rec := range a.Slot(date, shift) {
				name, ok := names[rec.EmployeeID]
				if !ok {
					name = string(rec.EmployeeID)
				}
				assigned = append(assigned, name)
			}
			day[shift] = assigned
		}
		snap[date.String()] = day
	}
	return snap
}
