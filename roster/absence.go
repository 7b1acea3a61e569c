package roster

// =============================================================================
// ABSENCE - Read-only input interval
// =============================================================================

type AbsenceType string

const (
	AbsenceSickness  AbsenceType = "Sickness"
	AbsenceHoliday   AbsenceType = "Holiday"
	AbsenceMaternity AbsenceType = "Maternity"
)

// Absence marks an employee unavailable from Start through End, both ends
// inclusive. ID is assigned by the store; the engine never reads it.
type Absence struct {
	ID         string
	EmployeeID EmployeeID
	Start      Date
	End        Date
	Type       AbsenceType
}

// Contains reports whether the absence covers the date (inclusive).
func (a Absence) Contains(d Date) bool {
	return a.Start.BeforeOrEqual(d) && d.BeforeOrEqual(a.End)
}

// =============================================================================
// ABSENCE INDEX - O(1) amortized absence lookups
// =============================================================================

// AbsenceIndex answers "is employee E absent on date D". Build groups
// absences by employee; lookup scans only that employee's intervals.
// Overlapping or duplicate intervals are harmless since only boolean
// containment is tested.
type AbsenceIndex struct {
	byEmployee map[EmployeeID][]Absence
}

func BuildAbsenceIndex(absences []Absence) *AbsenceIndex {
	idx := &AbsenceIndex{byEmployee: make(map[EmployeeID][]Absence)}
	for _, a := range absences {
		idx.byEmployee[a.EmployeeID] = append(idx.byEmployee[a.EmployeeID], a)
	}
	return idx
}

// IsAbsent reports whether the employee has any absence covering the date.
func (idx *AbsenceIndex) IsAbsent(id EmployeeID, d Date) bool {
	for _, a := range idx.byEmployee[id] {
		if a.Contains(d) {
			return true
		}
	}
	return false
}
