/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Employee:
    EmployeeDTO, SaveEmployeeRequest

  Absence:
    AbsenceDTO, SaveAbsenceRequest

  Roster:
    RosterResponse, GenerateResponse, RepairResponse, RewriteDTO

  Statistics:
    StatRowDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/types.go: Domain model these map to
*/
package api

import (
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses. Preferences are keyed
// by shift type with values 0 (avoid), 1 (neutral), 2 (prefer).
type EmployeeDTO struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	TargetHours      int            `json:"target_hours"`
	AccumulatedHours int            `json:"accumulated_hours"`
	Preferences      map[string]int `json:"preferences"`
}

// SaveEmployeeRequest is the request to create or update an employee.
// Omitted preferences default to neutral; an omitted target falls back to
// the default_target_hours setting.
type SaveEmployeeRequest struct {
	Name             string         `json:"name"`
	TargetHours      *int           `json:"target_hours,omitempty"`
	AccumulatedHours int            `json:"accumulated_hours"`
	Preferences      map[string]int `json:"preferences,omitempty"`
}

// =============================================================================
// ABSENCE TYPES
// =============================================================================

// AbsenceDTO represents an absence interval in API responses. Both dates are
// inclusive.
type AbsenceDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

// SaveAbsenceRequest is the request to record an absence.
type SaveAbsenceRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

// =============================================================================
// FESTIVITY TYPES
// =============================================================================

// FestivityDTO represents a per-date working-day override.
type FestivityDTO struct {
	Date         string `json:"date"`
	IsWorkingDay bool   `json:"is_working_day"`
}

// =============================================================================
// ROSTER TYPES
// =============================================================================

// RosterResponse carries the current roster snapshot for a month.
type RosterResponse struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Roster roster.Snapshot `json:"roster"`
}

// GenerateResponse is returned after generating a month.
type GenerateResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Warnings []string        `json:"warnings"`
	Roster   roster.Snapshot `json:"roster"`
}

// RewriteDTO describes one repaired shift record.
type RewriteDTO struct {
	RecordID   string `json:"record_id"`
	EmployeeID string `json:"employee_id"`
}

// RepairResponse is returned after repairing a month.
type RepairResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Changes  int             `json:"changes"`
	Rewrites []RewriteDTO    `json:"rewrites"`
	Roster   roster.Snapshot `json:"roster"`
}

// =============================================================================
// STATISTICS TYPES
// =============================================================================

// StatRowDTO is one employee's row in the monthly report.
type StatRowDTO struct {
	EmployeeID       string `json:"employee_id"`
	Name             string `json:"name"`
	NormalShifts     int    `json:"normal_shifts"`
	NormalHours      int    `json:"normal_hours"`
	FestiveShifts    int    `json:"festive_shifts"`
	FestiveHours     int    `json:"festive_hours"`
	TargetHours      int    `json:"target_hours"`
	AccumulatedHours int    `json:"accumulated_hours"`
	WorkedHours      int    `json:"worked_hours"`
}

// =============================================================================
// ADMIN TYPES
// =============================================================================

// CarryOverResponse reports how many employees' accumulated hours changed.
type CarryOverResponse struct {
	Updated int `json:"updated"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e roster.Employee) EmployeeDTO {
	prefs := make(map[string]int)
	for shift, pref := range roster.NormalizePreferences(e.Preferences) {
		prefs[string(shift)] = int(pref)
	}
	return EmployeeDTO{
		ID:               string(e.ID),
		Name:             e.Name,
		TargetHours:      e.TargetHours,
		AccumulatedHours: e.AccumulatedHours,
		Preferences:      prefs,
	}
}

func toAbsenceDTO(a roster.Absence) AbsenceDTO {
	return AbsenceDTO{
		ID:         a.ID,
		EmployeeID: string(a.EmployeeID),
		StartDate:  a.Start.String(),
		EndDate:    a.End.String(),
		Type:       string(a.Type),
	}
}

func toRewriteDTOs(rewrites []roster.Rewrite) []RewriteDTO {
	out := make([]RewriteDTO, len(rewrites))
	for i, rw := range rewrites {
		out[i] = RewriteDTO{RecordID: rw.RecordID, EmployeeID: string(rw.EmployeeID)}
	}
	return out
}

func toWarningStrings(warnings []roster.Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}

func toStatRowDTOs(rows []roster.StatRow) []StatRowDTO {
	out := make([]StatRowDTO, len(rows))
	for i, row := range rows {
		out[i] = StatRowDTO{
			EmployeeID:       string(row.EmployeeID),
			Name:             row.Name,
			NormalShifts:     row.NormalShifts,
			NormalHours:      row.NormalHours.Int(),
			FestiveShifts:    row.FestiveShifts,
			FestiveHours:     row.FestiveHours.Int(),
			TargetHours:      row.TargetHours,
			AccumulatedHours: row.AccumulatedHours,
			WorkedHours:      row.WorkedHours().Int(),
		}
	}
	return out
}
