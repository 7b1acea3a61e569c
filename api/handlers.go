/*
handlers.go - HTTP API handlers for the roster scheduling system

PURPOSE:
  Exposes the roster engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees              List all employees
    POST   /api/employees              Create employee
    GET    /api/employees/{id}         Get employee details
    PUT    /api/employees/{id}         Update employee
    DELETE /api/employees/{id}         Delete employee

  Absences:
    GET    /api/absences?year=&month=  List absences touching a month
    POST   /api/absences               Record an absence
    DELETE /api/absences/{id}          Delete an absence

  Settings:
    GET    /api/settings               All settings
    PUT    /api/settings               Update settings (partial)

  Festivities:
    GET    /api/festivities?year=&month= Overrides for a month
    POST   /api/festivities            Upsert an override

  Roster:
    POST   /api/roster/{year}/{month}/generate  Build and persist the month
    POST   /api/roster/{year}/{month}/repair    Fix conflicts and imbalance
    GET    /api/roster/{year}/{month}           Saved snapshot
    GET    /api/roster/{year}/{month}/stats     Per-employee monthly report

  Admin:
    POST   /api/admin/carryover        Recompute accumulated hours

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (planner, store)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Missing or invalid settings (generation/repair cannot run)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - planner/planner.go: Orchestration the handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/roster-engine/planner"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   roster.TxStore
	Planner *planner.Planner
}

// NewHandler creates a new handler with the given store.
func NewHandler(store roster.TxStore) *Handler {
	return &Handler{
		Store:   store,
		Planner: planner.New(store),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee. A missing target_hours falls back
// to the default_target_hours setting.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}

	emp, err := h.employeeFromRequest(r, roster.Employee{}, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee payload", err)
		return
	}

	saved, err := h.Store.SaveEmployee(r.Context(), emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(saved))
}

// UpdateEmployee updates an existing employee.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	existing, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	emp, err := h.employeeFromRequest(r, *existing, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee payload", err)
		return
	}

	saved, err := h.Store.SaveEmployee(r.Context(), emp)
	if err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(saved))
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// employeeFromRequest merges a save request onto base. The base carries the
// ID and any prior values the request omits.
func (h *Handler) employeeFromRequest(r *http.Request, base roster.Employee, req SaveEmployeeRequest) (roster.Employee, error) {
	if req.Name != "" {
		base.Name = req.Name
	}
	base.AccumulatedHours = req.AccumulatedHours

	if req.TargetHours != nil {
		base.TargetHours = *req.TargetHours
	} else if base.TargetHours == 0 {
		raw, err := h.Store.GetSetting(r.Context(), roster.SettingDefaultTargetHours)
		if err != nil {
			return base, err
		}
		target, err := strconv.Atoi(raw)
		if err != nil {
			return base, &roster.ConfigError{
				Key: roster.SettingDefaultTargetHours, Value: raw, Cause: roster.ErrInvalidSetting,
			}
		}
		base.TargetHours = target
	}

	if req.Preferences != nil {
		prefs := make(map[roster.ShiftType]roster.Preference)
		for shift, weight := range req.Preferences {
			if weight < int(roster.PreferenceAvoid) || weight > int(roster.PreferencePrefer) {
				return base, errors.New("preference weight must be 0, 1 or 2")
			}
			prefs[roster.ShiftType(shift)] = roster.Preference(weight)
		}
		base.Preferences = roster.NormalizePreferences(prefs)
	}
	return base, nil
}

// =============================================================================
// ABSENCE HANDLERS
// =============================================================================

// ListAbsences returns absences overlapping the requested month.
func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	absences, err := h.Store.ListAbsences(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list absences", err)
		return
	}

	dtos := make([]AbsenceDTO, len(absences))
	for i, a := range absences {
		dtos[i] = toAbsenceDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAbsence records an absence interval.
func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req SaveAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := roster.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := roster.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date must not precede start_date", nil)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), roster.EmployeeID(req.EmployeeID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	saved, err := h.Store.SaveAbsence(r.Context(), roster.Absence{
		EmployeeID: roster.EmployeeID(req.EmployeeID),
		Start:      start,
		End:        end,
		Type:       roster.AbsenceType(req.Type),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save absence", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAbsenceDTO(saved))
}

// DeleteAbsence removes an absence.
func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteAbsence(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete absence", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the full settings map.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.AllSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts the provided keys. Duration and staffing values
// are validated as integers before anything is written.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	merged, err := h.Store.AllSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	for k, v := range req {
		merged[k] = v
	}
	if _, err := roster.ParseShiftConfig(merged); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(s roster.Store) error {
		for k, v := range req {
			if err := s.SetSetting(r.Context(), k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

// =============================================================================
// FESTIVITY HANDLERS
// =============================================================================

// ListFestivities returns the working-day overrides for a month.
func (h *Handler) ListFestivities(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	overrides, err := h.Store.ListFestivityOverrides(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list festivities", err)
		return
	}

	dtos := make([]FestivityDTO, 0, len(overrides))
	for date, working := range overrides {
		dtos = append(dtos, FestivityDTO{Date: date.String(), IsWorkingDay: working})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveFestivity upserts a working-day override for one date.
func (h *Handler) SaveFestivity(w http.ResponseWriter, r *http.Request) {
	var req FestivityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := roster.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.SaveFestivityOverride(r.Context(), date, req.IsWorkingDay); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save festivity", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// GenerateRoster builds and persists the month's roster, replacing any
// prior one.
// POST /api/roster/{year}/{month}/generate
func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromURL(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	result, err := h.Planner.GenerateMonth(r.Context(), year, month)
	if err != nil {
		if roster.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to generate roster", err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Year:     year,
		Month:    int(month),
		Warnings: toWarningStrings(result.Warnings),
		Roster:   result.Snapshot,
	})
}

// RepairRoster fixes absence conflicts and rebalances overworked employees
// in the persisted roster.
// POST /api/roster/{year}/{month}/repair
func (h *Handler) RepairRoster(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromURL(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	result, err := h.Planner.RepairMonth(r.Context(), year, month)
	if err != nil {
		if roster.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to repair roster", err)
		return
	}

	writeJSON(w, http.StatusOK, RepairResponse{
		Year:     year,
		Month:    int(month),
		Changes:  result.Changes,
		Rewrites: toRewriteDTOs(result.Rewrites),
		Roster:   result.Snapshot,
	})
}

// GetRoster returns the saved snapshot for a month.
// GET /api/roster/{year}/{month}
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromURL(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	snap, err := h.Store.GetRosterSnapshot(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, roster.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "No roster saved for this month", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	writeJSON(w, http.StatusOK, RosterResponse{Year: year, Month: int(month), Roster: snap})
}

// GetRosterStats returns the per-employee monthly report.
// GET /api/roster/{year}/{month}/stats
func (h *Handler) GetRosterStats(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthFromURL(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	rows, err := h.Planner.MonthStatistics(r.Context(), year, month)
	if err != nil {
		if roster.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute statistics", err)
		return
	}

	writeJSON(w, http.StatusOK, toStatRowDTOs(rows))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// TriggerCarryOver recomputes accumulated hours from the full shift history.
// POST /api/admin/carryover
func (h *Handler) TriggerCarryOver(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Planner.RecomputeCarryOver(r.Context(), roster.Today())
	if err != nil {
		if roster.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, "Invalid configuration", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to recompute carry-over", err)
		return
	}
	writeJSON(w, http.StatusOK, CarryOverResponse{Updated: updated})
}

// =============================================================================
// HELPERS
// =============================================================================

func yearMonthFromURL(r *http.Request) (int, time.Month, error) {
	return parseYearMonth(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
}

func yearMonthFromQuery(r *http.Request) (int, time.Month, error) {
	return parseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
}

func parseYearMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, errors.New("year must be an integer")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, errors.New("month must be an integer")
	}
	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
