/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Employee CRUD over HTTP
- Roster generation, retrieval, repair, and statistics
- Settings validation
- Error status mapping
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/roster/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	srv := httptest.NewServer(NewRouter(NewHandler(m)))
	t.Cleanup(srv.Close)
	return srv, m
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func seedEmployees(t *testing.T, m *store.Memory, names ...string) []roster.Employee {
	t.Helper()
	ctx := context.Background()
	out := make([]roster.Employee, 0, len(names))
	for _, name := range names {
		e, err := m.SaveEmployee(ctx, roster.Employee{Name: name, TargetHours: 160})
		if err != nil {
			t.Fatalf("seed employee: %v", err)
		}
		out = append(out, e)
	}
	return out
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func TestCreateEmployee_DefaultsTargetFromSettings(t *testing.T) {
	// GIVEN: a fresh store seeded with default_target_hours=160
	// WHEN: creating an employee without target_hours
	// THEN: the default is applied and preferences come back complete

	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", SaveEmployeeRequest{Name: "Ada"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d, want 201", resp.StatusCode)
	}

	dto := decode[EmployeeDTO](t, resp)
	if dto.ID == "" {
		t.Fatal("response should carry the assigned ID")
	}
	if dto.TargetHours != 160 {
		t.Fatalf("target %d, want default 160", dto.TargetHours)
	}
	if len(dto.Preferences) != len(roster.ShiftTypes()) {
		t.Fatalf("preferences incomplete: %v", dto.Preferences)
	}
}

func TestCreateEmployee_RejectsMissingName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", SaveEmployeeRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateEmployee_RejectsOutOfRangePreference(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", SaveEmployeeRequest{
		Name:        "Ada",
		Preferences: map[string]int{"Night": 5},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGetEmployee_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDeleteEmployee(t *testing.T) {
	srv, m := newTestServer(t)
	emps := seedEmployees(t, m, "Ada")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+string(emps[0].ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+string(emps[0].ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

// =============================================================================
// ABSENCE ENDPOINTS
// =============================================================================

func TestCreateAbsence_ValidatesDatesAndEmployee(t *testing.T) {
	srv, m := newTestServer(t)
	emps := seedEmployees(t, m, "Ada")

	// Inverted interval
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/absences", SaveAbsenceRequest{
		EmployeeID: string(emps[0].ID), StartDate: "2025-05-12", EndDate: "2025-05-10", Type: "Holiday",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted interval status %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown employee
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/absences", SaveAbsenceRequest{
		EmployeeID: "ghost", StartDate: "2025-05-10", EndDate: "2025-05-12", Type: "Holiday",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown employee status %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// Valid
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/absences", SaveAbsenceRequest{
		EmployeeID: string(emps[0].ID), StartDate: "2025-05-10", EndDate: "2025-05-12", Type: "Holiday",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("valid absence status %d, want 201", resp.StatusCode)
	}
	dto := decode[AbsenceDTO](t, resp)
	if dto.ID == "" || dto.StartDate != "2025-05-10" {
		t.Fatalf("unexpected absence payload: %+v", dto)
	}
}

// =============================================================================
// SETTINGS ENDPOINTS
// =============================================================================

func TestUpdateSettings_RejectsNonNumericStaffing(t *testing.T) {
	// GIVEN: default settings
	// WHEN: trying to set staffing_night to a word
	// THEN: 422 and the stored value is untouched

	srv, m := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/settings", map[string]string{
		roster.SettingStaffingNight: "many",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", resp.StatusCode)
	}
	resp.Body.Close()

	v, _ := m.GetSetting(context.Background(), roster.SettingStaffingNight)
	if v != "1" {
		t.Fatalf("setting mutated to %q despite validation failure", v)
	}
}

func TestUpdateSettings_AppliesValidChanges(t *testing.T) {
	srv, m := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/settings", map[string]string{
		roster.SettingStaffingNight: "2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	v, _ := m.GetSetting(context.Background(), roster.SettingStaffingNight)
	if v != "2" {
		t.Fatalf("got %q, want 2", v)
	}
}

// =============================================================================
// ROSTER ENDPOINTS
// =============================================================================

func rosterURL(srv *httptest.Server, year, month int, suffix string) string {
	return fmt.Sprintf("%s/api/roster/%d/%d%s", srv.URL, year, month, suffix)
}

func TestGenerateRoster_EndToEnd(t *testing.T) {
	// GIVEN: four employees
	// WHEN: POSTing generate for May 2025 and GETting the roster back
	// THEN: the stored snapshot matches what generation returned

	srv, m := newTestServer(t)
	seedEmployees(t, m, "Ada", "Ben", "Cleo", "Dan")

	resp := doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/generate"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status %d, want 200", resp.StatusCode)
	}
	gen := decode[GenerateResponse](t, resp)
	if len(gen.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", gen.Warnings)
	}
	if len(gen.Roster) != 31 {
		t.Fatalf("snapshot covers %d days, want 31", len(gen.Roster))
	}

	resp = doJSON(t, http.MethodGet, rosterURL(srv, 2025, 5, ""), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status %d, want 200", resp.StatusCode)
	}
	got := decode[RosterResponse](t, resp)
	if len(got.Roster["2025-05-01"][roster.ShiftMorning]) != 2 {
		t.Fatalf("May 1 morning: %v", got.Roster["2025-05-01"])
	}
}

func TestGenerateRoster_SurfacesWarnings(t *testing.T) {
	srv, m := newTestServer(t)
	seedEmployees(t, m, "Ada") // staffing wants 2 mornings

	resp := doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/generate"), nil)
	gen := decode[GenerateResponse](t, resp)
	if len(gen.Warnings) == 0 {
		t.Fatal("under-staffed month should produce warnings")
	}
}

func TestGenerateRoster_ConfigErrorIs422(t *testing.T) {
	srv, m := newTestServer(t)
	seedEmployees(t, m, "Ada")
	m.SetSetting(context.Background(), roster.SettingDurationNight, "")

	resp := doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/generate"), nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", resp.StatusCode)
	}
	errResp := decode[ErrorResponse](t, resp)
	if errResp.Details == "" {
		t.Fatal("error details should name the bad setting")
	}
}

func TestGetRoster_MissingMonthIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, rosterURL(srv, 2025, 5, ""), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoster_InvalidMonthIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, rosterURL(srv, 2025, 13, "/generate"), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRepairRoster_AfterAbsence(t *testing.T) {
	// GIVEN: a generated May with an absence recorded afterwards
	// WHEN: POSTing repair
	// THEN: rewrites come back and the persisted snapshot is refreshed

	srv, m := newTestServer(t)
	emps := seedEmployees(t, m, "Ada", "Ben", "Cleo", "Dan")

	doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/generate"), nil).Body.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/absences", SaveAbsenceRequest{
		EmployeeID: string(emps[0].ID), StartDate: "2025-05-10", EndDate: "2025-05-12", Type: "Sickness",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/repair"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repair status %d, want 200", resp.StatusCode)
	}
	rep := decode[RepairResponse](t, resp)
	if rep.Changes == 0 || len(rep.Rewrites) != rep.Changes {
		t.Fatalf("unexpected repair result: %+v", rep)
	}

	for _, day := range []string{"2025-05-10", "2025-05-11", "2025-05-12"} {
		for _, shift := range roster.ShiftTypes() {
			for _, name := range rep.Roster[day][shift] {
				if name == "Ada" {
					t.Fatalf("absent employee still on %s %s", day, shift)
				}
			}
		}
	}
}

func TestRosterStats_Endpoint(t *testing.T) {
	srv, m := newTestServer(t)
	seedEmployees(t, m, "Ada", "Ben", "Cleo", "Dan")

	doJSON(t, http.MethodPost, rosterURL(srv, 2025, 5, "/generate"), nil).Body.Close()

	resp := doJSON(t, http.MethodGet, rosterURL(srv, 2025, 5, "/stats"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status %d, want 200", resp.StatusCode)
	}
	rows := decode[[]StatRowDTO](t, resp)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	total := 0
	for _, row := range rows {
		total += row.WorkedHours
		if row.WorkedHours != row.NormalHours+row.FestiveHours {
			t.Fatalf("worked != normal + festive for %s", row.Name)
		}
	}
	// 31 days * (2*7 + 2*8 + 1*8) hours
	if total != 31*38 {
		t.Fatalf("month total %d, want %d", total, 31*38)
	}
}

// =============================================================================
// ADMIN ENDPOINTS
// =============================================================================

func TestTriggerCarryOver_Endpoint(t *testing.T) {
	srv, m := newTestServer(t)

	ctx := context.Background()
	over, err := m.SaveEmployee(ctx, roster.Employee{Name: "Ada", TargetHours: 16})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	// A completed month with 3 nights (24h) against a 16h target.
	lastYear := time.Now().UTC().Year() - 1
	_, err = m.InsertShifts(ctx, []roster.ShiftRecord{
		{Date: roster.NewDate(lastYear, time.March, 1), Shift: roster.ShiftNight, EmployeeID: over.ID},
		{Date: roster.NewDate(lastYear, time.March, 2), Shift: roster.ShiftNight, EmployeeID: over.ID},
		{Date: roster.NewDate(lastYear, time.March, 3), Shift: roster.ShiftNight, EmployeeID: over.ID},
	})
	if err != nil {
		t.Fatalf("seed shifts: %v", err)
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/carryover", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	out := decode[CarryOverResponse](t, resp)
	if out.Updated != 1 {
		t.Fatalf("updated %d employees, want 1", out.Updated)
	}

	got, _ := m.GetEmployee(ctx, over.ID)
	if got.AccumulatedHours != 8 {
		t.Fatalf("accumulated %d, want 8", got.AccumulatedHours)
	}
}
