/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Month profile endpoint (counts, invalid input)
- Debt, repayment, and balance calculations over HTTP
- Report creation, persistence, and retrieval
- Calendar listing and upload
- Demo scenarios
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/quipu/recovery-engine/store/sqlite"
)

func setupTestRouter(t *testing.T) *chi.Mux {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewHandler(store, log, Defaults{
		JornadaHours:     6,
		Method:           "daily",
		DailyRateMinutes: 30,
	})
	if err := h.LoadCalendars(context.Background()); err != nil {
		t.Fatalf("Failed to load calendars: %v", err)
	}
	return NewRouter(h)
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

// =============================================================================
// MONTH ENDPOINT
// =============================================================================

func TestGetMonth_January2025(t *testing.T) {
	// GIVEN: A router with the 2025 calendar loaded
	router := setupTestRouter(t)

	// WHEN: Fetching the January 2025 profile
	rec := doRequest(t, router, http.MethodGet, "/api/months/2025/1", "")

	// THEN: The counts match the calendar
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var profile MonthProfileDTO
	decodeBody(t, rec, &profile)

	if profile.MonthName != "Enero" {
		t.Errorf("Expected month name Enero, got %s", profile.MonthName)
	}
	if profile.TotalDays != 31 {
		t.Errorf("Expected 31 total days, got %d", profile.TotalDays)
	}
	if profile.WeekendDays != 8 {
		t.Errorf("Expected 8 weekend days, got %d", profile.WeekendDays)
	}
	if profile.WorkingHolidays != 1 {
		t.Errorf("Expected 1 working holiday, got %d", profile.WorkingHolidays)
	}
	if profile.WorkingDays != 22 {
		t.Errorf("Expected 22 working days, got %d", profile.WorkingDays)
	}
	if profile.WeeksInMonth != 5 {
		t.Errorf("Expected 5 weeks, got %d", profile.WeeksInMonth)
	}
	if len(profile.Days) != 31 {
		t.Errorf("Expected 31 day entries, got %d", len(profile.Days))
	}
}

func TestGetMonth_OutsideCalendar(t *testing.T) {
	// GIVEN: A year with no stored calendar
	router := setupTestRouter(t)

	// WHEN: Fetching a month of that year
	rec := doRequest(t, router, http.MethodGet, "/api/months/2030/6", "")

	// THEN: The month is still valid, just without holidays
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var profile MonthProfileDTO
	decodeBody(t, rec, &profile)
	if profile.WorkingHolidays != 0 {
		t.Errorf("Expected 0 working holidays without a calendar, got %d", profile.WorkingHolidays)
	}
	if profile.WorkingDays != profile.MondayToFriday {
		t.Errorf("Without holidays working days (%d) should equal Mon-Fri count (%d)",
			profile.WorkingDays, profile.MondayToFriday)
	}
}

func TestGetMonth_InvalidMonth(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/api/months/2025/0", "/api/months/2025/13", "/api/months/2025/abc"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

func TestComputeDebt_DailyMethod(t *testing.T) {
	// GIVEN: January 2025, 6h jornada, daily method
	router := setupTestRouter(t)
	body := `{"month": 1, "year": 2025, "jornada_hours": 6, "method": "daily"}`

	// WHEN: Computing the debt
	rec := doRequest(t, router, http.MethodPost, "/api/debt", body)

	// THEN: 22 working days x 360 min
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var debt DebtDTO
	decodeBody(t, rec, &debt)
	if debt.TotalMinutes != 7920 {
		t.Errorf("Expected 7920 minutes, got %d", debt.TotalMinutes)
	}
	if debt.TotalFormatted != "132:00" {
		t.Errorf("Expected 132:00, got %s", debt.TotalFormatted)
	}
	if !debt.Explanation.DiscountsHolidays {
		t.Error("Daily method should discount holidays")
	}
}

func TestComputeDebt_DefaultsApplied(t *testing.T) {
	// GIVEN: A request that omits jornada and method
	router := setupTestRouter(t)
	body := `{"month": 1, "year": 2025}`

	// WHEN: Computing the debt
	rec := doRequest(t, router, http.MethodPost, "/api/debt", body)

	// THEN: Server defaults (6h daily) fill the gaps
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var debt DebtDTO
	decodeBody(t, rec, &debt)
	if debt.Method != "daily" {
		t.Errorf("Expected default method daily, got %s", debt.Method)
	}
	if debt.TotalMinutes != 7920 {
		t.Errorf("Expected 7920 minutes with defaults, got %d", debt.TotalMinutes)
	}
}

func TestComputeDebt_InvalidInput(t *testing.T) {
	router := setupTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad month", `{"month": 13, "year": 2025, "jornada_hours": 6, "method": "daily"}`},
		{"bad method", `{"month": 1, "year": 2025, "jornada_hours": 6, "method": "monthly"}`},
		{"negative jornada", `{"month": 1, "year": 2025, "jornada_hours": -2, "method": "daily"}`},
		{"malformed JSON", `{"month": `},
	}
	for _, tc := range cases {
		rec := doRequest(t, router, http.MethodPost, "/api/debt", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestComputeRepayment_FullWeek(t *testing.T) {
	// GIVEN: A Monday-to-Friday range at 30 min/day
	router := setupTestRouter(t)
	body := `{"start_date": "2025-02-03", "cutoff_date": "2025-02-07", "daily_rate_minutes": 30}`

	// WHEN: Computing the repayment
	rec := doRequest(t, router, http.MethodPost, "/api/repayment", body)

	// THEN: 5 working days x 30 min
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var repayment RepaymentDTO
	decodeBody(t, rec, &repayment)
	if repayment.WorkingDayCount != 5 {
		t.Errorf("Expected 5 working days, got %d", repayment.WorkingDayCount)
	}
	if repayment.TotalMinutes != 150 {
		t.Errorf("Expected 150 minutes, got %d", repayment.TotalMinutes)
	}
	if repayment.TotalFormatted != "2:30" {
		t.Errorf("Expected 2:30, got %s", repayment.TotalFormatted)
	}
	if repayment.Error != "" {
		t.Errorf("Expected no error, got %q", repayment.Error)
	}
}

func TestComputeRepayment_DegenerateRange(t *testing.T) {
	// GIVEN: A start date after the cutoff
	router := setupTestRouter(t)
	body := `{"start_date": "2025-03-01", "cutoff_date": "2025-02-01", "daily_rate_minutes": 30}`

	// WHEN: Computing the repayment
	rec := doRequest(t, router, http.MethodPost, "/api/repayment", body)

	// THEN: 200 with the flagged zero result, not a request error
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var repayment RepaymentDTO
	decodeBody(t, rec, &repayment)
	if repayment.Error == "" {
		t.Error("Expected the degenerate range to be flagged")
	}
	if repayment.TotalMinutes != 0 {
		t.Errorf("Expected 0 minutes, got %d", repayment.TotalMinutes)
	}
	if repayment.WorkingDayCount != 0 {
		t.Errorf("Expected 0 working days, got %d", repayment.WorkingDayCount)
	}
}

func TestComputeRepayment_BadDate(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"start_date": "03/02/2025", "cutoff_date": "2025-02-07", "daily_rate_minutes": 30}`

	rec := doRequest(t, router, http.MethodPost, "/api/repayment", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a non-ISO date, got %d", rec.Code)
	}
}

func TestComputeBalance_InsufficientYear(t *testing.T) {
	// GIVEN: January's debt against one week of repayment
	router := setupTestRouter(t)
	body := `{
		"debt": {"month": 1, "year": 2025, "jornada_hours": 6, "method": "daily"},
		"repayment": {"start_date": "2025-02-03", "cutoff_date": "2025-02-07", "daily_rate_minutes": 30}
	}`

	// WHEN: Computing the balance
	rec := doRequest(t, router, http.MethodPost, "/api/balance", body)

	// THEN: 30 min/day cannot cover the debt within the year
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var balance BalanceDTO
	decodeBody(t, rec, &balance)
	if balance.PendingMinutes != 7770 {
		t.Errorf("Expected 7770 pending minutes, got %d", balance.PendingMinutes)
	}
	if balance.State != "on_track_insufficient" {
		t.Errorf("Expected on_track_insufficient, got %s", balance.State)
	}
	if balance.ProjectedCompletion != nil {
		t.Errorf("Expected no projected completion, got %s", *balance.ProjectedCompletion)
	}
}

// =============================================================================
// REPORT ENDPOINTS
// =============================================================================

func TestCreateReport_PersistsSnapshot(t *testing.T) {
	// GIVEN: A complete report request
	router := setupTestRouter(t)
	body := `{
		"debt": {"month": 1, "year": 2025, "jornada_hours": 6, "method": "daily"},
		"repayment": {"start_date": "2025-02-03", "cutoff_date": "2025-03-14", "daily_rate_minutes": 30}
	}`

	// WHEN: Creating the report
	rec := doRequest(t, router, http.MethodPost, "/api/reports", body)

	// THEN: It is created with an id and can be fetched back
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var report ReportDTO
	decodeBody(t, rec, &report)
	if report.ID == "" {
		t.Fatal("Expected a report id")
	}
	if report.Debt.TotalMinutes != 7920 {
		t.Errorf("Expected 7920 owed minutes, got %d", report.Debt.TotalMinutes)
	}
	if report.Repayment.TotalMinutes != 900 {
		t.Errorf("Expected 900 repaid minutes, got %d", report.Repayment.TotalMinutes)
	}

	fetched := doRequest(t, router, http.MethodGet, "/api/reports/"+report.ID, "")
	if fetched.Code != http.StatusOK {
		t.Fatalf("Expected 200 fetching stored report, got %d", fetched.Code)
	}
	var stored ReportDTO
	decodeBody(t, fetched, &stored)
	if stored.ID != report.ID {
		t.Errorf("Expected id %s, got %s", report.ID, stored.ID)
	}
	if stored.Balance.PendingMinutes != report.Balance.PendingMinutes {
		t.Errorf("Stored pending minutes %d differ from returned %d",
			stored.Balance.PendingMinutes, report.Balance.PendingMinutes)
	}

	// And it appears in the listing
	list := doRequest(t, router, http.MethodGet, "/api/reports", "")
	if list.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing reports, got %d", list.Code)
	}
	var summaries []ReportSummaryDTO
	decodeBody(t, list, &summaries)
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 stored report, got %d", len(summaries))
	}
	if summaries[0].ID != report.ID {
		t.Errorf("Expected listed id %s, got %s", report.ID, summaries[0].ID)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	router := setupTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/reports/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

func TestGetCalendar_Seeded2025(t *testing.T) {
	// GIVEN: A fresh store; LoadCalendars seeds 2025
	router := setupTestRouter(t)

	// WHEN: Fetching the 2025 calendar
	rec := doRequest(t, router, http.MethodGet, "/api/calendars/2025", "")

	// THEN: The published list comes back
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var cal CalendarDTO
	decodeBody(t, rec, &cal)
	if cal.Year != 2025 {
		t.Errorf("Expected year 2025, got %d", cal.Year)
	}
	if len(cal.Holidays) != 15 {
		t.Errorf("Expected 15 holidays, got %d", len(cal.Holidays))
	}
}

func TestGetCalendar_UnknownYear(t *testing.T) {
	router := setupTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/calendars/2030", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestUploadCalendar(t *testing.T) {
	// GIVEN: A calendar definition for a new year
	router := setupTestRouter(t)
	body := `{
		"year": 2026,
		"holidays": [
			{"date": "2026-01-01", "name": "Año Nuevo", "type": "nacional"},
			{"date": "2026-07-28", "name": "Fiestas Patrias", "type": "nacional"}
		]
	}`

	// WHEN: Uploading it
	rec := doRequest(t, router, http.MethodPost, "/api/calendars", body)

	// THEN: It is stored and immediately queryable
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	fetched := doRequest(t, router, http.MethodGet, "/api/calendars/2026", "")
	if fetched.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", fetched.Code)
	}
	var cal CalendarDTO
	decodeBody(t, fetched, &cal)
	if len(cal.Holidays) != 2 {
		t.Errorf("Expected 2 holidays, got %d", len(cal.Holidays))
	}

	// And month computations for 2026 now see the holidays
	month := doRequest(t, router, http.MethodGet, "/api/months/2026/1", "")
	var profile MonthProfileDTO
	decodeBody(t, month, &profile)
	if profile.WorkingHolidays != 1 {
		t.Errorf("Expected Jan 1 2026 as a working holiday, got %d", profile.WorkingHolidays)
	}
}

func TestUploadCalendar_Invalid(t *testing.T) {
	router := setupTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"mismatched year", `{"year": 2026, "holidays": [{"date": "2025-01-01", "name": "Año Nuevo"}]}`},
		{"bad date", `{"year": 2026, "holidays": [{"date": "01/01/2026", "name": "Año Nuevo"}]}`},
	}
	for _, tc := range cases {
		rec := doRequest(t, router, http.MethodPost, "/api/calendars", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

// =============================================================================
// SCENARIO ENDPOINTS
// =============================================================================

func TestRunScenario_EneroDiario(t *testing.T) {
	// GIVEN: The built-in January daily scenario
	router := setupTestRouter(t)

	// WHEN: Running it
	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/enero-diario/run", "")

	// THEN: The full report comes back without persisting anything
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report ReportDTO
	decodeBody(t, rec, &report)
	if report.Debt.TotalMinutes != 7920 {
		t.Errorf("Expected 7920 owed minutes, got %d", report.Debt.TotalMinutes)
	}
	if report.ID != "" {
		t.Errorf("Scenario runs should not be assigned an id, got %s", report.ID)
	}

	list := doRequest(t, router, http.MethodGet, "/api/reports", "")
	var summaries []ReportSummaryDTO
	decodeBody(t, list, &summaries)
	if len(summaries) != 0 {
		t.Errorf("Expected no persisted reports after a scenario run, got %d", len(summaries))
	}
}

func TestRunScenario_WeeklyIgnoresHoliday(t *testing.T) {
	// GIVEN: The weekly variant of the January scenario
	router := setupTestRouter(t)

	// WHEN: Running it
	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/enero-semanal/run", "")

	// THEN: The weekly method yields 5 weeks x 30h with no holiday discount
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var report ReportDTO
	decodeBody(t, rec, &report)
	if report.Debt.TotalMinutes != 9000 {
		t.Errorf("Expected 9000 owed minutes, got %d", report.Debt.TotalMinutes)
	}
	if report.Debt.Explanation.DiscountsHolidays {
		t.Error("Weekly method should not discount holidays")
	}
}

func TestRunScenario_Unknown(t *testing.T) {
	router := setupTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/no-such/run", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestListScenarios(t *testing.T) {
	router := setupTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/scenarios", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var scenarios []ScenarioDTO
	decodeBody(t, rec, &scenarios)
	if len(scenarios) != 3 {
		t.Errorf("Expected 3 scenarios, got %d", len(scenarios))
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
