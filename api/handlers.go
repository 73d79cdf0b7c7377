/*
handlers.go - HTTP handlers for the recovery calculation engine

PURPOSE:
  Exposes the engine via REST. Handlers parse and validate input, call the
  pure calculation functions, and serialize results. The combined report
  endpoint additionally persists a snapshot.

ENDPOINTS:
  Calendars:
    GET    /api/calendars              List stored calendars
    POST   /api/calendars              Upload a calendar definition
    GET    /api/calendars/{year}       Holiday list for a year

  Calculations:
    GET    /api/months/{year}/{month}  Month profile
    POST   /api/debt                   Owed minutes for a missed month
    POST   /api/repayment              Repayment over a range
    POST   /api/balance                Netted balance and projection

  Reports:
    POST   /api/reports                Combined computation + snapshot
    GET    /api/reports                List snapshots
    GET    /api/reports/{id}           Fetch a snapshot

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/{id}/run     Run a demo scenario

ERROR HANDLING:
  - 400: invalid arguments (engine InvalidArgument family, bad JSON, bad dates)
  - 404: unknown calendar year, snapshot id, scenario id
  - 500: storage failures
  A degenerate repayment range is NOT an error: it returns 200 with the
  flagged zero result, as the engine defines it.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/quipu/recovery-engine/calendar"
	"github.com/quipu/recovery-engine/factory"
	"github.com/quipu/recovery-engine/recovery"
	"github.com/quipu/recovery-engine/store/sqlite"
)

// Defaults fill fields a request leaves at their zero value.
type Defaults struct {
	JornadaHours     float64
	Method           string
	DailyRateMinutes int
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Log      *logrus.Logger
	Defaults Defaults

	mu        sync.RWMutex
	calendars map[int]*calendar.HolidayTable
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store, log *logrus.Logger, defaults Defaults) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Store:     store,
		Log:       log,
		Defaults:  defaults,
		calendars: make(map[int]*calendar.HolidayTable),
	}
}

// LoadCalendars loads every stored calendar into memory and seeds the
// published Peru 2025 list when no calendar for 2025 exists yet.
func (h *Handler) LoadCalendars(ctx context.Context) error {
	stored, err := h.Store.ListCalendars(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for year, configJSON := range stored {
		table, err := factory.ParseCalendar(configJSON)
		if err != nil {
			h.Log.WithField("year", year).WithError(err).Warn("skipping invalid stored calendar")
			continue
		}
		h.calendars[year] = table
	}

	if _, ok := h.calendars[2025]; !ok {
		if err := h.Store.SaveCalendar(ctx, 2025, factory.Peru2025JSON()); err != nil {
			return fmt.Errorf("seed 2025 calendar: %w", err)
		}
		h.calendars[2025] = calendar.Peru2025()
		h.Log.Info("seeded built-in Peru 2025 holiday calendar")
	}
	return nil
}

// tableFor returns the loaded calendar for a year, or nil. Classification
// treats a nil table as "no holidays", which keeps out-of-table years valid.
func (h *Handler) tableFor(year int) *calendar.HolidayTable {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.calendars[year]
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]CalendarDTO, 0, len(h.calendars))
	for _, table := range h.calendars {
		out = append(out, toCalendarDTO(table))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	table := h.tableFor(year)
	if table == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no calendar stored for %d", year))
		return
	}
	writeJSON(w, http.StatusOK, toCalendarDTO(table))
}

func (h *Handler) UploadCalendar(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := factory.ParseCalendar(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.SaveCalendar(r.Context(), table.Year(), body); err != nil {
		h.Log.WithError(err).Error("save calendar")
		writeError(w, http.StatusInternalServerError, "failed to store calendar")
		return
	}

	h.mu.Lock()
	h.calendars[table.Year()] = table
	h.mu.Unlock()

	h.Log.WithFields(logrus.Fields{
		"year":     table.Year(),
		"holidays": len(table.Holidays()),
	}).Info("calendar stored")
	writeJSON(w, http.StatusCreated, toCalendarDTO(table))
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	profile, err := calendar.ComputeMonthProfile(month, year, h.tableFor(year))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthProfileDTO(profile))
}

func (h *Handler) ComputeDebt(w http.ResponseWriter, r *http.Request) {
	var req DebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.debtFor(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtDTO(result))
}

func (h *Handler) ComputeRepayment(w http.ResponseWriter, r *http.Request) {
	var req RepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.repaymentFor(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toRepaymentDTO(result))
}

func (h *Handler) ComputeBalance(w http.ResponseWriter, r *http.Request) {
	var req BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.buildReport(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Balance)
}

// =============================================================================
// REPORT ENDPOINTS
// =============================================================================

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.buildReport(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	report.ID = uuid.NewString()
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	requestJSON, _ := json.Marshal(req)
	resultJSON, _ := json.Marshal(report)
	snap := sqlite.ReportSnapshot{
		ID:          report.ID,
		CreatedAt:   time.Now().UTC(),
		RequestJSON: string(requestJSON),
		ResultJSON:  string(resultJSON),
	}
	if err := h.Store.SaveReport(r.Context(), snap); err != nil {
		h.Log.WithError(err).Error("save report snapshot")
		writeError(w, http.StatusInternalServerError, "failed to store report")
		return
	}

	h.Log.WithFields(logrus.Fields{
		"report_id": report.ID,
		"state":     report.Balance.State,
		"pending":   report.Balance.PendingMinutes,
	}).Info("report generated")
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Store.ListReports(r.Context(), 50)
	if err != nil {
		h.Log.WithError(err).Error("list report snapshots")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	out := make([]ReportSummaryDTO, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, ReportSummaryDTO{
			ID:        s.ID,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.Store.GetReport(r.Context(), id)
	if errors.Is(err, sqlite.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("get report snapshot")
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	var report ReportDTO
	if err := json.Unmarshal([]byte(snap.ResultJSON), &report); err != nil {
		writeError(w, http.StatusInternalServerError, "stored report is unreadable")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// REPORT ASSEMBLY
// =============================================================================

func (h *Handler) debtFor(req DebtRequest) (*recovery.DebtResult, error) {
	method := req.Method
	if method == "" {
		method = h.Defaults.Method
	}
	jornada := req.JornadaHours
	if jornada == 0 {
		jornada = h.Defaults.JornadaHours
	}
	return recovery.ComputeDebt(req.Month, req.Year,
		decimal.NewFromFloat(jornada), recovery.Method(method), h.tableFor(req.Year))
}

func (h *Handler) repaymentFor(req RepaymentRequest) (recovery.RepaymentResult, error) {
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return recovery.RepaymentResult{}, err
	}
	cutoff, err := calendar.ParseDate(req.CutoffDate)
	if err != nil {
		return recovery.RepaymentResult{}, err
	}

	rate := req.DailyRateMinutes
	if rate == 0 {
		rate = h.Defaults.DailyRateMinutes
	}
	return recovery.ComputeRepayment(start, cutoff, rate, h.tableFor(start.Year())), nil
}

func (h *Handler) buildReport(req ReportRequest) (*ReportDTO, error) {
	debt, err := h.debtFor(req.Debt)
	if err != nil {
		return nil, err
	}

	repayment, err := h.repaymentFor(req.Repayment)
	if err != nil {
		return nil, err
	}

	balance, err := recovery.ComputeBalance(debt, repayment,
		req.PriorCreditMinutes, repayment.DailyRateMinutes, debt.Year, h.tableFor(debt.Year))
	if err != nil {
		return nil, err
	}

	return &ReportDTO{
		Profile:   toMonthProfileDTO(debt.Profile),
		Debt:      toDebtDTO(debt),
		Repayment: toRepaymentDTO(repayment),
		Balance:   toBalanceDTO(balance),
	}, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps engine errors to HTTP: malformed input is 400,
// anything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	if calendar.IsInvalidArgument(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func readBody(r *http.Request) (string, error) {
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	if len(buf) == 0 {
		return "", fmt.Errorf("empty request body")
	}
	return string(buf), nil
}
