/*
scenarios.go - Canned demo computations

PURPOSE:
  Ready-made report requests that exercise the engine end to end without
  the caller composing a request body. Unlike real reports, running a
  scenario does not persist a snapshot.
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// builtinScenarios returns the demo scenarios in display order.
func builtinScenarios() []ScenarioDTO {
	return []ScenarioDTO{
		{
			ID:   "enero-diario",
			Name: "Enero 2025, método por día",
			Description: "Mes no asistido enero 2025 con jornada de 6 horas/día; " +
				"devolución de 30 min/día del 3 de febrero al 14 de marzo.",
			Request: ReportRequest{
				Debt: DebtRequest{Month: 1, Year: 2025, JornadaHours: 6, Method: "daily"},
				Repayment: RepaymentRequest{
					StartDate: "2025-02-03", CutoffDate: "2025-03-14", DailyRateMinutes: 30,
				},
			},
		},
		{
			ID:   "enero-semanal",
			Name: "Enero 2025, método por semana",
			Description: "Mismo mes con jornada de 30 horas/semana; el método semanal " +
				"no descuenta el feriado del 1 de enero.",
			Request: ReportRequest{
				Debt: DebtRequest{Month: 1, Year: 2025, JornadaHours: 30, Method: "weekly"},
				Repayment: RepaymentRequest{
					StartDate: "2025-02-03", CutoffDate: "2025-03-14", DailyRateMinutes: 30,
				},
			},
		},
		{
			ID:   "julio-feriados",
			Name: "Julio 2025, tres feriados laborales",
			Description: "Julio 2025 tiene tres feriados en días de semana (23, 28 y 29); " +
				"jornada de 8 horas/día, devolución de 60 min/día con 120 min a favor.",
			Request: ReportRequest{
				Debt: DebtRequest{Month: 7, Year: 2025, JornadaHours: 8, Method: "daily"},
				Repayment: RepaymentRequest{
					StartDate: "2025-08-01", CutoffDate: "2025-09-30", DailyRateMinutes: 60,
				},
				PriorCreditMinutes: 120,
			},
		},
	}
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, builtinScenarios())
}

func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, s := range builtinScenarios() {
		if s.ID == id {
			report, err := h.buildReport(s.Request)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, report)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown scenario")
}
