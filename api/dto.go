/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the API. These decouple the engine types from the
  wire contract: decimal hours are serialized as strings, dates as ISO
  strings, enum values as their flags.

NAMING CONVENTION:
  - *Request: request body types from clients
  - *DTO:     response types returned to clients

VALIDATION:
  Handlers validate; DTOs are pure data carriers. Invalid engine arguments
  surface as 400 responses built from the engine's own errors.

SEE ALSO:
  - handlers.go: conversion helpers and endpoints
*/
package api

import (
	"github.com/quipu/recovery-engine/calendar"
	"github.com/quipu/recovery-engine/recovery"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// DebtRequest asks for the owed hours of a missed month.
type DebtRequest struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	JornadaHours float64 `json:"jornada_hours"` // per day (daily) or per week (weekly)
	Method       string  `json:"method"`
}

// RepaymentRequest asks for the accumulated repayment over a date range.
type RepaymentRequest struct {
	StartDate        string `json:"start_date"`  // ISO-8601
	CutoffDate       string `json:"cutoff_date"` // ISO-8601, inclusive
	DailyRateMinutes int    `json:"daily_rate_minutes"`
}

// BalanceRequest nets a debt against a repayment. The projection horizon is
// December 31 of the debt year; the repayment's daily rate carries over.
type BalanceRequest struct {
	Debt               DebtRequest      `json:"debt"`
	Repayment          RepaymentRequest `json:"repayment"`
	PriorCreditMinutes int              `json:"prior_credit_minutes"`
}

// ReportRequest produces the combined report (profile, debt, repayment,
// balance) and persists a snapshot of it.
type ReportRequest = BalanceRequest

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// DayDTO is one classified calendar day.
type DayDTO struct {
	Date           string `json:"date"`
	Formatted      string `json:"formatted"`
	Weekday        string `json:"weekday"`
	WeekdayShort   string `json:"weekday_short"`
	Weekend        bool   `json:"weekend"`
	Holiday        bool   `json:"holiday"`
	HolidayName    string `json:"holiday_name,omitempty"`
	Working        bool   `json:"working"`
	WorkingHoliday bool   `json:"working_holiday"`
}

// MonthProfileDTO is the aggregate classification of a month.
type MonthProfileDTO struct {
	Month           int      `json:"month"`
	MonthName       string   `json:"month_name"`
	Year            int      `json:"year"`
	TotalDays       int      `json:"total_days"`
	WeekendDays     int      `json:"weekend_days"`
	MondayToFriday  int      `json:"monday_to_friday"`
	WorkingHolidays int      `json:"working_holidays"`
	WorkingDays     int      `json:"working_days"`
	WeeksInMonth    int      `json:"weeks_in_month"`
	Days            []DayDTO `json:"days"`
}

// ExplanationDTO narrates how a debt figure was produced.
type ExplanationDTO struct {
	Name                 string `json:"name"`
	Formula              string `json:"formula"`
	Calculation          string `json:"calculation"`
	Rationale            string `json:"rationale"`
	DiscountsHolidays    bool   `json:"discounts_holidays"`
	HolidaysDiscounted   int    `json:"holidays_discounted"`
	HoursDiscounted      string `json:"hours_discounted"`
	MinutesDiscounted    int    `json:"minutes_discounted"`
	HoursWithoutDiscount string `json:"hours_without_discount"`
}

// DebtDTO is the owed amount for the missed month.
type DebtDTO struct {
	Month          int            `json:"month"`
	MonthName      string         `json:"month_name"`
	Year           int            `json:"year"`
	Method         string         `json:"method"`
	DailyHours     string         `json:"daily_hours"`
	WeeklyHours    string         `json:"weekly_hours"`
	MinutesPerDay  int            `json:"minutes_per_day"`
	TotalMinutes   int            `json:"total_minutes"`
	TotalHours     string         `json:"total_hours"`
	TotalFormatted string         `json:"total_formatted"`
	Explanation    ExplanationDTO `json:"explanation"`
}

// RepaymentDTO is the accumulated repayment over a range. A degenerate
// range (start after cutoff) comes back with Error set and zero counts.
type RepaymentDTO struct {
	StartDate        string   `json:"start_date"`
	CutoffDate       string   `json:"cutoff_date"`
	WorkingDays      []DayDTO `json:"working_days"`
	WorkingDayCount  int      `json:"working_day_count"`
	DailyRateMinutes int      `json:"daily_rate_minutes"`
	TotalMinutes     int      `json:"total_minutes"`
	TotalHours       string   `json:"total_hours"`
	TotalFormatted   string   `json:"total_formatted"`
	Error            string   `json:"error,omitempty"`
}

// BalanceDTO is the netted balance and year-end projection.
type BalanceDTO struct {
	OwedMinutes          int     `json:"owed_minutes"`
	RepaidMinutes        int     `json:"repaid_minutes"`
	PriorCreditMinutes   int     `json:"prior_credit_minutes"`
	TotalCreditedMinutes int     `json:"total_credited_minutes"`
	PendingMinutes       int     `json:"pending_minutes"`
	PendingHours         string  `json:"pending_hours"`
	PendingFormatted     string  `json:"pending_formatted"`
	State                string  `json:"state"`
	RemainingWorkingDays int     `json:"remaining_working_days"`
	AchievableMinutes    int     `json:"achievable_minutes"`
	AchievableHours      string  `json:"achievable_hours"`
	DaysNeeded           int     `json:"days_needed"`
	ProjectedCompletion  *string `json:"projected_completion"` // ISO or null
	PercentComplete      float64 `json:"percent_complete"`
}

// ReportDTO is the combined computation, as persisted in a snapshot.
type ReportDTO struct {
	ID          string          `json:"id,omitempty"`
	GeneratedAt string          `json:"generated_at,omitempty"`
	Profile     MonthProfileDTO `json:"profile"`
	Debt        DebtDTO         `json:"debt"`
	Repayment   RepaymentDTO    `json:"repayment"`
	Balance     BalanceDTO      `json:"balance"`
}

// ReportSummaryDTO is a listing entry for stored snapshots.
type ReportSummaryDTO struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// HolidayDTO is one holiday entry of a calendar.
type HolidayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Name    string `json:"name"`
	Kind    string `json:"type,omitempty"`
	Weekend bool   `json:"weekend"`
}

// CalendarDTO is a stored holiday calendar.
type CalendarDTO struct {
	Year     int          `json:"year"`
	Holidays []HolidayDTO `json:"holidays"`
}

// ScenarioDTO describes a canned demo computation.
type ScenarioDTO struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Request     ReportRequest `json:"request"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toDayDTO(d calendar.Day) DayDTO {
	return DayDTO{
		Date:           d.Date.ISO(),
		Formatted:      d.Date.Format(),
		Weekday:        d.WeekdayName,
		WeekdayShort:   d.WeekdayShort,
		Weekend:        d.Weekend,
		Holiday:        d.Holiday,
		HolidayName:    d.HolidayName,
		Working:        d.Working,
		WorkingHoliday: d.WorkingHoliday,
	}
}

func toDayDTOs(days []calendar.Day) []DayDTO {
	out := make([]DayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, toDayDTO(d))
	}
	return out
}

func toMonthProfileDTO(p *calendar.MonthProfile) MonthProfileDTO {
	return MonthProfileDTO{
		Month:           int(p.Month),
		MonthName:       calendar.MonthName(p.Month),
		Year:            p.Year,
		TotalDays:       p.TotalDays,
		WeekendDays:     p.WeekendCount,
		MondayToFriday:  p.MondayToFridayCount,
		WorkingHolidays: p.WorkingHolidayCount,
		WorkingDays:     p.WorkingDayCount,
		WeeksInMonth:    p.WeeksInMonth,
		Days:            toDayDTOs(p.Days),
	}
}

func toDebtDTO(d *recovery.DebtResult) DebtDTO {
	return DebtDTO{
		Month:          int(d.Month),
		MonthName:      d.MonthName,
		Year:           d.Year,
		Method:         string(d.Method),
		DailyHours:     d.DailyHours.String(),
		WeeklyHours:    d.WeeklyHours.String(),
		MinutesPerDay:  d.MinutesPerDay,
		TotalMinutes:   d.TotalMinutes,
		TotalHours:     d.TotalHours.StringFixed(2),
		TotalFormatted: d.TotalFormatted,
		Explanation: ExplanationDTO{
			Name:                 d.Explanation.Name,
			Formula:              d.Explanation.Formula,
			Calculation:          d.Explanation.Calculation,
			Rationale:            d.Explanation.Rationale,
			DiscountsHolidays:    d.Explanation.DiscountsHolidays,
			HolidaysDiscounted:   d.Explanation.HolidaysDiscounted,
			HoursDiscounted:      d.Explanation.HoursDiscounted.StringFixed(2),
			MinutesDiscounted:    d.Explanation.MinutesDiscounted,
			HoursWithoutDiscount: d.Explanation.HoursWithoutDiscount.StringFixed(2),
		},
	}
}

func toRepaymentDTO(r recovery.RepaymentResult) RepaymentDTO {
	return RepaymentDTO{
		StartDate:        r.Start.ISO(),
		CutoffDate:       r.Cutoff.ISO(),
		WorkingDays:      toDayDTOs(r.WorkingDays),
		WorkingDayCount:  r.WorkingDayCount,
		DailyRateMinutes: r.DailyRateMinutes,
		TotalMinutes:     r.TotalMinutes,
		TotalHours:       r.TotalHours.StringFixed(2),
		TotalFormatted:   r.TotalFormatted,
		Error:            r.Err,
	}
}

func toBalanceDTO(b *recovery.BalanceResult) BalanceDTO {
	var projected *string
	if b.ProjectedCompletion != nil {
		iso := b.ProjectedCompletion.ISO()
		projected = &iso
	}
	percent, _ := b.PercentComplete.Round(2).Float64()

	return BalanceDTO{
		OwedMinutes:          b.OwedMinutes,
		RepaidMinutes:        b.RepaidMinutes,
		PriorCreditMinutes:   b.PriorCreditMinutes,
		TotalCreditedMinutes: b.TotalCreditedMinutes,
		PendingMinutes:       b.PendingMinutes,
		PendingHours:         b.PendingHours.StringFixed(2),
		PendingFormatted:     b.PendingFormatted,
		State:                string(b.State),
		RemainingWorkingDays: b.RemainingWorkingDays,
		AchievableMinutes:    b.AchievableMinutes,
		AchievableHours:      b.AchievableHours.StringFixed(2),
		DaysNeeded:           b.DaysNeeded,
		ProjectedCompletion:  projected,
		PercentComplete:      percent,
	}
}

func toCalendarDTO(t *calendar.HolidayTable) CalendarDTO {
	dto := CalendarDTO{Year: t.Year()}
	for _, h := range t.Holidays() {
		dto.Holidays = append(dto.Holidays, HolidayDTO{
			Date:    h.Date.ISO(),
			Weekday: calendar.WeekdayName(h.Date.Weekday()),
			Name:    h.Name,
			Kind:    h.Kind,
			Weekend: h.Date.IsWeekend(),
		})
	}
	return dto
}
