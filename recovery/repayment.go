package recovery

import (
	"github.com/shopspring/decimal"

	"github.com/quipu/recovery-engine/calendar"
)

// =============================================================================
// REPAYMENT ACCUMULATION - Minutes returned over a date range
// =============================================================================

// ComputeRepayment sums the repayment over the inclusive [start, cutoff]
// range: every working day in the range contributes dailyRateMinutes.
//
// This function never returns an error. A start after the cutoff is a
// normal user-input shape (a mis-set date picker), so it yields the flagged
// zero result instead, letting a caller render it without special casing.
func ComputeRepayment(start, cutoff calendar.Date, dailyRateMinutes int, table *calendar.HolidayTable) RepaymentResult {
	if start.After(cutoff) {
		return RepaymentResult{
			Start:            start,
			Cutoff:           cutoff,
			DailyRateMinutes: dailyRateMinutes,
			TotalHours:       decimal.Zero,
			TotalFormatted:   FormatHHMM(0),
			Err:              "la fecha de inicio de devolución es posterior a la fecha de corte",
		}
	}

	workingDays := calendar.WorkingDaysInRange(start, cutoff, table)
	totalMinutes := len(workingDays) * dailyRateMinutes

	return RepaymentResult{
		Start:            start,
		Cutoff:           cutoff,
		WorkingDays:      workingDays,
		WorkingDayCount:  len(workingDays),
		DailyRateMinutes: dailyRateMinutes,
		TotalMinutes:     totalMinutes,
		TotalHours:       HoursFromMinutes(totalMinutes),
		TotalFormatted:   FormatHHMM(totalMinutes),
	}
}
