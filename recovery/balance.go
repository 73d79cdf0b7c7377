package recovery

import (
	"github.com/shopspring/decimal"

	"github.com/quipu/recovery-engine/calendar"
)

// =============================================================================
// BALANCE PROJECTION - Net pending and year-end completion projection
// =============================================================================

var hundred = decimal.NewFromInt(100)

// ComputeBalance nets owed minutes against repaid plus prior credit and
// projects whether the remainder can close by December 31 of the reference
// year at the current daily rate.
//
// Prior credit participates exactly once, in the pending computation; it
// does not also inflate the achievability check.
func ComputeBalance(debt *DebtResult, repayment RepaymentResult, priorCreditMinutes, dailyRateMinutes, year int, table *calendar.HolidayTable) (*BalanceResult, error) {
	if dailyRateMinutes <= 0 {
		return nil, &calendar.InvalidArgumentError{Field: "dailyRateMinutes", Value: dailyRateMinutes, Err: calendar.ErrInvalidRate}
	}
	if priorCreditMinutes < 0 {
		return nil, &calendar.InvalidArgumentError{Field: "priorCreditMinutes", Value: priorCreditMinutes, Err: calendar.ErrNegativeCredit}
	}

	credited := repayment.TotalMinutes + priorCreditMinutes
	pending := debt.TotalMinutes - credited

	remaining := calendar.RemainingWorkingDays(repayment.Cutoff, year, table)
	achievable := len(remaining) * dailyRateMinutes

	result := &BalanceResult{
		OwedMinutes:          debt.TotalMinutes,
		RepaidMinutes:        repayment.TotalMinutes,
		PriorCreditMinutes:   priorCreditMinutes,
		TotalCreditedMinutes: credited,
		PendingMinutes:       pending,
		PendingHours:         HoursFromMinutes(pending),
		PendingFormatted:     FormatHHMM(abs(pending)),
		RemainingWorkingDays: len(remaining),
		AchievableMinutes:    achievable,
		AchievableHours:      HoursFromMinutes(achievable),
		PercentComplete:      percentComplete(credited, debt.TotalMinutes),
	}

	// A zero-debt month is trivially complete; pending <= 0 is a surplus,
	// preserved unclamped above.
	if debt.TotalMinutes == 0 || pending <= 0 {
		result.State = StateCompleted
		return result, nil
	}

	// ceil(pending / rate)
	result.DaysNeeded = (pending + dailyRateMinutes - 1) / dailyRateMinutes

	if achievable >= pending {
		result.State = StateAchievable
	} else {
		result.State = StateInsufficient
	}

	// Walk the remaining working days; the day the running count reaches
	// DaysNeeded is the projected completion. Past the horizon it stays nil.
	if result.DaysNeeded <= len(remaining) {
		date := remaining[result.DaysNeeded-1].Date
		result.ProjectedCompletion = &date
	}

	return result, nil
}

// percentComplete returns credited/owed as a percentage clamped to [0, 100].
// Zero owed is treated as fully complete rather than a division error.
func percentComplete(credited, owed int) decimal.Decimal {
	if owed == 0 {
		return hundred
	}
	pct := decimal.NewFromInt(int64(credited)).Div(decimal.NewFromInt(int64(owed))).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
