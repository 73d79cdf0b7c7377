/*
Package recovery computes the owed / repaid balance for an employee who
missed a month of work and is returning the hours as extra daily minutes.

PURPOSE:
  Three calculations, each a pure function over immutable inputs:

    ComputeDebt       owed minutes for the missed month (daily or weekly method)
    ComputeRepayment  minutes returned over a date range at a daily rate
    ComputeBalance    net pending, progress state, year-end projection

KEY CONCEPTS:
  - Minutes are the canonical integer unit. Hours are derived decimals:
    fractional jornadas (6.5 h/day) must not pick up float error on the
    sixty-times conversion, so hour arithmetic runs on decimal.Decimal.
  - The daily method discounts holidays that land on Monday-Friday because
    those days were never owed. The weekly method deliberately does not;
    the asymmetry is the documented reason the daily method is preferred.
  - Prior credit (minutes banked before the repayment period) is applied
    exactly once, when computing the pending balance.

DETERMINISM:
  Nothing here reads a clock. The cutoff date is always caller-supplied, so
  identical inputs always produce structurally identical results.
*/
package recovery

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quipu/recovery-engine/calendar"
)

// =============================================================================
// METHOD - Debt accounting method
// =============================================================================

type Method string

const (
	// MethodDaily multiplies daily hours by the month's effective working
	// days. Recommended: it inherently discounts working holidays.
	MethodDaily Method = "daily"

	// MethodWeekly multiplies weekly hours by the month's calendar weeks.
	// Does not discount holidays; usually less favorable to the employee.
	MethodWeekly Method = "weekly"
)

// ParseMethod validates a method flag.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodDaily:
		return MethodDaily, nil
	case MethodWeekly:
		return MethodWeekly, nil
	default:
		return "", &calendar.InvalidArgumentError{Field: "method", Value: s, Err: calendar.ErrInvalidMethod}
	}
}

// =============================================================================
// RESULTS
// =============================================================================

// Explanation is the method-specific narrative attached to a DebtResult so
// a report can show how the number came out, not just the number.
type Explanation struct {
	Name        string
	Formula     string
	Calculation string // formula with the actual values substituted
	Rationale   string

	DiscountsHolidays  bool
	HolidaysDiscounted int
	HoursDiscounted    decimal.Decimal
	MinutesDiscounted  int

	// HoursWithoutDiscount is what the month would cost if working holidays
	// were not discounted. For the weekly method it equals the total.
	HoursWithoutDiscount decimal.Decimal
}

// DebtResult is the owed amount for the missed month. TotalMinutes is
// canonical; hours and the H:MM string are derived from it.
type DebtResult struct {
	Month     time.Month
	MonthName string
	Year      int

	Profile *calendar.MonthProfile

	Method        Method
	DailyHours    decimal.Decimal
	WeeklyHours   decimal.Decimal
	MinutesPerDay int

	TotalMinutes   int
	TotalHours     decimal.Decimal
	TotalFormatted string

	Explanation Explanation
}

// RepaymentResult is the accumulated repayment over an inclusive date range.
// Degenerate input (start after cutoff) is reported in-band through Err
// with every count zero; it is user input to display, not a failure.
type RepaymentResult struct {
	Start  calendar.Date
	Cutoff calendar.Date

	WorkingDays      []calendar.Day
	WorkingDayCount  int
	DailyRateMinutes int

	TotalMinutes   int
	TotalHours     decimal.Decimal
	TotalFormatted string

	Err string // empty when the range was valid
}

// Degenerate reports whether the result is the flagged zero result.
func (r RepaymentResult) Degenerate() bool { return r.Err != "" }

// State classifies repayment progress. Terminal per computation; there is
// no stored history to transition from.
type State string

const (
	StateCompleted    State = "completed"
	StateAchievable   State = "on_track_achievable"
	StateInsufficient State = "on_track_insufficient"
)

// BalanceResult nets owed against repaid plus prior credit and projects
// completion within the reference year.
type BalanceResult struct {
	OwedMinutes          int
	RepaidMinutes        int
	PriorCreditMinutes   int
	TotalCreditedMinutes int

	// PendingMinutes may be negative: a surplus in the employee's favor,
	// preserved unclamped for reporting.
	PendingMinutes   int
	PendingHours     decimal.Decimal
	PendingFormatted string // H:MM of the absolute value

	State State

	RemainingWorkingDays int
	AchievableMinutes    int
	AchievableHours      decimal.Decimal

	// DaysNeeded is ceil(pending / rate); zero once completed.
	DaysNeeded int

	// ProjectedCompletion is nil when already completed or when the gap
	// cannot close by December 31 at the current rate.
	ProjectedCompletion *calendar.Date

	// PercentComplete is clamped to [0, 100].
	PercentComplete decimal.Decimal
}

// =============================================================================
// MINUTE / HOUR CONVERSIONS
// =============================================================================

var sixty = decimal.NewFromInt(60)

// HoursFromMinutes converts integer minutes to decimal hours.
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// FormatHHMM renders minutes as a signed H:MM string, e.g. 132:00 or -7:30.
func FormatHHMM(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
