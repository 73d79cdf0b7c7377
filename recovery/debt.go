package recovery

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quipu/recovery-engine/calendar"
)

// =============================================================================
// DEBT CALCULATION - Owed minutes for the missed month
// =============================================================================

var five = decimal.NewFromInt(5)

// ComputeDebt calculates the minutes owed for a missed month.
//
// The jornada argument is the workday length and its meaning depends on the
// method: hours per day for MethodDaily, hours per week for MethodWeekly.
// Both methods produce the same result shape so downstream consumers are
// method-agnostic.
func ComputeDebt(month, year int, jornada decimal.Decimal, method Method, table *calendar.HolidayTable) (*DebtResult, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if !jornada.IsPositive() {
		return nil, &calendar.InvalidArgumentError{Field: "jornada", Value: jornada.String(), Err: calendar.ErrInvalidJornada}
	}

	profile, err := calendar.ComputeMonthProfile(month, year, table)
	if err != nil {
		return nil, err
	}

	result := &DebtResult{
		Month:     profile.Month,
		MonthName: calendar.MonthName(profile.Month),
		Year:      year,
		Profile:   profile,
		Method:    method,
	}

	switch method {
	case MethodDaily:
		computeDailyDebt(result, profile, jornada)
	case MethodWeekly:
		computeWeeklyDebt(result, profile, jornada)
	}

	result.TotalHours = HoursFromMinutes(result.TotalMinutes)
	result.TotalFormatted = FormatHHMM(result.TotalMinutes)
	return result, nil
}

// computeDailyDebt: owed = working days x minutes per day. Working holidays
// are already excluded from the working-day count, so the discount shows up
// in the explanation only; it is never subtracted a second time.
func computeDailyDebt(result *DebtResult, profile *calendar.MonthProfile, dailyHours decimal.Decimal) {
	minutesPerDay := minutesFromHours(dailyHours)

	result.DailyHours = dailyHours
	result.WeeklyHours = dailyHours.Mul(five)
	result.MinutesPerDay = minutesPerDay
	result.TotalMinutes = profile.WorkingDayCount * minutesPerDay

	hoursDiscounted := dailyHours.Mul(decimal.NewFromInt(int64(profile.WorkingHolidayCount)))
	hoursWithoutDiscount := dailyHours.Mul(decimal.NewFromInt(int64(profile.MondayToFridayCount)))

	result.Explanation = Explanation{
		Name:    "Por DÍA (Recomendado)",
		Formula: "Horas Adeudadas = Horas por Día × Días Laborales Reales",
		Calculation: fmt.Sprintf("%s horas/día × %d días = %s horas",
			dailyHours.String(), profile.WorkingDayCount, HoursFromMinutes(result.TotalMinutes).StringFixed(2)),
		Rationale: "Los feriados se descuentan porque son días de descanso obligatorio: " +
			"el trabajador no debe recuperar días que por ley no estaba obligado a laborar.",
		DiscountsHolidays:    true,
		HolidaysDiscounted:   profile.WorkingHolidayCount,
		HoursDiscounted:      hoursDiscounted,
		MinutesDiscounted:    profile.WorkingHolidayCount * minutesPerDay,
		HoursWithoutDiscount: hoursWithoutDiscount,
	}
}

// computeWeeklyDebt: owed = calendar weeks x weekly hours. Holidays are NOT
// discounted under this method; the asymmetry with the daily method is
// intentional and must be preserved.
func computeWeeklyDebt(result *DebtResult, profile *calendar.MonthProfile, weeklyHours decimal.Decimal) {
	dailyHours := weeklyHours.Div(five)
	weeks := decimal.NewFromInt(int64(profile.WeeksInMonth))
	totalMinutes := int(weeklyHours.Mul(weeks).Mul(sixty).Round(0).IntPart())

	result.DailyHours = dailyHours
	result.WeeklyHours = weeklyHours
	result.MinutesPerDay = minutesFromHours(dailyHours)
	result.TotalMinutes = totalMinutes

	result.Explanation = Explanation{
		Name:    "Por SEMANA",
		Formula: "Horas Adeudadas = Horas por Semana × Semanas del Mes",
		Calculation: fmt.Sprintf("%s horas/semana × %d semanas = %s horas",
			weeklyHours.String(), profile.WeeksInMonth, HoursFromMinutes(totalMinutes).StringFixed(2)),
		Rationale: "Calcula sobre las semanas calendario del mes. No descuenta feriados, " +
			"lo cual puede resultar en más horas adeudadas.",
		DiscountsHolidays:    false,
		HolidaysDiscounted:   0,
		HoursDiscounted:      decimal.Zero,
		MinutesDiscounted:    0,
		HoursWithoutDiscount: HoursFromMinutes(totalMinutes),
	}
}

// minutesFromHours converts decimal hours to the nearest whole minute.
func minutesFromHours(hours decimal.Decimal) int {
	return int(hours.Mul(sixty).Round(0).IntPart())
}
