package calendar

// =============================================================================
// RANGE WALKS - Working-day enumeration across arbitrary date ranges
// =============================================================================

// DaysInRange classifies every date from start through end inclusive, in
// ascending order. The walk increments one day at a time, so ranges spanning
// month and year boundaries need no month table. start after end yields nil.
func DaysInRange(start, end Date, table *HolidayTable) []Day {
	var days []Day
	for d := start; d.BeforeOrEqual(end); d = d.NextDay() {
		days = append(days, Classify(d, table))
	}
	return days
}

// WorkingDaysInRange returns only the working days of the range, in order.
func WorkingDaysInRange(start, end Date, table *HolidayTable) []Day {
	var days []Day
	for d := start; d.BeforeOrEqual(end); d = d.NextDay() {
		if day := Classify(d, table); day.Working {
			days = append(days, day)
		}
	}
	return days
}

// RemainingWorkingDays returns the working days strictly after the given
// date through December 31 of the year. This is the projection horizon for
// balance calculations: a repayment can only be scheduled on these days.
func RemainingWorkingDays(after Date, year int, table *HolidayTable) []Day {
	end := EndOfYear(year)
	if !after.Before(end) {
		return nil
	}
	return WorkingDaysInRange(after.NextDay(), end, table)
}
