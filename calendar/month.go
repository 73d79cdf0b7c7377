package calendar

import "time"

// =============================================================================
// MONTH PROFILE - Aggregate classification of one calendar month
// =============================================================================

// MonthProfile is the full classification of one (month, year): every day in
// order, the working-day subsequence, and the aggregate counts the debt
// calculation needs. Built fresh per request; never cached or mutated.
//
// Invariants:
//
//	WorkingDayCount     == MondayToFridayCount - WorkingHolidayCount
//	TotalDays           == WeekendCount + MondayToFridayCount
type MonthProfile struct {
	Month time.Month
	Year  int

	Days        []Day // every calendar day, ascending
	WorkingDays []Day // the Working subsequence, same order

	TotalDays           int
	WeekendCount        int
	MondayToFridayCount int
	WorkingHolidayCount int
	WorkingDayCount     int

	// WeeksInMonth = ceil(TotalDays / 7), used by the weekly debt method.
	WeeksInMonth int
}

// ComputeMonthProfile classifies every day of the month. The month is given
// as 1..12; anything else is an invalid argument.
func ComputeMonthProfile(month, year int, table *HolidayTable) (*MonthProfile, error) {
	if month < 1 || month > 12 {
		return nil, &InvalidArgumentError{Field: "month", Value: month, Err: ErrInvalidMonth}
	}

	m := time.Month(month)
	totalDays := DaysInMonth(year, m)

	profile := &MonthProfile{
		Month:        m,
		Year:         year,
		Days:         make([]Day, 0, totalDays),
		TotalDays:    totalDays,
		WeeksInMonth: (totalDays + 6) / 7,
	}

	for dayNum := 1; dayNum <= totalDays; dayNum++ {
		day := Classify(NewDate(year, m, dayNum), table)
		profile.Days = append(profile.Days, day)

		if day.Weekend {
			profile.WeekendCount++
		} else {
			profile.MondayToFridayCount++
		}
		if day.WorkingHoliday {
			profile.WorkingHolidayCount++
		}
		if day.Working {
			profile.WorkingDays = append(profile.WorkingDays, day)
			profile.WorkingDayCount++
		}
	}

	return profile, nil
}

// WorkingHolidays returns the holidays of the month that landed on
// Monday-Friday, i.e. the ones that actually reduced the working-day count.
func (p *MonthProfile) WorkingHolidays() []Day {
	var out []Day
	for _, d := range p.Days {
		if d.WorkingHoliday {
			out = append(out, d)
		}
	}
	return out
}
