/*
Package calendar classifies calendar dates against a published holiday list
and aggregates them into the structures the recovery calculations consume.

PURPOSE:
  Everything here is pure date arithmetic: classify a date as weekend /
  holiday / working day, profile a whole month, and enumerate working days
  over an arbitrary range. No I/O, no clocks, no mutation after construction.

KEY CONCEPTS:
  - Date:         immutable day-granularity date value (date.go)
  - HolidayTable: published holidays for one year, ISO-keyed (holidays.go)
  - Day:          one classified calendar day (this file)
  - MonthProfile: aggregate classification of a whole month (month.go)
  - Range walks:  working-day enumeration across months/years (range.go)

CLASSIFICATION RULES:
  weekend      = Saturday or Sunday
  holiday      = listed in the HolidayTable for that exact date
  working day  = NOT weekend AND NOT holiday
  A holiday falling on a weekend is tagged as a holiday but is never a
  "working holiday": the day was already excluded as a weekend, so it must
  not be discounted a second time.

SEE ALSO:
  - recovery package: debt, repayment and balance calculations built on top
*/
package calendar

// Day is a single classified calendar day. Immutable once constructed.
type Day struct {
	Date         Date
	WeekdayName  string
	WeekdayShort string
	Weekend      bool
	Holiday     bool
	HolidayName string // empty when not a holiday
	Working     bool   // !Weekend && !Holiday

	// WorkingHoliday marks a holiday landing on Monday-Friday. Only these
	// reduce the working-day count; weekend holidays change nothing.
	WorkingHoliday bool
}

// Classify builds the Day record for a date. Pure and total: every date of
// every year classifies, whether or not the table covers it.
func Classify(d Date, table *HolidayTable) Day {
	holiday, isHoliday := table.Lookup(d)
	weekend := d.IsWeekend()

	return Day{
		Date:           d,
		WeekdayName:    WeekdayName(d.Weekday()),
		WeekdayShort:   WeekdayShort(d.Weekday()),
		Weekend:        weekend,
		Holiday:        isHoliday,
		HolidayName:    holiday.Name,
		Working:        !weekend && !isHoliday,
		WorkingHoliday: isHoliday && !weekend,
	}
}
