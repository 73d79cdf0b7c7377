package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Immutable day-granularity date value
// =============================================================================

// Date is a naive calendar date: no time of day, no timezone. Internally it
// is pinned to midnight UTC so that comparisons and day arithmetic never
// cross a DST boundary. All operations return new values; a Date stored in a
// result list can never be changed by a later loop iteration.
type Date struct {
	t time.Time
}

// NewDate builds a Date for the given calendar day. Out-of-range components
// are normalized the way time.Date normalizes them, so NewDate(2025,
// time.February, 0) is the last day of January 2025.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Date) NextDay() Date      { return Date{t: d.t.AddDate(0, 0, 1)} }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ISO returns the date as YYYY-MM-DD. This is the canonical form used as
// the holiday table key.
func (d Date) ISO() string { return d.t.Format("2006-01-02") }

// Format returns the date as DD/MM/YYYY, the form used in reports.
func (d Date) Format() string { return d.t.Format("02/01/2006") }

func (d Date) String() string { return d.ISO() }

// =============================================================================
// YEAR / MONTH BOUNDARIES
// =============================================================================

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

// EndOfMonth returns the last day of the month using proleptic calendar
// arithmetic (day zero of the following month), correct for leap Februaries.
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 0)
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month).Day()
}

// =============================================================================
// DISPLAY NAMES - fixed es-PE calendar
// =============================================================================
// The published holiday list this engine ships with is the Peruvian national
// calendar, so day and month names follow it. Exhaustive switches keep an
// out-of-range value from ever producing a silent empty name.

// WeekdayName returns the Spanish name for a weekday.
func WeekdayName(w time.Weekday) string {
	switch w {
	case time.Sunday:
		return "Domingo"
	case time.Monday:
		return "Lunes"
	case time.Tuesday:
		return "Martes"
	case time.Wednesday:
		return "Miércoles"
	case time.Thursday:
		return "Jueves"
	case time.Friday:
		return "Viernes"
	case time.Saturday:
		return "Sábado"
	default:
		panic(fmt.Sprintf("invalid weekday %d", w))
	}
}

// WeekdayShort returns the three-letter Spanish abbreviation for a weekday.
func WeekdayShort(w time.Weekday) string {
	switch w {
	case time.Sunday:
		return "Dom"
	case time.Monday:
		return "Lun"
	case time.Tuesday:
		return "Mar"
	case time.Wednesday:
		return "Mié"
	case time.Thursday:
		return "Jue"
	case time.Friday:
		return "Vie"
	case time.Saturday:
		return "Sáb"
	default:
		panic(fmt.Sprintf("invalid weekday %d", w))
	}
}

// MonthName returns the Spanish name for a month.
func MonthName(m time.Month) string {
	switch m {
	case time.January:
		return "Enero"
	case time.February:
		return "Febrero"
	case time.March:
		return "Marzo"
	case time.April:
		return "Abril"
	case time.May:
		return "Mayo"
	case time.June:
		return "Junio"
	case time.July:
		return "Julio"
	case time.August:
		return "Agosto"
	case time.September:
		return "Septiembre"
	case time.October:
		return "Octubre"
	case time.November:
		return "Noviembre"
	case time.December:
		return "Diciembre"
	default:
		panic(fmt.Sprintf("invalid month %d", m))
	}
}
