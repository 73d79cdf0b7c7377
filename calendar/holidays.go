package calendar

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY TABLE - Published holidays for exactly one year
// =============================================================================

// Holiday is one entry of a published holiday list.
type Holiday struct {
	Date Date
	Name string
	Kind string // "nacional", "regional", ...
}

// HolidayTable is the ordered set of published holidays for a single year,
// keyed by ISO date for O(1) lookup. It is built once at startup and never
// mutated, so it is safe to share across concurrent computations.
type HolidayTable struct {
	year    int
	byISO   map[string]Holiday
	ordered []Holiday
}

// NewHolidayTable builds a table for the given year. Every holiday must fall
// inside that year and dates must be unique.
func NewHolidayTable(year int, holidays []Holiday) (*HolidayTable, error) {
	t := &HolidayTable{
		year:  year,
		byISO: make(map[string]Holiday, len(holidays)),
	}
	for _, h := range holidays {
		if h.Date.Year() != year {
			return nil, fmt.Errorf("holiday %q (%s) is outside year %d", h.Name, h.Date, year)
		}
		key := h.Date.ISO()
		if _, dup := t.byISO[key]; dup {
			return nil, fmt.Errorf("duplicate holiday date %s", key)
		}
		t.byISO[key] = h
		t.ordered = append(t.ordered, h)
	}
	sort.Slice(t.ordered, func(i, j int) bool { return t.ordered[i].Date.Before(t.ordered[j].Date) })
	return t, nil
}

// Year returns the year this table covers.
func (t *HolidayTable) Year() int {
	if t == nil {
		return 0
	}
	return t.year
}

// Lookup returns the holiday on the given date, if any. A nil table, or a
// date outside the table's year, simply finds nothing; classification stays
// a total function over all dates.
func (t *HolidayTable) Lookup(d Date) (Holiday, bool) {
	if t == nil {
		return Holiday{}, false
	}
	h, ok := t.byISO[d.ISO()]
	return h, ok
}

// Holidays returns the holidays in date order. The returned slice is a copy.
func (t *HolidayTable) Holidays() []Holiday {
	if t == nil {
		return nil
	}
	out := make([]Holiday, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// InMonth returns the holidays falling in the given month, in date order.
func (t *HolidayTable) InMonth(month time.Month) []Holiday {
	if t == nil {
		return nil
	}
	var out []Holiday
	for _, h := range t.ordered {
		if h.Date.Month() == month {
			out = append(out, h)
		}
	}
	return out
}

// =============================================================================
// PERU 2025 - Built-in published list
// =============================================================================

// Peru2025 returns the national holiday table for Peru, 2025, per the
// published list of paid mandatory rest days.
func Peru2025() *HolidayTable {
	entries := []struct {
		date string
		name string
	}{
		{"2025-01-01", "Año Nuevo"},
		{"2025-04-17", "Jueves Santo"},
		{"2025-04-18", "Viernes Santo"},
		{"2025-05-01", "Día del Trabajo"},
		{"2025-06-29", "San Pedro y San Pablo"},
		{"2025-07-23", "Día de la Fuerza Aérea del Perú"},
		{"2025-07-28", "Fiestas Patrias (Día 1)"},
		{"2025-07-29", "Fiestas Patrias (Día 2)"},
		{"2025-08-06", "Batalla de Junín"},
		{"2025-08-30", "Santa Rosa de Lima"},
		{"2025-10-08", "Combate de Angamos"},
		{"2025-11-01", "Día de Todos los Santos"},
		{"2025-12-08", "Inmaculada Concepción"},
		{"2025-12-09", "Batalla de Ayacucho"},
		{"2025-12-25", "Navidad"},
	}

	holidays := make([]Holiday, 0, len(entries))
	for _, e := range entries {
		d, err := ParseDate(e.date)
		if err != nil {
			panic(fmt.Sprintf("built-in holiday list: %v", err))
		}
		holidays = append(holidays, Holiday{Date: d, Name: e.name, Kind: "nacional"})
	}

	table, err := NewHolidayTable(2025, holidays)
	if err != nil {
		panic(fmt.Sprintf("built-in holiday list: %v", err))
	}
	return table
}
