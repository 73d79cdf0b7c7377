/*
Package factory converts JSON holiday-calendar definitions into
calendar.HolidayTable values.

PURPOSE:
  Holiday lists are configuration, not code: HR publishes the year's list
  once and hosts load it at startup. The factory validates the document
  (year match, ISO dates, no duplicates) and builds the immutable table.

JSON SCHEMA:
  {
    "year": 2025,
    "holidays": [
      {"date": "2025-01-01", "name": "Año Nuevo", "type": "nacional"},
      ...
    ]
  }

USAGE:
  table, err := factory.ParseCalendar(jsonStr)

  // Or seed from the built-in published list:
  jsonStr := factory.Peru2025JSON()

SEE ALSO:
  - calendar/holidays.go: HolidayTable type and built-in Peru 2025 table
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/quipu/recovery-engine/calendar"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a one-year holiday calendar.
type CalendarJSON struct {
	Year     int           `json:"year"`
	Holidays []HolidayJSON `json:"holidays"`
}

// HolidayJSON is one holiday entry.
type HolidayJSON struct {
	Date string `json:"date"` // ISO-8601
	Name string `json:"name"`
	Kind string `json:"type,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseCalendar builds a HolidayTable from a JSON calendar definition.
func ParseCalendar(data string) (*calendar.HolidayTable, error) {
	var doc CalendarJSON
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}
	return BuildCalendar(doc)
}

// BuildCalendar converts an already-decoded definition into a HolidayTable.
func BuildCalendar(doc CalendarJSON) (*calendar.HolidayTable, error) {
	if doc.Year == 0 {
		return nil, fmt.Errorf("parse calendar: missing year")
	}

	holidays := make([]calendar.Holiday, 0, len(doc.Holidays))
	for _, h := range doc.Holidays {
		date, err := calendar.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("parse calendar: holiday %q: %w", h.Name, err)
		}
		holidays = append(holidays, calendar.Holiday{Date: date, Name: h.Name, Kind: h.Kind})
	}

	table, err := calendar.NewHolidayTable(doc.Year, holidays)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}
	return table, nil
}

// CalendarToJSON serializes a HolidayTable back to its JSON definition.
func CalendarToJSON(table *calendar.HolidayTable) (string, error) {
	doc := CalendarJSON{Year: table.Year()}
	for _, h := range table.Holidays() {
		doc.Holidays = append(doc.Holidays, HolidayJSON{
			Date: h.Date.ISO(),
			Name: h.Name,
			Kind: h.Kind,
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize calendar: %w", err)
	}
	return string(out), nil
}

// Peru2025JSON returns the built-in published Peru 2025 list as a JSON
// definition, for seeding storage on first run.
func Peru2025JSON() string {
	out, err := CalendarToJSON(calendar.Peru2025())
	if err != nil {
		panic(err) // built-in table always serializes
	}
	return out
}
