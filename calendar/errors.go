/*
errors.go - Invalid-argument errors for the calculation engine

PURPOSE:
  All failure in this engine is input validation: there is no I/O, network
  or resource failure mode. Each sentinel names one malformed input; the
  structured InvalidArgumentError carries which field held what value.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, calendar.ErrInvalidMonth) { ... }

  HTTP layers map the whole family at once:

    if calendar.IsInvalidArgument(err) { status = 400 }
*/
package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonth is returned when a month is outside 1-12.
	ErrInvalidMonth = errors.New("month out of range 1-12")

	// ErrInvalidJornada is returned for a zero or negative workday length.
	ErrInvalidJornada = errors.New("jornada must be positive")

	// ErrInvalidMethod is returned for a method flag other than daily/weekly.
	ErrInvalidMethod = errors.New("unknown calculation method")

	// ErrInvalidRate is returned for a non-positive daily repayment rate
	// where a projection must divide by it.
	ErrInvalidRate = errors.New("daily repayment rate must be positive")

	// ErrNegativeCredit is returned for a negative prior-credit amount.
	ErrNegativeCredit = errors.New("prior credit cannot be negative")
)

// =============================================================================
// STRUCTURED ERROR
// =============================================================================

// InvalidArgumentError reports which argument was malformed and why.
type InvalidArgumentError struct {
	Field string
	Value any
	Err   error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

// IsInvalidArgument reports whether the error is any malformed-input error.
// Retrying cannot fix these; callers should surface them to the user.
func IsInvalidArgument(err error) bool {
	var inv *InvalidArgumentError
	return errors.As(err, &inv) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidJornada) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrNegativeCredit)
}
