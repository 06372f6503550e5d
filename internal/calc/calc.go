// Package calc holds the numeric and validation helpers shared by the two
// calculation engines.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedRequest signals a request body that could not be decoded into
// the expected shape at all.
var ErrMalformedRequest = errors.New("Invalid request format")

// ValidationError reports a rejected input field. Handlers return its
// message verbatim with a 400 status.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Number extracts a numeric value from a decoded JSON field. Numeric-looking
// strings are rejected; the contract requires strict types.
func Number(raw any) (float64, bool) {
	v, ok := raw.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NonNegativeNumber reads a field from a decoded JSON object. The field must
// be present, numeric, and zero or greater.
func NonNegativeNumber(body map[string]any, field string) (float64, bool) {
	raw, ok := body[field]
	if !ok {
		return 0, false
	}
	v, ok := Number(raw)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// Round2 rounds to two decimal places, the resolution all monetary and
// percentage outputs are reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
