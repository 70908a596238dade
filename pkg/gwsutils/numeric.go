package gwsutils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/guregu/null"
)

var ErrNotNumeric = errors.New("not a number")

// ParseMeasurement converts a raw CSV cell into a measurement.
// Empty cells and NaN are missing without an error.
// Anything else that is not a finite number is missing and reported with ErrNotNumeric.
func ParseMeasurement(raw string) (null.Float, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return null.Float{}, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return null.Float{}, ErrNotNumeric
	}
	if math.IsNaN(f) {
		return null.Float{}, nil
	}
	// No JSON representation, treat like garbage
	if math.IsInf(f, 0) {
		return null.Float{}, ErrNotNumeric
	}
	return null.FloatFrom(f), nil
}

// FormatMeasurement is the inverse of ParseMeasurement, missing becomes an empty cell.
func FormatMeasurement(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}
