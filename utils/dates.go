package utils

import (
	"gestor-turnos/apperrors"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// ParseFecha parses an operating date (YYYY-MM-DD) in loc and returns the
// start of that day.
func ParseFecha(fecha string, loc *time.Location) (time.Time, error) {
	fecha = strings.TrimSpace(fecha)
	if fecha == "" {
		return time.Time{}, apperrors.Validation("fecha", "is required")
	}
	d, err := time.ParseInLocation(time.DateOnly, fecha, loc)
	if err != nil {
		return time.Time{}, apperrors.Validation("fecha", "must be a date formatted YYYY-MM-DD, got %q", fecha)
	}
	return now.With(d).BeginningOfDay(), nil
}

// DayBounds returns [start, end) of the calendar day of d, in d's location.
func DayBounds(d time.Time) (time.Time, time.Time) {
	start := now.With(d).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}

// DateOnlyUTC keeps the calendar day of d at midnight UTC, which is how
// date columns round-trip through the driver.
func DateOnlyUTC(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
