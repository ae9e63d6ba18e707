package validation

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors repository.ParseTime — both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// ParseDateRange parses the optional start/end query parameters of a report
// window. Empty strings leave that side of the window open (zero time).
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error

	if startStr != "" {
		startDate, err = ParseTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr != "" {
		endDate, err = ParseTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if !startDate.IsZero() && !endDate.IsZero() && startDate.After(endDate) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}

	return startDate, endDate, nil
}
