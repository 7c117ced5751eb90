package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted from admin forms.
const DateLayout = "2006-01-02"

// ValidationError reports a form field that failed validation. Nothing is
// written when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// parseDate parses a YYYY-MM-DD date. An empty value yields today's date.
func parseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, invalid("date", "Date must be in YYYY-MM-DD format")
	}
	return date, nil
}
