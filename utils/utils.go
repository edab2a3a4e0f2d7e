package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// DateKey formats a time as the canonical YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidTime reports whether s looks like an HH:MM class time.
func ValidTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// NewID returns a fresh identifier for persisted records.
func NewID() string {
	return uuid.NewString()
}
