package validation

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ValidateGoalTitle validates a goal title and returns it trimmed
func ValidateGoalTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return "", Invalid("title", "is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return "", Invalid("title", "is too long (max 100 characters)")
	}

	return trimmed, nil
}

// ValidateDate requires a calendar day in YYYY-MM-DD form
func ValidateDate(field, date string) error {
	if date == "" {
		return Invalid(field, "is required")
	}

	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Invalid(field, "must be a date in YYYY-MM-DD format")
	}

	return nil
}
