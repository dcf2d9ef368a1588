package helper

import (
	"strings"
	"time"

	"schoolku_backend/internals/helpers/dbtime"
)

// ParseOptionalDate reads a nullable "YYYY-MM-DD" body field. Empty means nil.
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil, ErrValidation("validation failed", FieldError{Field: field, Message: field + " must be YYYY-MM-DD"})
	}
	return &t, nil
}

// ParseDateQuery reads an optional date query parameter.
func ParseDateQuery(field, raw string) (*time.Time, error) {
	return ParseOptionalDate(field, &raw)
}
