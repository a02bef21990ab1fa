package profile

import (
	"errors"
	"fmt"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeInvalidDate indicates a date string that could not be parsed.
	ErrCodeInvalidDate ErrorCode = "INVALID_DATE"
	// ErrCodeMissingIssued indicates a matched distribution without dct:issued.
	ErrCodeMissingIssued ErrorCode = "MISSING_ISSUED"
	// ErrCodeInvalidRecord indicates a record that cannot be mapped at all.
	ErrCodeInvalidRecord ErrorCode = "INVALID_RECORD"
	// ErrCodeUnknown is returned for errors raised outside this package.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

var (
	// ErrMissingIssued is reported when a distribution matched to a resource
	// has no issue date and issue dates are required.
	ErrMissingIssued = errors.New("profile: distribution has no issue date")
	// ErrInvalidRecord is reported for records missing the identity needed to
	// derive graph subjects.
	ErrInvalidRecord = errors.New("profile: invalid record")
)

// DateError reports a date field that could not be parsed.
type DateError struct {
	Field string // Record field or predicate local name
	Value string // Offending input
	Err   error  // Underlying parse error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("profile: %s: invalid date %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// Code returns the error code for an error. Returns "" for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrMissingIssued):
		return ErrCodeMissingIssued
	case errors.Is(err, ErrInvalidRecord):
		return ErrCodeInvalidRecord
	}
	var dateErr *DateError
	if errors.As(err, &dateErr) {
		return ErrCodeInvalidDate
	}
	return ErrCodeUnknown
}
