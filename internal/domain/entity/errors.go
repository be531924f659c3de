package entity

import "errors"

// ErrInvalidInput is matched by every ValidationError; handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the offending field of a rejected write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
