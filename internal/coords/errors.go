package coords

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is wrapped by every RangeError.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidFormat is wrapped by every FormatError.
	ErrInvalidFormat = errors.New("invalid coordinate format")
)

// RangeError reports a numeric value outside its valid domain.
type RangeError struct {
	Field string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v out of range", e.Field, e.Value)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// FormatError reports malformed coordinate text, zone, band or grid letters.
// Input holds the offending text so the failure can be reproduced.
type FormatError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s coordinate %q: %s", e.Kind, e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }
