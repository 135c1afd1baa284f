package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is wrapped by every DecodeError.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupportedOperation is returned when the wrapped orb geometry does
	// not match the Type discriminator.
	ErrUnsupportedOperation = errors.New("unsupported geometry operation")
)

// DecodeError reports a malformed coordinate payload. Path points at the
// offending element, e.g. coordinates[0][3].
type DecodeError struct {
	Type   Type
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s at %s: %s", e.Type, e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidGeometry }

func mismatch(t Type, got any) error {
	return fmt.Errorf("%w: %s cannot wrap %T", ErrUnsupportedOperation, t, got)
}
