package antimeridian

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWKT is matched by every ParseError.
	ErrInvalidWKT = errors.New("invalid WKT")

	// ErrNotPolygonal is returned when a polygon or multipolygon was expected.
	ErrNotPolygonal = errors.New("geometry is not a polygon or multipolygon")

	// ErrPoleRing is returned for rings whose unwrapped longitudes do not
	// close, i.e. rings that wind around a pole.
	ErrPoleRing = errors.New("ring encloses a pole")
)

// ParseError wraps the decoder failure for a WKT input.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse WKT %q: %v", truncate(e.Input, 64), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrInvalidWKT so callers need not know the decoder's errors.
func (e *ParseError) Is(target error) bool { return target == ErrInvalidWKT }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
