package linkage

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and solving.
var (
	// ErrInvalidGeometry indicates a non-positive or non-finite link length.
	ErrInvalidGeometry = errors.New("linkage: invalid geometry")

	// ErrInvalidArgument indicates a rejected setter argument.
	ErrInvalidArgument = errors.New("linkage: invalid argument")

	// ErrUnreachable indicates the loop closure has no real solution at the
	// requested drive angle.
	ErrUnreachable = errors.New("linkage: unreachable configuration")

	// ErrSingular indicates a dead-point: the velocity system is singular.
	ErrSingular = errors.New("linkage: singular velocity jacobian")

	// ErrUnknownLink indicates a query for a link or point that is not modeled.
	ErrUnknownLink = errors.New("linkage: unknown link")
)

// SolveError reports which drive angle and loop failed.
type SolveError struct {
	Angle   float64
	Loop    int
	Detail  string
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v at theta2=%.6f rad (loop %d): %s", e.Wrapped, e.Angle, e.Loop, e.Detail)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}

func unknownLink(l Link) error {
	return fmt.Errorf("%w: %v", ErrUnknownLink, l)
}

func unknownPoint(pt Point) error {
	return fmt.Errorf("%w: %v", ErrUnknownLink, pt)
}
