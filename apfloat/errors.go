package apfloat

import "errors"

var (
	// ErrInvalidPrecision means the requested bit budget cannot produce a
	// layout with at least one mantissa bit.
	ErrInvalidPrecision = errors.New("apfloat: invalid precision")

	// ErrDivisionUndefined is returned for 0 / 0.
	ErrDivisionUndefined = errors.New("apfloat: division undefined (0/0)")

	// ErrNonConvergent is returned when a series evaluation exceeds its
	// iteration cap before the negligibility test is satisfied.
	ErrNonConvergent = errors.New("apfloat: series did not converge")
)
