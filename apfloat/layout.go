package apfloat

import (
	"fmt"
	"math/bits"
)

// MinPrecision is the smallest bit budget whose layout leaves at least one
// mantissa bit. Below this the exponent field and sign bit consume the
// entire word.
const MinPrecision = 10

// layout is the bit allocation derived from a precision. It is computed once
// at construction and cached on the value so accessors never re-derive it.
type layout struct {
	exponentBits int
	mantissaBits int
	bias         int
	maxExponent  int // all-ones biased exponent, reserved for inf/NaN
}

// deriveLayout allocates bits for a given precision: the exponent field
// grows logarithmically with the precision (never below 8 bits), one bit is
// reserved for the sign, and the mantissa takes the rest.
func deriveLayout(prec int) (layout, error) {
	if prec < MinPrecision {
		return layout{}, fmt.Errorf("%w: %d bits (minimum %d)", ErrInvalidPrecision, prec, MinPrecision)
	}
	// bits.Len(prec) == floor(log2(prec)) + 1 for prec > 0.
	expBits := bits.Len(uint(prec)) + 1
	if expBits < 8 {
		expBits = 8
	}
	mantBits := prec - expBits - 1
	if mantBits < 1 {
		return layout{}, fmt.Errorf("%w: %d bits leaves no mantissa", ErrInvalidPrecision, prec)
	}
	return layout{
		exponentBits: expBits,
		mantissaBits: mantBits,
		bias:         1<<(expBits-1) - 1,
		maxExponent:  1<<expBits - 1,
	}, nil
}
