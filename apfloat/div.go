package apfloat

import (
	"github.com/hnb22/gofpa/internal/metrics"
)

// Div returns a / b at the given result precision. A zero divisor with a
// nonzero dividend saturates to signed infinity; 0/0 is rejected with
// ErrDivisionUndefined. The dividend's mantissa is pre-scaled by the result
// mantissa width so the integer quotient carries the fractional bits, then
// normalized to the target width by bit length.
func Div(a, b Float, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	metrics.RecordOperation("div")

	if a.IsNaN() || b.IsNaN() {
		return nanValue(lay, prec), nil
	}
	sign := a.sign ^ b.sign
	if b.IsZero() {
		if a.IsZero() {
			metrics.RecordDivisionUndefined()
			return Float{}, ErrDivisionUndefined
		}
		return infValue(sign, lay, prec), nil
	}
	if a.IsZero() {
		return zeroValue(0, lay, prec), nil
	}
	if a.IsInf() {
		if b.IsInf() {
			return nanValue(lay, prec), nil
		}
		return infValue(sign, lay, prec), nil
	}
	if b.IsInf() {
		return zeroValue(sign, lay, prec), nil
	}

	unbiased := a.unbiasedExp() - b.unbiasedExp()

	// Each operand's mantissa carries its own layout's fraction width. The
	// dividend is scaled so the quotient keeps mantissaBits fraction bits:
	// the net shift is the result width plus the divisor width minus the
	// dividend width. A negative net shift moves to the divisor side so no
	// dividend bits are discarded before the division.
	num := a.fullMantissa()
	den := b.fullMantissa()
	if d := lay.mantissaBits + b.lay.mantissaBits - a.lay.mantissaBits; d >= 0 {
		num.Lsh(num, uint(d))
	} else {
		den.Lsh(den, uint(-d))
	}
	quotient := num.Quo(num, den)

	want := lay.mantissaBits + 1
	switch got := quotient.BitLen(); {
	case got > want:
		unbiased += got - want
		quotient.Rsh(quotient, uint(got-want))
	case got < want:
		unbiased -= want - got
		quotient.Lsh(quotient, uint(want-got))
	}

	out := assemble(sign, unbiased, quotient, lay, prec)
	switch {
	case out.IsInf():
		metrics.RecordSaturation("div", "overflow")
	case out.IsZero():
		metrics.RecordSaturation("div", "underflow")
	}
	return out, nil
}
