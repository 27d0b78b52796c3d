package apfloat

import (
	"fmt"

	"github.com/hnb22/gofpa/internal/logger"
	"github.com/hnb22/gofpa/internal/metrics"
)

// DefaultSinMaxIter caps the Taylor series length for Sin. Arguments of
// modest magnitude converge in well under a hundred terms; the cap exists
// so pathological inputs surface ErrNonConvergent instead of spinning.
const DefaultSinMaxIter = 500

// Sin evaluates sin(x) at x's precision by Taylor series. No argument
// reduction is performed: the caller must supply x in a range where the
// series converges within DefaultSinMaxIter terms.
func Sin(x Float) (Float, error) {
	return SinIter(x, DefaultSinMaxIter)
}

// SinIter is Sin with an explicit iteration cap. The series accumulates
// x - x^3/3! + x^5/5! - ... until a term is exactly zero or its exponent
// falls more than precision/4 below the running sum's, a guard-digit cutoff
// rather than a proven error bound. Exceeding the cap returns
// ErrNonConvergent.
func SinIter(x Float, maxIter int) (Float, error) {
	lay, err := deriveLayout(x.prec)
	if err != nil {
		return Float{}, err
	}
	if maxIter < 1 {
		return Float{}, fmt.Errorf("apfloat: iteration cap %d must be positive", maxIter)
	}
	if x.IsNaN() {
		return x, nil
	}
	if x.IsInf() {
		return nanValue(lay, x.prec), nil
	}
	if x.IsZero() {
		return x, nil
	}
	metrics.RecordOperation("sin")
	prec := x.prec

	xx, err := Mul(x, x, prec)
	if err != nil {
		return Float{}, err
	}
	negXSquared := xx.Neg()

	result := x
	term := x
	for n := 1; n <= maxIter; n++ {
		term, err = Mul(term, negXSquared, prec)
		if err != nil {
			return Float{}, err
		}
		denom, err := FromInt(int64(2*n)*int64(2*n+1), prec)
		if err != nil {
			return Float{}, err
		}
		term, err = Div(term, denom, prec)
		if err != nil {
			return Float{}, err
		}
		result = AddAuto(result, term)

		if negligible(term, result, prec) {
			metrics.RecordSinIterations(n)
			return result, nil
		}
	}

	metrics.RecordNonConvergent()
	logger.Log.Component("sin").Warn("series hit iteration cap",
		"precision", prec, "max_iterations", maxIter)
	return Float{}, fmt.Errorf("%w: sin at %d bits after %d terms", ErrNonConvergent, prec, maxIter)
}

// negligible reports whether term can no longer move result at the working
// precision: it is exactly zero, or its exponent trails the result's by
// more than a quarter of the bit budget.
func negligible(term, result Float, prec int) bool {
	if term.IsZero() {
		return true
	}
	return result.exp-term.exp > prec/4
}
