package apfloat

import (
	"math/big"

	"github.com/hnb22/gofpa/internal/metrics"
)

// guardBits is the exponent-gap margin beyond the mantissa width at which
// the smaller addend cannot influence the result and is dropped outright.
const guardBits = 5

// Add returns a + b at the given result precision. Each operand is read
// through its own bit layout, rescaled into the result layout, aligned by
// exponent and combined; results outside the representable range saturate
// to signed zero or signed infinity. The only possible error is
// ErrInvalidPrecision.
func Add(a, b Float, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	metrics.RecordOperation("add")
	return addAt(a, b, lay, prec), nil
}

// AddAuto returns a + b at the wider of the two operand precisions. Both
// operands must be properly constructed values.
func AddAuto(a, b Float) Float {
	prec := a.prec
	if b.prec > prec {
		prec = b.prec
	}
	out, _ := Add(a, b, prec)
	return out
}

func addAt(a, b Float, lay layout, prec int) Float {
	if a.IsNaN() || b.IsNaN() {
		return nanValue(lay, prec)
	}
	if a.IsInf() || b.IsInf() {
		if a.IsInf() && b.IsInf() && a.sign != b.sign {
			return nanValue(lay, prec)
		}
		if a.IsInf() {
			return a.toPrecision(prec, lay)
		}
		return b.toPrecision(prec, lay)
	}
	if a.IsZero() {
		return b.toPrecision(prec, lay)
	}
	if b.IsZero() {
		return a.toPrecision(prec, lay)
	}

	m := lay.mantissaBits
	fullA := a.fullMantissa()
	shiftMantissa(fullA, m-a.lay.mantissaBits)
	fullB := b.fullMantissa()
	shiftMantissa(fullB, m-b.lay.mantissaBits)

	expA, expB := a.unbiasedExp(), b.unbiasedExp()
	resultExp := expA
	switch diff := expA - expB; {
	case diff > 0:
		if diff >= m+guardBits {
			// b is below the guard threshold and cannot move the result
			return a.toPrecision(prec, lay)
		}
		fullB.Rsh(fullB, uint(diff))
	case diff < 0:
		if -diff >= m+guardBits {
			return b.toPrecision(prec, lay)
		}
		fullA.Rsh(fullA, uint(-diff))
		resultExp = expB
	}

	var sum *big.Int
	sign := a.sign
	switch {
	case a.sign == b.sign:
		sum = fullA.Add(fullA, fullB)
	case fullA.Cmp(fullB) >= 0:
		sum = fullA.Sub(fullA, fullB)
	default:
		sum = fullB.Sub(fullB, fullA)
		sign = b.sign
	}

	if sum.Sign() == 0 {
		// exact cancellation
		return zeroValue(0, lay, prec)
	}

	// carry out of the implicit-one position
	if sum.BitLen() > m+1 {
		sum.Rsh(sum, 1)
		resultExp++
	}
	// renormalize after a subtractive loss of leading bits
	for sum.BitLen() < m+1 && resultExp > -lay.bias {
		sum.Lsh(sum, 1)
		resultExp--
	}

	out := assemble(sign, resultExp, sum, lay, prec)
	switch {
	case out.IsInf():
		metrics.RecordSaturation("add", "overflow")
	case out.IsZero():
		metrics.RecordSaturation("add", "underflow")
	}
	return out
}
