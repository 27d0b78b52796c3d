package apfloat

import (
	"fmt"
	"math/big"

	"github.com/hnb22/gofpa/internal/metrics"
)

// Strategy selects the mantissa multiplication algorithm. Schoolbook and
// Karatsuba are two implementations of the same arithmetic: for any valid
// operands they produce bit-identical results, they only differ in cost for
// very wide mantissas.
type Strategy int

const (
	Schoolbook Strategy = iota
	Karatsuba
)

func (s Strategy) String() string {
	switch s {
	case Schoolbook:
		return "schoolbook"
	case Karatsuba:
		return "karatsuba"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its constant.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "schoolbook":
		return Schoolbook, nil
	case "karatsuba":
		return Karatsuba, nil
	default:
		return Schoolbook, fmt.Errorf("apfloat: unknown strategy %q", name)
	}
}

// karatsubaThreshold is the operand width in bits below which the split
// multiplication bottoms out into a plain product.
const karatsubaThreshold = 512

// Mul returns a * b at the given result precision using the schoolbook
// strategy: the two implicit-leading-one integer mantissas are multiplied
// directly. A zero operand yields exact zero; the result sign is the XOR of
// the operand signs.
func Mul(a, b Float, prec int) (Float, error) {
	return MulWith(Schoolbook, a, b, prec)
}

// MulKaratsuba returns a * b using recursive split multiplication: each
// mantissa is decomposed at the midpoint into high/low halves and the
// product is rebuilt from three half-size products, recursing until the
// operands fall under karatsubaThreshold.
func MulKaratsuba(a, b Float, prec int) (Float, error) {
	return MulWith(Karatsuba, a, b, prec)
}

// MulWith returns a * b at the given result precision under an explicit
// strategy. The only possible error is ErrInvalidPrecision.
func MulWith(strategy Strategy, a, b Float, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	metrics.RecordOperation("mul")
	return mulAt(a, b, lay, prec, strategy), nil
}

func mulAt(a, b Float, lay layout, prec int, strategy Strategy) Float {
	if a.IsZero() || b.IsZero() {
		return zeroValue(0, lay, prec)
	}
	if a.IsNaN() || b.IsNaN() {
		return nanValue(lay, prec)
	}
	sign := a.sign ^ b.sign
	if a.IsInf() || b.IsInf() {
		return infValue(sign, lay, prec)
	}

	unbiased := a.unbiasedExp() + b.unbiasedExp()
	fullA, fullB := a.fullMantissa(), b.fullMantissa()

	var product *big.Int
	if strategy == Karatsuba {
		product = karatsubaProduct(fullA, fullB)
	} else {
		product = new(big.Int).Mul(fullA, fullB)
	}

	// product of two 1.x mantissas lies in [1,4): a value in [2,4) carries
	// one bit past the natural width and charges the exponent
	total := a.lay.mantissaBits + b.lay.mantissaBits
	if product.BitLen() > total+1 {
		unbiased++
		shiftMantissa(product, lay.mantissaBits-total-1)
	} else {
		shiftMantissa(product, lay.mantissaBits-total)
	}

	out := assemble(sign, unbiased, product, lay, prec)
	switch {
	case out.IsInf():
		metrics.RecordSaturation("mul", "overflow")
	case out.IsZero():
		metrics.RecordSaturation("mul", "underflow")
	}
	return out
}

var bigOne = big.NewInt(1)

// karatsubaProduct multiplies two non-negative integers by recursive
// splitting: x = x1*2^m + x0, y = y1*2^m + y0, and
// x*y = z2*2^(2m) + z1*2^m + z0 with z2 = x1*y1, z0 = x0*y0 and the cross
// term z1 = (x1+x0)(y1+y0) - z2 - z0, three multiplications of half width.
func karatsubaProduct(x, y *big.Int) *big.Int {
	n := x.BitLen()
	if l := y.BitLen(); l > n {
		n = l
	}
	if n <= karatsubaThreshold {
		return new(big.Int).Mul(x, y)
	}

	m := uint(n / 2)
	mask := new(big.Int).Lsh(bigOne, m)
	mask.Sub(mask, bigOne)

	x1 := new(big.Int).Rsh(x, m)
	x0 := new(big.Int).And(x, mask)
	y1 := new(big.Int).Rsh(y, m)
	y0 := new(big.Int).And(y, mask)

	z2 := karatsubaProduct(x1, y1)
	z0 := karatsubaProduct(x0, y0)

	xs := x1.Add(x1, x0)
	ys := y1.Add(y1, y0)
	z1 := karatsubaProduct(xs, ys)
	z1.Sub(z1, z2)
	z1.Sub(z1, z0)

	out := new(big.Int).Lsh(z2, 2*m)
	out.Add(out, z1.Lsh(z1, m))
	return out.Add(out, z0)
}
