// Package apfloat implements a precision-parameterized binary floating
// point value and an arithmetic kernel (addition, two multiplication
// strategies, division, Taylor-series sine) operating directly on the
// sign/exponent/mantissa representation. Mantissas are big integers, so the
// precision is limited only by memory.
//
// A Float is immutable: every operation returns a new value, and values may
// be shared freely across goroutines for read-only use.
package apfloat

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Float is an immutable arbitrary-precision binary floating point value.
//
// A finite nonzero value is (-1)^sign * (1 + mant/2^mantissaBits) *
// 2^(exp-bias). The all-zeros exponent with a zero mantissa encodes zero;
// the all-ones exponent encodes infinity (zero mantissa) or NaN (nonzero
// mantissa). Subnormals are not represented: results below the exponent
// floor collapse to signed zero and results above the ceiling to signed
// infinity.
type Float struct {
	sign int      // 0 positive, 1 negative
	exp  int      // biased exponent
	mant *big.Int // fraction bits below the implicit leading one
	prec int
	lay  layout
}

var bigZero = new(big.Int)

// New builds a Float from raw fields, validating the representation
// invariants. The mantissa is copied, so the caller keeps ownership of
// mant.
func New(sign, biasedExp int, mant *big.Int, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	if sign != 0 && sign != 1 {
		return Float{}, fmt.Errorf("apfloat: sign must be 0 or 1, got %d", sign)
	}
	if mant == nil {
		mant = bigZero
	}
	if mant.Sign() < 0 {
		return Float{}, fmt.Errorf("apfloat: negative mantissa %s", mant)
	}
	if mant.BitLen() > lay.mantissaBits {
		return Float{}, fmt.Errorf("apfloat: mantissa %d bits wide, layout allows %d", mant.BitLen(), lay.mantissaBits)
	}
	if biasedExp < 0 || biasedExp > lay.maxExponent {
		return Float{}, fmt.Errorf("apfloat: biased exponent %d outside [0, %d]", biasedExp, lay.maxExponent)
	}
	if biasedExp == 0 && mant.Sign() != 0 {
		return Float{}, fmt.Errorf("apfloat: subnormal encoding (exponent 0, mantissa %s) is not representable", mant)
	}
	return Float{
		sign: sign,
		exp:  biasedExp,
		mant: new(big.Int).Set(mant),
		prec: prec,
		lay:  lay,
	}, nil
}

// internal constructors; callers guarantee lay matches prec.

func zeroValue(sign int, lay layout, prec int) Float {
	return Float{sign: sign, mant: bigZero, prec: prec, lay: lay}
}

func infValue(sign int, lay layout, prec int) Float {
	return Float{sign: sign, exp: lay.maxExponent, mant: bigZero, prec: prec, lay: lay}
}

func nanValue(lay layout, prec int) Float {
	return Float{exp: lay.maxExponent, mant: big.NewInt(1), prec: prec, lay: lay}
}

// frac returns the stored fraction, tolerating the package-level zero value
// Float{} whose mantissa pointer is nil.
func (f Float) frac() *big.Int {
	if f.mant == nil {
		return bigZero
	}
	return f.mant
}

// fullMantissa reconstructs the implicit-leading-one integer mantissa,
// 1.frac scaled by 2^mantissaBits. Only meaningful for finite nonzero
// values. The result is freshly allocated.
func (f Float) fullMantissa() *big.Int {
	full := new(big.Int).Set(f.frac())
	full.SetBit(full, f.lay.mantissaBits, 1)
	return full
}

// Sign reports the sign bit: 0 for positive, 1 for negative.
func (f Float) Sign() int { return f.sign }

// BiasedExponent reports the stored (biased) exponent.
func (f Float) BiasedExponent() int { return f.exp }

// MantissaFraction returns a copy of the stored fraction bits.
func (f Float) MantissaFraction() *big.Int { return new(big.Int).Set(f.frac()) }

// Precision reports the total bit budget this value was built with.
func (f Float) Precision() int { return f.prec }

// ExponentBits reports how many bits of the budget the exponent field uses.
func (f Float) ExponentBits() int { return f.lay.exponentBits }

// MantissaBits reports how many bits of the budget store the fraction.
func (f Float) MantissaBits() int { return f.lay.mantissaBits }

// Bias reports the exponent bias of this value's layout.
func (f Float) Bias() int { return f.lay.bias }

// IsZero reports whether f encodes (positive or negative) zero.
func (f Float) IsZero() bool { return f.exp == 0 && f.frac().Sign() == 0 }

// IsInf reports whether f encodes positive or negative infinity.
func (f Float) IsInf() bool { return f.exp == f.lay.maxExponent && f.frac().Sign() == 0 && f.prec != 0 }

// IsNaN reports whether f encodes not-a-number.
func (f Float) IsNaN() bool { return f.exp == f.lay.maxExponent && f.frac().Sign() != 0 }

// IsFinite reports whether f encodes zero or a finite nonzero value.
func (f Float) IsFinite() bool { return f.prec == 0 || f.exp != f.lay.maxExponent }

// Neg returns f with the sign bit flipped. The magnitude, including zero
// and infinity, is unchanged; NaN is returned as-is.
func (f Float) Neg() Float {
	if f.IsNaN() {
		return f
	}
	g := f
	g.sign = f.sign ^ 1
	return g
}

// Equal reports field-by-field equality: sign, biased exponent, mantissa
// and precision all match. Positive and negative zero are distinct here
// even though they compare equal in value.
func (f Float) Equal(g Float) bool {
	return f.sign == g.sign && f.exp == g.exp && f.prec == g.prec && f.frac().Cmp(g.frac()) == 0
}

// String renders the decoded native value, e.g. "3.142857142857143".
func (f Float) String() string {
	return fmt.Sprintf("%v", f.Float64())
}

// BinaryString renders the exact bit pattern as "sign|exponent|mantissa"
// with each field zero-padded to its layout width. Debugging aid.
func (f Float) BinaryString() string {
	mant := f.frac().Text(2)
	if pad := f.lay.mantissaBits - len(mant); pad > 0 {
		mant = strings.Repeat("0", pad) + mant
	}
	return fmt.Sprintf("%01b|%0*b|%s", f.sign, f.lay.exponentBits, f.exp, mant)
}

// EffectiveDecimalDigits estimates how many decimal digits the mantissa can
// carry: mantissaBits * log10(2), truncated.
func (f Float) EffectiveDecimalDigits() int {
	return int(float64(f.lay.mantissaBits) * math.Log10(2))
}

// unbiasedExp returns the true exponent of a finite nonzero value.
func (f Float) unbiasedExp() int { return f.exp - f.lay.bias }

// toPrecision rescales f into the layout of a different precision: the
// fraction is shifted (truncating when narrowing) and the exponent is
// saturated against the new layout's range. Values already at the target
// precision are returned unchanged, bit for bit.
func (f Float) toPrecision(prec int, lay layout) Float {
	if f.prec == prec {
		return f
	}
	switch {
	case f.IsZero():
		return zeroValue(f.sign, lay, prec)
	case f.IsInf():
		return infValue(f.sign, lay, prec)
	case f.IsNaN():
		return nanValue(lay, prec)
	}
	full := f.fullMantissa()
	shiftMantissa(full, lay.mantissaBits-f.lay.mantissaBits)
	return assemble(f.sign, f.unbiasedExp(), full, lay, prec)
}

// shiftMantissa shifts m left by delta bits (right for negative delta,
// truncating), in place.
func shiftMantissa(m *big.Int, delta int) {
	if delta > 0 {
		m.Lsh(m, uint(delta))
	} else if delta < 0 {
		m.Rsh(m, uint(-delta))
	}
}

// assemble finishes a kernel result: full carries the implicit leading one
// at bit lay.mantissaBits, unbiased is the true exponent. The exponent is
// re-biased and the result saturates to signed zero below the representable
// floor and to signed infinity at or above the ceiling. assemble takes
// ownership of full.
func assemble(sign, unbiased int, full *big.Int, lay layout, prec int) Float {
	biased := unbiased + lay.bias
	if biased <= 0 {
		return zeroValue(sign, lay, prec)
	}
	if biased >= lay.maxExponent-1 {
		return infValue(sign, lay, prec)
	}
	full.SetBit(full, lay.mantissaBits, 0)
	return Float{sign: sign, exp: biased, mant: full, prec: prec, lay: lay}
}
