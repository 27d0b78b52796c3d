package apfloat

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	f64ExpMask  = 0x7ff
	f64Shift    = 52
	f64Bias     = 1023
	f64FracMask = 1<<f64Shift - 1
)

// Encode converts a native float64 into a Float at the given precision.
// Zero encodes with sign 0, infinities keep their sign, NaN encodes with a
// fixed mantissa sentinel of 1. Finite values have their 52-bit fraction
// truncated or zero-extended to the target mantissa width; no rounding is
// performed.
func Encode(v float64, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	return encodeFloat64(v, lay, prec), nil
}

func encodeFloat64(v float64, lay layout, prec int) Float {
	if v == 0 {
		return zeroValue(0, lay, prec)
	}
	if math.IsInf(v, 0) {
		sign := 0
		if v < 0 {
			sign = 1
		}
		return infValue(sign, lay, prec)
	}
	if math.IsNaN(v) {
		return nanValue(lay, prec)
	}

	b := math.Float64bits(v)
	sign := int(b >> 63)
	exp := int(b>>f64Shift) & f64ExpMask
	frac := b & f64FracMask

	full := new(big.Int)
	var unbiased int
	if exp == 0 {
		// subnormal double: shift the fraction up to the implicit-one
		// position and charge the shifts to the exponent
		shift := f64Shift + 1 - bits.Len64(frac)
		full.SetUint64(frac << uint(shift))
		unbiased = -f64Bias + 1 - shift
	} else {
		full.SetUint64(1<<f64Shift | frac)
		unbiased = exp - f64Bias
	}
	shiftMantissa(full, lay.mantissaBits-f64Shift)
	return assemble(sign, unbiased, full, lay, prec)
}

// EncodeString converts a decimal string into a Float. Unlike Encode it
// does not route through float64, so precisions beyond double width receive
// correct mantissa bits. Parsing truncates toward zero, matching the
// kernel's truncation policy.
func EncodeString(s string, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	bf, _, err := big.ParseFloat(strings.TrimSpace(s), 10, uint(lay.mantissaBits+64), big.ToZero)
	if err != nil {
		return Float{}, fmt.Errorf("apfloat: parse %q: %w", s, err)
	}
	if bf.Sign() == 0 {
		return zeroValue(0, lay, prec), nil
	}
	sign := 0
	if bf.Signbit() {
		sign = 1
	}
	if bf.IsInf() {
		return infValue(sign, lay, prec), nil
	}

	mant := new(big.Float)
	e := bf.MantExp(mant) // bf = mant * 2^e with 0.5 <= |mant| < 1
	mant.Abs(mant)
	scaled := new(big.Float).SetMantExp(mant, lay.mantissaBits+1)
	full, _ := scaled.Int(nil)
	return assemble(sign, e-1, full, lay, prec), nil
}

// FromFloat encodes any native float type at the given precision.
func FromFloat[T constraints.Float](v T, prec int) (Float, error) {
	return Encode(float64(v), prec)
}

// FromInt encodes any native integer type at the given precision. Integers
// that fit the mantissa width encode exactly; wider ones are truncated.
func FromInt[T constraints.Integer](v T, prec int) (Float, error) {
	lay, err := deriveLayout(prec)
	if err != nil {
		return Float{}, err
	}
	if v == 0 {
		return zeroValue(0, lay, prec), nil
	}
	sign := 0
	mag := uint64(v)
	if v < 0 {
		sign = 1
		mag = -mag
	}
	l := bits.Len64(mag)
	full := new(big.Int).SetUint64(mag)
	shiftMantissa(full, lay.mantissaBits+1-l)
	return assemble(sign, l-1, full, lay, prec), nil
}

// Float64 decodes f back into a native float64. The conversion exists for
// observation and display: values outside the double range saturate to
// native infinity or zero, and mantissas wider than 52 bits are rounded by
// the native conversion.
func (f Float) Float64() float64 {
	if f.IsZero() {
		if f.sign == 1 {
			return math.Copysign(0, -1)
		}
		return 0
	}
	if f.IsInf() {
		return math.Inf(1 - 2*f.sign)
	}
	if f.IsNaN() {
		return math.NaN()
	}
	v := new(big.Float).SetInt(f.fullMantissa())
	v.SetMantExp(v, f.unbiasedExp()-f.lay.mantissaBits)
	out, _ := v.Float64()
	if f.sign == 1 {
		out = -out
	}
	return out
}
