package apfloat

import "github.com/apache/arrow-go/v18/arrow/float16"

// FromFloat16 encodes an Arrow half-precision value at the given precision.
// Every half-precision value is exactly representable once the target
// mantissa has at least 10 bits.
func FromFloat16(h float16.Num, prec int) (Float, error) {
	return Encode(float64(h.Float32()), prec)
}

// Float16 decodes f into an Arrow half-precision value, saturating to the
// half-precision range.
func (f Float) Float16() float16.Num {
	return float16.New(float32(f.Float64()))
}
