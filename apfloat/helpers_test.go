package apfloat

import (
	"math"
	"testing"
)

func mustEncode(t *testing.T, v float64, prec int) Float {
	t.Helper()
	f, err := Encode(v, prec)
	if err != nil {
		t.Fatalf("Encode(%v, %d): %v", v, prec, err)
	}
	return f
}

func nan64() float64 { return math.NaN() }

// relErr is |got-want|/|want|, with an absolute fallback at zero.
func relErr(got, want float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
