package apfloat

import (
	"errors"
	"math"
	"testing"
)

func TestDivSmallQuotient(t *testing.T) {
	a, b := mustEncode(t, 0.125, 64), mustEncode(t, 0.25, 64)
	q, err := Div(a, b, 64)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got := q.Float64(); got != 0.5 {
		t.Errorf("0.125 / 0.25 = %v, want 0.5", got)
	}
}

func TestDivHighPrecision(t *testing.T) {
	a, b := mustEncode(t, 22.0, 128), mustEncode(t, 7.0, 128)
	q, err := Div(a, b, 128)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got := q.Float64(); math.Abs(got-3.142857142857143) > 1e-12 {
		t.Errorf("22 / 7 = %v, want ~3.142857142857143", got)
	}
}

func TestDivBasic(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{1.0, 2.0, 0.5},
		{7.0, 2.0, 3.5},
		{-8.0, 4.0, -2.0},
		{-9.0, -3.0, 3.0},
		{1.0, 3.0, 1.0 / 3.0},
		{1e20, 1e10, 1e10},
	}
	for _, tt := range tests {
		a, b := mustEncode(t, tt.a, 64), mustEncode(t, tt.b, 64)
		q, err := Div(a, b, 64)
		if err != nil {
			t.Fatalf("Div(%v, %v): %v", tt.a, tt.b, err)
		}
		if got := q.Float64(); relErr(got, tt.want) > 1e-15 {
			t.Errorf("%v / %v = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDivByZero(t *testing.T) {
	zero := mustEncode(t, 0, 64)
	one := mustEncode(t, 1.0, 64)

	q, err := Div(one, zero, 64)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !q.IsInf() || q.Sign() != 0 {
		t.Errorf("1 / 0 = %s, want +inf", q.BinaryString())
	}
	if q, _ = Div(one.Neg(), zero, 64); !q.IsInf() || q.Sign() != 1 {
		t.Errorf("-1 / 0 = %s, want -inf", q.BinaryString())
	}
}

func TestDivZeroByZero(t *testing.T) {
	zero := mustEncode(t, 0, 64)
	_, err := Div(zero, zero, 64)
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Errorf("0 / 0 returned %v, want ErrDivisionUndefined", err)
	}
}

func TestDivZeroDividend(t *testing.T) {
	zero := mustEncode(t, 0, 64)
	five := mustEncode(t, 5.0, 64)
	q, err := Div(zero, five, 64)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !q.IsZero() {
		t.Errorf("0 / 5 = %s, want zero", q.BinaryString())
	}
}

func TestDivSignRule(t *testing.T) {
	values := []float64{1.5, -2.0, 0.25, -8.5}
	for _, va := range values {
		for _, vb := range values {
			a, b := mustEncode(t, va, 64), mustEncode(t, vb, 64)
			q, err := Div(a, b, 64)
			if err != nil {
				t.Fatalf("Div: %v", err)
			}
			if want := a.Sign() ^ b.Sign(); q.Sign() != want {
				t.Errorf("sign(%v / %v) = %d, want %d", va, vb, q.Sign(), want)
			}
		}
	}
}

func TestDivNormalizationBothDirections(t *testing.T) {
	// Quotient mantissa in [1,2): no shift. In [0.5,1): one left shift.
	a, b := mustEncode(t, 6.0, 64), mustEncode(t, 3.0, 64)
	q, _ := Div(a, b, 64)
	if got := q.Float64(); got != 2.0 {
		t.Errorf("6 / 3 = %v, want 2", got)
	}
	a, b = mustEncode(t, 3.0, 64), mustEncode(t, 6.0, 64)
	q, _ = Div(a, b, 64)
	if got := q.Float64(); got != 0.5 {
		t.Errorf("3 / 6 = %v, want 0.5", got)
	}
}

func TestDivMixedPrecisionOperands(t *testing.T) {
	tests := []struct {
		a     float64
		precA int
		b     float64
		precB int
		prec  int
		want  float64
	}{
		{1.0, 64, 2.0, 128, 128, 0.5}, // narrow dividend, exact quotient
		{1.0, 64, 3.0, 256, 128, 1.0 / 3.0},
		{22.0, 256, 7.0, 64, 64, 22.0 / 7.0}, // wide dividend, narrow result
		{1.0, 128, 3.0, 128, 64, 1.0 / 3.0},  // result narrower than both
	}
	for _, tt := range tests {
		a := mustEncode(t, tt.a, tt.precA)
		b := mustEncode(t, tt.b, tt.precB)
		q, err := Div(a, b, tt.prec)
		if err != nil {
			t.Fatalf("Div(%v@%d, %v@%d): %v", tt.a, tt.precA, tt.b, tt.precB, err)
		}
		if q.Precision() != tt.prec {
			t.Fatalf("expected %d-bit result, got %d", tt.prec, q.Precision())
		}
		if got := q.Float64(); relErr(got, tt.want) > 1e-15 {
			t.Errorf("%v@%d / %v@%d = %v, want ~%v", tt.a, tt.precA, tt.b, tt.precB, got, tt.want)
		}
	}
}

func TestDivSaturation(t *testing.T) {
	huge := mustEncode(t, math.Ldexp(1, 100), 16)
	tiny := mustEncode(t, math.Ldexp(1, -100), 16)

	q, err := Div(huge, tiny, 16)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !q.IsInf() {
		t.Errorf("2^100 / 2^-100 at 16 bits should overflow, got %s", q.BinaryString())
	}
	if q, _ = Div(tiny, huge, 16); !q.IsZero() {
		t.Errorf("2^-100 / 2^100 at 16 bits should underflow, got %s", q.BinaryString())
	}
}

func TestDivSpecialOperands(t *testing.T) {
	lay, _ := deriveLayout(64)
	inf, nan := infValue(0, lay, 64), nanValue(lay, 64)
	two := mustEncode(t, 2.0, 64)

	if q, _ := Div(inf, two, 64); !q.IsInf() {
		t.Errorf("inf / 2 = %s", q.BinaryString())
	}
	if q, _ := Div(two, inf, 64); !q.IsZero() {
		t.Errorf("2 / inf = %s, want zero", q.BinaryString())
	}
	if q, _ := Div(inf, inf, 64); !q.IsNaN() {
		t.Errorf("inf / inf = %s, want NaN", q.BinaryString())
	}
	if q, _ := Div(nan, two, 64); !q.IsNaN() {
		t.Errorf("NaN / 2 = %s, want NaN", q.BinaryString())
	}
}
