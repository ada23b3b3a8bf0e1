// Package testutil provides signal synthesis and error-metric helpers
// shared by the resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttsou/resample"
)

// Tone returns n samples of sin(2πf·i/rate) scaled by scale.
func Tone(freq, rate, scale float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2*math.Pi*freq*float64(i)/rate) * scale
	}
	return s
}

// QuadTone returns the two legs of a quadrature phasor at freq: sine in
// the real leg, cosine in the imaginary leg, both scaled by scale.
func QuadTone(freq, rate, scale float64, n int) (re, im []float64) {
	re = make([]float64, n)
	im = make([]float64, n)
	for i := range re {
		phase := 2 * math.Pi * freq * float64(i) / rate
		re[i] = math.Sin(phase) * scale
		im[i] = math.Cos(phase) * scale
	}
	return re, im
}

// ToReal narrows float64 samples to the element type under test. The
// conversion truncates toward zero for integer types, matching what a
// caller quantizing its own fixtures would get.
func ToReal[T resample.Real](src []float64) []T {
	dst := make([]T, len(src))
	for i, v := range src {
		dst[i] = T(v)
	}
	return dst
}

// ToComplex pairs two float64 component slices into complex samples of
// the element type under test.
func ToComplex[T resample.Real](re, im []float64) []resample.Complex[T] {
	dst := make([]resample.Complex[T], len(re))
	for i := range dst {
		dst[i] = resample.Complex[T]{Re: T(re[i]), Im: T(im[i])}
	}
	return dst
}

// Floats widens typed samples back to float64 for measurement.
func Floats[T resample.Real](src []T) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// RMSE computes the error metric used across the test suite: actual is
// aligned to ref by dropping its first skip samples (the filter settling
// time), then the square root of the summed squared error is divided by
// the number of compared samples.
func RMSE(ref, actual []float64, skip int) float64 {
	n := len(actual) - skip
	var errSum float64
	for i := range n {
		d := ref[i] - actual[skip+i]
		errSum += d * d
	}
	return math.Sqrt(errSum) / float64(n)
}

// ComplexRMSE is RMSE over both components of a complex signal, with the
// squared errors of the two legs pooled per sample pair.
func ComplexRMSE(refRe, refIm, actRe, actIm []float64, skip int) float64 {
	n := len(actRe) - skip
	var errSum float64
	for i := range n {
		c := refRe[i] - actRe[skip+i]
		d := refIm[i] - actIm[skip+i]
		errSum += c*c + d*d
	}
	return math.Sqrt(errSum) / float64(n)
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}
