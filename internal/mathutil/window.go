// Package mathutil provides mathematical primitives for filter design.
package mathutil

import (
	"math"
)

// 4-term Blackman-Harris window coefficients.
// From Harris, "On the Use of Windows for Harmonic Analysis with the
// Discrete Fourier Transform" (1978), table of minimum 4-sample-term
// windows. Sidelobes sit near -92 dB, which keeps the stopband leakage of
// a windowed-sinc design below the noise floor of 16-bit streams.
const (
	blackmanHarrisA0 = 0.35875
	blackmanHarrisA1 = 0.48829
	blackmanHarrisA2 = 0.14128
	blackmanHarrisA3 = 0.01168
)

// Sinc computes the normalized sinc function:
//
//	Sinc(0) = 1
//	Sinc(x) = sin(πx) / (πx) otherwise
//
// The zero crossings fall on the nonzero integers, which is what makes a
// sinc prototype collapse to a pure delay when no rate change is requested.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// BlackmanHarris evaluates the 4-term Blackman-Harris window of length n
// at position i:
//
//	w(i) = a0 - a1·cos(2πi/n) + a2·cos(4πi/n) - a3·cos(6πi/n)
//
// The four coefficients sum to one, so the window peaks at 1 at its center
// i = n/2 and a windowed unit impulse keeps unit gain.
func BlackmanHarris(i, n float64) float64 {
	arg := 2 * math.Pi * i / n
	return blackmanHarrisA0 -
		blackmanHarrisA1*math.Cos(arg) +
		blackmanHarrisA2*math.Cos(2*arg) -
		blackmanHarrisA3*math.Cos(3*arg)
}

// AmplitudeToDB converts a linear amplitude ratio to decibels.
// Returns -Inf for zero and NaN for negative input, matching math.Log10.
func AmplitudeToDB(a float64) float64 {
	return 20 * math.Log10(a)
}
