// Package filter designs the polyphase filter bank used for rational
// sample rate conversion.
package filter

import (
	"github.com/tphakala/simd/f64"

	"github.com/ttsou/resample/internal/mathutil"
)

// Prototype designs the windowed-sinc low-pass prototype for a polyphase
// bank with the given number of phases and taps per phase.
//
// The prototype conceptually runs at the interpolated rate (input rate
// times phases), so its cutoff must be scaled by the larger of the two
// rate factors: decimation needs the tighter cutoff to block aliases,
// interpolation needs it to suppress spectral images. The caller passes
// that factor as cutoff.
//
// Design steps:
//  1. sinc((i - N/2) / cutoff) over the full length N = phases·taps
//  2. 4-term Blackman-Harris window across the same span
//  3. scale by phases/sum so the DC gains of the phases sum to phases,
//     compensating the 1/phases energy split of interpolation
//
// Normalization uses SIMD sum and scale. phases, taps and cutoff must be
// positive; the resampler constructor validates them before calling.
func Prototype(phases, taps int, cutoff float64) []float64 {
	n := phases * taps
	proto := make([]float64, n)
	half := float64(n) / 2

	for i := range n {
		x := (float64(i) - half) / cutoff
		proto[i] = mathutil.Sinc(x) * mathutil.BlackmanHarris(float64(i), float64(n))
	}

	beta := float64(phases) / f64.Sum(proto)
	f64.Scale(proto, proto, beta)

	return proto
}

// Partitions designs the prototype and de-interleaves it into phases
// sub-filters of taps coefficients each. Sub-filter p takes prototype
// samples j·phases+p, stored in reversed order so that convolution is a
// forward dot product against a chronological sample window with no index
// flipping at runtime.
func Partitions(phases, taps int, cutoff float64) [][]float64 {
	proto := Prototype(phases, taps, cutoff)

	parts := make([][]float64, phases)
	for p := range parts {
		sub := make([]float64, taps)
		for j := range taps {
			sub[taps-1-j] = proto[j*phases+p]
		}
		parts[p] = sub
	}

	return parts
}
