package resample

import (
	"fmt"
)

// Convert resamples input by p/q in a single call with a throwaway
// engine. len(input) must be a positive multiple of q and at least the
// engine minimum (taps-1 after options are applied); for chunked streams
// build a [Resampler] once and reuse it instead.
func Convert[E Element](input []E, p, q int, opts ...Option) ([]E, error) {
	r, err := New[E](p, q, opts...)
	if err != nil {
		return nil, err
	}

	output := make([]E, r.OutputLen(len(input)))
	if err := r.Resample(input, output); err != nil {
		return nil, err
	}

	return output, nil
}

// NewForRates creates a Resampler from integer sample rates, reduced to
// lowest terms: 44100 to 48000 becomes 160/147. Unlike [New], which
// designs for the exact pair it is given, NewForRates divides out the gcd
// first so common audio conversions get the smallest usable filter bank.
func NewForRates[E Element](inRate, outRate int, opts ...Option) (*Resampler[E], error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: rates %d to %d", ErrInvalidRatio, inRate, outRate)
	}

	g := gcd(inRate, outRate)
	return New[E](outRate/g, inRate/g, opts...)
}

// MergeComplex pairs planar component slices into complex samples,
// stopping at the shorter slice.
func MergeComplex[T Real](re, im []T) []Complex[T] {
	n := min(len(re), len(im))
	out := make([]Complex[T], n)
	for i := range out {
		out[i] = Complex[T]{Re: re[i], Im: im[i]}
	}
	return out
}

// SplitComplex separates complex samples into planar component slices.
func SplitComplex[T Real](s []Complex[T]) (re, im []T) {
	re = make([]T, len(s))
	im = make([]T, len(s))
	for i, v := range s {
		re[i] = v.Re
		im[i] = v.Im
	}
	return re, im
}

// gcd of two positive ints.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
