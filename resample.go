package resample

import (
	"errors"
	"fmt"

	"github.com/ttsou/resample/internal/filter"
)

// Common errors returned by the resampler.
var (
	// ErrInvalidRatio indicates a non-positive rate factor at construction.
	ErrInvalidRatio = errors.New("resample: rate factors must be positive")

	// ErrInvalidTaps indicates a non-positive per-partition filter length.
	ErrInvalidTaps = errors.New("resample: tap count must be positive")

	// ErrSizeMismatch indicates input and output buffers that do not
	// describe the same span of signal time at their respective rates.
	ErrSizeMismatch = errors.New("resample: invalid input/output sizes")

	// ErrInputTooShort indicates an input block smaller than the filter
	// history the engine must retain between calls.
	ErrInputTooShort = errors.New("resample: input shorter than minimum block")
)

// path maps one output sample index to the input offset its convolution
// window starts at and the partition that weights it. For output index i
// with ratio P/Q: offset = Q·i/P, partition = (Q·i) mod P.
type path struct {
	offset    int
	partition int
}

// Resampler converts blocks of samples between two rates related by the
// exact rational ratio P/Q: every Q input samples produce P output
// samples. It is generic over the element type; see [Element] for the
// supported bindings.
//
// A Resampler is a streaming transform: it keeps the last taps-1 input
// samples between calls so consecutive blocks splice seamlessly. One
// instance serves one stream; it is not safe for concurrent use, but
// independent instances share nothing.
type Resampler[E Element] struct {
	p, q int
	taps int
	kern kernel[E]

	// partitions holds the P time-reversed sub-filters, immutable after
	// construction.
	partitions [][]float64

	// paths caches the per-output-index schedule up to the largest
	// output size seen. Grows on demand, never shrinks.
	paths []path

	// history carries the last taps-1 input samples across calls. Its
	// length never changes; only a successful Resample rewrites it.
	history []E

	// work backs the extended buffer (history ++ input). Kept around to
	// avoid reallocating every call; its contents are not state.
	work []E
}

// config collects the optional construction parameters.
type config struct {
	taps    int
	tapsSet bool
}

// Option configures a Resampler at construction.
type Option func(*config)

// WithTaps overrides the per-partition filter length. Longer filters give
// a sharper transition band at proportionally higher cost per output
// sample. n must be positive; the defaults are [DefaultRealTaps] and
// [DefaultComplexTaps].
func WithTaps(n int) Option {
	return func(c *config) {
		c.taps = n
		c.tapsSet = true
	}
}

// New creates a Resampler producing p output samples for every q input
// samples. The pair is used exactly as given; it is not reduced to lowest
// terms, so New(2, 4) and New(1, 2) design different filter banks of the
// same effective ratio. Use [NewForRates] to derive a reduced ratio from
// integer sample rates.
//
// The anti-aliasing prototype is designed once here, with its cutoff set
// by the larger of the two factors so the filter protects against
// aliasing when decimating and against imaging when interpolating.
func New[E Element](p, q int, opts ...Option) (*Resampler[E], error) {
	if p <= 0 || q <= 0 {
		return nil, fmt.Errorf("%w: got %d/%d", ErrInvalidRatio, p, q)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	kern := kernelFor[E]()
	if !cfg.tapsSet {
		if kern.isComplex {
			cfg.taps = DefaultComplexTaps
		} else {
			cfg.taps = DefaultRealTaps
		}
	}
	if cfg.taps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTaps, cfg.taps)
	}

	r := &Resampler[E]{
		p:          p,
		q:          q,
		taps:       cfg.taps,
		kern:       kern,
		partitions: filter.Partitions(p, cfg.taps, float64(max(p, q))),
		history:    make([]E, cfg.taps-1),
	}
	r.growPaths(defaultPathCapacity)

	return r, nil
}

// Resample converts one input block into output. The buffers must satisfy
// len(input) % Q == 0, len(output) % P == 0 and len(input)/Q ==
// len(output)/P (same time span at both rates), and len(input) must be at
// least taps-1 so the next call's history can be refilled. On a contract
// violation the call fails without touching any state, so the caller may
// fix the buffers and retry mid-stream.
//
// Output may alias input: the input block is staged into an internal
// extended buffer before any output element is written.
//
// Once the preconditions pass the call cannot fail; it finishes by
// overwriting the history with the tail of input.
func (r *Resampler[E]) Resample(input, output []E) error {
	if len(input)%r.q != 0 || len(output)%r.p != 0 ||
		len(input)/r.q != len(output)/r.p {
		return fmt.Errorf("%w: %d in, %d out, ratio %d/%d",
			ErrSizeMismatch, len(input), len(output), r.p, r.q)
	}
	if len(input) < r.taps-1 {
		return fmt.Errorf("%w: need %d samples, got %d",
			ErrInputTooShort, r.taps-1, len(input))
	}

	r.growPaths(len(output))

	n := len(r.history) + len(input)
	if cap(r.work) < n {
		r.work = make([]E, n)
	}
	ext := r.work[:n]
	copy(ext, r.history)
	copy(ext[len(r.history):], input)

	for i := range output {
		pt := r.paths[i]
		output[i] = r.kern.dot(r.partitions[pt.partition], ext[pt.offset:pt.offset+r.taps])
	}

	// Refill from the staged copy: an aliased output may have overwritten
	// the input tail by now.
	copy(r.history, ext[n-len(r.history):])

	return nil
}

// growPaths extends the path table to at least n entries, computing only
// the new ones.
func (r *Resampler[E]) growPaths(n int) {
	for i := len(r.paths); i < n; i++ {
		r.paths = append(r.paths, path{
			offset:    r.q * i / r.p,
			partition: r.q * i % r.p,
		})
	}
}

// Ratio returns the conversion ratio as (output factor, input factor).
func (r *Resampler[E]) Ratio() (p, q int) {
	return r.p, r.q
}

// Taps returns the per-partition filter length.
func (r *Resampler[E]) Taps() int {
	return r.taps
}

// Latency returns the filter settling time in output samples. Output
// produced before this point blends the stream with the zeroed (or reset)
// history and should be discarded by quality measurements.
func (r *Resampler[E]) Latency() int {
	return r.taps * r.p / r.q / 2
}

// OutputLen returns the output buffer length matching inputLen input
// samples. Exact when inputLen is a multiple of the input factor Q.
func (r *Resampler[E]) OutputLen(inputLen int) int {
	return inputLen / r.q * r.p
}

// Reset zeroes the streaming history so the instance can begin an
// unrelated stream. The filter bank and the cached path table are kept.
func (r *Resampler[E]) Reset() {
	clear(r.history)
}
