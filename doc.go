// Package resample converts sample streams between rates related by an
// exact rational ratio P/Q using a polyphase windowed-sinc filter.
//
// The conversion is driven by a single anti-aliasing prototype filter,
// designed once per resampler and decomposed into P sub-filters. Each
// output sample then costs one dot product of taps coefficients instead
// of a convolution at the interpolated rate, and the exact integer ratio
// avoids the timing drift of floating-ratio converters.
//
// # Element Types
//
// A [Resampler] is generic over its element type. Twelve bindings are
// supported: the real scalars int8, int16, int32, int64, float32 and
// float64, and [Complex] pairs of each. The convolution always
// accumulates in float64; integer elements are saturated to their type
// bounds on the way back out, floating elements are written unclamped.
//
// # Quick Start
//
// One-shot conversion of a block whose length is a multiple of Q:
//
//	output, err := resample.Convert[float32](input, 7, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Streaming
//
// For chunked data, build one resampler per stream and feed aligned
// blocks; the engine keeps the filter history between calls so block
// boundaries leave no seams:
//
//	r, err := resample.New[int16](160, 147)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for chunk := range chunks {
//	    out := make([]int16, r.OutputLen(len(chunk)))
//	    if err := r.Resample(chunk, out); err != nil {
//	        log.Fatal(err)
//	    }
//	    consume(out)
//	}
//
// Every call must satisfy len(input) % Q == 0, len(output) % P == 0 and
// len(input)/Q == len(output)/P; [Resampler.OutputLen] sizes the output
// for a given input length. [NewForRates] reduces integer sample rates to
// lowest terms; [New] uses the pair exactly as given.
//
// # Architecture
//
//	Input block -> [history splice] -> [path table] -> [partition dot products] -> Output block
//
// Filter design lives in internal/filter: a windowed-sinc prototype of
// length P·taps under a 4-term Blackman-Harris window, normalized so the
// partitions' DC gains sum to P, then de-interleaved into P time-reversed
// sub-filters. The path table maps each output index to its input offset
// and partition; it is cached per instance and grows to the largest
// output size seen.
//
// # Thread Safety
//
// A Resampler instance is not safe for concurrent use: every call
// rewrites the shared history and may grow the path table. Instances
// share no state, so run one per stream for parallelism.
package resample
