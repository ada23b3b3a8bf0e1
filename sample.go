package resample

// Real is the constraint satisfied by the scalar sample types the engine
// accepts: signed integers of 8 to 64 bits and both IEEE float widths.
type Real interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Complex is a Cartesian sample whose components share one Real type.
// The filter is real-valued, so resampling applies the same coefficients
// to both components independently; there is no cross-component math.
//
// The in-memory layout matches the usual wire layout of complex sample
// streams: real component first, imaginary second.
type Complex[T Real] struct {
	Re, Im T
}

// Element is the full set of element types a Resampler can be
// instantiated with: every Real scalar and its Complex counterpart.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64 |
		Complex[int8] | Complex[int16] | Complex[int32] | Complex[int64] |
		Complex[float32] | Complex[float64]
}
