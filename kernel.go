package resample

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// kernel bundles the element-type-specific pieces of the convolution loop:
// the dot product with its float64 accumulator, saturation for integer
// elements, and the kind flag that selects the default tap count.
//
// The accumulator is float64 for every element type, including the 64-bit
// ones; narrowing back to E happens only once per output sample, after
// optional clamping.
//
// The type parameter is unconstrained: Element names each Complex
// instantiation individually, which kernel[Complex[T]] inside the complex
// constructors cannot satisfy. kernelFor narrows callers back to Element.
type kernel[E any] struct {
	// dot convolves a coefficient vector with an equally long sample
	// window. Coefficients arrive time-reversed from the designer, so
	// this is a plain forward product.
	dot func(coeffs []float64, window []E) E

	// isComplex reports whether E is a Complex pair type.
	isComplex bool
}

// Package-level kernels, one per supported element binding. Built once;
// kernelFor hands out the matching instance by type switch.
var (
	kernelS8  = intKernel[int8](math.MinInt8, math.MaxInt8)
	kernelS16 = intKernel[int16](math.MinInt16, math.MaxInt16)
	kernelS32 = intKernel[int32](math.MinInt32, math.MaxInt32)
	kernelS64 = intKernel[int64](math.MinInt64, math.MaxInt64)
	kernelF32 = floatKernel[float32]()
	kernelF64 = kernel[float64]{dot: f64.DotProductUnsafe}

	kernelSC8  = complexIntKernel[int8](math.MinInt8, math.MaxInt8)
	kernelSC16 = complexIntKernel[int16](math.MinInt16, math.MaxInt16)
	kernelSC32 = complexIntKernel[int32](math.MinInt32, math.MaxInt32)
	kernelSC64 = complexIntKernel[int64](math.MinInt64, math.MaxInt64)
	kernelFC32 = complexFloatKernel[float32]()
	kernelFC64 = complexFloatKernel[float64]()
)

// kernelFor selects the kernel for element type E, instantiated over a
// zero value. The Element type set makes the default branch unreachable.
func kernelFor[E Element]() kernel[E] {
	var zero E
	var k any
	switch any(zero).(type) {
	case int8:
		k = kernelS8
	case int16:
		k = kernelS16
	case int32:
		k = kernelS32
	case int64:
		k = kernelS64
	case float32:
		k = kernelF32
	case float64:
		k = kernelF64
	case Complex[int8]:
		k = kernelSC8
	case Complex[int16]:
		k = kernelSC16
	case Complex[int32]:
		k = kernelSC32
	case Complex[int64]:
		k = kernelSC64
	case Complex[float32]:
		k = kernelFC32
	case Complex[float64]:
		k = kernelFC64
	default:
		panic("resample: element type outside kernel registry")
	}

	kk, ok := k.(kernel[E])
	if !ok {
		panic("resample: kernel registry type mismatch")
	}
	return kk
}

// dotReal accumulates coeffs·window in float64 whatever the sample width.
func dotReal[T Real](coeffs []float64, window []T) float64 {
	window = window[:len(coeffs)]
	var acc float64
	for k, c := range coeffs {
		acc += c * float64(window[k])
	}
	return acc
}

// dotComplex accumulates both components independently against the same
// real coefficients.
func dotComplex[T Real](coeffs []float64, window []Complex[T]) (re, im float64) {
	window = window[:len(coeffs)]
	for k, c := range coeffs {
		re += c * float64(window[k].Re)
		im += c * float64(window[k].Im)
	}
	return re, im
}

// saturate clamps acc to the element bounds and narrows. The comparison
// bounds flo/fhi are the float64 images of lo/hi; for int64 the upper
// image rounds up to 2^63, so >= catches every accumulator value the
// plain conversion could not represent and the exact integer bound is
// returned instead. Truncation toward zero applies inside the range.
func saturate[T Real](acc, flo, fhi float64, lo, hi T) T {
	if acc <= flo {
		return lo
	}
	if acc >= fhi {
		return hi
	}
	return T(acc)
}

func floatKernel[T Real]() kernel[T] {
	return kernel[T]{
		dot: func(coeffs []float64, window []T) T {
			return T(dotReal(coeffs, window))
		},
	}
}

func intKernel[T Real](lo, hi T) kernel[T] {
	flo, fhi := float64(lo), float64(hi)
	return kernel[T]{
		dot: func(coeffs []float64, window []T) T {
			return saturate(dotReal(coeffs, window), flo, fhi, lo, hi)
		},
	}
}

func complexFloatKernel[T Real]() kernel[Complex[T]] {
	return kernel[Complex[T]]{
		isComplex: true,
		dot: func(coeffs []float64, window []Complex[T]) Complex[T] {
			re, im := dotComplex(coeffs, window)
			return Complex[T]{Re: T(re), Im: T(im)}
		},
	}
}

func complexIntKernel[T Real](lo, hi T) kernel[Complex[T]] {
	flo, fhi := float64(lo), float64(hi)
	return kernel[Complex[T]]{
		isComplex: true,
		dot: func(coeffs []float64, window []Complex[T]) Complex[T] {
			re, im := dotComplex(coeffs, window)
			return Complex[T]{
				Re: saturate(re, flo, fhi, lo, hi),
				Im: saturate(im, flo, fhi, lo, hi),
			}
		},
	}
}
