package resample_test

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ttsou/resample"
	"github.com/ttsou/resample/internal/testutil"
)

// Test harness parameters shared by the fidelity tests: a 1 MHz stream,
// tones just below 1% of the rate, amplitudes at 99% of full scale, and
// an error budget of a half percent of full scale.
const (
	toneRate   = 1e6
	signalAmpl = 0.99
	testSize   = 8192
	passLimit  = 0.005
	toneTaps   = 128
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		p, q    int
		opts    []resample.Option
		wantErr error
	}{
		{name: "zero numerator", p: 0, q: 1, wantErr: resample.ErrInvalidRatio},
		{name: "zero denominator", p: 1, q: 0, wantErr: resample.ErrInvalidRatio},
		{name: "negative numerator", p: -2, q: 3, wantErr: resample.ErrInvalidRatio},
		{name: "negative denominator", p: 2, q: -3, wantErr: resample.ErrInvalidRatio},
		{name: "zero taps", p: 2, q: 1, opts: []resample.Option{resample.WithTaps(0)}, wantErr: resample.ErrInvalidTaps},
		{name: "negative taps", p: 2, q: 1, opts: []resample.Option{resample.WithTaps(-8)}, wantErr: resample.ErrInvalidTaps},
		{name: "valid", p: 7, q: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resample.New[float64](tt.p, tt.q, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			p, q := r.Ratio()
			assert.Equal(t, tt.p, p)
			assert.Equal(t, tt.q, q)
		})
	}
}

func TestNew_DefaultTaps(t *testing.T) {
	real64, err := resample.New[float64](2, 1)
	require.NoError(t, err)
	assert.Equal(t, resample.DefaultRealTaps, real64.Taps())

	int16r, err := resample.New[int16](2, 1)
	require.NoError(t, err)
	assert.Equal(t, resample.DefaultRealTaps, int16r.Taps())

	cplx32, err := resample.New[resample.Complex[float32]](2, 1)
	require.NoError(t, err)
	assert.Equal(t, resample.DefaultComplexTaps, cplx32.Taps())

	custom, err := resample.New[resample.Complex[float32]](2, 1, resample.WithTaps(48))
	require.NoError(t, err)
	assert.Equal(t, 48, custom.Taps())
}

// TestNew_RatioNotReduced tests that the factor pair is used exactly as
// given: 2/4 keeps two partitions rather than collapsing to 1/2.
func TestNew_RatioNotReduced(t *testing.T) {
	r, err := resample.New[float64](2, 4)
	require.NoError(t, err)

	p, q := r.Ratio()
	assert.Equal(t, 2, p)
	assert.Equal(t, 4, q)
}

func TestLatency(t *testing.T) {
	tests := []struct {
		p, q, taps int
		want       int
	}{
		{p: 7, q: 4, taps: 128, want: 112},
		{p: 1, q: 1, taps: 128, want: 64},
		{p: 1, q: 2, taps: 384, want: 96},
		{p: 1, q: 7, taps: 128, want: 9},
		{p: 7, q: 1, taps: 128, want: 448},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.p, tt.q), func(t *testing.T) {
			r, err := resample.New[float64](tt.p, tt.q, resample.WithTaps(tt.taps))
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Latency())
		})
	}
}

func TestOutputLen(t *testing.T) {
	r, err := resample.New[float64](7, 4)
	require.NoError(t, err)

	assert.Equal(t, 14, r.OutputLen(8))
	assert.Equal(t, 0, r.OutputLen(0))
	assert.Equal(t, 7168, r.OutputLen(4096))
	// Non-aligned lengths round down to whole groups.
	assert.Equal(t, 14, r.OutputLen(10))
}

// TestResample_Identity tests that a unity ratio reproduces the input
// delayed by half the filter length once the history has filled.
func TestResample_Identity(t *testing.T) {
	const n = 1024

	r, err := resample.New[float64](1, 1, resample.WithTaps(toneTaps))
	require.NoError(t, err)
	delay := r.Latency()
	require.Equal(t, toneTaps/2, delay)

	input := testutil.Tone(2e3, toneRate, signalAmpl, n)
	output := make([]float64, n)
	require.NoError(t, r.Resample(input, output))

	// Before the delay the window still overlaps the zeroed history.
	for i := range delay {
		assert.InDelta(t, 0, output[i], 1e-9, "index %d", i)
	}
	for i := delay; i < n; i++ {
		assert.InDelta(t, input[i-delay], output[i], 1e-9, "index %d", i)
	}
}

// TestResample_Identity_Int tests the unity ratio on an integer type:
// output tracks the delayed input within one quantization step and
// saturation never engages for in-range input.
func TestResample_Identity_Int(t *testing.T) {
	const n = 1024

	r, err := resample.New[int16](1, 1, resample.WithTaps(toneTaps))
	require.NoError(t, err)
	delay := r.Latency()

	input := testutil.ToReal[int16](testutil.Tone(2e3, toneRate, signalAmpl*math.MaxInt16, n))
	output := make([]int16, n)
	require.NoError(t, r.Resample(input, output))

	for i := delay; i < n; i++ {
		assert.InDelta(t, float64(input[i-delay]), float64(output[i]), 1.0, "index %d", i)
	}
}

// TestResample_BlockInvariance tests that slicing a stream into blocks
// at any Q-aligned boundary leaves the output bit-identical to a single
// call, since the engine carries the filter history across calls.
func TestResample_BlockInvariance(t *testing.T) {
	const (
		p, q  = 7, 4
		taps  = 64
		total = 1024
	)
	chunks := []int{128, 256, 384, 256}

	t.Run("float64", func(t *testing.T) {
		src := testutil.Tone(5e3, toneRate, signalAmpl, total)
		blockInvariance(t, src, p, q, taps, chunks)
	})
	t.Run("int16", func(t *testing.T) {
		src := testutil.ToReal[int16](testutil.Tone(5e3, toneRate, signalAmpl*math.MaxInt16, total))
		blockInvariance(t, src, p, q, taps, chunks)
	})
	t.Run("complex float32", func(t *testing.T) {
		re, im := testutil.QuadTone(5e3, toneRate, signalAmpl, total)
		src := testutil.ToComplex[float32](re, im)
		blockInvariance(t, src, p, q, taps, chunks)
	})
}

func blockInvariance[E resample.Element](t *testing.T, src []E, p, q, taps int, chunks []int) {
	t.Helper()

	single, err := resample.New[E](p, q, resample.WithTaps(taps))
	require.NoError(t, err)
	wholeOut := make([]E, single.OutputLen(len(src)))
	require.NoError(t, single.Resample(src, wholeOut))

	split, err := resample.New[E](p, q, resample.WithTaps(taps))
	require.NoError(t, err)
	var splitOut []E
	off := 0
	for _, n := range chunks {
		block := src[off : off+n]
		out := make([]E, split.OutputLen(n))
		require.NoError(t, split.Resample(block, out))
		splitOut = append(splitOut, out...)
		off += n
	}
	require.Equal(t, len(src), off, "chunk plan must cover the input")

	assert.Equal(t, wholeOut, splitOut)
}

// testRealTone runs the tone fidelity check for one real element type:
// resample a 99% full-scale tone by 7/4 and compare against the same
// tone synthesized at the output rate, after the settling transient.
func testRealTone[T resample.Real](t *testing.T, scale float64) {
	t.Helper()
	const p, q, freq = 7, 4, 5e3

	inLen := testSize / q * q
	input := testutil.ToReal[T](testutil.Tone(freq, toneRate, scale*signalAmpl, inLen))

	r, err := resample.New[T](p, q, resample.WithTaps(toneTaps))
	require.NoError(t, err)

	output := make([]T, r.OutputLen(inLen))
	require.NoError(t, r.Resample(input, output))

	outRate := toneRate * p / q
	ref := testutil.Tone(freq, outRate, scale*signalAmpl, len(output))

	rmse := testutil.RMSE(ref, testutil.Floats(output), r.Latency()) / scale
	assert.Less(t, rmse, passLimit)
}

// complexEngine is the engine surface the complex checks need, typed by
// the component rather than the pair: Element names each Complex
// instantiation individually, so a generic helper cannot call New over
// Complex[T] and receives the engine pre-built instead.
type complexEngine[T resample.Real] interface {
	Resample(input, output []resample.Complex[T]) error
	OutputLen(inputLen int) int
	Ratio() (p, q int)
	Latency() int
}

// testComplexTone is testRealTone for a complex element type, with the
// quadrature tone's legs compared jointly.
func testComplexTone[T resample.Real](t *testing.T, scale float64, r complexEngine[T]) {
	t.Helper()
	const freq = 5e3

	p, q := r.Ratio()
	inLen := testSize / q * q
	re, im := testutil.QuadTone(freq, toneRate, scale*signalAmpl, inLen)
	input := testutil.ToComplex[T](re, im)

	output := make([]resample.Complex[T], r.OutputLen(inLen))
	require.NoError(t, r.Resample(input, output))

	outRate := toneRate * float64(p) / float64(q)
	refRe, refIm := testutil.QuadTone(freq, outRate, scale*signalAmpl, len(output))

	outRe, outIm := resample.SplitComplex(output)
	rmse := testutil.ComplexRMSE(refRe, refIm,
		testutil.Floats(outRe), testutil.Floats(outIm), r.Latency()) / scale
	assert.Less(t, rmse, passLimit)
}

// TestResample_ToneFidelity_AllTypes tests the 7/4 tone scenario across
// every element binding, integers at their type's full scale. The complex
// engines are built here, one New call per concrete pair type.
func TestResample_ToneFidelity_AllTypes(t *testing.T) {
	t.Run("s8", func(t *testing.T) { testRealTone[int8](t, math.MaxInt8) })
	t.Run("s16", func(t *testing.T) { testRealTone[int16](t, math.MaxInt16) })
	t.Run("s32", func(t *testing.T) { testRealTone[int32](t, math.MaxInt32) })
	t.Run("s64", func(t *testing.T) { testRealTone[int64](t, math.MaxInt64) })
	t.Run("f32", func(t *testing.T) { testRealTone[float32](t, 1.0) })
	t.Run("f64", func(t *testing.T) { testRealTone[float64](t, 1.0) })
	t.Run("sc8", func(t *testing.T) {
		r, err := resample.New[resample.Complex[int8]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[int8](t, math.MaxInt8, r)
	})
	t.Run("sc16", func(t *testing.T) {
		r, err := resample.New[resample.Complex[int16]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[int16](t, math.MaxInt16, r)
	})
	t.Run("sc32", func(t *testing.T) {
		r, err := resample.New[resample.Complex[int32]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[int32](t, math.MaxInt32, r)
	})
	t.Run("sc64", func(t *testing.T) {
		r, err := resample.New[resample.Complex[int64]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[int64](t, math.MaxInt64, r)
	})
	t.Run("fc32", func(t *testing.T) {
		r, err := resample.New[resample.Complex[float32]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[float32](t, 1.0, r)
	})
	t.Run("fc64", func(t *testing.T) {
		r, err := resample.New[resample.Complex[float64]](7, 4, resample.WithTaps(toneTaps))
		require.NoError(t, err)
		testComplexTone[float64](t, 1.0, r)
	})
}

// TestResample_25kHzUpconversion tests the reference scenario: 4096
// samples of a full-scale 25 kHz tone at 1 MHz, upsampled by 7/4 and
// compared against the same tone at 1.75 MHz.
func TestResample_25kHzUpconversion(t *testing.T) {
	const (
		p, q = 7, 4
		freq = 25e3
		n    = 4096
	)

	input := testutil.ToReal[int16](testutil.Tone(freq, toneRate, math.MaxInt16, n))

	r, err := resample.New[int16](p, q, resample.WithTaps(toneTaps))
	require.NoError(t, err)

	output := make([]int16, r.OutputLen(n))
	require.NoError(t, r.Resample(input, output))
	require.Len(t, output, 7168)

	ref := testutil.Tone(freq, toneRate*p/q, math.MaxInt16, len(output))
	rmse := testutil.RMSE(ref, testutil.Floats(output), r.Latency()) / math.MaxInt16
	assert.Less(t, rmse, passLimit)
}

// TestResample_RatioMatrix sweeps every factor pair up to 7 against a
// real tone, covering unity, pure up, pure down and fractional paths.
func TestResample_RatioMatrix(t *testing.T) {
	const freq = 7e3

	for p := 1; p <= 7; p++ {
		for q := 1; q <= 7; q++ {
			t.Run(fmt.Sprintf("%d_%d", p, q), func(t *testing.T) {
				inLen := testSize / q * q
				input := testutil.Tone(freq, toneRate, signalAmpl, inLen)

				r, err := resample.New[float64](p, q, resample.WithTaps(toneTaps))
				require.NoError(t, err)

				output := make([]float64, r.OutputLen(inLen))
				require.NoError(t, r.Resample(input, output))

				ref := testutil.Tone(freq, toneRate*float64(p)/float64(q), signalAmpl, len(output))
				rmse := testutil.RMSE(ref, output, r.Latency())
				assert.Less(t, rmse, passLimit)
				testutil.AssertNoNaNOrInf(t, output)
			})
		}
	}
}

// TestResample_ComplexRatioMatrix is the ratio sweep for the complex
// path, on the quadrature tone.
func TestResample_ComplexRatioMatrix(t *testing.T) {
	const freq = 2e3

	for p := 1; p <= 7; p++ {
		for q := 1; q <= 7; q++ {
			t.Run(fmt.Sprintf("%d_%d", p, q), func(t *testing.T) {
				inLen := testSize / q * q
				re, im := testutil.QuadTone(freq, toneRate, signalAmpl, inLen)
				input := testutil.ToComplex[float32](re, im)

				r, err := resample.New[resample.Complex[float32]](p, q, resample.WithTaps(toneTaps))
				require.NoError(t, err)

				output := make([]resample.Complex[float32], r.OutputLen(inLen))
				require.NoError(t, r.Resample(input, output))

				refRe, refIm := testutil.QuadTone(freq, toneRate*float64(p)/float64(q), signalAmpl, len(output))
				outRe, outIm := resample.SplitComplex(output)
				rmse := testutil.ComplexRMSE(refRe, refIm,
					testutil.Floats(outRe), testutil.Floats(outIm), r.Latency())
				assert.Less(t, rmse, passLimit)
			})
		}
	}
}

// TestResample_BoundaryRejection tests the block contract: misaligned or
// undersized buffers fail up front and leave the stream state untouched.
func TestResample_BoundaryRejection(t *testing.T) {
	const (
		p, q = 7, 4
		taps = 16
	)

	newEngine := func(t *testing.T) *resample.Resampler[float64] {
		t.Helper()
		r, err := resample.New[float64](p, q, resample.WithTaps(taps))
		require.NoError(t, err)
		return r
	}

	t.Run("input not multiple of Q", func(t *testing.T) {
		r := newEngine(t)
		err := r.Resample(make([]float64, 98), make([]float64, 175))
		assert.ErrorIs(t, err, resample.ErrSizeMismatch)
	})

	t.Run("output not multiple of P", func(t *testing.T) {
		r := newEngine(t)
		err := r.Resample(make([]float64, 96), make([]float64, 170))
		assert.ErrorIs(t, err, resample.ErrSizeMismatch)
	})

	t.Run("mismatched spans", func(t *testing.T) {
		r := newEngine(t)
		err := r.Resample(make([]float64, 96), make([]float64, 154))
		assert.ErrorIs(t, err, resample.ErrSizeMismatch)
	})

	t.Run("input below filter history", func(t *testing.T) {
		r := newEngine(t)
		err := r.Resample(make([]float64, 12), make([]float64, 21))
		assert.ErrorIs(t, err, resample.ErrInputTooShort)
	})

	t.Run("failed call leaves history untouched", func(t *testing.T) {
		clean := newEngine(t)
		dirty := newEngine(t)

		warm := testutil.Tone(5e3, toneRate, signalAmpl, 64)
		out := make([]float64, 112)
		require.NoError(t, clean.Resample(warm, out))
		require.NoError(t, dirty.Resample(warm, out))

		// Contract violations between valid calls must not disturb the
		// stream.
		require.Error(t, dirty.Resample(make([]float64, 7), make([]float64, 7)))
		require.Error(t, dirty.Resample(make([]float64, 98), make([]float64, 175)))

		next := testutil.Tone(5e3, toneRate, signalAmpl, 64)
		cleanOut := make([]float64, 112)
		dirtyOut := make([]float64, 112)
		require.NoError(t, clean.Resample(next, cleanOut))
		require.NoError(t, dirty.Resample(next, dirtyOut))

		assert.Equal(t, cleanOut, dirtyOut)
	})
}

// TestResample_Saturation tests clamping on an int8 square wave: the
// interpolation overshoot around each edge exceeds the type's range, and
// every such sample must pin at the exact bound instead of wrapping.
func TestResample_Saturation(t *testing.T) {
	const (
		p, q = 2, 1
		taps = 64
		n    = 512
	)

	square := make([]float64, n)
	for i := range square {
		if i/32%2 == 0 {
			square[i] = math.MaxInt8
		} else {
			square[i] = math.MinInt8 + 1
		}
	}
	input := testutil.ToReal[int8](square)

	ref, err := resample.New[float64](p, q, resample.WithTaps(taps))
	require.NoError(t, err)
	refOut := make([]float64, ref.OutputLen(n))
	require.NoError(t, ref.Resample(square, refOut))

	r, err := resample.New[int8](p, q, resample.WithTaps(taps))
	require.NoError(t, err)
	output := make([]int8, r.OutputLen(n))
	require.NoError(t, r.Resample(input, output))

	// The float64 engine tracks the integer path's accumulators to
	// within rounding, so it predicts which samples clamp. The half-step
	// margin keeps boundary samples out of the exact-match buckets.
	var clampedHi, clampedLo int
	for i, acc := range refOut {
		switch {
		case acc > math.MaxInt8+0.5:
			assert.Equal(t, int8(math.MaxInt8), output[i], "index %d", i)
			clampedHi++
		case acc < math.MinInt8-0.5:
			assert.Equal(t, int8(math.MinInt8), output[i], "index %d", i)
			clampedLo++
		default:
			assert.InDelta(t, acc, float64(output[i]), 1.0, "index %d", i)
		}
	}

	// The square's edges must actually overshoot, or this test is not
	// exercising the clamp.
	require.Positive(t, clampedHi)
	require.Positive(t, clampedLo)
}

// TestResample_PathTableGrowth tests the cached schedule: seeded at a
// fixed size, grown monotonically to the largest output seen, entries
// following offset = Q*i/P, partition = (Q*i) mod P.
func TestResample_PathTableGrowth(t *testing.T) {
	const (
		p, q = 7, 4
		taps = 16
	)

	r, err := resample.New[float64](p, q, resample.WithTaps(taps))
	require.NoError(t, err)
	assert.Equal(t, resample.DefaultPathCapacity, r.PathCount())

	input := testutil.Tone(5e3, toneRate, signalAmpl, 512)
	output := make([]float64, r.OutputLen(512))
	require.NoError(t, r.Resample(input, output))
	assert.Equal(t, 896, r.PathCount())

	// A smaller call reuses the prefix without shrinking the table.
	require.NoError(t, r.Resample(input[:128], output[:224]))
	assert.Equal(t, 896, r.PathCount())

	prevOffset := 0
	for i := range r.PathCount() {
		offset, partition := r.PathEntry(i)
		require.Equal(t, q*i/p, offset, "offset at %d", i)
		require.Equal(t, q*i%p, partition, "partition at %d", i)
		require.GreaterOrEqual(t, offset, prevOffset, "offsets must be monotonic")
		prevOffset = offset
	}
}

// TestResample_Reset tests that Reset returns the engine to its
// post-construction state without rebuilding the filter bank.
func TestResample_Reset(t *testing.T) {
	const n = 256

	input := testutil.Tone(5e3, toneRate, signalAmpl, n)

	r, err := resample.New[float64](7, 4, resample.WithTaps(32))
	require.NoError(t, err)

	first := make([]float64, r.OutputLen(n))
	require.NoError(t, r.Resample(input, first))

	// With history carried over, a repeat of the same block differs.
	carried := make([]float64, r.OutputLen(n))
	require.NoError(t, r.Resample(input, carried))
	assert.NotEqual(t, first, carried)

	// After Reset it matches the first call exactly.
	r.Reset()
	again := make([]float64, r.OutputLen(n))
	require.NoError(t, r.Resample(input, again))
	assert.Equal(t, first, again)
}

// TestResample_InPlace tests the documented aliasing guarantee: output
// may share the input's backing array, and the history carried out of an
// aliased call must match what a separate-buffer call keeps, so later
// blocks agree too.
func TestResample_InPlace(t *testing.T) {
	const (
		n    = 256
		taps = 32
	)
	freqs := []float64{2e3, 5e3, 9e3}

	t.Run("unity ratio", func(t *testing.T) {
		ref, err := resample.New[float64](1, 1, resample.WithTaps(taps))
		require.NoError(t, err)
		aliased, err := resample.New[float64](1, 1, resample.WithTaps(taps))
		require.NoError(t, err)

		// Blocks after the first depend on the history the aliased call
		// carried out.
		for blk, freq := range freqs {
			block := testutil.Tone(freq, toneRate, signalAmpl, n)
			want := make([]float64, n)
			require.NoError(t, ref.Resample(block, want))

			buf := append([]float64(nil), block...)
			require.NoError(t, aliased.Resample(buf, buf))
			require.Equal(t, want, buf, "block %d", blk)
		}
	})

	t.Run("upsampling into shared backing array", func(t *testing.T) {
		ref, err := resample.New[float64](7, 4, resample.WithTaps(taps))
		require.NoError(t, err)
		aliased, err := resample.New[float64](7, 4, resample.WithTaps(taps))
		require.NoError(t, err)

		for blk, freq := range freqs {
			block := testutil.Tone(freq, toneRate, signalAmpl, n)
			want := make([]float64, ref.OutputLen(n))
			require.NoError(t, ref.Resample(block, want))

			buf := make([]float64, aliased.OutputLen(n))
			copy(buf, block)
			require.NoError(t, aliased.Resample(buf[:n], buf))
			require.Equal(t, want, buf, "block %d", blk)
		}
	})
}

// TestResample_IndependentInstances tests that engines share no state:
// many instances running concurrently on the same input all match the
// serial result.
func TestResample_IndependentInstances(t *testing.T) {
	const (
		workers = 8
		n       = 2048
	)

	input := testutil.Tone(5e3, toneRate, signalAmpl, n)

	serial, err := resample.New[float64](7, 4, resample.WithTaps(64))
	require.NoError(t, err)
	want := make([]float64, serial.OutputLen(n))
	require.NoError(t, serial.Resample(input, want))

	outputs := make([][]float64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r, err := resample.New[float64](7, 4, resample.WithTaps(64))
			if err != nil {
				errs[w] = err
				return
			}
			out := make([]float64, r.OutputLen(n))
			if err := r.Resample(input, out); err != nil {
				errs[w] = err
				return
			}
			outputs[w] = out
		}(w)
	}
	wg.Wait()

	for w := range workers {
		require.NoError(t, errs[w], "worker %d", w)
		assert.Equal(t, want, outputs[w], "worker %d", w)
	}
}

// TestResample_ImageRejection tests the anti-imaging behavior in the
// frequency domain: after 4x upsampling, the spectral images of the
// carrier must sit at least 60 dB below it.
func TestResample_ImageRejection(t *testing.T) {
	const (
		p, q    = 4, 1
		n       = 8192
		fftSize = 16384
		skip    = 1024 // past the settling transient, FFT-period aligned
	)
	// Chosen so the resampled tone is exactly periodic over the FFT
	// window: bin 8 at the 4 MHz output rate.
	const outRate = toneRate * p
	const freq = 8 * outRate / fftSize

	input := testutil.Tone(freq, toneRate, signalAmpl, n)

	r, err := resample.New[float64](p, q, resample.WithTaps(toneTaps))
	require.NoError(t, err)
	output := make([]float64, r.OutputLen(n))
	require.NoError(t, r.Resample(input, output))
	require.Greater(t, skip, r.Latency())

	fft := fourier.NewFFT(fftSize)
	spectrum := fft.Coefficients(nil, output[skip:skip+fftSize])

	carrier := cmplx.Abs(spectrum[8])
	require.Greater(t, carrier, 1.0)

	// Images of the carrier appear at k*oldRate ± freq; with the tone in
	// bin 8 of a 16384-point window at 4x the old rate, those fall in
	// bins 4088, 4104 and 8184.
	for _, bin := range []int{4088, 4104, 8184} {
		image := cmplx.Abs(spectrum[bin])
		rejection := 20 * math.Log10(image/carrier)
		assert.Less(t, rejection, -60.0, "image at bin %d", bin)
	}
}
