// Command analyze-filter prints design diagnostics for the polyphase
// filter bank a given rational ratio would use: per-phase DC gains,
// prototype statistics, and a frequency response summary.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ttsou/resample/internal/filter"
	"github.com/ttsou/resample/internal/mathutil"
)

const (
	// Default ratio: CD to DAT, 44100 -> 48000
	defaultNumerator   = 160
	defaultDenominator = 147
	defaultTaps        = 128

	// Display limits
	maxPhasesToShow = 8

	// FFT sizing
	minFFTSize = 4096

	// Response measurement bands, as fractions of the passband edge.
	// The windowed sinc rolls off toward the edge, so ripple is read
	// inside 80% of it; the stopband is read past twice the edge, where
	// the transition band has ended.
	passbandFraction  = 0.8
	stopbandStartEdge = 2.0
)

func main() {
	p := flag.Int("p", defaultNumerator, "Rational rate numerator 'P'")
	q := flag.Int("q", defaultDenominator, "Rational rate denominator 'Q'")
	taps := flag.Int("taps", defaultTaps, "Filter taps per phase")
	flag.Parse()

	if *p < 1 || *q < 1 || *taps < 1 {
		fmt.Printf("Error: P, Q and taps must be positive\n")
		return
	}

	cutoff := float64(max(*p, *q))
	proto := filter.Prototype(*p, *taps, cutoff)
	partitions := filter.Partitions(*p, *taps, cutoff)

	fmt.Println("=== Filter Bank ===")
	fmt.Printf("  Phases:       %d\n", *p)
	fmt.Printf("  TapsPerPhase: %d\n", *taps)
	fmt.Printf("  TotalTaps:    %d\n", len(proto))
	fmt.Printf("  Cutoff:       %.1f\n", cutoff)

	// The prototype is normalized so its coefficients sum to the phase
	// count, which makes each phase a unity-gain branch at DC.
	var protoSum, peak float64
	for _, c := range proto {
		protoSum += c
		if a := math.Abs(c); a > peak {
			peak = a
		}
	}
	fmt.Printf("\nPrototype sum: %.10f (target %d)\n", protoSum, *p)
	fmt.Printf("Peak coefficient: %.10f\n", peak)

	fmt.Println("\nDC gain per phase:")
	phaseGains := make([]float64, *p)
	var totalDC float64
	for phase, sub := range partitions {
		var dc float64
		for _, c := range sub {
			dc += c
		}
		phaseGains[phase] = dc
		totalDC += dc
	}
	for phase := 0; phase < *p && phase < maxPhasesToShow; phase++ {
		fmt.Printf("  Phase %2d: %.10f\n", phase, phaseGains[phase])
	}
	if *p > maxPhasesToShow {
		fmt.Printf("  ... (%d more phases)\n", *p-maxPhasesToShow)
	}
	fmt.Printf("\nTotal DC gain (sum of all phases): %.10f\n", totalDC)
	fmt.Printf("Average DC gain per phase: %.10f\n", totalDC/float64(*p))

	// Phase usage. The engine steps phase (Q*i) mod P, so a shared
	// factor between P and Q leaves some phases unvisited.
	used := make(map[int]bool)
	for i := range *p {
		used[*q*i%*p] = true
	}
	fmt.Printf("\nUsed %d unique phases (out of %d)\n", len(used), *p)

	analyzeResponse(proto, cutoff)
}

// analyzeResponse reports the prototype's frequency response relative to
// its DC gain.
func analyzeResponse(proto []float64, cutoff float64) {
	fftSize := nextPow2(max(minFFTSize, 2*len(proto)))
	padded := make([]float64, fftSize)
	copy(padded, proto)

	fft := fourier.NewFFT(fftSize)
	spectrum := fft.Coefficients(nil, padded)

	dc := cmplx.Abs(spectrum[0])
	edgeBin := float64(fftSize) / (2 * cutoff)

	var ripple float64
	passLimit := int(passbandFraction * edgeBin)
	for k := 1; k <= passLimit && k < len(spectrum); k++ {
		dev := math.Abs(cmplx.Abs(spectrum[k])/dc - 1)
		if dev > ripple {
			ripple = dev
		}
	}

	var stopPeak float64
	stopStart := int(math.Ceil(stopbandStartEdge * edgeBin))
	for k := stopStart; k < len(spectrum); k++ {
		if mag := cmplx.Abs(spectrum[k]) / dc; mag > stopPeak {
			stopPeak = mag
		}
	}

	fmt.Println("\n=== Frequency Response ===")
	fmt.Printf("  FFT size:          %d\n", fftSize)
	fmt.Printf("  DC gain:           %.10f\n", dc)
	fmt.Printf("  Passband edge bin: %.1f\n", edgeBin)
	fmt.Printf("  Passband ripple:   %.10f (within %.0f%% of edge)\n",
		ripple, passbandFraction*100)
	fmt.Printf("  Stopband peak:     %.2f dB\n", mathutil.AmplitudeToDB(stopPeak))
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
