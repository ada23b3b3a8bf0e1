// Command resample-wav converts WAV audio files to a target sample rate
// using exact rational resampling.
//
// Usage:
//
//	resample-wav -rate 48 input.wav output.wav
//	resample-wav -rate 16 -taps 256 input.wav output.wav
//	resample-wav -rate 48 -fast input.wav output.wav          # float32 engines
//	resample-wav -rate 48 -parallel=false input.wav out.wav   # Disable parallel processing
//
// The conversion factor is derived exactly from the two rates: 44.1 kHz
// to 48 kHz becomes the rational ratio 160/147 rather than a floating
// point approximation, so the output length is exact for any duration.
// Parallel processing is enabled by default for stereo and multichannel
// files; each channel runs its own engine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/go-audio/audio"

	"github.com/ttsou/resample"
)

const (
	// Frames read per chunk. Larger chunks reduce I/O overhead and keep
	// the carry remainder small relative to the work done.
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Full-scale PCM values per bit depth
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// Conversion constants
	kHzToHz          = 1000
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	defaultRateKHz  = 48.0
	minRequiredArgs = 2

	// RIFF audio format code for linear PCM
	wavPCMFormat = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rateKHz := flag.Float64("rate", defaultRateKHz, "Target sample rate in kHz (e.g., 16, 32, 44.1, 48, 96)")
	taps := flag.Int("taps", 0, "Filter taps per phase (0 = default)")
	fast := flag.Bool("fast", false, "Use float32 engines (faster, sufficient for 16-bit audio)")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48 input.wav output.wav      # Resample to 48kHz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 16 speech.wav speech_16k.wav # Downsample for speech\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 96 music.wav music_hires.wav # Upsample to hi-res\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]
	targetRate := int(*rateKHz * kHzToHz)
	if targetRate <= 0 {
		return fmt.Errorf("target rate must be positive, got %g kHz", *rateKHz)
	}
	if *taps < 0 {
		return fmt.Errorf("taps cannot be negative, got %d", *taps)
	}

	var opts []resample.Option
	if *taps > 0 {
		opts = append(opts, resample.WithTaps(*taps))
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Target rate: %d Hz", targetRate)
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	var stats *resampleStats
	var err error
	if *fast {
		stats, err = resampleWAVGeneric[float32](inputPath, outputPath, targetRate, *verbose, *parallel, opts...)
	} else {
		stats, err = resampleWAVGeneric[float64](inputPath, outputPath, targetRate, *verbose, *parallel, opts...)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit, ratio %d/%d)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth,
		stats.p, stats.q)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.inputRate)/elapsed.Seconds())

	return nil
}

type resampleStats struct {
	inputRate     int
	outputRate    int
	channels      int
	bitDepth      int
	p, q          int
	inputSamples  int64
	outputSamples int64
}

// Float constraint for generic resampling.
type Float interface {
	float32 | float64
}

func resampleWAVGeneric[F Float](inputPath, outputPath string, targetRate int, verbose, parallel bool, opts ...resample.Option) (stats *resampleStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if input.rate == targetRate {
		return nil, fmt.Errorf("input already at target rate %d Hz", targetRate)
	}

	// 2. Create per-channel engines and derive the exact ratio
	resamplers, err := createChannelResamplers[F](
		input.channels, input.rate, targetRate, opts...,
	)
	if err != nil {
		return nil, err
	}
	p, q := resamplers[0].Ratio()
	minIn := resamplers[0].Taps() - 1
	if verbose {
		log.Printf("Exact ratio: %d/%d, %d taps per phase", p, q, resamplers[0].Taps())
	}

	// 3. Create output writer
	output, err := createWAVOutput(
		outputPath, targetRate, input.bitDepth, input.channels,
	)
	if err != nil {
		return nil, err
	}
	// Close errors matter here: the encoder patches the RIFF sizes on Close.
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Processing buffers. Output capacity follows from the carry
	// capacity, so emissions never outgrow it.
	carry := newCarryBuffers[F](input.channels, q, minIn, bufferSize)
	maxOutFrames := (bufferSize+minIn+q)/q*p + p
	outBufs := make([][]F, input.channels)
	for ch := range outBufs {
		outBufs[ch] = make([]F, maxOutFrames)
	}
	outViews := make([][]F, input.channels)
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*input.channels),
		Format: input.format,
	}
	outputIntBuf := make([]int, maxOutFrames*input.channels)
	maxVal := getMaxValue(input.bitDepth)
	invMaxVal := 1.0 / maxVal

	// 5. Initialize tracking
	stats = &resampleStats{
		inputRate:  input.rate,
		outputRate: targetRate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		p:          p,
		q:          q,
	}
	progress := newProgressTracker(input.totalSamples, verbose)

	// 6. Main processing loop. PCMBuffer counts interleaved ints, so
	// frames come from dividing by the channel count.
	for {
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}
		stats.inputSamples += int64(frames)

		deinterleaveInto(
			intBuffer.Data[:frames*input.channels],
			carry.tail(frames),
			input.channels, frames,
			invMaxVal,
		)
		carry.commit(frames)

		if usable := carry.usable(); usable > 0 {
			outFrames := usable / q * p
			ins := carry.window(usable)
			for ch := range outBufs {
				outViews[ch] = outBufs[ch][:outFrames]
			}
			if err := resampleChannels(resamplers, ins, outViews, parallel); err != nil {
				return nil, err
			}
			written := interleaveInto(outViews, outputIntBuf, maxVal)
			if err := output.WriteSamples(outputIntBuf[:written]); err != nil {
				return nil, fmt.Errorf("failed to write audio data: %w", err)
			}
			stats.outputSamples += int64(outFrames)
			carry.consume(usable)
		}

		progress.reportIfNeeded(stats.inputSamples)
	}

	// 7. Zero-pad and drain the remainder, trimming the padding's
	// contribution off the final write.
	if padded, trueFrames := carry.flushPad(); padded > 0 {
		outFrames := padded / q * p
		ins := carry.window(padded)
		for ch := range outBufs {
			outViews[ch] = outBufs[ch][:outFrames]
		}
		if err := resampleChannels(resamplers, ins, outViews, parallel); err != nil {
			return nil, err
		}
		trueOut := trueFrames * p / q
		for ch := range outBufs {
			outViews[ch] = outBufs[ch][:trueOut]
		}
		written := interleaveInto(outViews, outputIntBuf, maxVal)
		if err := output.WriteSamples(outputIntBuf[:written]); err != nil {
			return nil, fmt.Errorf("failed to write flushed data: %w", err)
		}
		stats.outputSamples += int64(trueOut)
	}

	return stats, nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
// This avoids allocations in the hot loop.
func deinterleaveInto[F Float](data []int, channelBufs [][]F, numChannels, samplesPerChannel int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range samplesPerChannel {
			buf[i] = F(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range samplesPerChannel {
			idx := i * stereoChannels
			buf0[i] = F(float64(data[idx]) * invMaxVal)
			buf1[i] = F(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int buffer,
// clamping to [-1.0, 1.0] before scaling. Returns the number of elements written.
func interleaveInto[F Float](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0 // Caller should handle this
	}

	// Fast path for mono
	if numChannels == monoChannels {
		ch := channels[0]
		for i := range samplesPerChannel {
			sample := float64(ch[i])
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 {
				sample = -1.0
			}
			dst[i] = int(sample * maxVal)
		}
		return samplesPerChannel
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		ch0, ch1 := channels[0], channels[1]
		for i := range samplesPerChannel {
			s0, s1 := float64(ch0[i]), float64(ch1[i])
			if s0 > 1.0 {
				s0 = 1.0
			} else if s0 < -1.0 {
				s0 = -1.0
			}
			if s1 > 1.0 {
				s1 = 1.0
			} else if s1 < -1.0 {
				s1 = -1.0
			}
			idx := i * stereoChannels
			dst[idx] = int(s0 * maxVal)
			dst[idx+1] = int(s1 * maxVal)
		}
		return totalLen
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := float64(channels[ch][i])
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 {
				sample = -1.0
			}
			dst[base+ch] = int(sample * maxVal)
		}
	}

	return totalLen
}
