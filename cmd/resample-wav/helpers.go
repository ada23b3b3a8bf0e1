package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ttsou/resample"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	// Total duration drives progress reporting only; a missing estimate
	// just silences the percentage output.
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// createChannelResamplers creates one rational resampler per channel.
// Channels never share an engine because each carries its own filter
// history.
func createChannelResamplers[F Float](
	numChannels int,
	inputRate, targetRate int,
	opts ...resample.Option,
) ([]*resample.Resampler[F], error) {
	resamplers := make([]*resample.Resampler[F], numChannels)
	for ch := range numChannels {
		r, err := resample.NewForRates[F](inputRate, targetRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler for channel %d: %w", ch, err)
		}
		resamplers[ch] = r
	}
	return resamplers, nil
}

// wavOutputWriter stages interleaved int samples into an audio.IntBuffer
// and feeds them to a wav.Encoder, which fixes up the RIFF sizes on
// Close.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	staging *audio.IntBuffer
}

// createWAVOutput creates the output file and its encoder.
func createWAVOutput(
	path string,
	sampleRate, bitDepth, channels int,
) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavPCMFormat)

	return &wavOutputWriter{
		file:    outputFile,
		encoder: encoder,
		staging: &audio.IntBuffer{
			Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.staging.Data = samples
	return w.encoder.Write(w.staging)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// carryBuffers accumulates deinterleaved frames until a span the engine
// accepts is available: a multiple of the rate denominator q no shorter
// than the filter history. The remainder of each emission stays in place
// and is prepended to the next read, so the per-channel streams stay
// gapless across block boundaries.
type carryBuffers[F Float] struct {
	q      int
	minIn  int
	bufs   [][]F
	views  [][]F // reused window slices, avoids per-iteration allocs
	frames int
}

// newCarryBuffers sizes per-channel storage for one read plus the worst
// case leftover.
func newCarryBuffers[F Float](channels, q, minIn, readChunk int) *carryBuffers[F] {
	capacity := readChunk + minIn + q
	bufs := make([][]F, channels)
	for ch := range channels {
		bufs[ch] = make([]F, capacity)
	}
	return &carryBuffers[F]{
		q:     q,
		minIn: minIn,
		bufs:  bufs,
		views: make([][]F, channels),
	}
}

// grow ensures capacity for need frames per channel.
func (c *carryBuffers[F]) grow(need int) {
	if need <= len(c.bufs[0]) {
		return
	}
	for ch := range c.bufs {
		grown := make([]F, need)
		copy(grown, c.bufs[ch][:c.frames])
		c.bufs[ch] = grown
	}
}

// tail returns per-channel destinations for appending add frames.
// Call commit once they are filled.
func (c *carryBuffers[F]) tail(add int) [][]F {
	c.grow(c.frames + add)
	for ch := range c.bufs {
		c.views[ch] = c.bufs[ch][c.frames : c.frames+add]
	}
	return c.views
}

// commit marks add appended frames as valid.
func (c *carryBuffers[F]) commit(add int) {
	c.frames += add
}

// usable returns how many held frames can be emitted now: the largest
// multiple of q, or zero while the span is still below the engine
// minimum.
func (c *carryBuffers[F]) usable() int {
	n := c.frames - c.frames%c.q
	if n < c.minIn {
		return 0
	}
	return n
}

// window returns per-channel views of the first n held frames.
func (c *carryBuffers[F]) window(n int) [][]F {
	for ch := range c.bufs {
		c.views[ch] = c.bufs[ch][:n]
	}
	return c.views
}

// consume discards the first n frames, shifting any remainder down.
func (c *carryBuffers[F]) consume(n int) {
	for ch := range c.bufs {
		copy(c.bufs[ch], c.bufs[ch][n:c.frames])
	}
	c.frames -= n
}

// flushPad zero-pads the held remainder up to an emittable span and
// returns its length, plus the true frame count the caller should trim
// the final output against. Returns 0, 0 when nothing is held.
func (c *carryBuffers[F]) flushPad() (padded, trueFrames int) {
	if c.frames == 0 {
		return 0, 0
	}
	trueFrames = c.frames
	padded = max(c.frames, c.minIn)
	padded = (padded + c.q - 1) / c.q * c.q
	c.grow(padded)
	for ch := range c.bufs {
		clear(c.bufs[ch][c.frames:padded])
	}
	c.frames = padded
	return padded, trueFrames
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// resampleChannels runs every channel's input window through its engine,
// writing into the matching output slices. Parallel mode processes
// channels concurrently; engines are independent so no locking is
// needed beyond error collection.
func resampleChannels[F Float](
	resamplers []*resample.Resampler[F],
	ins, outs [][]F,
	parallel bool,
) error {
	if parallel && len(resamplers) > 1 {
		return resampleParallel(resamplers, ins, outs)
	}
	return resampleSequential(resamplers, ins, outs)
}

// resampleParallel processes channels concurrently.
func resampleParallel[F Float](
	resamplers []*resample.Resampler[F],
	ins, outs [][]F,
) error {
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for ch := range resamplers {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			if err := resamplers[channel].Resample(ins[channel], outs[channel]); err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = fmt.Errorf("resampling failed on channel %d: %w", channel, err)
				}
				errMu.Unlock()
			}
		}(ch)
	}
	wg.Wait()

	return processErr
}

// resampleSequential processes channels one by one.
func resampleSequential[F Float](
	resamplers []*resample.Resampler[F],
	ins, outs [][]F,
) error {
	for ch := range resamplers {
		if err := resamplers[ch].Resample(ins[ch], outs[ch]); err != nil {
			return fmt.Errorf("resampling failed on channel %d: %w", ch, err)
		}
	}
	return nil
}
