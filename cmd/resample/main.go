// Package main provides the resample command, a rational rate converter
// for raw little-endian sample streams.
//
// The tool reads fixed-size blocks from the input file, resamples each
// block by the rational factor P/Q, and writes the converted stream to
// the output file. All twelve sample bindings share one generic
// conversion loop; the -t flag selects which binding decodes the bytes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ttsou/resample"
	"github.com/ttsou/resample/internal/sampleio"
)

var log = logrus.New()

type cliConfig struct {
	input       string
	output      string
	p, q        int
	typeTag     string
	taps        int
	verbose     bool
	showVersion bool
	help        bool
}

func parseFlags() *cliConfig {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.input, "input", "", "Input file of raw samples")
	flag.StringVar(&cfg.input, "i", "", "Input file (shorthand)")
	flag.StringVar(&cfg.output, "output", "", "Output file")
	flag.StringVar(&cfg.output, "o", "", "Output file (shorthand)")
	flag.IntVar(&cfg.p, "p", 0, "Rational rate numerator 'P'")
	flag.IntVar(&cfg.q, "q", 0, "Rational rate denominator 'Q'")
	flag.StringVar(&cfg.typeTag, "type", defaultTypeTag, "Sample type tag")
	flag.StringVar(&cfg.typeTag, "t", defaultTypeTag, "Sample type tag (shorthand)")
	flag.IntVar(&cfg.taps, "taps", defaultTaps, "Filter taps per phase (0 = per-type default)")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable debug output")
	flag.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&cfg.showVersion, "v", false, "Print version and exit (shorthand)")
	flag.BoolVar(&cfg.help, "help", false, "Show help message")
	flag.BoolVar(&cfg.help, "h", false, "Show help message (shorthand)")

	flag.Usage = printUsage
	flag.Parse()
	return cfg
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -i <file> -o <file> -p <num> -q <den> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nSample types:\n")
	for _, f := range sampleio.Formats {
		fmt.Fprintf(os.Stderr, "  %4s - %s\n", f.Tag, f.Desc)
	}
}

func validateConfig(cfg *cliConfig) error {
	if cfg.input == "" {
		return fmt.Errorf("input file required")
	}
	if cfg.output == "" {
		return fmt.Errorf("output file required")
	}
	if cfg.p < 1 || cfg.q < 1 {
		return fmt.Errorf("rate factors must be positive, got P=%d Q=%d", cfg.p, cfg.q)
	}
	if cfg.taps < 0 {
		return fmt.Errorf("taps cannot be negative, got %d", cfg.taps)
	}
	if _, ok := sampleio.FormatByTag(cfg.typeTag); !ok {
		return fmt.Errorf("unknown sample type %q", cfg.typeTag)
	}
	return nil
}

func main() {
	cfg := parseFlags()

	if cfg.help {
		printUsage()
		os.Exit(0)
	}
	if cfg.showVersion {
		fmt.Printf("resample version %s\n", version)
		os.Exit(0)
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if cfg.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "resample: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(2)
	}

	format, _ := sampleio.FormatByTag(cfg.typeTag)

	var err error
	switch cfg.typeTag {
	case "s8":
		err = run[int8](cfg, format)
	case "s16":
		err = run[int16](cfg, format)
	case "s32":
		err = run[int32](cfg, format)
	case "s64":
		err = run[int64](cfg, format)
	case "f32":
		err = run[float32](cfg, format)
	case "f64":
		err = run[float64](cfg, format)
	case "sc8":
		err = run[resample.Complex[int8]](cfg, format)
	case "sc16":
		err = run[resample.Complex[int16]](cfg, format)
	case "sc32":
		err = run[resample.Complex[int32]](cfg, format)
	case "sc64":
		err = run[resample.Complex[int64]](cfg, format)
	case "fc32":
		err = run[resample.Complex[float32]](cfg, format)
	case "fc64":
		err = run[resample.Complex[float64]](cfg, format)
	}
	if err != nil {
		log.WithError(err).Fatal("Conversion failed")
	}
}

// run drives the read, resample, write loop for one element binding.
func run[E resample.Element](cfg *cliConfig, format sampleio.Format) error {
	var opts []resample.Option
	if cfg.taps > 0 {
		opts = append(opts, resample.WithTaps(cfg.taps))
	}
	r, err := resample.New[E](cfg.p, cfg.q, opts...)
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(cfg.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	codec := sampleio.For[E]()

	// Blocks target the transfer size but must carry at least the
	// engine's minimum of taps-1 samples, so large denominators or long
	// filters raise the group count instead of failing every call.
	minIn := r.Taps() - 1
	groups := max(sampleio.GroupsPerBlock(codec.Size, cfg.q), (r.Taps()+cfg.q-2)/cfg.q)

	log.WithFields(logrus.Fields{
		"p":       cfg.p,
		"q":       cfg.q,
		"taps":    r.Taps(),
		"latency": r.Latency(),
		"type":    format.Tag,
		"block":   groups * cfg.q,
	}).Debug("Resampler ready")

	br := sampleio.NewBlockReader(in, codec, cfg.q, groups)
	bw := sampleio.NewBlockWriter(out, codec)

	input := make([]E, groups*cfg.q)
	output := make([]E, groups*cfg.p)
	var written int

	for {
		n, err := br.Read(input)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if n < minIn {
			// A final fragment below the filter span cannot be
			// resampled without zero padding, which would color the
			// stream tail. Drop it like any sub-group remainder.
			log.WithFields(logrus.Fields{
				"samples": n,
				"minimum": minIn,
			}).Debug("Discarding short final block")
			break
		}

		m := n / cfg.q * cfg.p
		if err := r.Resample(input[:n], output[:m]); err != nil {
			return err
		}
		if err := bw.Write(output[:m]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		written += m

		log.WithFields(logrus.Fields{"in": n, "out": m}).Debug("Resampled block")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	bytes := written * codec.Size
	fmt.Printf("Wrote %s '%s' samples (%s) to %s\n",
		humanize.Comma(int64(written)), format.Desc,
		humanize.Bytes(uint64(bytes)), cfg.output)
	return nil
}
