// Command pitch-wav plays a WAV file back at a different pitch.
//
// Usage:
//
//	pitch-wav -pitch 2 input.wav output.wav                      # one octave up
//	pitch-wav -pitch 1 -end-pitch 0.5 -glide 3 in.wav out.wav    # glide down over 3s
//	pitch-wav -pitch 1.5 -loop -duration 10 loop.wav out.wav     # loop for 10s
//	pitch-wav -pitch 3 -quality custom -interp watte in.wav out.wav
//
// The output keeps the input's sample rate, channel count and bit depth.
// Pitching up shortens the file, pitching down lengthens it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	resampler "github.com/tphakala/go-pitch-resampler"
	"github.com/tphakala/go-pitch-resampler/internal/simdops"
)

const (
	// Frames per source pull and per Render call
	defaultBlockFrames = 512

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// CLI defaults
	minRequiredArgs = 2
)

type options struct {
	inputPath  string
	outputPath string
	startPitch float64
	endPitch   float64
	glide      float64
	quality    resampler.Quality
	interp     string
	loop       bool
	duration   float64
	block      int
	verbose    bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	pitch := flag.Float64("pitch", 1, "Playback pitch multiplier (2 = octave up, 0.5 = octave down)")
	endPitch := flag.Float64("end-pitch", 0, "Pitch to glide to; 0 keeps -pitch")
	glide := flag.Float64("glide", 0, "Glide duration in seconds")
	quality := flag.String("quality", "high", "Quality preset: low, medium, high, custom")
	interp := flag.String("interp", "", "Interpolator override: linear, cubic, hermite, watte")
	loop := flag.Bool("loop", false, "Loop the input (requires -duration)")
	duration := flag.Float64("duration", 0, "Output length in seconds; 0 renders until the input ends")
	block := flag.Int("block", defaultBlockFrames, "Frames per render block")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -pitch 2 input.wav output.wav                   # Octave up\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -pitch 1 -end-pitch 0.5 -glide 3 in.wav out.wav # Tape stop\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	q, err := resampler.ParseQuality(*quality)
	if err != nil {
		return err
	}

	opts := options{
		inputPath:  args[0],
		outputPath: args[1],
		startPitch: *pitch,
		endPitch:   *endPitch,
		glide:      *glide,
		quality:    q,
		interp:     *interp,
		loop:       *loop,
		duration:   *duration,
		block:      *block,
		verbose:    *verbose,
	}
	if opts.endPitch == 0 {
		opts.endPitch = opts.startPitch
	}
	if opts.loop && opts.duration <= 0 {
		return fmt.Errorf("-loop requires a positive -duration")
	}

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

	if opts.verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Pitch: %.4f -> %.4f over %.2fs", opts.startPitch, opts.endPitch, opts.glide)
		log.Printf("Quality: %s", opts.quality)
		log.Printf("SIMD: %s", simdops.Info())
	}

	start := time.Now()
	stats, err := pitchWAV(opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Rendered %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.sampleRate, stats.channels, stats.bitDepth)
	fmt.Printf("  pitch %.4f -> %.4f, %d frames out\n", opts.startPitch, opts.endPitch, stats.outputFrames)
	if opts.verbose {
		fmt.Printf("  output level: %.1f dBFS RMS, %.1f dBFS peak\n", stats.rmsDBFS, stats.peakDBFS)
	}
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.outputFrames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

type renderStats struct {
	sampleRate   int
	channels     int
	bitDepth     int
	outputFrames int64
	rmsDBFS      float64
	peakDBFS     float64
}

func pitchWAV(opts options) (stats *renderStats, err error) {
	input, err := openWAVInput(opts.inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	r, err := newWAVRenderer(input, opts)
	if err != nil {
		return nil, err
	}

	var source resampler.AudioSource
	var stream *wavSource
	if opts.loop {
		table, err := loadSampleTable(input)
		if err != nil {
			return nil, err
		}
		table.SetLoop(true)
		source = table
	} else {
		stream = newWAVSource(input, opts.block)
		source = stream
	}
	r.SetAudioSource(source)

	if err := r.SetPitch(opts.startPitch, opts.endPitch, opts.glide); err != nil {
		if !errors.Is(err, resampler.ErrInvalidPitch) {
			return nil, err
		}
		log.Printf("warning: %v (clamped)", err)
	}

	output, err := createWAVOutput(opts.outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	limit := int64(0)
	if opts.duration > 0 {
		limit = int64(opts.duration * float64(input.rate))
	}

	meter := &levelMeter{}
	stats = &renderStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}

	block := make([]float32, opts.block*input.channels)
	for limit == 0 || stats.outputFrames < limit {
		want := opts.block
		if limit > 0 {
			want = int(min(int64(want), limit-stats.outputFrames))
		}

		n := r.Render(block, want)
		samples := block[:n*input.channels]
		if err := output.WriteFrames(samples); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}
		meter.Add(samples)
		stats.outputFrames += int64(n)

		if n < want {
			break
		}
	}

	if stream != nil && stream.Err() != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", stream.Err())
	}

	stats.rmsDBFS, stats.peakDBFS = meter.DBFS()
	return stats, nil
}

// newWAVRenderer sizes a renderer for the input file and applies the
// quality preset plus any interpolator override.
func newWAVRenderer(input *wavInputInfo, opts options) (*resampler.Renderer, error) {
	r, err := resampler.New(&resampler.Config{
		SampleRate:         float64(input.rate),
		Channels:           input.channels,
		SourceBufferLength: opts.block,
		MaxFramesToRender:  opts.block,
		Quality:            opts.quality,
	})
	if err != nil {
		return nil, err
	}

	name := opts.interp
	if name == "" && opts.quality == resampler.QualityCustom {
		name = "hermite"
	}
	if name != "" {
		kind, err := resampler.ParseInterpolator(name)
		if err != nil {
			return nil, err
		}
		interp, err := resampler.NewInterpolator(kind)
		if err != nil {
			return nil, err
		}
		r.SetInterpolator(interp)
	}

	if opts.verbose {
		info := r.GetInfo()
		log.Printf("Renderer: %s interpolation, filters %v, %d-frame buffers (%d bytes)",
			info.Interpolator, info.Filters, info.SourceBufferLength, info.MemoryUsage)
	}
	return r, nil
}
