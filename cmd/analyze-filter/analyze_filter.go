// Command analyze-filter prints the magnitude response of the anti-alias
// lowpass filters as they retune with pitch.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tphakala/go-pitch-resampler/internal/filter"
)

const (
	defaultSampleRate = 44100.0
	defaultFFTSize    = 8192

	// Display parameters
	cutoffDropDB   = 3.0  // Edge of the passband
	stopbandDropDB = 40.0 // Where the filter counts as rejecting
)

// Frequencies probed in the analytic table, as fractions of the sample rate.
var probeFractions = []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.45}

func main() {
	sampleRate := flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
	fftSize := flag.Int("fft", defaultFFTSize, "Impulse response length for measurement")
	flag.Parse()

	if err := run(*sampleRate, *fftSize); err != nil {
		log.Fatal(err)
	}
}

func run(sampleRate float64, fftSize int) error {
	fmt.Println("=== Analyzing Anti-Alias Filters ===")

	pitches := []float64{1.25, 1.5, 2, 3, 4, 8}
	builders := []struct {
		name string
		make func() *filter.LowPass
	}{
		{"LPF12", func() *filter.LowPass { return filter.NewLPF12() }},
		{"LPF24", func() *filter.LowPass { return filter.NewLPF24() }},
	}

	freqs := make([]float64, len(probeFractions))
	for i, f := range probeFractions {
		freqs[i] = f * sampleRate
	}

	for _, b := range builders {
		fmt.Printf("\n=== %s ===\n", b.name)

		lp := b.make()
		if err := lp.Init(sampleRate, fftSize, 1); err != nil {
			return err
		}

		fmt.Printf("%8s %10s", "pitch", "cutoff")
		for _, f := range freqs {
			fmt.Printf(" %9.0fHz", f)
		}
		fmt.Printf(" %10s %10s\n", "-3dB", "-40dB")

		for _, p := range pitches {
			points, err := lp.AnalyticResponse(p, freqs)
			if err != nil {
				return err
			}
			fmt.Printf("%8.2f %8.0fHz", p, lp.CutoffFor(p))
			for _, pt := range points {
				fmt.Printf(" %9.1fdB", pt.MagnitudeDB)
			}

			measured, err := filter.MeasureResponse(b.make(), sampleRate, p, fftSize)
			if err != nil {
				return err
			}
			fmt.Printf(" %8.0fHz %8.0fHz\n",
				filter.EdgeFrequency(measured, cutoffDropDB),
				filter.EdgeFrequency(measured, stopbandDropDB))
		}

		fmt.Printf("  sections at pitch %.0f:\n", pitches[len(pitches)-1])
		for i, s := range lp.Sections() {
			fmt.Printf("    %d: b=[%.6f %.6f %.6f] a=[%.6f %.6f]\n", i, s[0], s[1], s[2], s[3], s[4])
		}
	}
	return nil
}
