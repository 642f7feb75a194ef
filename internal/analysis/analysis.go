// Package analysis measures rendered audio: level statistics and spectra.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-pitch-resampler/internal/simdops"
)

// Levels summarizes one channel of a signal.
type Levels struct {
	RMS  float64
	Peak float64
	DC   float64
}

// Channel extracts channel ch from interleaved samples.
func Channel(samples []float32, channels, ch int) []float32 {
	if channels < 1 || ch < 0 || ch >= channels {
		return nil
	}
	out := make([]float32, 0, len(samples)/channels)
	for i := ch; i < len(samples); i += channels {
		out = append(out, samples[i])
	}
	return out
}

// Measure computes level statistics of a mono signal.
func Measure(samples []float32) Levels {
	if len(samples) == 0 {
		return Levels{}
	}
	ops := simdops.Float32Ops()
	n := float64(len(samples))

	var peak float64
	for _, v := range samples {
		peak = max(peak, math.Abs(float64(v)))
	}
	return Levels{
		RMS:  math.Sqrt(float64(ops.DotProductUnsafe(samples, samples)) / n),
		Peak: peak,
		DC:   float64(ops.Sum(samples)) / n,
	}
}

// RMS returns the root-mean-square level of a mono signal.
func RMS(samples []float32) float64 {
	return Measure(samples).RMS
}

// Spectrum is a single-sided magnitude spectrum.
type Spectrum struct {
	BinHz     float64
	Magnitude []float64
}

// ComputeSpectrum returns the Hann-windowed magnitude spectrum of a mono
// signal. Magnitudes are scaled so a full-scale sine reads close to 1.
func ComputeSpectrum(samples []float32, sampleRate float64) Spectrum {
	n := len(samples)
	if n == 0 {
		return Spectrum{}
	}

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = float64(v)
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	// Hann coherent gain is 0.5; single-sided doubles.
	scale := 4 / float64(n)
	mag := make([]float64, n/2+1)
	for i := range mag {
		mag[i] = cmplx.Abs(coeffs[i]) * scale
	}
	return Spectrum{BinHz: sampleRate / float64(n), Magnitude: mag}
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func (s Spectrum) DominantFrequency() float64 {
	if len(s.Magnitude) < 2 {
		return 0
	}
	return float64(floats.MaxIdx(s.Magnitude[1:])+1) * s.BinHz
}

// BandEnergy returns the summed squared magnitude between lo and hi Hz.
func (s Spectrum) BandEnergy(lo, hi float64) float64 {
	var e float64
	for i, m := range s.Magnitude {
		f := float64(i) * s.BinHz
		if f >= lo && f <= hi {
			e += m * m
		}
	}
	return e
}

// DBFS converts a linear level to dB relative to full scale.
func DBFS(level float64) float64 {
	if level <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(level)
}
