package resampler

import (
	"github.com/tphakala/go-pitch-resampler/internal/engine"
	"github.com/tphakala/go-pitch-resampler/internal/filter"
)

// Interpolator converts fractional read positions into output samples.
//
// Process is called once per channel. For each i it reads samples around
// input[base + floor(positions[i])*hop] and writes output[i*hop]. Padding
// reports how many frames before and after that window it may touch; the
// renderer guarantees two of each.
type Interpolator = engine.Interpolator

// InterpolatorKind identifies a built-in interpolation algorithm.
type InterpolatorKind = engine.Kind

// Built-in interpolation algorithms.
const (
	InterpolatorLinear  = engine.KindLinear
	InterpolatorCubic   = engine.KindCubic
	InterpolatorHermite = engine.KindHermite
	InterpolatorWatte   = engine.KindWatte
)

// NewInterpolator returns a built-in interpolator.
func NewInterpolator(kind InterpolatorKind) (Interpolator, error) {
	return engine.New(kind)
}

// ParseInterpolator maps a name (linear, cubic, hermite, watte) to its kind.
func ParseInterpolator(name string) (InterpolatorKind, error) {
	return engine.ParseKind(name)
}

// NewLinearInterpolator returns 2-point linear interpolation.
func NewLinearInterpolator() Interpolator { return engine.Linear{} }

// NewCubicInterpolator returns 4-point cubic interpolation.
func NewCubicInterpolator() Interpolator { return engine.Cubic{} }

// NewHermiteInterpolator returns 4-point Hermite interpolation.
func NewHermiteInterpolator() Interpolator { return engine.Hermite{} }

// NewWatteInterpolator returns the 4-point Watte tri-linear approximation.
func NewWatteInterpolator() Interpolator { return engine.Watte{} }

// LowPassFilter is an anti-alias filter run over each freshly pulled
// source buffer before interpolation. pitch is the playback multiplier at
// the time of the pull.
type LowPassFilter = filter.Filter

// LowPass is the built-in pitch-tracking biquad lowpass.
type LowPass = filter.LowPass

// FilterOption configures a built-in low-pass filter.
type FilterOption = filter.Option

// WithCutoffToNyquistRatio places the cutoff at ratio times the
// pitch-scaled Nyquist frequency. The default is 0.9.
func WithCutoffToNyquistRatio(ratio float64) FilterOption {
	return filter.WithCutoffRatio(ratio)
}

// WithQ sets the quality factor of an LPF12. The default is 1/√2 and
// values below 0.1 are raised to 0.1.
func WithQ(q float64) FilterOption {
	return filter.WithQ(q)
}

// NewLPF12 returns a 12 dB/octave anti-alias filter.
func NewLPF12(opts ...FilterOption) *LowPass {
	return filter.NewLPF12(opts...)
}

// NewLPF24 returns a 24 dB/octave Butterworth anti-alias filter.
func NewLPF24(opts ...FilterOption) *LowPass {
	return filter.NewLPF24(opts...)
}
