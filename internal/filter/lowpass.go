package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-resampler/internal/mathutil"
)

// Filter is a stateful block processor run over every freshly filled source
// buffer. pitch is the playback multiplier in effect for the block.
type Filter interface {
	Init(sampleRate float64, maxBufferFrames, numChannels int) error
	Process(samples []float32, numFrames int, pitch float64)
	Reset()
	Name() string
}

// Tuning defaults.
const (
	// DefaultCutoffRatio places the cutoff at this fraction of the
	// pitch-scaled Nyquist frequency.
	DefaultCutoffRatio = 0.9

	// DefaultQ is the Butterworth quality factor 1/√2.
	DefaultQ = 1 / math.Sqrt2

	// MinQ bounds user-supplied quality factors.
	MinQ = 0.1

	minCutoffRatio = 0.01
	maxCutoffRatio = 1.0

	// Bypass threshold: playback at or below this pitch cannot alias.
	bypassPitch = 1.0
)

// Fourth-order Butterworth sections, expressed as 1/Q per stage.
var butterworth4 = [2]float64{0.765367, 1.847759}

// ErrNotInitialized reports use of a filter before Init.
var ErrNotInitialized = errors.New("filter not initialized")

// LowPass is a cascade of biquad lowpass sections whose cutoff follows the
// playback pitch. It is bypassed at pitch 1 and below.
type LowPass struct {
	name        string
	prototypes  []mathutil.Prototype
	cutoffRatio float64

	sampleRate float64
	stages     []*Biquad
	cutoff     float64 // currently applied cutoff, 0 before first use
}

// Option configures a LowPass.
type Option func(*LowPass)

// WithCutoffRatio sets the cutoff as a fraction of the pitch-scaled Nyquist.
// Values are clamped to [0.01, 1].
func WithCutoffRatio(r float64) Option {
	return func(l *LowPass) {
		if math.IsNaN(r) {
			return
		}
		l.cutoffRatio = min(max(r, minCutoffRatio), maxCutoffRatio)
	}
}

// WithQ sets the quality factor of a single-section filter. Ignored by
// cascades, which use fixed Butterworth sections.
func WithQ(q float64) Option {
	return func(l *LowPass) {
		if len(l.prototypes) != 1 || math.IsNaN(q) {
			return
		}
		l.prototypes[0] = mathutil.LowpassPrototype(max(q, MinQ))
	}
}

// NewLPF12 returns a 12 dB/octave lowpass (one biquad).
func NewLPF12(opts ...Option) *LowPass {
	l := &LowPass{
		name:        "LPF12",
		prototypes:  []mathutil.Prototype{mathutil.LowpassPrototype(DefaultQ)},
		cutoffRatio: DefaultCutoffRatio,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLPF24 returns a 24 dB/octave Butterworth lowpass (two biquads).
func NewLPF24(opts ...Option) *LowPass {
	l := &LowPass{
		name:        "LPF24",
		cutoffRatio: DefaultCutoffRatio,
	}
	for _, invQ := range butterworth4 {
		l.prototypes = append(l.prototypes, mathutil.LowpassPrototype(1/invQ))
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Init allocates the section histories. Calling Init again discards state.
func (l *LowPass) Init(sampleRate float64, maxBufferFrames, numChannels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%s: invalid sample rate %v", l.name, sampleRate)
	}
	stages := make([]*Biquad, len(l.prototypes))
	for i := range stages {
		bq, err := NewBiquad(maxBufferFrames, numChannels)
		if err != nil {
			return fmt.Errorf("%s stage %d: %w", l.name, i, err)
		}
		stages[i] = bq
	}
	l.sampleRate = sampleRate
	l.stages = stages
	l.cutoff = 0
	return nil
}

// CutoffFor returns the cutoff frequency used at the given pitch.
func (l *LowPass) CutoffFor(pitch float64) float64 {
	nyquist := l.sampleRate / 2 / max(pitch, bypassPitch)
	return mathutil.ClampCutoff(l.cutoffRatio*nyquist, l.sampleRate)
}

// Process filters numFrames frames of samples in place.
func (l *LowPass) Process(samples []float32, numFrames int, pitch float64) {
	if l.stages == nil {
		panic(fmt.Sprintf("%s: %v", l.name, ErrNotInitialized))
	}

	bypass := pitch <= bypassPitch
	if !bypass {
		l.retune(l.CutoffFor(pitch))
	}
	for _, s := range l.stages {
		s.Process(samples, numFrames, bypass)
	}
}

// retune recomputes coefficients only when the cutoff moves.
func (l *LowPass) retune(cutoff float64) {
	if cutoff == l.cutoff {
		return
	}
	l.cutoff = cutoff
	for i, s := range l.stages {
		s.SetCoefficients(mathutil.Bilinear(l.prototypes[i], cutoff, l.sampleRate))
	}
}

// Reset clears all section histories.
func (l *LowPass) Reset() {
	for _, s := range l.stages {
		s.Reset()
	}
}

// Name identifies the filter type.
func (l *LowPass) Name() string {
	return l.name
}

// Sections returns the current coefficients of each section.
func (l *LowPass) Sections() []mathutil.Biquad {
	out := make([]mathutil.Biquad, len(l.stages))
	for i, s := range l.stages {
		out[i] = s.Coefficients()
	}
	return out
}

// Tune sets the coefficients for pitch without processing audio.
func (l *LowPass) Tune(pitch float64) {
	if l.stages == nil {
		return
	}
	l.retune(l.CutoffFor(pitch))
}
