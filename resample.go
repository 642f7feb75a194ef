package resampler

import (
	"errors"
	"fmt"
	"math"
)

// Config holds renderer configuration.
type Config struct {
	// SampleRate is the sample rate of both source and output audio in Hz.
	// Pitch changes playback speed; it does not change the rate.
	SampleRate float64

	// Channels is the number of interleaved audio channels.
	Channels int

	// SourceBufferLength is the number of frames pulled from the source per
	// fill. Each of the two ping-pong buffers holds this many frames.
	// Set to 0 to use the default.
	SourceBufferLength int

	// MaxFramesToRender bounds numFrames in every Render call. Scratch
	// buffers are sized to it once, at construction.
	// Set to 0 to use the default.
	MaxFramesToRender int

	// Quality selects the interpolator and anti-alias filters.
	// QualityCustom leaves both unset; wire them with SetInterpolator
	// and AddLowPassFilter.
	Quality Quality

	// CutoffToNyquistRatio places the preset filters' cutoff at this fraction
	// of the pitch-scaled Nyquist frequency. Set to 0 to use the default.
	CutoffToNyquistRatio float64
}

// Quality enumerates predefined interpolator/filter combinations.
type Quality int

const (
	// QualityLow uses linear interpolation and no anti-alias filter.
	// Cheapest; aliases audibly when pitching up.
	QualityLow Quality = iota

	// QualityMedium uses Hermite interpolation and a 12 dB/octave lowpass.
	QualityMedium

	// QualityHigh uses Hermite interpolation and a 24 dB/octave lowpass.
	QualityHigh

	// QualityCustom indicates manual configuration.
	QualityCustom
)

var qualityNames = map[Quality]string{
	QualityLow:    "low",
	QualityMedium: "medium",
	QualityHigh:   "high",
	QualityCustom: "custom",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality maps a preset name (low, medium, high, custom) to a Quality.
func ParseQuality(s string) (Quality, error) {
	for q, name := range qualityNames {
		if name == s {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
}

// Common errors returned by the renderer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid renderer configuration")

	// ErrDuplicateFilter indicates a filter instance is already registered.
	ErrDuplicateFilter = errors.New("filter already added")

	// ErrTooManyFilters indicates the filter cap has been reached.
	ErrTooManyFilters = errors.New("too many low-pass filters")

	// ErrInvalidPitch indicates a pitch value outside the supported range.
	// The value is clamped and the call still takes effect.
	ErrInvalidPitch = errors.New("pitch out of range")
)

// withDefaults returns a copy with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.SourceBufferLength == 0 {
		c.SourceBufferLength = defaultSourceBufferLength
	}
	if c.MaxFramesToRender == 0 {
		c.MaxFramesToRender = defaultMaxFramesToRender
	}
	if c.CutoffToNyquistRatio == 0 {
		c.CutoffToNyquistRatio = defaultCutoffToNyquistRatio
	}
	return c
}

// Validate checks if the configuration is valid. Zero buffer sizes and
// cutoff ratio are accepted and replaced by defaults in New.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.SourceBufferLength != 0 && (c.SourceBufferLength < minSourceBufferLength || c.SourceBufferLength > maxBufferFrames) {
		return fmt.Errorf("%w: source buffer length must be 0 (default) or %d-%d frames",
			ErrInvalidConfig, minSourceBufferLength, maxBufferFrames)
	}

	if c.MaxFramesToRender < 0 || c.MaxFramesToRender > maxBufferFrames {
		return fmt.Errorf("%w: max frames to render must be 0 (default) or 1-%d", ErrInvalidConfig, maxBufferFrames)
	}

	if c.CutoffToNyquistRatio < 0 || c.CutoffToNyquistRatio > 1 || math.IsNaN(c.CutoffToNyquistRatio) {
		return fmt.Errorf("%w: cutoff to Nyquist ratio must be in (0, 1]", ErrInvalidConfig)
	}

	if _, ok := qualityNames[c.Quality]; !ok {
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidConfig, int(c.Quality))
	}

	return nil
}

// New creates a renderer with the specified configuration and applies its
// quality preset.
func New(config *Config) (*Renderer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := config.withDefaults()
	r, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	if err := r.SetQuality(cfg.Quality); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRenderer creates a bare renderer. SetAudioSource and SetInterpolator
// must be called before the first Render.
func NewRenderer(sampleRate float64, numChannels, sourceBufferLength, maxFramesToRender int) (*Renderer, error) {
	return New(&Config{
		SampleRate:         sampleRate,
		Channels:           numChannels,
		SourceBufferLength: sourceBufferLength,
		MaxFramesToRender:  maxFramesToRender,
		Quality:            QualityCustom,
	})
}

// Info describes a renderer's current configuration.
type Info struct {
	// Interpolator names the interpolation algorithm, or "" if unset.
	Interpolator string

	// Filters names the registered anti-alias filters in processing order.
	Filters []string

	// Quality is the last preset applied.
	Quality Quality

	// Channels is the interleaved channel count.
	Channels int

	// SampleRate is the processing rate in Hz.
	SampleRate float64

	// SourceBufferLength is the frames per source pull.
	SourceBufferLength int

	// MaxFramesToRender bounds each Render call.
	MaxFramesToRender int

	// FrontPadding and BackPadding are the look-behind and look-ahead
	// frames kept around each source buffer.
	FrontPadding int
	BackPadding  int

	// MemoryUsage is the approximate size of the sample buffers in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set detected.
	SIMDType string
}
