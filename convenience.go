package resampler

import (
	"fmt"

	"github.com/tphakala/go-pitch-resampler/internal/simdops"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050
)

// NewMono creates a mono renderer with default buffer sizes.
func NewMono(sampleRate float64, quality Quality) (*Renderer, error) {
	return New(&Config{
		SampleRate: sampleRate,
		Channels:   monoChannels,
		Quality:    quality,
	})
}

// NewStereo creates a stereo renderer with default buffer sizes.
func NewStereo(sampleRate float64, quality Quality) (*Renderer, error) {
	return New(&Config{
		SampleRate: sampleRate,
		Channels:   stereoChannels,
		Quality:    quality,
	})
}

// RenderAll renders blocks of MaxFramesToRender frames until the source
// runs dry or maxFrames frames have been produced, and returns them
// interleaved. maxFrames <= 0 means no limit, which never returns for a
// looping source.
func RenderAll(r *Renderer, maxFrames int) []float32 {
	ch := r.GetNumChannels()
	block := make([]float32, r.maxFramesToRender*ch)
	var out []float32

	for maxFrames <= 0 || len(out)/ch < maxFrames {
		n := r.maxFramesToRender
		if maxFrames > 0 {
			n = min(n, maxFrames-len(out)/ch)
		}
		got := r.Render(block, n)
		out = append(out, block[:got*ch]...)
		if got < n {
			break
		}
	}
	return out
}

// PitchShift renders a whole mono or interleaved table at a fixed pitch.
// It is a one-shot helper for offline use; streaming callers should hold a
// Renderer and call Render directly.
func PitchShift(input []float32, channels int, sampleRate, pitch float64, quality Quality) ([]float32, error) {
	table, err := NewSampleTable(input, channels)
	if err != nil {
		return nil, err
	}

	r, err := New(&Config{
		SampleRate: sampleRate,
		Channels:   channels,
		Quality:    quality,
	})
	if err != nil {
		return nil, err
	}
	if quality == QualityCustom {
		r.SetInterpolator(NewHermiteInterpolator())
	}
	r.SetAudioSource(table)
	if err := r.SetPitch(pitch, pitch, 0); err != nil {
		return nil, err
	}
	return RenderAll(r, 0), nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) ([]float32, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)", ErrInvalidConfig, len(left), len(right))
	}
	out := make([]float32, stereoChannels*len(left))
	simdops.Float32Ops().Interleave2(out, left, right)
	return out, nil
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
// An odd-length input is rejected rather than truncated.
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32, err error) {
	if len(interleaved)%stereoChannels != 0 {
		return nil, nil, fmt.Errorf("%w: interleaved stereo length %d is odd", ErrInvalidConfig, len(interleaved))
	}
	n := len(interleaved) / stereoChannels
	left = make([]float32, n)
	right = make([]float32, n)
	for i := range n {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right, nil
}
