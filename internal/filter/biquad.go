// Package filter provides the pitch-tracking anti-alias filters applied to
// source audio before interpolation.
package filter

import (
	"fmt"

	"github.com/tphakala/go-pitch-resampler/internal/mathutil"
	"github.com/tphakala/go-pitch-resampler/internal/pipeline"
)

// historyFrames is the number of past input and output frames a second-order
// section needs.
const historyFrames = 2

// Biquad is a single second-order IIR section over interleaved audio.
//
// Input and output history are kept in private padded buffers, so the
// section carries state across calls without reading the caller's padding.
type Biquad struct {
	coef     mathutil.Biquad
	channels int

	source *pipeline.PaddedBuffer // clean input, front padding holds x[n-2], x[n-1]
	output *pipeline.PaddedBuffer // filtered output, front padding holds y[n-2], y[n-1]
}

// NewBiquad allocates a section for blocks of up to maxFrames frames.
// The initial coefficients pass the signal through unchanged.
func NewBiquad(maxFrames, channels int) (*Biquad, error) {
	source, err := pipeline.NewPaddedBuffer(maxFrames, channels, historyFrames, 0)
	if err != nil {
		return nil, fmt.Errorf("biquad source history: %w", err)
	}
	output, err := pipeline.NewPaddedBuffer(maxFrames, channels, historyFrames, 0)
	if err != nil {
		return nil, fmt.Errorf("biquad output history: %w", err)
	}
	return &Biquad{
		coef:     mathutil.Biquad{1, 0, 0, 0, 0},
		channels: channels,
		source:   source,
		output:   output,
	}, nil
}

// SetCoefficients replaces the section coefficients. History is kept.
func (b *Biquad) SetCoefficients(c mathutil.Biquad) {
	b.coef = c
}

// Coefficients returns the current coefficients.
func (b *Biquad) Coefficients() mathutil.Biquad {
	return b.coef
}

// Process filters numFrames interleaved frames of samples in place.
//
// With bypass set the samples are left untouched but the history still
// advances, so switching the filter back on does not click.
func (b *Biquad) Process(samples []float32, numFrames int, bypass bool) {
	if numFrames > b.source.FrameCapacity() {
		panic(fmt.Sprintf("filter: block of %d frames exceeds capacity %d", numFrames, b.source.FrameCapacity()))
	}

	ch := b.channels
	n := numFrames * ch
	x := b.source.Data()
	y := b.output.Data()
	start := b.source.StartIndex()

	// The previous block's last two frames become this block's history.
	copy(x[:start], x[b.source.Length*ch:b.source.Length*ch+start])
	copy(y[:start], y[b.output.Length*ch:b.output.Length*ch+start])
	copy(x[start:start+n], samples[:n])
	b.source.Length = numFrames
	b.output.Length = numFrames

	if bypass {
		copy(y[start:start+n], samples[:n])
		return
	}

	c0, c1, c2, c3, c4 := b.coef[0], b.coef[1], b.coef[2], b.coef[3], b.coef[4]
	for c := range ch {
		for i := start + c; i < start+n; i += ch {
			v := c0*float64(x[i]) + c1*float64(x[i-ch]) + c2*float64(x[i-2*ch]) -
				c3*float64(y[i-ch]) - c4*float64(y[i-2*ch])
			y[i] = float32(v)
		}
	}
	copy(samples[:n], y[start:start+n])
}

// Reset clears the filter history.
func (b *Biquad) Reset() {
	b.source.ClearAll()
	b.output.ClearAll()
	b.source.Length = 0
	b.output.Length = 0
}
