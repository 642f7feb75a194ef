// Package testutil provides reusable test helpers for renderer tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-6
	DBTolerance      = 0.01
)

// Ramp returns interleaved frames where every sample encodes its position:
// frame f, channel c holds (f+1) + c/10. No sample is zero, which makes
// silence padding easy to spot.
func Ramp(frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = float32(f+1) + float32(c)/10
		}
	}
	return out
}

// Sine returns an interleaved sine with the same tone in every channel.
func Sine(frames, channels int, freq, sampleRate, amp float64) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		v := float32(amp * math.Sin(2*math.Pi*freq*float64(f)/sampleRate))
		for c := range channels {
			out[f*channels+c] = v
		}
	}
	return out
}

// Alternating returns the ±1 Nyquist-rate pattern in every channel.
func Alternating(frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		v := float32(1)
		if f%2 == 1 {
			v = -1
		}
		for c := range channels {
			out[f*channels+c] = v
		}
	}
	return out
}

// AssertFramesEqual verifies bit-exact equality and reports the first
// mismatching frame.
func AssertFramesEqual(t *testing.T, want, got []float32, channels int, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return assert.Fail(t, "frames differ",
				"frame %d channel %d: want %v, got %v", i/channels, i%channels, want[i], got[i])
		}
	}
	return true
}

// AssertAllZero verifies every sample is exactly zero.
func AssertAllZero(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%v", i, v)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float32, minVal, maxVal float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMaxStep verifies consecutive frames of one channel never jump by
// more than maxStep.
func AssertMaxStep(t *testing.T, s []float32, channels, ch int, maxStep float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := ch + channels; i < len(s); i += channels {
		step := math.Abs(float64(s[i]) - float64(s[i-channels]))
		if step > maxStep {
			return assert.Fail(t, "discontinuity",
				"frame %d: step %f exceeds %f", i/channels, step, maxStep)
		}
	}
	return true
}
