// Package resampler provides real-time pitch and playback-speed conversion
// in pure Go.
//
// A [Renderer] pulls interleaved float32 frames from an [AudioSource] and
// plays them back at a pitch multiplier that can glide linearly over time.
// A multiplier of 2 plays an octave up (twice as fast), 0.5 an octave down.
// Source and output share one sample rate; the pitch changes how fast the
// source is read.
//
// # Features
//
//   - Linear, cubic, Hermite and Watte tri-linear interpolation
//   - Pitch-tracking biquad anti-alias filters (12 and 24 dB/octave),
//     bypassed when playing at or below the original speed
//   - Sample-accurate linear pitch glides with closed-form frame-count
//     conversions for scheduling
//   - Bit-exact passthrough at unity pitch
//   - Fixed memory: every buffer is allocated at construction and Render
//     never allocates
//
// # Quick Start
//
//	table, err := resampler.NewSampleTable(samples, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table.SetLoop(true)
//
//	r, err := resampler.NewStereo(resampler.RateCD, resampler.QualityHigh)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.SetAudioSource(table)
//	_ = r.SetPitch(1, 2, 0.5) // glide up an octave over half a second
//
//	out := make([]float32, 64*2)
//	for {
//	    n := r.Render(out, 64)
//	    play(out[:n*2])
//	    if n < 64 {
//	        break // source exhausted
//	    }
//	}
//
// # Quality Presets
//
//   - [QualityLow]: linear interpolation, no filter.
//   - [QualityMedium]: Hermite interpolation with a 12 dB/octave lowpass.
//   - [QualityHigh]: Hermite interpolation with a 24 dB/octave lowpass.
//   - [QualityCustom]: nothing preset; call [Renderer.SetInterpolator] and
//     [Renderer.AddLowPassFilter] yourself.
//
// # Source Exhaustion
//
// A source signals its end by returning fewer frames than requested. Render
// then returns fewer frames than asked for, zeroes the rest of the output
// block and resets itself. The next Render starts over with a fresh pull.
//
// # Thread Safety
//
// A [Renderer] is meant to be driven from a single audio callback. It is not
// safe for concurrent use; configuration calls such as [Renderer.SetPitch]
// must not race with [Renderer.Render]. Independent renderers may run on
// separate goroutines.
package resampler
