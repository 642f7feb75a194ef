package resampler

import (
	"fmt"
	"testing"

	"github.com/tphakala/go-pitch-resampler/internal/testutil"
)

func BenchmarkRender(b *testing.B) {
	const blockFrames = 256

	for _, q := range []Quality{QualityLow, QualityMedium, QualityHigh} {
		for _, pitch := range []float64{1, 0.87, 1.5} {
			b.Run(fmt.Sprintf("%s/pitch=%.2f", q, pitch), func(b *testing.B) {
				r, err := New(&Config{
					SampleRate:         RateDAT,
					Channels:           stereoChannels,
					SourceBufferLength: 512,
					MaxFramesToRender:  blockFrames,
					Quality:            q,
				})
				if err != nil {
					b.Fatal(err)
				}
				table, err := NewSampleTable(testutil.Sine(RateDAT, stereoChannels, 440, RateDAT, 0.5), stereoChannels)
				if err != nil {
					b.Fatal(err)
				}
				table.SetLoop(true)
				r.SetAudioSource(table)
				_ = r.SetPitch(pitch, pitch, 0)

				out := make([]float32, blockFrames*stereoChannels)
				b.SetBytes(blockFrames * stereoChannels * bytesPerFloat32)
				b.ResetTimer()
				for b.Loop() {
					r.Render(out, blockFrames)
				}
			})
		}
	}
}

func BenchmarkRender_Glide(b *testing.B) {
	const blockFrames = 64

	r, err := NewMono(RateCD, QualityHigh)
	if err != nil {
		b.Fatal(err)
	}
	table, err := NewSampleTable(testutil.Sine(RateCD, 1, 440, RateCD, 0.5), 1)
	if err != nil {
		b.Fatal(err)
	}
	table.SetLoop(true)
	r.SetAudioSource(table)

	out := make([]float32, blockFrames)
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		if i%1024 == 0 {
			_ = r.SetPitch(0.5, 2, 1)
		}
		r.Render(out, blockFrames)
	}
}
