package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tone(frames int, freq, sampleRate, amp float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    Levels
	}{
		{"empty", nil, Levels{}},
		{"dc", []float32{0.5, 0.5, 0.5, 0.5}, Levels{RMS: 0.5, Peak: 0.5, DC: 0.5}},
		{"square", []float32{1, -1, 1, -1, 1, -1, 1, -1}, Levels{RMS: 1, Peak: 1, DC: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Measure(tt.samples)
			assert.InDelta(t, tt.want.RMS, got.RMS, 1e-6)
			assert.InDelta(t, tt.want.Peak, got.Peak, 1e-6)
			assert.InDelta(t, tt.want.DC, got.DC, 1e-6)
		})
	}
}

func TestMeasure_SineRMS(t *testing.T) {
	s := tone(48000, 1000, 48000, 1)
	assert.InDelta(t, 1/math.Sqrt2, RMS(s), 1e-3)
}

func TestChannel(t *testing.T) {
	inter := []float32{1, 10, 2, 20, 3, 30}
	assert.Equal(t, []float32{1, 2, 3}, Channel(inter, 2, 0))
	assert.Equal(t, []float32{10, 20, 30}, Channel(inter, 2, 1))
	assert.Nil(t, Channel(inter, 2, 2))
}

func TestComputeSpectrum_DominantFrequency(t *testing.T) {
	const sr = 44100.0
	for _, freq := range []float64{440, 1000, 5512.5} {
		spec := ComputeSpectrum(tone(8192, freq, sr, 0.8), sr)
		require.NotEmpty(t, spec.Magnitude)
		assert.InDelta(t, freq, spec.DominantFrequency(), spec.BinHz, "tone %v", freq)
	}
}

func TestComputeSpectrum_AmplitudeScale(t *testing.T) {
	const sr = 48000.0
	// Bin-centered tone: 4096-point FFT, bin 256.
	freq := 256 * sr / 4096
	spec := ComputeSpectrum(tone(4096, freq, sr, 1), sr)
	assert.InDelta(t, 1.0, spec.Magnitude[256], 0.02)
}

func TestSpectrum_BandEnergy(t *testing.T) {
	const sr = 48000.0
	spec := ComputeSpectrum(tone(4096, 3000, sr, 1), sr)
	inBand := spec.BandEnergy(2500, 3500)
	outBand := spec.BandEnergy(10000, 20000)
	assert.Greater(t, inBand, 1000*outBand)
}

func TestDBFS(t *testing.T) {
	assert.InDelta(t, 0.0, DBFS(1), 1e-12)
	assert.InDelta(t, -6.0206, DBFS(0.5), 1e-3)
	assert.True(t, math.IsInf(DBFS(0), -1))
}
