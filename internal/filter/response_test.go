package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureResponse_EdgeMatchesCutoff(t *testing.T) {
	const sr = 48000.0
	const fftSize = 4096

	for _, f := range []*LowPass{NewLPF12(), NewLPF24()} {
		points, err := MeasureResponse(f, sr, 2, fftSize)
		require.NoError(t, err)
		require.Len(t, points, fftSize/2+1)

		assert.InDelta(t, 0.0, points[0].MagnitudeDB, 0.01, "%s DC gain", f.Name())
		edge := EdgeFrequency(points, 3.0103)
		assert.InDelta(t, f.CutoffFor(2), edge, 3*sr/fftSize, "%s -3 dB point", f.Name())
	}
}

func TestMeasureResponse_SteeperCascade(t *testing.T) {
	const sr = 48000.0

	p12, err := MeasureResponse(NewLPF12(), sr, 4, 2048)
	require.NoError(t, err)
	p24, err := MeasureResponse(NewLPF24(), sr, 4, 2048)
	require.NoError(t, err)

	// An octave above the 5.4 kHz cutoff.
	binHz := sr / 2048
	bin := int(10800 / binHz)
	assert.Less(t, p24[bin].MagnitudeDB, p12[bin].MagnitudeDB-6)
}

func TestAnalyticResponse_AgreesWithMeasurement(t *testing.T) {
	const sr = 44100.0
	const fftSize = 8192

	f := NewLPF24()
	measured, err := MeasureResponse(f, sr, 2, fftSize)
	require.NoError(t, err)

	bins := []int{10, 500, 1500, 2500}
	freqs := make([]float64, len(bins))
	for i, b := range bins {
		freqs[i] = measured[b].FrequencyHz
	}
	analytic, err := f.AnalyticResponse(2, freqs)
	require.NoError(t, err)

	for i, b := range bins {
		assert.InDelta(t, analytic[i].MagnitudeDB, measured[b].MagnitudeDB, 0.1, "bin %d", b)
	}
}

func TestAnalyticResponse_RequiresInit(t *testing.T) {
	_, err := NewLPF12().AnalyticResponse(2, []float64{100})
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestEdgeFrequency_NoDrop(t *testing.T) {
	points := []Point{{0, 0}, {100, -1}, {200, -2}}
	assert.InDelta(t, 0.0, EdgeFrequency(points, 3), 0)
	assert.InDelta(t, 0.0, EdgeFrequency(nil, 3), 0)
}
