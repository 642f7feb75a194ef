package resampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pitch-resampler/internal/testutil"
)

func TestNewSampleTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		data     []float32
		channels int
	}{
		{"zero channels", make([]float32, 4), 0},
		{"negative channels", make([]float32, 4), -1},
		{"partial frame", make([]float32, 5), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSampleTable(tt.data, tt.channels)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSampleTable_OneShot(t *testing.T) {
	table, err := NewSampleTable(testutil.Ramp(10, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, table.Frames())
	assert.Equal(t, 1, table.Channels())

	out := make([]float32, 4)
	require.Equal(t, 4, table.GetSamples(out, 4, 1))
	assert.Equal(t, []float32{1, 2, 3, 4}, out)
	require.Equal(t, 4, table.GetSamples(out, 4, 1))
	assert.False(t, table.Finished())

	require.Equal(t, 2, table.GetSamples(out, 4, 1), "short read at the end")
	assert.Equal(t, []float32{9, 10}, out[:2])
	assert.True(t, table.Finished())
	assert.Equal(t, 0, table.GetSamples(out, 4, 1))

	table.Trigger()
	assert.False(t, table.Finished())
	assert.Equal(t, 0, table.Position())
	require.Equal(t, 4, table.GetSamples(out, 4, 1))
	assert.Equal(t, []float32{1, 2, 3, 4}, out)
}

func TestSampleTable_FinishesOnExactEnd(t *testing.T) {
	table, err := NewSampleTable(testutil.Ramp(8, 1), 1)
	require.NoError(t, err)

	out := make([]float32, 4)
	assert.Equal(t, 4, table.GetSamples(out, 4, 1))
	assert.Equal(t, 4, table.GetSamples(out, 4, 1))
	assert.True(t, table.Finished())
	assert.Equal(t, 0, table.GetSamples(out, 4, 1))
}

func TestSampleTable_LoopWrapsToStartFrame(t *testing.T) {
	table, err := NewSampleTable(testutil.Ramp(5, 1), 1)
	require.NoError(t, err)
	table.SetLoop(true)
	require.NoError(t, table.SetStartFrame(2))

	out := make([]float32, 12)
	require.Equal(t, 12, table.GetSamples(out, 12, 1))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 3, 4, 5, 3, 4, 5, 3}, out)
	assert.False(t, table.Finished())

	table.Trigger()
	require.Equal(t, 2, table.GetSamples(out, 2, 1))
	assert.Equal(t, []float32{3, 4}, out[:2])
}

func TestSampleTable_SetStartFrameOutOfRange(t *testing.T) {
	table, err := NewSampleTable(testutil.Ramp(5, 1), 1)
	require.NoError(t, err)

	for _, frame := range []int{-1, 5, 100} {
		require.ErrorIs(t, table.SetStartFrame(frame), ErrInvalidConfig, "frame %d", frame)
	}
	require.NoError(t, table.SetStartFrame(4))
}

func TestSampleTable_ChannelMapping(t *testing.T) {
	t.Run("mono to stereo", func(t *testing.T) {
		table, err := NewSampleTable([]float32{1, 2, 3}, 1)
		require.NoError(t, err)

		out := make([]float32, 6)
		require.Equal(t, 3, table.GetSamples(out, 3, 2))
		assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, out)
	})

	t.Run("stereo to mono", func(t *testing.T) {
		table, err := NewSampleTable([]float32{1, -1, 2, -2, 3, -3}, 2)
		require.NoError(t, err)

		out := make([]float32, 3)
		require.Equal(t, 3, table.GetSamples(out, 3, 1))
		assert.Equal(t, []float32{1, 2, 3}, out)
	})
}

func TestSampleTable_Empty(t *testing.T) {
	table, err := NewSampleTable(nil, 2)
	require.NoError(t, err)
	table.SetLoop(true)

	out := make([]float32, 8)
	assert.Equal(t, 0, table.GetSamples(out, 4, 2))
}

func TestAudioSourceFunc(t *testing.T) {
	var calls int
	src := AudioSourceFunc(func(output []float32, n, channels int) int {
		calls++
		for i := range output[:n*channels] {
			output[i] = 0.5
		}
		return n
	})

	out := make([]float32, 6)
	assert.Equal(t, 3, src.GetSamples(out, 3, 2))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, out)
}
