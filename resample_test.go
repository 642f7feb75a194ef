package resampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{SampleRate: 48000, Channels: 2, Quality: QualityHigh}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"explicit sizes", func(c *Config) { c.SourceBufferLength = 512; c.MaxFramesToRender = 1024 }, false},
		{"max channels", func(c *Config) { c.Channels = maxChannels }, false},
		{"cutoff ratio one", func(c *Config) { c.CutoffToNyquistRatio = 1 }, false},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"negative sample rate", func(c *Config) { c.SampleRate = -44100 }, true},
		{"zero channels", func(c *Config) { c.Channels = 0 }, true},
		{"too many channels", func(c *Config) { c.Channels = maxChannels + 1 }, true},
		{"negative buffer", func(c *Config) { c.SourceBufferLength = -1 }, true},
		{"buffer shorter than look-ahead", func(c *Config) { c.SourceBufferLength = 1 }, true},
		{"smallest buffer", func(c *Config) { c.SourceBufferLength = minSourceBufferLength }, false},
		{"huge buffer", func(c *Config) { c.SourceBufferLength = maxBufferFrames + 1 }, true},
		{"huge render block", func(c *Config) { c.MaxFramesToRender = maxBufferFrames + 1 }, true},
		{"cutoff ratio above one", func(c *Config) { c.CutoffToNyquistRatio = 1.5 }, true},
		{"unknown quality", func(c *Config) { c.Quality = Quality(42) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfig_Validate_MessageNamesDefault(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"source buffer", func(c *Config) { c.SourceBufferLength = -1 }},
		{"render block", func(c *Config) { c.MaxFramesToRender = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{SampleRate: 48000, Channels: 1}
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), "0 (default) or")
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestQuality_Presets(t *testing.T) {
	tests := []struct {
		quality Quality
		interp  string
		filters []string
	}{
		{QualityLow, "linear", nil},
		{QualityMedium, "hermite", []string{"LPF12"}},
		{QualityHigh, "hermite", []string{"LPF24"}},
		{QualityCustom, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.quality.String(), func(t *testing.T) {
			r, err := New(&Config{SampleRate: 44100, Channels: 2, Quality: tt.quality})
			require.NoError(t, err)

			info := r.GetInfo()
			assert.Equal(t, tt.quality, info.Quality)
			assert.Equal(t, tt.interp, info.Interpolator)
			assert.Equal(t, tt.filters, info.Filters)
			assert.Equal(t, bufferFrontPadding, info.FrontPadding)
			assert.Equal(t, bufferBackPadding, info.BackPadding)
			assert.Positive(t, info.MemoryUsage)
		})
	}
}

func TestSetQuality_ReplacesChain(t *testing.T) {
	r, err := New(&Config{SampleRate: 44100, Channels: 1, Quality: QualityHigh})
	require.NoError(t, err)

	require.NoError(t, r.SetQuality(QualityMedium))
	assert.Equal(t, []string{"LPF12"}, r.GetInfo().Filters)

	require.NoError(t, r.SetQuality(QualityLow))
	info := r.GetInfo()
	assert.Empty(t, info.Filters)
	assert.Equal(t, "linear", info.Interpolator)

	// Custom keeps whatever is wired.
	require.NoError(t, r.SetQuality(QualityCustom))
	assert.Equal(t, "linear", r.GetInfo().Interpolator)

	require.ErrorIs(t, r.SetQuality(Quality(-1)), ErrInvalidConfig)
}

func TestParseQuality(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityMedium, QualityHigh, QualityCustom} {
		got, err := ParseQuality(q.String())
		require.NoError(t, err)
		assert.Equal(t, q, got)
	}

	_, err := ParseQuality("ultra")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "Quality(9)", Quality(9).String())
}

func TestMemoryUsage_ScalesWithBuffer(t *testing.T) {
	small, err := NewRenderer(44100, 2, 64, 64)
	require.NoError(t, err)
	large, err := NewRenderer(44100, 2, 4096, 64)
	require.NoError(t, err)

	assert.Greater(t, large.GetInfo().MemoryUsage, small.GetInfo().MemoryUsage)
}
