package resampler

import "github.com/tphakala/go-pitch-resampler/internal/pipeline"

// Pitch limits. SetPitch clamps to this range.
const (
	MinPitch = pipeline.MinPitch
	MaxPitch = pipeline.MaxPitch
)

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2
	maxChannels    = 256 // Maximum supported channel count
)

// Buffer sizing, in frames
const (
	defaultSourceBufferLength = 64
	defaultMaxFramesToRender  = 64
	maxBufferFrames           = 65536

	// Look-behind and look-ahead kept around each source buffer.
	// Every interpolator must fit within these.
	bufferFrontPadding = 2
	bufferBackPadding  = 2

	// Look-ahead is copied from the next buffer alone, so a buffer must
	// hold at least the back padding.
	minSourceBufferLength = bufferBackPadding

	// Ping-pong source buffers
	numSourceBuffers = 2
)

// Filter constants
const (
	// maxLowPassFilters caps AddLowPassFilter registrations.
	maxLowPassFilters = 4

	defaultCutoffToNyquistRatio = 0.9
)

// Memory accounting
const (
	bytesPerFloat32 = 4
	bytesPerFloat64 = 8
)
