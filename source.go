package resampler

import (
	"fmt"
)

// AudioSource supplies raw interleaved frames to a Renderer.
//
// GetSamples writes at most numFramesRequested frames of numChannels
// interleaved samples into output and returns how many it wrote. Returning
// fewer than requested signals the end of the stream; the renderer does not
// ask again within the same fill. It is called from Render and must not block.
type AudioSource interface {
	GetSamples(output []float32, numFramesRequested, numChannels int) int
}

// AudioSourceFunc adapts a function to AudioSource.
type AudioSourceFunc func(output []float32, numFramesRequested, numChannels int) int

// GetSamples calls f.
func (f AudioSourceFunc) GetSamples(output []float32, numFramesRequested, numChannels int) int {
	return f(output, numFramesRequested, numChannels)
}

// SampleTable is an in-memory AudioSource over interleaved frames.
//
// A looping table wraps to its start frame inside a single pull, so the
// renderer never sees a short read. A non-looping table returns a short
// read at its end and reports Finished until Trigger rewinds it.
type SampleTable struct {
	data     []float32
	channels int
	frames   int

	loop       bool
	startFrame int
	position   int // next frame to read
	finished   bool
}

// NewSampleTable wraps interleaved data. The slice is not copied.
func NewSampleTable(data []float32, channels int) (*SampleTable, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrInvalidConfig, len(data), channels)
	}
	return &SampleTable{
		data:     data,
		channels: channels,
		frames:   len(data) / channels,
	}, nil
}

// SetLoop enables or disables looping.
func (s *SampleTable) SetLoop(loop bool) {
	s.loop = loop
}

// SetStartFrame sets where playback starts on Trigger and where loops wrap to.
func (s *SampleTable) SetStartFrame(frame int) error {
	if frame < 0 || frame >= s.frames {
		return fmt.Errorf("%w: start frame %d outside table of %d frames", ErrInvalidConfig, frame, s.frames)
	}
	s.startFrame = frame
	return nil
}

// Trigger rewinds to the start frame and clears Finished.
func (s *SampleTable) Trigger() {
	s.position = s.startFrame
	s.finished = false
}

// Finished reports whether a non-looping table has been read to its end.
func (s *SampleTable) Finished() bool {
	return s.finished
}

// Frames returns the table length in frames.
func (s *SampleTable) Frames() int {
	return s.frames
}

// Channels returns the table's channel count.
func (s *SampleTable) Channels() int {
	return s.channels
}

// Position returns the next frame to be read.
func (s *SampleTable) Position() int {
	return s.position
}

// GetSamples implements AudioSource. When numChannels differs from the
// table's channel count, output channel c reads table channel c mod Channels.
func (s *SampleTable) GetSamples(output []float32, numFramesRequested, numChannels int) int {
	if s.finished || s.frames == 0 {
		return 0
	}

	written := 0
	for written < numFramesRequested {
		if s.position >= s.frames {
			if !s.loop {
				s.finished = true
				break
			}
			s.position = s.startFrame
		}

		n := min(numFramesRequested-written, s.frames-s.position)
		s.copyFrames(output[written*numChannels:], s.position, n, numChannels)
		written += n
		s.position += n
	}

	if !s.loop && s.position >= s.frames {
		s.finished = true
	}
	return written
}

func (s *SampleTable) copyFrames(dst []float32, from, n, numChannels int) {
	if numChannels == s.channels {
		copy(dst[:n*numChannels], s.data[from*s.channels:(from+n)*s.channels])
		return
	}
	for f := range n {
		src := s.data[(from+f)*s.channels:]
		for c := range numChannels {
			dst[f*numChannels+c] = src[c%s.channels]
		}
	}
}
