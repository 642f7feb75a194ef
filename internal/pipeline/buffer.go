package pipeline

import "fmt"

// PaddedBuffer is a fixed-size interleaved sample region with extra padding
// frames before and after the logical data.
//
// The padding lets callers read a few frames behind frame 0 and a few frames
// past Length without bounds special-casing: the owner keeps the tail of the
// logically preceding buffer in the front padding and the head of the
// logically following buffer in the back padding.
//
// Copying a PaddedBuffer value (or calling Clone) duplicates the layout and
// capacity only. Sample contents are never copied implicitly; use CopyFrom.
type PaddedBuffer struct {
	// Length is the number of valid frames currently held, excluding padding.
	// The buffer never sets it; whoever fills the buffer does.
	Length int

	data          []float32
	channels      int
	frameCapacity int
	frontPadding  int // frames
	backPadding   int // frames
}

// NewPaddedBuffer allocates a zero-filled buffer. Padding arguments are in
// frames. The allocation happens once; the buffer never grows.
func NewPaddedBuffer(frameCapacity, channels, frontPadding, backPadding int) (*PaddedBuffer, error) {
	if frameCapacity < 0 || channels < 1 || frontPadding < 0 || backPadding < 0 {
		return nil, fmt.Errorf("invalid padded buffer layout: frames=%d channels=%d front=%d back=%d",
			frameCapacity, channels, frontPadding, backPadding)
	}

	b := &PaddedBuffer{
		channels:      channels,
		frameCapacity: frameCapacity,
		frontPadding:  frontPadding,
		backPadding:   backPadding,
	}
	b.data = make([]float32, (frontPadding+frameCapacity+backPadding)*channels)
	return b, nil
}

// Clone returns a buffer with the same layout and a fresh zeroed allocation.
// Length is carried over; samples are not.
func (b *PaddedBuffer) Clone() *PaddedBuffer {
	c := &PaddedBuffer{
		Length:        b.Length,
		channels:      b.channels,
		frameCapacity: b.frameCapacity,
		frontPadding:  b.frontPadding,
		backPadding:   b.backPadding,
	}
	c.data = make([]float32, len(b.data))
	return c
}

// CopyFrom copies all samples, padding included, and Length from src.
// Both buffers must share the same layout.
func (b *PaddedBuffer) CopyFrom(src *PaddedBuffer) {
	if len(src.data) != len(b.data) || src.channels != b.channels || src.frontPadding != b.frontPadding {
		panic("pipeline: CopyFrom between buffers with different layouts")
	}
	copy(b.data, src.data)
	b.Length = src.Length
}

// Data returns the whole allocation, padding included.
func (b *PaddedBuffer) Data() []float32 {
	return b.data
}

// StartIndex returns the sample index in Data of logical frame 0.
func (b *PaddedBuffer) StartIndex() int {
	return b.frontPadding * b.channels
}

// Frames returns the logical region (frameCapacity frames, no padding).
func (b *PaddedBuffer) Frames() []float32 {
	start := b.StartIndex()
	return b.data[start : start+b.frameCapacity*b.channels]
}

// FrontPadding returns the front padding region.
func (b *PaddedBuffer) FrontPadding() []float32 {
	return b.data[:b.StartIndex()]
}

// BackPadding returns the back padding region.
func (b *PaddedBuffer) BackPadding() []float32 {
	return b.data[b.StartIndex()+b.frameCapacity*b.channels:]
}

// Clear zeroes the logical region without touching padding or Length.
func (b *PaddedBuffer) Clear() {
	clear(b.Frames())
}

// ClearAll zeroes the whole allocation, padding included.
func (b *PaddedBuffer) ClearAll() {
	clear(b.data)
}

// ZeroFrom zeroes logical frames [frame, frameCapacity).
func (b *PaddedBuffer) ZeroFrom(frame int) {
	if frame >= b.frameCapacity {
		return
	}
	frame = max(frame, 0)
	clear(b.Frames()[frame*b.channels:])
}

// Tail returns the n frames that end at logical frame end (exclusive).
// When end < n the returned slice starts inside the front padding.
func (b *PaddedBuffer) Tail(end, n int) []float32 {
	stop := b.StartIndex() + end*b.channels
	return b.data[stop-n*b.channels : stop]
}

// Head returns the first n logical frames.
func (b *PaddedBuffer) Head(n int) []float32 {
	start := b.StartIndex()
	return b.data[start : start+n*b.channels]
}

// Channels returns the interleaved channel count.
func (b *PaddedBuffer) Channels() int {
	return b.channels
}

// FrameCapacity returns the logical capacity in frames.
func (b *PaddedBuffer) FrameCapacity() int {
	return b.frameCapacity
}

// FrontPaddingFrames returns the front padding size in frames.
func (b *PaddedBuffer) FrontPaddingFrames() int {
	return b.frontPadding
}

// BackPaddingFrames returns the back padding size in frames.
func (b *PaddedBuffer) BackPaddingFrames() int {
	return b.backPadding
}

// Full reports whether the last fill delivered the whole capacity.
func (b *PaddedBuffer) Full() bool {
	return b.Length >= b.frameCapacity
}
