package resampler

import (
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-resampler/internal/pipeline"
	"github.com/tphakala/go-pitch-resampler/internal/simdops"
)

// Renderer pulls frames from an AudioSource and plays them back at a
// time-varying pitch.
//
// Source audio is pulled into two padded buffers used ping-pong: one is
// read by the interpolator while the other already holds the frames that
// follow it. Each buffer keeps copies of its neighbours' edge frames in its
// padding so interpolation can look across the boundary.
//
// Render never allocates. A Renderer is not safe for concurrent use;
// configuration calls must be serialized with Render by the caller.
type Renderer struct {
	sampleRate         float64
	channels           int
	sourceBufferLength int
	maxFramesToRender  int
	cutoffRatio        float64
	quality            Quality

	buffers   [numSourceBuffers]*pipeline.PaddedBuffer
	pitch     []float64 // per-output-frame multipliers for the current call
	positions []float64 // interpolation offsets for the current segment

	source  AudioSource
	interp  Interpolator
	filters []LowPassFilter

	state streamState
}

// streamState is everything carried from one Render call to the next
// besides buffer contents.
type streamState struct {
	// readHead is the fractional frame position in the active buffer.
	// A swap subtracts the old buffer's length, keeping sub-frame phase.
	readHead float64

	// active indexes the buffer being read; the other holds what follows.
	active int

	// primed is false until the first fill after construction or Reset.
	primed bool

	schedule pipeline.PitchSchedule
}

func newRenderer(cfg Config) (*Renderer, error) {
	schedule, err := pipeline.NewPitchSchedule(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := &Renderer{
		sampleRate:         cfg.SampleRate,
		channels:           cfg.Channels,
		sourceBufferLength: cfg.SourceBufferLength,
		maxFramesToRender:  cfg.MaxFramesToRender,
		cutoffRatio:        cfg.CutoffToNyquistRatio,
		quality:            QualityCustom,
		pitch:              make([]float64, cfg.MaxFramesToRender),
		positions:          make([]float64, cfg.MaxFramesToRender),
		filters:            make([]LowPassFilter, 0, maxLowPassFilters),
		state:              streamState{schedule: schedule},
	}

	for i := range r.buffers {
		buf, err := pipeline.NewPaddedBuffer(cfg.SourceBufferLength, cfg.Channels, bufferFrontPadding, bufferBackPadding)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		r.buffers[i] = buf
	}
	return r, nil
}

// SetAudioSource sets the source frames are pulled from.
func (r *Renderer) SetAudioSource(src AudioSource) {
	r.source = src
}

// SetInterpolator sets the interpolation algorithm. It panics if the
// interpolator needs more look-behind or look-ahead than the renderer keeps.
func (r *Renderer) SetInterpolator(i Interpolator) {
	if i == nil {
		panic("resampler: nil interpolator")
	}
	front, back := i.Padding()
	if front > bufferFrontPadding || back > bufferBackPadding {
		panic(fmt.Sprintf("resampler: interpolator %s needs padding %d/%d, renderer keeps %d/%d",
			i.Name(), front, back, bufferFrontPadding, bufferBackPadding))
	}
	r.interp = i
}

// AddLowPassFilter initializes f and appends it to the filter chain.
// Filters are compared by identity; adding the same instance twice returns
// ErrDuplicateFilter and changes nothing.
func (r *Renderer) AddLowPassFilter(f LowPassFilter) error {
	if f == nil {
		return fmt.Errorf("%w: nil filter", ErrInvalidConfig)
	}
	for _, existing := range r.filters {
		if existing == f {
			return fmt.Errorf("%w: %s", ErrDuplicateFilter, f.Name())
		}
	}
	if len(r.filters) >= maxLowPassFilters {
		return fmt.Errorf("%w: limit is %d", ErrTooManyFilters, maxLowPassFilters)
	}
	if err := f.Init(r.sampleRate, r.sourceBufferLength, r.channels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	r.filters = append(r.filters, f)
	return nil
}

// ClearLowPassFilters removes all filters.
func (r *Renderer) ClearLowPassFilters() {
	clear(r.filters)
	r.filters = r.filters[:0]
}

// SetPitch starts a linear glide from start to end lasting glideSeconds.
// With glideSeconds <= 0 the pitch is set to end immediately. Values outside
// [MinPitch, MaxPitch] are clamped and reported with ErrInvalidPitch.
func (r *Renderer) SetPitch(start, end, glideSeconds float64) error {
	r.state.schedule.SetPitch(start, end, glideSeconds)
	for _, p := range [2]float64{start, end} {
		if math.IsNaN(p) || p < MinPitch || p > MaxPitch {
			return fmt.Errorf("%w: %v not in [%v, %v]", ErrInvalidPitch, p, MinPitch, MaxPitch)
		}
	}
	return nil
}

// GetInputFrameCount returns how many source frames the next outputFrames
// frames of Render output will consume under the current pitch schedule.
func (r *Renderer) GetInputFrameCount(outputFrames int) int {
	return r.state.schedule.InputFrameCount(outputFrames)
}

// GetOutputFrameCount returns how many output frames consume inputFrames
// source frames under the current pitch schedule.
func (r *Renderer) GetOutputFrameCount(inputFrames int) int {
	return r.state.schedule.OutputFrameCount(inputFrames)
}

// GetNumChannels returns the interleaved channel count.
func (r *Renderer) GetNumChannels() int {
	return r.channels
}

// GetCurrentPitch returns the pitch of the next output frame.
func (r *Renderer) GetCurrentPitch() float64 {
	return r.state.schedule.Current()
}

// Reset discards buffered source audio and filter history. The next Render
// pulls fresh frames from the source. The pitch schedule is kept.
func (r *Renderer) Reset() {
	st := &r.state
	st.readHead = 0
	st.active = 0
	st.primed = false
	for _, b := range r.buffers {
		b.ClearAll()
		b.Length = 0
	}
	for _, f := range r.filters {
		f.Reset()
	}
}

// Render writes up to numFrames interleaved frames into output and returns
// the number written.
//
// Fewer than numFrames means the source ran dry: the unwritten tail of
// output[:numFrames*channels] is zeroed and the renderer resets itself, so
// the next call starts a new stream.
//
// Render panics if numFrames exceeds MaxFramesToRender, if output is too
// short, or if no source or interpolator has been set.
func (r *Renderer) Render(output []float32, numFrames int) int {
	r.checkRender(output, numFrames)
	if numFrames == 0 {
		return 0
	}

	st := &r.state
	ch := r.channels
	unity := st.schedule.IsUnity()
	pitch := r.pitch[:numFrames]
	st.schedule.Advance(pitch)

	rendered := 0
	for rendered < numFrames {
		active := r.buffers[st.active]
		for st.readHead >= float64(active.Length) {
			if st.primed && !active.Full() {
				clear(output[rendered*ch : numFrames*ch])
				r.Reset()
				return rendered
			}
			r.swapBuffersAndFillNext(st, pitch[rendered])
			active = r.buffers[st.active]
		}

		// Walk the pitch ramp until the segment leaves the active buffer.
		// Offsets are relative to the integer read position.
		base := math.Floor(st.readHead)
		pos := st.readHead
		length := float64(active.Length)
		count := 0
		for rendered+count < numFrames && pos < length {
			r.positions[count] = pos - base
			pos += pitch[rendered+count]
			count++
		}

		data := active.Data()
		in := active.StartIndex() + int(base)*ch
		out := output[rendered*ch : (rendered+count)*ch]
		if unity && base == st.readHead {
			copy(out, data[in:in+count*ch])
		} else {
			for c := range ch {
				r.interp.Process(data, in+c, out[c:], r.positions[:count], ch)
			}
		}

		rendered += count
		st.readHead = pos
	}
	return rendered
}

func (r *Renderer) checkRender(output []float32, numFrames int) {
	switch {
	case numFrames < 0 || numFrames > r.maxFramesToRender:
		panic(fmt.Sprintf("resampler: %d frames requested, max is %d", numFrames, r.maxFramesToRender))
	case len(output) < numFrames*r.channels:
		panic(fmt.Sprintf("resampler: output holds %d samples, need %d", len(output), numFrames*r.channels))
	case r.source == nil:
		panic("resampler: Render called before SetAudioSource")
	case r.interp == nil:
		panic("resampler: Render called before SetInterpolator")
	}
}

// swapBuffersAndFillNext makes the next buffer active and refills the old
// one with the frames that follow it.
func (r *Renderer) swapBuffersAndFillNext(st *streamState, pitch float64) {
	prev := r.buffers[st.active]
	st.readHead -= float64(prev.Length)
	st.active ^= 1
	active := r.buffers[st.active]

	if !st.primed {
		r.fill(active, pitch)
		st.primed = true
	}

	// Look-behind: the previous buffer's last frames, read before it is refilled.
	copy(active.FrontPadding(), prev.Tail(prev.Length, active.FrontPaddingFrames()))

	next := prev
	r.fill(next, pitch)

	// Look-ahead: the first frames of what follows, already filtered.
	copy(active.BackPadding(), next.Head(active.BackPaddingFrames()))
}

// fill pulls one buffer's worth of frames, zero-pads any shortfall and runs
// the filter chain over what arrived.
func (r *Renderer) fill(buf *pipeline.PaddedBuffer, pitch float64) {
	capacity := buf.FrameCapacity()
	n := r.source.GetSamples(buf.Frames(), capacity, r.channels)
	n = min(max(n, 0), capacity)
	buf.Length = n
	buf.ZeroFrom(n)
	for _, f := range r.filters {
		f.Process(buf.Frames(), n, pitch)
	}
}

// GetInfo returns information about the renderer.
func (r *Renderer) GetInfo() Info {
	info := Info{
		Quality:            r.quality,
		Channels:           r.channels,
		SampleRate:         r.sampleRate,
		SourceBufferLength: r.sourceBufferLength,
		MaxFramesToRender:  r.maxFramesToRender,
		FrontPadding:       bufferFrontPadding,
		BackPadding:        bufferBackPadding,
		SIMDType:           simdops.Info(),
	}
	if r.interp != nil {
		info.Interpolator = r.interp.Name()
	}
	for _, f := range r.filters {
		info.Filters = append(info.Filters, f.Name())
	}
	for _, b := range r.buffers {
		info.MemoryUsage += int64(len(b.Data())) * bytesPerFloat32
	}
	info.MemoryUsage += int64(len(r.pitch)+len(r.positions)) * bytesPerFloat64
	return info
}
