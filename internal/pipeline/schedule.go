package pipeline

import (
	"fmt"
	"math"
)

// PitchSchedule describes the playback-rate multiplier over time: a current
// value and a destination reached by a linear glide.
//
// A multiplier of 2 plays one octave up and consumes twice as many input
// frames per output frame.
type PitchSchedule struct {
	current                 float64
	destination             float64
	secondsUntilDestination float64
	sampleRate              float64
}

// NewPitchSchedule returns a schedule at unity pitch.
func NewPitchSchedule(sampleRate float64) (PitchSchedule, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return PitchSchedule{}, fmt.Errorf("invalid sample rate: %v", sampleRate)
	}
	return PitchSchedule{
		current:     unityPitch,
		destination: unityPitch,
		sampleRate:  sampleRate,
	}, nil
}

// ClampPitch bounds a multiplier to [MinPitch, MaxPitch]. NaN maps to unity.
func ClampPitch(p float64) float64 {
	if math.IsNaN(p) {
		return unityPitch
	}
	return min(max(p, MinPitch), MaxPitch)
}

// SetPitch starts a glide from start to end over glideSeconds.
// With glideSeconds <= 0 the pitch jumps to end immediately.
func (s *PitchSchedule) SetPitch(start, end, glideSeconds float64) {
	start = ClampPitch(start)
	end = ClampPitch(end)
	if glideSeconds <= 0 || math.IsNaN(glideSeconds) {
		s.current = end
		s.destination = end
		s.secondsUntilDestination = 0
		return
	}
	s.current = start
	s.destination = end
	s.secondsUntilDestination = glideSeconds
}

// Current returns the pitch at the next output frame.
func (s *PitchSchedule) Current() float64 { return s.current }

// Destination returns the glide target.
func (s *PitchSchedule) Destination() float64 { return s.destination }

// SecondsUntilDestination returns the remaining glide time.
func (s *PitchSchedule) SecondsUntilDestination() float64 { return s.secondsUntilDestination }

// SampleRate returns the output sample rate the schedule advances at.
func (s *PitchSchedule) SampleRate() float64 { return s.sampleRate }

// IsUnity reports whether the schedule holds exactly 1 with no glide pending.
func (s *PitchSchedule) IsUnity() bool {
	return s.current == unityPitch && s.destination == unityPitch
}

// Advance writes the pitch of each of the next len(mult) output frames into
// mult and moves the schedule forward by that many frames.
func (s *PitchSchedule) Advance(mult []float64) {
	n := len(mult)
	if n == 0 {
		return
	}

	if s.secondsUntilDestination <= 0 {
		for i := range mult {
			mult[i] = s.current
		}
		return
	}

	framesUntil := s.secondsUntilDestination * s.sampleRate
	slope := (s.destination - s.current) / framesUntil
	p := s.current
	for i := range mult {
		if float64(i) < framesUntil {
			mult[i] = p
			p += slope
		} else {
			mult[i] = s.destination
		}
	}

	elapsed := float64(n) / s.sampleRate
	if elapsed >= s.secondsUntilDestination {
		s.current = s.destination
		s.secondsUntilDestination = 0
		return
	}
	s.current += slope * float64(n)
	s.secondsUntilDestination -= elapsed
}

// slopePerSecond returns the glide slope, or 0 when no glide is pending.
func (s *PitchSchedule) slopePerSecond() float64 {
	if s.secondsUntilDestination <= 0 {
		return 0
	}
	return (s.destination - s.current) / s.secondsUntilDestination
}

// InputFrameCount returns how many input frames the next outputFrames output
// frames consume, without advancing the schedule.
//
// The consumed input is the area under the pitch curve: a trapezoid for the
// glide portion plus a rectangle at the destination pitch.
func (s *PitchSchedule) InputFrameCount(outputFrames int) int {
	if outputFrames <= 0 {
		return 0
	}
	duration := float64(outputFrames) / s.sampleRate
	glide := min(duration, s.secondsUntilDestination)
	sustain := duration - glide

	endPitch := s.current + s.slopePerSecond()*glide
	area := (s.current+endPitch)*half*glide + sustain*s.destination
	return int(math.Round(area * s.sampleRate))
}

// OutputFrameCount is the inverse of InputFrameCount: how many output frames
// consume inputFrames input frames.
func (s *PitchSchedule) OutputFrameCount(inputFrames int) int {
	if inputFrames <= 0 {
		return 0
	}
	x := float64(inputFrames)
	sr := s.sampleRate
	glideSeconds := max(s.secondsUntilDestination, 0)
	glideArea := (s.current + s.destination) * half * glideSeconds * sr

	var t float64
	if x <= glideArea {
		slope := s.slopePerSecond()
		if math.Abs(slope) < slopeEpsilon {
			t = x / (sr * s.current)
		} else {
			disc := s.current*s.current + 2*slope*x/sr
			t = (-s.current + math.Sqrt(max(disc, 0))) / slope
		}
	} else {
		t = glideSeconds + (x-glideArea)/sr/s.destination
	}
	return int(math.Round(t * sr))
}
