// Package engine implements the interpolation kernels used by the renderer.
package engine

import (
	"fmt"
	"math"
	"strings"
)

// Interpolator converts fractional read positions into output samples.
//
// Process is called once per channel. For each i it reads samples around
// input[base + floor(positions[i])*hop] and writes output[i*hop]. Positions
// are relative to base, so an implementation may read as far back as
// base - front*hop and as far forward as base + (floor(pos)+back)*hop.
type Interpolator interface {
	Process(input []float32, base int, output []float32, positions []float64, hop int)

	// Padding reports the frames of look-behind and look-ahead needed.
	Padding() (front, back int)

	Name() string
}

// Kind identifies an interpolation algorithm.
type Kind int

// Supported interpolation algorithms.
const (
	KindLinear Kind = iota
	KindCubic
	KindHermite
	KindWatte
)

var kindNames = map[Kind]string{
	KindLinear:  "linear",
	KindCubic:   "cubic",
	KindHermite: "hermite",
	KindWatte:   "watte",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a case-insensitive algorithm name to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolator %q", s)
}

// New returns a fresh interpolator of the given kind.
func New(k Kind) (Interpolator, error) {
	switch k {
	case KindLinear:
		return Linear{}, nil
	case KindCubic:
		return Cubic{}, nil
	case KindHermite:
		return Hermite{}, nil
	case KindWatte:
		return Watte{}, nil
	default:
		return nil, fmt.Errorf("unsupported interpolator %v", k)
	}
}

// split returns the integer frame offset and fractional coefficient of pos.
func split(pos float64) (int, float32) {
	fl := math.Floor(pos)
	return int(fl), float32(pos - fl)
}

// Linear is 2-point linear interpolation.
type Linear struct{}

// Process implements Interpolator.
func (Linear) Process(input []float32, base int, output []float32, positions []float64, hop int) {
	for i, pos := range positions {
		k, t := split(pos)
		idx := base + k*hop
		a := input[idx]
		b := input[idx+hop]
		output[i*hop] = a + (b-a)*t
	}
}

// Padding implements Interpolator.
func (Linear) Padding() (front, back int) { return 0, linearBackPadding }

// Name implements Interpolator.
func (Linear) Name() string { return KindLinear.String() }

// Cubic is 4-point cubic interpolation over frames -1..+2.
type Cubic struct{}

// Process implements Interpolator.
func (Cubic) Process(input []float32, base int, output []float32, positions []float64, hop int) {
	for i, pos := range positions {
		k, t := split(pos)
		idx := base + k*hop
		f0, f1, f2, f3 := input[idx-hop], input[idx], input[idx+hop], input[idx+2*hop]

		a0 := f3 - f2 - f0 + f1
		a1 := f0 - f1 - a0
		a2 := f2 - f0
		a3 := f1
		output[i*hop] = ((a0*t+a1)*t+a2)*t + a3
	}
}

// Padding implements Interpolator.
func (Cubic) Padding() (front, back int) { return fourPointFrontPadding, fourPointBackPadding }

// Name implements Interpolator.
func (Cubic) Name() string { return KindCubic.String() }

// Hermite is 4-point, 3rd-order Hermite (Catmull-Rom) interpolation.
type Hermite struct{}

// Process implements Interpolator.
func (Hermite) Process(input []float32, base int, output []float32, positions []float64, hop int) {
	for i, pos := range positions {
		k, t := split(pos)
		idx := base + k*hop
		f0, f1, f2, f3 := input[idx-hop], input[idx], input[idx+hop], input[idx+2*hop]

		c0 := f1
		c1 := hermiteHalf * (f2 - f0)
		c2 := f0 - hermiteTwoAndHalf*f1 + 2*f2 - hermiteHalf*f3
		c3 := hermiteHalf*(f3-f0) + hermiteOneAndHalf*(f1-f2)
		output[i*hop] = ((c3*t+c2)*t+c1)*t + c0
	}
}

// Padding implements Interpolator.
func (Hermite) Padding() (front, back int) { return fourPointFrontPadding, fourPointBackPadding }

// Name implements Interpolator.
func (Hermite) Name() string { return KindHermite.String() }

// Watte is the 4-point parabolic "tri-linear" approximation.
type Watte struct{}

// Process implements Interpolator.
func (Watte) Process(input []float32, base int, output []float32, positions []float64, hop int) {
	for i, pos := range positions {
		k, t := split(pos)
		idx := base + k*hop
		f0, f1, f2, f3 := input[idx-hop], input[idx], input[idx+hop], input[idx+2*hop]

		c0 := f1
		c1 := hermiteOneAndHalf*f2 - hermiteHalf*(f1+f0+f3)
		c2 := hermiteHalf * (f0 + f3 - f1 - f2)
		output[i*hop] = (c2*t+c1)*t + c0
	}
}

// Padding implements Interpolator.
func (Watte) Padding() (front, back int) { return fourPointFrontPadding, fourPointBackPadding }

// Name implements Interpolator.
func (Watte) Name() string { return KindWatte.String() }
