package mathutil

import "math"

// Biquad holds normalized second-order section coefficients in the order
// used by the difference equation
//
//	y[n] = C[0]*x[n] + C[1]*x[n-1] + C[2]*x[n-2] - C[3]*y[n-1] - C[4]*y[n-2]
type Biquad [5]float64

// Prototype is an analog transfer function
//
//	H(s) = (B[2]s² + B[1]s + B[0]) / (A[2]s² + A[1]s + A[0])
type Prototype struct {
	B [3]float64
	A [3]float64
}

// LowpassPrototype returns the normalized second-order analog lowpass with
// quality factor q.
func LowpassPrototype(q float64) Prototype {
	return Prototype{
		B: [3]float64{1, 0, 0},
		A: [3]float64{1, 1 / q, 1},
	}
}

// Bilinear maps an analog prototype onto a digital biquad with the cutoff
// prewarped to cutoffHz at sampleRate.
func Bilinear(p Prototype, cutoffHz, sampleRate float64) Biquad {
	c := 1 / math.Tan(math.Pi*cutoffHz/sampleRate)
	c2 := c * c

	b0, b1, b2 := p.B[0], p.B[1], p.B[2]
	a0, a1, a2 := p.A[0], p.A[1], p.A[2]

	n0 := b2*c2 + b1*c + b0
	n1 := -2*b2*c2 + 2*b0
	n2 := b2*c2 - b1*c + b0

	d0 := a2*c2 + a1*c + a0
	d1 := -2*a2*c2 + 2*a0
	d2 := a2*c2 - a1*c + a0

	return Biquad{n0 / d0, n1 / d0, n2 / d0, d1 / d0, d2 / d0}
}

// ClampCutoff bounds a cutoff frequency to [MinCutoffHz, MaxCutoffFraction*sampleRate].
func ClampCutoff(cutoffHz, sampleRate float64) float64 {
	limit := MaxCutoffFraction * sampleRate
	if cutoffHz > limit || math.IsNaN(cutoffHz) {
		return limit
	}
	return max(cutoffHz, MinCutoffHz)
}

// Response evaluates the biquad's complex frequency response at freqHz.
func (c Biquad) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1
	num := complex(c[0], 0) + complex(c[1], 0)*z1 + complex(c[2], 0)*z2
	den := 1 + complex(c[3], 0)*z1 + complex(c[4], 0)*z2
	return num / den
}

// MagnitudeDB converts a linear magnitude to decibels, floored at FloorDB.
func MagnitudeDB(mag float64) float64 {
	if mag <= 0 {
		return FloorDB
	}
	return max(20*math.Log10(mag), FloorDB)
}
