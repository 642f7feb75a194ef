package filter

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-pitch-resampler/internal/mathutil"
)

// Point is one sample of a magnitude response.
type Point struct {
	FrequencyHz float64
	MagnitudeDB float64
}

// AnalyticResponse evaluates the cascade transfer function at each
// frequency, with coefficients tuned for pitch. The filter must be
// initialized.
func (l *LowPass) AnalyticResponse(pitch float64, freqs []float64) ([]Point, error) {
	if l.stages == nil {
		return nil, fmt.Errorf("%s: %w", l.name, ErrNotInitialized)
	}
	l.Tune(pitch)

	points := make([]Point, len(freqs))
	for i, f := range freqs {
		h := complex(1, 0)
		for _, s := range l.stages {
			h *= s.Coefficients().Response(f, l.sampleRate)
		}
		points[i] = Point{FrequencyHz: f, MagnitudeDB: mathutil.MagnitudeDB(cmplx.Abs(h))}
	}
	return points, nil
}

// MeasureResponse drives a unit impulse through f at the given pitch and
// returns the magnitude spectrum of its first fftSize output samples.
//
// f is re-initialized as a mono filter and left in that state.
func MeasureResponse(f Filter, sampleRate, pitch float64, fftSize int) ([]Point, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("fft size %d too small", fftSize)
	}
	if err := f.Init(sampleRate, fftSize, 1); err != nil {
		return nil, err
	}

	impulse := make([]float32, fftSize)
	impulse[0] = 1
	f.Process(impulse, fftSize, pitch)

	seq := make([]float64, fftSize)
	for i, v := range impulse {
		seq[i] = float64(v)
	}

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, seq)
	points := make([]Point, len(coeffs))
	for i, c := range coeffs {
		points[i] = Point{
			FrequencyHz: fft.Freq(i) * sampleRate,
			MagnitudeDB: mathutil.MagnitudeDB(cmplx.Abs(c)),
		}
	}
	return points, nil
}

// EdgeFrequency returns the first frequency at which the response falls
// dropDB below its first point, or 0 if it never does.
func EdgeFrequency(points []Point, dropDB float64) float64 {
	if len(points) == 0 {
		return 0
	}
	ref := points[0].MagnitudeDB
	for _, p := range points[1:] {
		if p.MagnitudeDB <= ref-dropDB {
			return p.FrequencyHz
		}
	}
	return 0
}
