package resampler

import "fmt"

// SetQuality replaces the interpolator and filter chain with the preset's
// combination. QualityCustom leaves the current setup untouched.
func (r *Renderer) SetQuality(q Quality) error {
	var (
		interp  Interpolator
		filters []LowPassFilter
	)

	switch q {
	case QualityLow:
		interp = NewLinearInterpolator()

	case QualityMedium:
		interp = NewHermiteInterpolator()
		filters = []LowPassFilter{NewLPF12(WithCutoffToNyquistRatio(r.cutoffRatio))}

	case QualityHigh:
		interp = NewHermiteInterpolator()
		filters = []LowPassFilter{NewLPF24(WithCutoffToNyquistRatio(r.cutoffRatio))}

	case QualityCustom:
		r.quality = q
		return nil

	default:
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidConfig, int(q))
	}

	r.ClearLowPassFilters()
	for _, f := range filters {
		if err := r.AddLowPassFilter(f); err != nil {
			return fmt.Errorf("quality %s: %w", q, err)
		}
	}
	r.SetInterpolator(interp)
	r.quality = q
	return nil
}
