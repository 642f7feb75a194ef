package mathutil

// Cutoff bounds
const (
	// MaxCutoffFraction keeps the prewarp tangent finite: cutoff stays
	// just below Nyquist.
	MaxCutoffFraction = 0.49
	MinCutoffHz       = 1.0
)

// Decibel floor for magnitude conversion
const FloorDB = -200.0
