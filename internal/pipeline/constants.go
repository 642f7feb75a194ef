package pipeline

// Pitch limits. Multipliers outside this range are clamped.
const (
	MinPitch = 1.0 / 256.0
	MaxPitch = 256.0
)

// Tolerances for float comparisons in the frame-count math.
const (
	slopeEpsilon = 1e-12 // Below this the glide is treated as flat
	unityPitch   = 1.0
	half         = 0.5
)
