package engine

// Window padding, in frames
const (
	// Linear reads floor(pos) and floor(pos)+1
	linearBackPadding = 1

	// 4-point kernels read frames -1, 0, +1, +2 around floor(pos)
	fourPointFrontPadding = 1
	fourPointBackPadding  = 2
)

// Hermite interpolation coefficients
// c2 = f0 - 2.5*f1 + 2*f2 - 0.5*f3
// c3 = 0.5*(f3-f0) + 1.5*(f1-f2)
const (
	hermiteHalf       = 0.5
	hermiteOneAndHalf = 1.5
	hermiteTwoAndHalf = 2.5
)
