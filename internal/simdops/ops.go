// Package simdops provides SIMD operations for float32 samples behind a
// table of function pointers.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
// Function pointers delegate to optimized type-specific implementations.
//
// With PGO, these indirect calls can be devirtualized in hot paths.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F
}

// Pre-instantiated float32 operations, shared by every caller.
var ops32 = Ops[float32]{
	DotProductUnsafe: f32.DotProductUnsafe,
	Interleave2:      f32.Interleave2,
	Sum:              f32.Sum,
}

// Float32Ops returns the float32 SIMD operations.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Info describes the SIMD features detected on this CPU.
func Info() string {
	return cpu.Info()
}
