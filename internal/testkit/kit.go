// Package testkit provides synthetic data generators shared by the test
// suites.
package testkit

import (
	"math/rand/v2"
)

// Arange returns [0, 1, ..., n-1] as float64s.
func Arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Ones returns n unit weights.
func Ones(n int) []float64 {
	return Constant(n, 1)
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Uniform returns n deterministic pseudo-random draws from [lo, hi).
func Uniform(n int, lo, hi float64, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*r.Float64()
	}
	return out
}

// Seeds returns n consecutive record ids starting at base.
func Seeds(n int, base uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = base + uint64(i)
	}
	return out
}
