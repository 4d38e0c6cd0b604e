// Package ports declares the collaborator interfaces consumed by the
// bootstrap domain.
package ports

// RNG provides Poisson-distributed random draws for bootstrap resampling,
// with deterministic per-record streams and deep-copyable state.
//
// An RNG value is exclusively owned by one histogram and advanced only by
// its sequential fills; it is not safe for concurrent use.
type RNG interface {
	// Poisson fills out with independent Poisson(lambda) draws, advancing
	// the stream.
	Poisson(lambda float64, out []float64)

	// Seeded returns a fresh stream deterministically keyed by a record
	// id. It does not advance the parent stream, and equal seeds always
	// yield identical draw sequences, across independently constructed
	// generators.
	Seeded(seed uint64) RNG

	// Clone returns an independent deep copy of the current stream state.
	Clone() RNG
}
