package bootstrap

import (
	"gohist/adapters/rng"
	"gohist/ports"
)

// Default tuning values applied when the corresponding Config field is
// left at its zero value.
const (
	// DefaultNumReplicas is the default number of bootstrap resamples.
	DefaultNumReplicas = 100

	// DefaultFastFillThreshold caps the replicas*events element count for
	// which a fill draws the whole multiplier matrix in one pass. Above
	// it the fill iterates per replica, trading wall-clock time for peak
	// memory. Both paths are numerically identical; the threshold is a
	// performance knob only.
	DefaultFastFillThreshold = 1_000_000
)

// Config controls histogram construction. The zero value is usable:
// defaults are substituted at construction time.
type Config struct {
	// NumReplicas is the number of bootstrap resamples R. More replicas
	// improve the accuracy of derived uncertainty estimates at the cost
	// of memory and CPU. Defaults to DefaultNumReplicas.
	NumReplicas int

	// RNG supplies the Poisson multipliers for fills without per-record
	// seeds. When nil, an entropy-seeded stream (rng.Default()) is wired
	// in; there is no shared global generator. Pass rng.New(seed) for
	// reproducible sequential fills. The histogram takes exclusive
	// ownership of the stream.
	RNG ports.RNG

	// FastFillThreshold overrides DefaultFastFillThreshold when positive.
	FastFillThreshold int

	// NaNAware makes Mean, Std and Percentile skip NaN replica values
	// instead of propagating them.
	NaNAware bool
}

// DefaultConfig returns the default histogram configuration.
func DefaultConfig() Config {
	return Config{
		NumReplicas:       DefaultNumReplicas,
		FastFillThreshold: DefaultFastFillThreshold,
	}
}

// normalized fills in defaults for zero-valued fields.
func (c Config) normalized() Config {
	if c.NumReplicas <= 0 {
		c.NumReplicas = DefaultNumReplicas
	}
	if c.FastFillThreshold <= 0 {
		c.FastFillThreshold = DefaultFastFillThreshold
	}
	if c.RNG == nil {
		c.RNG = rng.Default()
	}
	return c
}
