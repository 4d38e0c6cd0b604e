package bootstrap

import (
	"gonum.org/v1/gonum/floats"
)

// ValueWithSamples is a derived statistic carrying both its unresampled
// nominal value and its bootstrap replica vector. Treat instances as
// immutable: arithmetic returns new values and never mutates operands.
//
// Operators combine nominal with nominal and samples with samples,
// element-wise; the two fields are never cross-combined. Combining values
// with different replica counts panics, matching the underlying slice
// semantics.
type ValueWithSamples struct {
	Nominal float64
	Samples []float64
}

// NewValueWithSamples copies samples into a fresh value.
func NewValueWithSamples(nominal float64, samples []float64) ValueWithSamples {
	return ValueWithSamples{Nominal: nominal, Samples: append([]float64(nil), samples...)}
}

// Add returns the element-wise sum.
func (v ValueWithSamples) Add(o ValueWithSamples) ValueWithSamples {
	out := make([]float64, len(v.Samples))
	floats.AddTo(out, v.Samples, o.Samples)
	return ValueWithSamples{Nominal: v.Nominal + o.Nominal, Samples: out}
}

// Sub returns the element-wise difference.
func (v ValueWithSamples) Sub(o ValueWithSamples) ValueWithSamples {
	out := make([]float64, len(v.Samples))
	floats.SubTo(out, v.Samples, o.Samples)
	return ValueWithSamples{Nominal: v.Nominal - o.Nominal, Samples: out}
}

// Mul returns the element-wise product.
func (v ValueWithSamples) Mul(o ValueWithSamples) ValueWithSamples {
	out := make([]float64, len(v.Samples))
	floats.MulTo(out, v.Samples, o.Samples)
	return ValueWithSamples{Nominal: v.Nominal * o.Nominal, Samples: out}
}

// Div returns the element-wise quotient. Division by zero follows
// floating-point semantics.
func (v ValueWithSamples) Div(o ValueWithSamples) ValueWithSamples {
	out := make([]float64, len(v.Samples))
	floats.DivTo(out, v.Samples, o.Samples)
	return ValueWithSamples{Nominal: v.Nominal / o.Nominal, Samples: out}
}

// Equal reports exact equality of the nominal values and of the sample
// vectors (NaN samples compare equal to NaN).
func (v ValueWithSamples) Equal(o ValueWithSamples) bool {
	return v.Nominal == o.Nominal && floats.Same(v.Samples, o.Samples)
}
