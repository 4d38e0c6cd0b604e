package bootstrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueWithSamplesArithmetic(t *testing.T) {
	a := NewValueWithSamples(2, []float64{1, 2, 3})
	b := NewValueWithSamples(4, []float64{2, 2, 2})

	sum := a.Add(b)
	assert.Equal(t, 6.0, sum.Nominal)
	assert.Equal(t, []float64{3, 4, 5}, sum.Samples)

	diff := a.Sub(b)
	assert.Equal(t, -2.0, diff.Nominal)
	assert.Equal(t, []float64{-1, 0, 1}, diff.Samples)

	prod := a.Mul(b)
	assert.Equal(t, 8.0, prod.Nominal)
	assert.Equal(t, []float64{2, 4, 6}, prod.Samples)

	quot := a.Div(b)
	assert.Equal(t, 0.5, quot.Nominal)
	assert.Equal(t, []float64{0.5, 1, 1.5}, quot.Samples)

	// operands stay untouched
	assert.Equal(t, []float64{1, 2, 3}, a.Samples)
	assert.Equal(t, []float64{2, 2, 2}, b.Samples)
}

func TestValueWithSamplesCopiesInput(t *testing.T) {
	samples := []float64{1, 2}
	v := NewValueWithSamples(0, samples)
	samples[0] = 99
	assert.Equal(t, []float64{1, 2}, v.Samples)
}

func TestValueWithSamplesDivisionByZero(t *testing.T) {
	a := NewValueWithSamples(1, []float64{1, 0})
	b := NewValueWithSamples(0, []float64{0, 0})

	quot := a.Div(b)
	assert.True(t, math.IsInf(quot.Nominal, 1))
	assert.True(t, math.IsInf(quot.Samples[0], 1))
	assert.True(t, math.IsNaN(quot.Samples[1]))
}

func TestValueWithSamplesEqual(t *testing.T) {
	a := NewValueWithSamples(1, []float64{1, math.NaN()})
	b := NewValueWithSamples(1, []float64{1, math.NaN()})
	c := NewValueWithSamples(2, []float64{1, math.NaN()})
	d := NewValueWithSamples(1, []float64{1, 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestValueWithSamplesMismatchedLengthsPanic(t *testing.T) {
	a := NewValueWithSamples(1, []float64{1, 2})
	b := NewValueWithSamples(1, []float64{1})
	assert.Panics(t, func() { a.Add(b) })
}
