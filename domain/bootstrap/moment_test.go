package bootstrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"gohist/adapters/rng"
	"gohist/domain/core"
	"gohist/internal/testkit"
)

func TestMomentClosedForms(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 100, RNG: rng.New(13)})
	require.NoError(t, err)
	require.NoError(t, m.Fill(testkit.Arange(100), nil, nil))

	// arange(100): mean 49.5, population variance (100^2-1)/12, skewness 0
	assert.InDelta(t, 49.5, m.Mean().Nominal, 1e-9)
	assert.InDelta(t, 833.25, m.Variance().Nominal, 1e-9)
	assert.InDelta(t, math.Sqrt(833.25), m.Std().Nominal, 1e-9)
	assert.InDelta(t, 0, m.Skewness().Nominal, 1e-6)
}

func TestMomentWeightsShiftTheMean(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 10, RNG: rng.New(13)})
	require.NoError(t, err)
	// all the weight on the value 2
	require.NoError(t, m.Fill([]float64{1, 2, 3}, []float64{0, 5, 0}, nil))

	assert.InDelta(t, 2, m.Mean().Nominal, 1e-12)
	assert.InDelta(t, 0, m.Variance().Nominal, 1e-12)
}

func TestMomentReplicaSpreadMatchesSamplingError(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 100, RNG: rng.New(99)})
	require.NoError(t, err)
	require.NoError(t, m.Fill(testkit.Arange(100), nil, nil))

	// the replica means approximate the sampling distribution of the
	// mean: centred on 49.5 with sigma near std/sqrt(n) = 2.887
	samples := m.Mean().Samples
	require.Len(t, samples, 100)
	assert.InDelta(t, 49.5, stat.Mean(samples, nil), 1.5)
	spread := stat.PopStdDev(samples, nil)
	assert.Greater(t, spread, 1.5)
	assert.Less(t, spread, 4.5)
}

func TestMomentPowerSumsShareMultipliers(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 50, RNG: rng.New(5)})
	require.NoError(t, err)
	require.NoError(t, m.Fill(testkit.Constant(50, 3), nil, nil))

	// with a constant dataset every replica mean collapses to the value
	// itself, which only holds if all four sums saw identical draws
	mean := m.Mean()
	assert.Equal(t, 3.0, mean.Nominal)
	for _, v := range mean.Samples {
		assert.Equal(t, 3.0, v)
	}

	v, err2 := NewMoment(Config{NumReplicas: 50, RNG: rng.New(6)})
	require.NoError(t, err2)
	require.NoError(t, v.Fill(testkit.Uniform(200, 0, 10, 8), nil, nil))
	wN, wS := powerSum(v.sumW)
	tN, tS := powerSum(v.sumWT)
	assert.Positive(t, wN)
	assert.Positive(t, tN)
	assert.Greater(t, stat.Correlation(wS, tS, nil), 0.5)
}

func TestMomentSeededFillsReproduce(t *testing.T) {
	values := testkit.Uniform(100, -5, 5, 3)
	seed := testkit.Seeds(100, 0)

	a, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(1)})
	require.NoError(t, err)
	b, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(2)})
	require.NoError(t, err)
	require.NoError(t, a.Fill(values, nil, seed))
	require.NoError(t, b.Fill(values, nil, seed))
	assert.True(t, a.Equal(b))
}

func TestMomentAddMergesDisjointFills(t *testing.T) {
	values := testkit.Uniform(200, 0, 1, 4)
	seed := testkit.Seeds(200, 0)

	whole, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(1)})
	require.NoError(t, err)
	require.NoError(t, whole.Fill(values, nil, seed))

	first, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(2)})
	require.NoError(t, err)
	second, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(3)})
	require.NoError(t, err)
	require.NoError(t, first.Fill(values[:120], nil, seed[:120]))
	require.NoError(t, second.Fill(values[120:], nil, seed[120:]))

	merged, err := first.Add(second)
	require.NoError(t, err)
	assert.True(t, merged.Equal(whole))
}

func TestMomentAddValidation(t *testing.T) {
	a, err := NewMoment(Config{NumReplicas: 20, RNG: rng.New(1)})
	require.NoError(t, err)
	b, err := NewMoment(Config{NumReplicas: 30, RNG: rng.New(1)})
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.True(t, core.IsShapeMismatchError(err))
	_, err = a.Add(nil)
	assert.True(t, core.IsShapeMismatchError(err))
}

func TestMomentZeroWeightYieldsNaN(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 10, RNG: rng.New(1)})
	require.NoError(t, err)
	require.NoError(t, m.Fill([]float64{1, 2, 3}, []float64{0, 0, 0}, nil))

	assert.True(t, math.IsNaN(m.Mean().Nominal))
}

func TestMomentFillValidation(t *testing.T) {
	m, err := NewMoment(Config{NumReplicas: 10, RNG: rng.New(1)})
	require.NoError(t, err)

	err = m.Fill([]float64{1, 2}, []float64{1}, nil)
	assert.True(t, core.IsInvalidInputError(err))
	err = m.Fill([]float64{1, 2}, nil, []uint64{1, 2, 3})
	assert.True(t, core.IsInvalidInputError(err))
}
