package bootstrap

import (
	"math"

	"gohist/adapters/rng"
	"gohist/domain/axis"
	"gohist/domain/core"
)

// Moment computes the mean, variance, standard deviation and skewness of
// an optionally weighted dataset, with bootstrap resampled uncertainties.
//
// It accumulates four power sums over a single dummy bin: sum(w),
// sum(w*t), sum(w*t^2) and sum(w*t^3). The four histograms are built from
// clones of one RNG state so that, for a given event and replica, all
// four see the identical Poisson multiplier; the moment formulas are only
// statistically valid under that correlation.
type Moment struct {
	sumW   *Histogram
	sumWT  *Histogram
	sumWT2 *Histogram
	sumWT3 *Histogram
}

// NewMoment builds an empty accumulator. cfg.RNG seeds all four internal
// histograms with identical state; when nil an entropy-seeded stream is
// drawn once and cloned four ways.
func NewMoment(cfg Config) (*Moment, error) {
	base := cfg.RNG
	if base == nil {
		base = rng.Default()
	}
	dummy, err := axis.NewRegular(1, -1, 1)
	if err != nil {
		return nil, err
	}
	build := func() (*Histogram, error) {
		c := cfg
		c.RNG = base.Clone()
		return New([]axis.Axis{dummy}, c)
	}
	m := &Moment{}
	for _, target := range []**Histogram{&m.sumW, &m.sumWT, &m.sumWT2, &m.sumWT3} {
		h, err := build()
		if err != nil {
			return nil, err
		}
		*target = h
	}
	return m, nil
}

// NumReplicas returns the replica count R.
func (m *Moment) NumReplicas() int { return m.sumW.NumReplicas() }

// Fill accumulates a batch of values with optional weights and per-record
// seeds. All four power sums are filled with the same coordinates and
// seeds, in lockstep, so their sequential RNG streams stay synchronized
// across calls.
func (m *Moment) Fill(values, weight []float64, seed []uint64) error {
	if err := validateFill(1, [][]float64{values}, weight, seed); err != nil {
		return err
	}
	n := len(values)
	zeros := make([]float64, n)
	w := weight
	if w == nil {
		w = make([]float64, n)
		for i := range w {
			w[i] = 1
		}
	}
	wt := make([]float64, n)
	wt2 := make([]float64, n)
	wt3 := make([]float64, n)
	for i, t := range values {
		wt[i] = w[i] * t
		wt2[i] = w[i] * t * t
		wt3[i] = w[i] * t * t * t
	}
	coords := [][]float64{zeros}
	if err := m.sumW.Fill(coords, w, seed); err != nil {
		return err
	}
	if err := m.sumWT.Fill(coords, wt, seed); err != nil {
		return err
	}
	if err := m.sumWT2.Fill(coords, wt2, seed); err != nil {
		return err
	}
	return m.sumWT3.Fill(coords, wt3, seed)
}

// powerSum extracts the single-bin nominal scalar and replica vector.
func powerSum(h *Histogram) (float64, []float64) {
	nom, _ := h.nominal.View(false)
	samples, _ := h.samples.View(false)
	return nom[0], samples
}

// Mean returns the weighted mean. A zero total weight yields NaN.
func (m *Moment) Mean() ValueWithSamples {
	wN, wS := powerSum(m.sumW)
	tN, tS := powerSum(m.sumWT)
	out := make([]float64, len(wS))
	for i := range out {
		out[i] = tS[i] / wS[i]
	}
	return ValueWithSamples{Nominal: tN / wN, Samples: out}
}

// Variance returns the weighted population variance.
func (m *Moment) Variance() ValueWithSamples {
	wN, wS := powerSum(m.sumW)
	tN, tS := powerSum(m.sumWT)
	t2N, t2S := powerSum(m.sumWT2)
	out := make([]float64, len(wS))
	for i := range out {
		out[i] = momentVariance(wS[i], tS[i], t2S[i])
	}
	return ValueWithSamples{Nominal: momentVariance(wN, tN, t2N), Samples: out}
}

// Std returns the weighted population standard deviation.
func (m *Moment) Std() ValueWithSamples {
	v := m.Variance()
	out := make([]float64, len(v.Samples))
	for i, x := range v.Samples {
		out[i] = math.Sqrt(x)
	}
	return ValueWithSamples{Nominal: math.Sqrt(v.Nominal), Samples: out}
}

// Skewness returns the weighted skewness.
func (m *Moment) Skewness() ValueWithSamples {
	wN, wS := powerSum(m.sumW)
	tN, tS := powerSum(m.sumWT)
	t2N, t2S := powerSum(m.sumWT2)
	t3N, t3S := powerSum(m.sumWT3)
	out := make([]float64, len(wS))
	for i := range out {
		out[i] = momentSkewness(wS[i], tS[i], t2S[i], t3S[i])
	}
	return ValueWithSamples{Nominal: momentSkewness(wN, tN, t2N, t3N), Samples: out}
}

func momentVariance(w, wt, wt2 float64) float64 {
	mu := wt / w
	return mu*mu + (wt2-2*wt*mu)/w
}

func momentSkewness(w, wt, wt2, wt3 float64) float64 {
	mu := wt / w
	sigma := math.Sqrt(momentVariance(w, wt, wt2))
	return (wt3/w - 3*mu*sigma*sigma - mu*mu*mu) / (sigma * sigma * sigma)
}

// Add returns a new accumulator merging both operands' power sums, the
// reduce step of a map-reduce moment computation. Replica counts must
// match; seeding compatibility (both sides filled with per-record seeds
// drawn from the same key space) remains the caller's obligation.
func (m *Moment) Add(other *Moment) (*Moment, error) {
	if other == nil {
		return nil, core.NewShapeMismatchError("cannot combine with a nil accumulator")
	}
	if m.NumReplicas() != other.NumReplicas() {
		return nil, core.NewShapeMismatchError("cannot merge accumulators with different replica counts")
	}
	sumW, err := m.sumW.Add(other.sumW)
	if err != nil {
		return nil, err
	}
	sumWT, err := m.sumWT.Add(other.sumWT)
	if err != nil {
		return nil, err
	}
	sumWT2, err := m.sumWT2.Add(other.sumWT2)
	if err != nil {
		return nil, err
	}
	sumWT3, err := m.sumWT3.Add(other.sumWT3)
	if err != nil {
		return nil, err
	}
	return &Moment{sumW: sumW, sumWT: sumWT, sumWT2: sumWT2, sumWT3: sumWT3}, nil
}

// Equal reports whether all four power-sum histograms hold equal contents.
func (m *Moment) Equal(other *Moment) bool {
	return other != nil &&
		m.sumW.Equal(other.sumW) &&
		m.sumWT.Equal(other.sumWT) &&
		m.sumWT2.Equal(other.sumWT2) &&
		m.sumWT3.Equal(other.sumWT3)
}
