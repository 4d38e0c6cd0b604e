// Package bootstrap implements histograms, moments and efficiencies with
// automatic Poisson bootstrap resampling.
//
// Each histogram carries two counting cubes: a nominal cube holding the
// plain, unresampled fill, and a samples cube with one extra trailing
// replica axis of fixed size R. For every fill, each event's weight is
// multiplied by an independent Poisson(1) draw per replica, so the spread
// of a bin's replica vector approximates the sampling distribution of its
// nominal count.
package bootstrap

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gohist/domain/axis"
	"gohist/domain/core"
	"gohist/domain/cube"
	"gohist/ports"
)

// Histogram is a binned counter with Poisson bootstrap resampling.
type Histogram struct {
	nominal *cube.Hist
	samples *cube.Hist
	rng     ports.RNG
	cfg     Config
}

// New builds a histogram over the given data axes. The samples cube gains
// a trailing replica axis of size cfg.NumReplicas; the replica count is
// immutable afterwards. All invariants are wired atomically: there is no
// observable partially-constructed state.
func New(axes []axis.Axis, cfg Config) (*Histogram, error) {
	if len(axes) == 0 {
		return nil, core.NewInvalidInputError("at least one axis is required")
	}
	cfg = cfg.normalized()
	replicaAxis, err := axis.NewInteger(0, cfg.NumReplicas, false, false)
	if err != nil {
		return nil, err
	}
	sampleAxes := make([]axis.Axis, 0, len(axes)+1)
	sampleAxes = append(sampleAxes, axes...)
	sampleAxes = append(sampleAxes, replicaAxis)
	h := &Histogram{
		nominal: cube.New(axes...),
		samples: cube.New(sampleAxes...),
		rng:     cfg.RNG,
		cfg:     cfg,
	}
	// the histogram owns its stream exclusively; detach it from the
	// caller's Config value
	h.cfg.RNG = nil
	return h, nil
}

// newFromCubes wires a histogram around already-built cubes. The samples
// cube must carry the trailing replica axis.
func newFromCubes(nominal, samples *cube.Hist, rng ports.RNG, cfg Config) *Histogram {
	return &Histogram{nominal: nominal, samples: samples, rng: rng.Clone(), cfg: cfg}
}

// Nominal returns the unresampled cube. It is shared state: treat it as
// read-only.
func (h *Histogram) Nominal() *cube.Hist { return h.nominal }

// Samples returns the resampled cube, whose last axis is the replica
// index. It is shared state: treat it as read-only.
func (h *Histogram) Samples() *cube.Hist { return h.samples }

// NumReplicas returns the replica count R.
func (h *Histogram) NumReplicas() int {
	axes := h.samples.Axes()
	return axes[len(axes)-1].NumBins()
}

// View returns a copy of the samples cube contents and shape; the last
// dimension is the replica index.
func (h *Histogram) View(flow bool) ([]float64, []int) {
	return h.samples.View(flow)
}

// Fill increments the histogram with a batch of events. coords holds one
// equal-length array per data axis; weight and seed are optional (nil).
//
// The nominal cube is always incremented once, unresampled. The samples
// cube receives, for each replica r, the event weights multiplied by
// independent Poisson(1) draws. Without seeds the draws come from the
// histogram's own sequential stream, so reproducibility depends on fill
// ordering. With seeds, each event's replica vector is drawn from a fresh
// stream keyed by that event's seed: refilling the same records with the
// same seeds reproduces identical resampling weights regardless of
// batching, which is what makes sharded fills and correlated companion
// histograms statistically consistent.
//
// Validation failures return ErrInvalidInput before any cube is touched;
// empty inputs are a valid no-op.
func (h *Histogram) Fill(coords [][]float64, weight []float64, seed []uint64) error {
	if err := validateFill(h.nominal.NumAxes(), coords, weight, seed); err != nil {
		return err
	}
	n := len(coords[0])
	if n == 0 {
		return nil
	}
	if err := h.nominal.Fill(coords, weight); err != nil {
		return err
	}
	if h.NumReplicas()*n < h.cfg.FastFillThreshold {
		return h.fillFast(coords, weight, seed, n)
	}
	return h.fillSlow(coords, weight, seed, n)
}

func validateFill(numAxes int, coords [][]float64, weight []float64, seed []uint64) error {
	if len(coords) == 0 {
		return core.NewInvalidInputError("at least one coordinate array is required")
	}
	if len(coords) != numAxes {
		return core.NewInvalidInputError(fmt.Sprintf(
			"got %d coordinate arrays for a %d-axis histogram", len(coords), numAxes))
	}
	n := len(coords[0])
	for d, c := range coords {
		if len(c) != n {
			return core.NewLengthMismatchError(fmt.Sprintf("coordinate %d", d), len(c), n)
		}
	}
	if weight != nil && len(weight) != n {
		return core.NewLengthMismatchError("weight", len(weight), n)
	}
	if seed != nil && len(seed) != n {
		return core.NewLengthMismatchError("seed", len(seed), n)
	}
	return nil
}

// fillFast draws the whole R x n multiplier matrix up front and performs a
// single bulk increment over the flattened (replica, event) space, with
// the replica index as an explicit trailing coordinate. Peak memory is
// O(R*n); draw order matches fillSlow exactly, so both paths produce
// bit-identical cubes from the same stream state.
func (h *Histogram) fillFast(coords [][]float64, weight []float64, seed []uint64, n int) error {
	r := h.NumReplicas()
	total := r * n
	mult := make([]float64, total) // replica-major: mult[rep*n+i]
	if seed == nil {
		h.rng.Poisson(1.0, mult)
	} else {
		draws := make([]float64, r)
		for i := 0; i < n; i++ {
			h.rng.Seeded(seed[i]).Poisson(1.0, draws)
			for rep := 0; rep < r; rep++ {
				mult[rep*n+i] = draws[rep]
			}
		}
	}
	if weight != nil {
		for rep := 0; rep < r; rep++ {
			floats.Mul(mult[rep*n:(rep+1)*n], weight)
		}
	}
	flat := make([][]float64, len(coords)+1)
	for d, c := range coords {
		col := make([]float64, total)
		for rep := 0; rep < r; rep++ {
			copy(col[rep*n:(rep+1)*n], c)
		}
		flat[d] = col
	}
	repCoord := make([]float64, total)
	for rep := 0; rep < r; rep++ {
		seg := repCoord[rep*n : (rep+1)*n]
		v := float64(rep)
		for i := range seg {
			seg[i] = v
		}
	}
	flat[len(coords)] = repCoord
	return h.samples.Fill(flat, mult)
}

// fillSlow loops over replicas, drawing one n-length multiplier vector and
// performing one bulk increment per replica. Peak memory is O(n).
func (h *Histogram) fillSlow(coords [][]float64, weight []float64, seed []uint64, n int) error {
	r := h.NumReplicas()
	var streams []ports.RNG
	if seed != nil {
		streams = make([]ports.RNG, n)
		for i, s := range seed {
			streams[i] = h.rng.Seeded(s)
		}
	}
	mult := make([]float64, n)
	one := make([]float64, 1)
	repCoord := make([]float64, n)
	flat := make([][]float64, 0, len(coords)+1)
	flat = append(flat, coords...)
	flat = append(flat, repCoord)
	for rep := 0; rep < r; rep++ {
		if seed == nil {
			h.rng.Poisson(1.0, mult)
		} else {
			for i := range streams {
				streams[i].Poisson(1.0, one)
				mult[i] = one[0]
			}
		}
		if weight != nil {
			floats.Mul(mult, weight)
		}
		v := float64(rep)
		for i := range repCoord {
			repCoord[i] = v
		}
		if err := h.samples.Fill(flat, mult); err != nil {
			return err
		}
	}
	return nil
}

// Project sums the histogram over every data axis not listed in keep. The
// replica axis is always retained, even when not requested; requesting it
// explicitly is allowed and redundant.
func (h *Histogram) Project(keep ...int) (*Histogram, error) {
	replicaAxis := h.nominal.NumAxes()
	nomKeep := make([]int, 0, len(keep))
	for _, k := range keep {
		if k == replicaAxis {
			continue
		}
		nomKeep = append(nomKeep, k)
	}
	nominal, err := h.nominal.Project(nomKeep...)
	if err != nil {
		return nil, err
	}
	samples, err := h.samples.Project(append(nomKeep, replicaAxis)...)
	if err != nil {
		return nil, err
	}
	return newFromCubes(nominal, samples, h.rng, h.cfg), nil
}

// Clone returns a deep copy, including an independent copy of the RNG
// state.
func (h *Histogram) Clone() *Histogram {
	return newFromCubes(h.nominal.Clone(), h.samples.Clone(), h.rng, h.cfg)
}

// Equal reports whether both histograms hold equal nominal and samples
// cube contents. RNG state is not compared.
func (h *Histogram) Equal(other *Histogram) bool {
	return other != nil && h.nominal.Equal(other.nominal) && h.samples.Equal(other.samples)
}

// Add returns a new histogram with other's contents added bin-wise to
// both cubes. Merging independently filled histograms this way is the
// reduce step of a map-reduce fill.
func (h *Histogram) Add(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*cube.Hist).Add)
}

// Sub returns a new histogram with other's contents subtracted bin-wise.
func (h *Histogram) Sub(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*cube.Hist).Sub)
}

// Mul returns a new histogram with contents multiplied bin-wise.
func (h *Histogram) Mul(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*cube.Hist).Mul)
}

// Div returns a new histogram with contents divided bin-wise. Empty bins
// yield NaN/Inf, not errors.
func (h *Histogram) Div(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*cube.Hist).Div)
}

func (h *Histogram) combine(other *Histogram, op func(*cube.Hist, *cube.Hist) error) (*Histogram, error) {
	if other == nil {
		return nil, core.NewShapeMismatchError("cannot combine with a nil histogram")
	}
	res := h.Clone()
	if err := op(res.nominal, other.nominal); err != nil {
		return nil, err
	}
	if err := op(res.samples, other.samples); err != nil {
		return nil, err
	}
	return res, nil
}

// AddScalar returns a new histogram with c added to every bin of both
// cubes.
func (h *Histogram) AddScalar(c float64) *Histogram {
	res := h.Clone()
	res.nominal.AddScalar(c)
	res.samples.AddScalar(c)
	return res
}

// SubScalar returns a new histogram with c subtracted from every bin.
func (h *Histogram) SubScalar(c float64) *Histogram {
	return h.AddScalar(-c)
}

// MulScalar returns a new histogram scaled by c.
func (h *Histogram) MulScalar(c float64) *Histogram {
	res := h.Clone()
	res.nominal.MulScalar(c)
	res.samples.MulScalar(c)
	return res
}

// DivScalar returns a new histogram divided by c.
func (h *Histogram) DivScalar(c float64) *Histogram {
	return h.MulScalar(1 / c)
}
