package bootstrap

import (
	"gonum.org/v1/gonum/stat"

	"gohist/domain/axis"
	"gohist/domain/core"
	"gohist/domain/cube"
)

// EfficiencyConfig extends Config with efficiency-only options.
type EfficiencyConfig struct {
	Config

	// NaNTo, when non-nil, substitutes this value for the NaN/Inf
	// efficiencies produced by empty denominator bins. It is applied
	// identically to the nominal cube and to every replica.
	NaNTo *float64
}

// Efficiency computes binned selection efficiencies with bootstrap
// resampled uncertainties.
//
// It wraps one Histogram with an extra leading two-valued "selected" axis
// (bin 0 = not selected, bin 1 = selected). Numerator, denominator and
// ratio are derived from the fill state on every readout; nothing is
// cached.
type Efficiency struct {
	hist  *Histogram
	nanTo *float64
}

// EfficiencyResult bundles the cubes derived from one fill state.
type EfficiencyResult struct {
	Numerator   *cube.Hist
	Denominator *cube.Hist
	Efficiency  *cube.Hist
}

// EfficiencyArrays bundles per-component replica-axis reductions sharing
// one shape.
type EfficiencyArrays struct {
	Numerator   []float64
	Denominator []float64
	Efficiency  []float64
	Shape       []int
}

// NewEfficiency builds an efficiency over the given data axes.
func NewEfficiency(axes []axis.Axis, cfg EfficiencyConfig) (*Efficiency, error) {
	if len(axes) == 0 {
		return nil, core.NewInvalidInputError("at least one axis is required")
	}
	selected, err := axis.NewInteger(0, 2, false, false)
	if err != nil {
		return nil, err
	}
	all := make([]axis.Axis, 0, len(axes)+1)
	all = append(all, selected)
	all = append(all, axes...)
	h, err := New(all, cfg.Config)
	if err != nil {
		return nil, err
	}
	return &Efficiency{hist: h, nanTo: cfg.NaNTo}, nil
}

// NumReplicas returns the replica count R.
func (e *Efficiency) NumReplicas() int { return e.hist.NumReplicas() }

// Fill increments the efficiency with a batch of events. selected flags
// whether each event enters the numerator; it must match the coordinate
// array lengths. weight and seed are optional, as for Histogram.Fill.
func (e *Efficiency) Fill(selected []bool, coords [][]float64, weight []float64, seed []uint64) error {
	if len(coords) == 0 {
		return core.NewInvalidInputError("at least one coordinate array is required")
	}
	if len(selected) != len(coords[0]) {
		return core.NewLengthMismatchError("selected", len(selected), len(coords[0]))
	}
	sel := make([]float64, len(selected))
	for i, s := range selected {
		if s {
			sel[i] = 1
		}
	}
	all := make([][]float64, 0, len(coords)+1)
	all = append(all, sel)
	all = append(all, coords...)
	return e.hist.Fill(all, weight, seed)
}

// derive slices the selected axis off c and computes the numerator,
// denominator and ratio cubes.
func (e *Efficiency) derive(c *cube.Hist) EfficiencyResult {
	numerator := c.Slice(0, 1)
	notSelected := c.Slice(0, 0)
	denominator := numerator.Clone()
	_ = denominator.Add(notSelected)
	ratio := numerator.Clone()
	_ = ratio.Div(denominator)
	if e.nanTo != nil {
		ratio.ReplaceNonFinite(*e.nanTo)
	}
	return EfficiencyResult{Numerator: numerator, Denominator: denominator, Efficiency: ratio}
}

// Nominal returns the unresampled numerator, denominator and efficiency.
func (e *Efficiency) Nominal() EfficiencyResult {
	return e.derive(e.hist.nominal)
}

// Samples returns the resampled numerator, denominator and efficiency;
// each cube's last axis is the replica index.
func (e *Efficiency) Samples() EfficiencyResult {
	return e.derive(e.hist.samples)
}

// Numerator returns the selected counts as a bootstrap histogram.
func (e *Efficiency) Numerator() *Histogram {
	return newFromCubes(e.Nominal().Numerator, e.Samples().Numerator, e.hist.rng, e.hist.cfg)
}

// Denominator returns the total counts as a bootstrap histogram.
func (e *Efficiency) Denominator() *Histogram {
	return newFromCubes(e.Nominal().Denominator, e.Samples().Denominator, e.hist.rng, e.hist.cfg)
}

// Ratio returns the efficiency as a bootstrap histogram.
func (e *Efficiency) Ratio() *Histogram {
	return newFromCubes(e.Nominal().Efficiency, e.Samples().Efficiency, e.hist.rng, e.hist.cfg)
}

// Mean returns the per-bin replica means of all three components.
func (e *Efficiency) Mean(flow bool) EfficiencyArrays {
	return e.reduce(flow, meanOf)
}

// Std returns the per-bin replica population standard deviations of all
// three components.
func (e *Efficiency) Std(flow bool) EfficiencyArrays {
	return e.reduce(flow, stdOf)
}

// Percentile returns the per-bin q-th replica percentile (0 < q <= 100)
// of all three components, skipping NaN replicas.
func (e *Efficiency) Percentile(q float64, flow bool) (EfficiencyArrays, error) {
	if q <= 0 || q > 100 {
		return EfficiencyArrays{}, core.NewInvalidInputError("percentile must be in (0, 100]")
	}
	samples := e.Samples()
	num, shape := reduceReplicas(samples.Numerator, flow, true, percentileOf(q))
	den, _ := reduceReplicas(samples.Denominator, flow, true, percentileOf(q))
	eff, _ := reduceReplicas(samples.Efficiency, flow, true, percentileOf(q))
	return EfficiencyArrays{Numerator: num, Denominator: den, Efficiency: eff, Shape: shape}, nil
}

func (e *Efficiency) reduce(flow bool, f func([]float64) float64) EfficiencyArrays {
	samples := e.Samples()
	num, shape := reduceReplicas(samples.Numerator, flow, e.hist.cfg.NaNAware, f)
	den, _ := reduceReplicas(samples.Denominator, flow, e.hist.cfg.NaNAware, f)
	eff, _ := reduceReplicas(samples.Efficiency, flow, e.hist.cfg.NaNAware, f)
	return EfficiencyArrays{Numerator: num, Denominator: den, Efficiency: eff, Shape: shape}
}

// View returns a copy of the wrapped samples cube contents and shape. The
// first dimension is the selected axis, the last the replica index.
func (e *Efficiency) View(flow bool) ([]float64, []int) {
	return e.hist.View(flow)
}

// Project sums over every data axis not listed in keep. The selected axis
// (0) and the replica axis are always retained. Data axes are numbered as
// in the wrapped histogram: the first data axis is 1.
func (e *Efficiency) Project(keep ...int) (*Efficiency, error) {
	withSelected := keep
	found := false
	for _, k := range keep {
		if k == 0 {
			found = true
			break
		}
	}
	if !found {
		withSelected = append([]int{0}, keep...)
	}
	h, err := e.hist.Project(withSelected...)
	if err != nil {
		return nil, err
	}
	return &Efficiency{hist: h, nanTo: e.nanTo}, nil
}

// Add returns a new efficiency merging both operands' counts.
func (e *Efficiency) Add(other *Efficiency) (*Efficiency, error) {
	if other == nil {
		return nil, core.NewShapeMismatchError("cannot combine with a nil efficiency")
	}
	h, err := e.hist.Add(other.hist)
	if err != nil {
		return nil, err
	}
	return &Efficiency{hist: h, nanTo: e.nanTo}, nil
}

// Equal reports whether the wrapped histograms hold equal contents.
func (e *Efficiency) Equal(other *Efficiency) bool {
	return other != nil && e.hist.Equal(other.hist)
}

func meanOf(x []float64) float64 { return stat.Mean(x, nil) }

func stdOf(x []float64) float64 { return stat.PopStdDev(x, nil) }
