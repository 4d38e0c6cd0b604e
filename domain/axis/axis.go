// Package axis defines the binning specifications consumed by the counting
// cube. An axis maps a continuous coordinate to a bin index and declares
// whether out-of-range entries are captured in underflow/overflow slots.
package axis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"gohist/domain/core"
)

// Axis describes the binning of one histogram dimension.
type Axis interface {
	// NumBins returns the number of in-range bins.
	NumBins() int

	// Index maps a coordinate to its bin. It returns -1 for values below
	// the axis range and NumBins() for values at or above it (NaN counts
	// as overflow). Flow handling is the cube's responsibility.
	Index(x float64) int

	// Underflow and Overflow report whether out-of-range entries are kept
	// in dedicated flow slots or dropped.
	Underflow() bool
	Overflow() bool

	// Edges returns the NumBins()+1 bin boundaries.
	Edges() []float64

	// Centers returns the NumBins() bin midpoints.
	Centers() []float64

	// Equal reports whether other describes the same binning.
	Equal(other Axis) bool
}

// Regular is a uniform binning of [Low, High) into Bins equal-width bins,
// with underflow and overflow slots.
type Regular struct {
	bins      int
	low, high float64
}

// NewRegular builds a uniform axis. Bins must be positive and high > low.
func NewRegular(bins int, low, high float64) (Regular, error) {
	if bins <= 0 {
		return Regular{}, core.NewInvalidInputError("regular axis needs at least one bin")
	}
	if !(high > low) {
		return Regular{}, core.NewInvalidInputError("regular axis upper edge must exceed lower edge")
	}
	return Regular{bins: bins, low: low, high: high}, nil
}

func (a Regular) NumBins() int    { return a.bins }
func (a Regular) Underflow() bool { return true }
func (a Regular) Overflow() bool  { return true }

func (a Regular) Index(x float64) int {
	if math.IsNaN(x) || x >= a.high {
		return a.bins
	}
	if x < a.low {
		return -1
	}
	idx := int(float64(a.bins) * (x - a.low) / (a.high - a.low))
	if idx >= a.bins {
		// floating point rounding at the upper edge
		idx = a.bins - 1
	}
	return idx
}

func (a Regular) Edges() []float64 {
	edges := make([]float64, a.bins+1)
	width := (a.high - a.low) / float64(a.bins)
	for i := range edges {
		edges[i] = a.low + float64(i)*width
	}
	edges[a.bins] = a.high
	return edges
}

func (a Regular) Centers() []float64 {
	centers := make([]float64, a.bins)
	width := (a.high - a.low) / float64(a.bins)
	for i := range centers {
		centers[i] = a.low + (float64(i)+0.5)*width
	}
	return centers
}

func (a Regular) Equal(other Axis) bool {
	b, ok := other.(Regular)
	return ok && a.bins == b.bins && a.low == b.low && a.high == b.high
}

// Variable bins a coordinate by an explicit, strictly increasing edge list.
// The i-th bin covers [edges[i], edges[i+1]), with flow slots on both ends.
type Variable struct {
	edges []float64
}

// NewVariable builds an axis from at least two strictly increasing edges.
// The edge slice is copied.
func NewVariable(edges []float64) (Variable, error) {
	if len(edges) < 2 {
		return Variable{}, core.NewInvalidInputError("variable axis needs at least two edges")
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return Variable{}, core.NewInvalidInputError("variable axis edges must be strictly increasing")
		}
	}
	cp := make([]float64, len(edges))
	copy(cp, edges)
	return Variable{edges: cp}, nil
}

func (a Variable) NumBins() int    { return len(a.edges) - 1 }
func (a Variable) Underflow() bool { return true }
func (a Variable) Overflow() bool  { return true }

func (a Variable) Index(x float64) int {
	n := a.NumBins()
	if math.IsNaN(x) || x >= a.edges[n] {
		return n
	}
	if x < a.edges[0] {
		return -1
	}
	i := sort.SearchFloat64s(a.edges, x)
	if i < len(a.edges) && a.edges[i] == x {
		return i
	}
	return i - 1
}

func (a Variable) Edges() []float64 {
	cp := make([]float64, len(a.edges))
	copy(cp, a.edges)
	return cp
}

func (a Variable) Centers() []float64 {
	centers := make([]float64, a.NumBins())
	for i := range centers {
		centers[i] = 0.5 * (a.edges[i] + a.edges[i+1])
	}
	return centers
}

func (a Variable) Equal(other Axis) bool {
	b, ok := other.(Variable)
	return ok && floats.Equal(a.edges, b.edges)
}

// Integer bins integer-valued coordinates into unit-width bins covering
// [Low, High). Flow slots are optional: the bootstrap replica axis and the
// efficiency selected axis both disable them so out-of-range entries are
// dropped rather than accumulated.
type Integer struct {
	low, high           int
	underflow, overflow bool
}

// NewInteger builds a unit-width integer axis over [low, high).
func NewInteger(low, high int, underflow, overflow bool) (Integer, error) {
	if high <= low {
		return Integer{}, core.NewInvalidInputError("integer axis upper bound must exceed lower bound")
	}
	return Integer{low: low, high: high, underflow: underflow, overflow: overflow}, nil
}

func (a Integer) NumBins() int    { return a.high - a.low }
func (a Integer) Underflow() bool { return a.underflow }
func (a Integer) Overflow() bool  { return a.overflow }

func (a Integer) Index(x float64) int {
	if math.IsNaN(x) {
		return a.NumBins()
	}
	i := int(math.Floor(x)) - a.low
	if i < 0 {
		return -1
	}
	if i >= a.NumBins() {
		return a.NumBins()
	}
	return i
}

func (a Integer) Edges() []float64 {
	edges := make([]float64, a.NumBins()+1)
	for i := range edges {
		edges[i] = float64(a.low + i)
	}
	return edges
}

func (a Integer) Centers() []float64 {
	centers := make([]float64, a.NumBins())
	for i := range centers {
		centers[i] = float64(a.low+i) + 0.5
	}
	return centers
}

func (a Integer) Equal(other Axis) bool {
	b, ok := other.(Integer)
	return ok && a == b
}
