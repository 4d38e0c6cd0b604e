// Package cube implements the n-dimensional counting cube backing the
// bootstrap histograms: a dense, row-major array of float64 bin contents
// with optional underflow/overflow slots per axis. It supports bulk
// weighted fills, axis projection and slicing, in-place arithmetic,
// deep copies and NaN-aware equality.
package cube

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"gohist/domain/axis"
	"gohist/domain/core"
)

// Hist is a dense n-dimensional weighted counter.
//
// Storage is row-major over per-axis extents, where an extent is the bin
// count plus one slot per enabled flow side. The last axis is contiguous
// in memory, so a trailing replica axis yields contiguous per-bin replica
// vectors.
type Hist struct {
	axes    []axis.Axis
	extents []int // bins + flow slots per axis
	offsets []int // storage slot of in-range bin 0 (1 when underflow enabled)
	strides []int
	data    []float64
}

// New builds an empty cube over the given axes.
func New(axes ...axis.Axis) *Hist {
	h := &Hist{
		axes:    append([]axis.Axis(nil), axes...),
		extents: make([]int, len(axes)),
		offsets: make([]int, len(axes)),
		strides: make([]int, len(axes)),
	}
	size := 1
	for d, ax := range axes {
		ext := ax.NumBins()
		if ax.Underflow() {
			h.offsets[d] = 1
			ext++
		}
		if ax.Overflow() {
			ext++
		}
		h.extents[d] = ext
		size *= ext
	}
	stride := 1
	for d := len(axes) - 1; d >= 0; d-- {
		h.strides[d] = stride
		stride *= h.extents[d]
	}
	h.data = make([]float64, size)
	return h
}

// Axes returns the axis specifications. The returned slice is a copy.
func (h *Hist) Axes() []axis.Axis {
	return append([]axis.Axis(nil), h.axes...)
}

// NumAxes returns the cube dimensionality.
func (h *Hist) NumAxes() int { return len(h.axes) }

// Shape returns the per-axis bin counts, including flow slots when flow
// is true.
func (h *Hist) Shape(flow bool) []int {
	shape := make([]int, len(h.axes))
	for d, ax := range h.axes {
		if flow {
			shape[d] = h.extents[d]
		} else {
			shape[d] = ax.NumBins()
		}
	}
	return shape
}

// Fill increments the cube once per event. coords holds one equal-length
// array per axis; weight is optional (nil means unit weights). Events
// whose coordinate falls outside an axis without the corresponding flow
// slot are dropped.
func (h *Hist) Fill(coords [][]float64, weight []float64) error {
	if len(coords) != len(h.axes) {
		return core.NewInvalidInputError(fmt.Sprintf(
			"got %d coordinate arrays for a %d-axis histogram", len(coords), len(h.axes)))
	}
	if len(coords) == 0 {
		return core.NewInvalidInputError("at least one coordinate array is required")
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
	for i := 0; i < n; i++ {
		flat, ok := h.locate(coords, i)
		if !ok {
			continue
		}
		w := 1.0
		if weight != nil {
			w = weight[i]
		}
		h.data[flat] += w
	}
	return nil
}

// locate maps event i to its flat storage index, reporting ok=false for
// events dropped by a flow-less axis.
func (h *Hist) locate(coords [][]float64, i int) (int, bool) {
	flat := 0
	for d, ax := range h.axes {
		idx := ax.Index(coords[d][i])
		var slot int
		switch {
		case idx < 0:
			if !ax.Underflow() {
				return 0, false
			}
			slot = 0
		case idx >= ax.NumBins():
			if !ax.Overflow() {
				return 0, false
			}
			slot = h.extents[d] - 1
		default:
			slot = idx + h.offsets[d]
		}
		flat += slot * h.strides[d]
	}
	return flat, true
}

// View returns a copy of the bin contents and its shape, row-major with
// the last axis contiguous. With flow true the flow slots are included.
func (h *Hist) View(flow bool) ([]float64, []int) {
	if flow {
		out := make([]float64, len(h.data))
		copy(out, h.data)
		return out, h.Shape(true)
	}
	shape := h.Shape(false)
	size := 1
	for _, s := range shape {
		size *= s
	}
	out := make([]float64, size)
	idx := make([]int, len(h.axes))
	for k := range out {
		flat := 0
		for d := range idx {
			flat += (idx[d] + h.offsets[d]) * h.strides[d]
		}
		out[k] = h.data[flat]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, shape
}

// Sum returns the total bin content, including flow slots when flow is true.
func (h *Hist) Sum(flow bool) float64 {
	data, _ := h.View(flow)
	return floats.Sum(data)
}

// Project sums the cube over every axis not listed in keep and returns the
// reduced cube with axes ordered as given. Flow slots of dropped axes are
// folded into the projection.
func (h *Hist) Project(keep ...int) (*Hist, error) {
	seen := make(map[int]bool, len(keep))
	for _, k := range keep {
		if k < 0 || k >= len(h.axes) {
			return nil, core.NewInvalidInputError(fmt.Sprintf("projection axis %d out of range", k))
		}
		if seen[k] {
			return nil, core.NewInvalidInputError(fmt.Sprintf("projection axis %d repeated", k))
		}
		seen[k] = true
	}
	destAxes := make([]axis.Axis, len(keep))
	for j, k := range keep {
		destAxes[j] = h.axes[k]
	}
	dest := New(destAxes...)
	idx := make([]int, len(h.axes))
	for _, v := range h.data {
		destFlat := 0
		for j, k := range keep {
			destFlat += idx[k] * dest.strides[j]
		}
		dest.data[destFlat] += v
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < h.extents[d] {
				break
			}
			idx[d] = 0
		}
	}
	return dest, nil
}

// Slice fixes one in-range bin of the given axis and drops that axis,
// keeping all other axes (and their flow slots) intact. Out-of-range
// arguments are programmer errors and panic.
func (h *Hist) Slice(ax, bin int) *Hist {
	if ax < 0 || ax >= len(h.axes) {
		panic(fmt.Sprintf("cube: slice axis %d out of range", ax))
	}
	if bin < 0 || bin >= h.axes[ax].NumBins() {
		panic(fmt.Sprintf("cube: slice bin %d out of range on axis %d", bin, ax))
	}
	destAxes := make([]axis.Axis, 0, len(h.axes)-1)
	for d, a := range h.axes {
		if d != ax {
			destAxes = append(destAxes, a)
		}
	}
	dest := New(destAxes...)
	fixed := (bin + h.offsets[ax]) * h.strides[ax]
	idx := make([]int, len(destAxes))
	for k := range dest.data {
		srcFlat := fixed
		j := 0
		for d := range h.axes {
			if d == ax {
				continue
			}
			srcFlat += idx[j] * h.strides[d]
			j++
		}
		dest.data[k] = h.data[srcFlat]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < dest.extents[d] {
				break
			}
			idx[d] = 0
		}
	}
	return dest
}

// Clone returns a deep copy.
func (h *Hist) Clone() *Hist {
	cp := New(h.axes...)
	copy(cp.data, h.data)
	return cp
}

// Equal reports whether both cubes have the same binning and the same bin
// contents. NaN contents compare equal to NaN.
func (h *Hist) Equal(other *Hist) bool {
	if other == nil || !axesEqual(h.axes, other.axes) {
		return false
	}
	return floats.Same(h.data, other.data)
}

func (h *Hist) compatible(other *Hist) error {
	if other == nil || !axesEqual(h.axes, other.axes) {
		return core.NewShapeMismatchError("cannot combine histograms with different binning")
	}
	return nil
}

// Add adds other's bin contents in place.
func (h *Hist) Add(other *Hist) error {
	if err := h.compatible(other); err != nil {
		return err
	}
	floats.Add(h.data, other.data)
	return nil
}

// Sub subtracts other's bin contents in place.
func (h *Hist) Sub(other *Hist) error {
	if err := h.compatible(other); err != nil {
		return err
	}
	floats.Sub(h.data, other.data)
	return nil
}

// Mul multiplies bin-wise in place.
func (h *Hist) Mul(other *Hist) error {
	if err := h.compatible(other); err != nil {
		return err
	}
	floats.Mul(h.data, other.data)
	return nil
}

// Div divides bin-wise in place. Division by empty bins yields NaN/Inf per
// floating-point semantics.
func (h *Hist) Div(other *Hist) error {
	if err := h.compatible(other); err != nil {
		return err
	}
	floats.Div(h.data, other.data)
	return nil
}

// AddScalar adds c to every bin, flow slots included.
func (h *Hist) AddScalar(c float64) { floats.AddConst(c, h.data) }

// SubScalar subtracts c from every bin.
func (h *Hist) SubScalar(c float64) { floats.AddConst(-c, h.data) }

// MulScalar scales every bin by c.
func (h *Hist) MulScalar(c float64) { floats.Scale(c, h.data) }

// DivScalar divides every bin by c.
func (h *Hist) DivScalar(c float64) { floats.Scale(1/c, h.data) }

// ReplaceNonFinite substitutes v for every NaN or infinite bin content,
// flow slots included.
func (h *Hist) ReplaceNonFinite(v float64) {
	for i, x := range h.data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			h.data[i] = v
		}
	}
}

func axesEqual(a, b []axis.Axis) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
