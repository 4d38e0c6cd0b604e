package bootstrap

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gohist/domain/core"
	"gohist/domain/cube"
)

// Mean returns the per-bin mean over the replica axis, with the reduced
// shape. Flow bins are included when flow is true.
func (h *Histogram) Mean(flow bool) ([]float64, []int) {
	return reduceReplicas(h.samples, flow, h.cfg.NaNAware, func(x []float64) float64 {
		return stat.Mean(x, nil)
	})
}

// Std returns the per-bin population standard deviation over the replica
// axis: the bootstrap estimate of each bin's statistical uncertainty.
func (h *Histogram) Std(flow bool) ([]float64, []int) {
	return reduceReplicas(h.samples, flow, h.cfg.NaNAware, func(x []float64) float64 {
		return stat.PopStdDev(x, nil)
	})
}

// Percentile returns the per-bin q-th percentile (0 < q <= 100) over the
// replica axis.
func (h *Histogram) Percentile(q float64, flow bool) ([]float64, []int, error) {
	if q <= 0 || q > 100 {
		return nil, nil, core.NewInvalidInputError("percentile must be in (0, 100]")
	}
	out, shape := reduceReplicas(h.samples, flow, h.cfg.NaNAware, percentileOf(q))
	return out, shape, nil
}

func percentileOf(q float64) func([]float64) float64 {
	return func(x []float64) float64 {
		v, err := stats.Percentile(x, q)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// reduceReplicas applies f to each bin's replica vector of c, whose last
// axis must be the replica axis. Replica vectors are contiguous in the
// row-major view, so no strided gather is needed.
func reduceReplicas(c *cube.Hist, flow, nanAware bool, f func([]float64) float64) ([]float64, []int) {
	data, shape := c.View(flow)
	r := shape[len(shape)-1]
	outShape := append([]int(nil), shape[:len(shape)-1]...)
	out := make([]float64, len(data)/r)
	var scratch []float64
	if nanAware {
		scratch = make([]float64, 0, r)
	}
	for i := range out {
		bin := data[i*r : (i+1)*r]
		if nanAware {
			scratch = scratch[:0]
			for _, v := range bin {
				if !math.IsNaN(v) {
					scratch = append(scratch, v)
				}
			}
			bin = scratch
		}
		out[i] = f(bin)
	}
	return out, outShape
}
