package bootstrap

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gohist/domain/axis"
	"gohist/domain/core"
	"gohist/internal"
)

// Shard is one partition of a dataset for a map-reduce fill.
type Shard struct {
	Coords [][]float64
	Weight []float64

	// Seed carries the per-record seeds. Sharded fills require them:
	// they are what keeps resampling draws consistent for a logical
	// record regardless of which shard it lands in.
	Seed []uint64
}

// FillSharded fills one histogram per shard concurrently and merges the
// results, equivalent to a single sequential fill of the concatenated
// shards with the same seeds. Every non-empty shard must carry per-record
// seeds; without them the shards' independent streams would produce
// statistically inconsistent resampling weights.
func FillSharded(ctx context.Context, axes []axis.Axis, cfg Config, shards []Shard) (*Histogram, error) {
	logger := internal.NewDefaultLogger()
	for _, shard := range shards {
		if len(shard.Coords) > 0 && len(shard.Coords[0]) > 0 && shard.Seed == nil {
			return nil, core.NewInvalidInputError("sharded fills require per-record seeds")
		}
	}
	results := make([]*Histogram, len(shards))
	g, ctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			c := cfg
			if c.RNG != nil {
				c.RNG = cfg.RNG.Clone()
			}
			h, err := New(axes, c)
			if err != nil {
				return err
			}
			if err := h.Fill(shard.Coords, shard.Weight, shard.Seed); err != nil {
				return err
			}
			results[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return New(axes, cfg)
	}
	merged := results[0]
	for _, h := range results[1:] {
		var err error
		merged, err = merged.Add(h)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("merged %d shards into one histogram", len(shards))
	return merged, nil
}
