package frame

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CombineSizes runs Combine once per target size, at most
// WithConcurrency sizes at a time. Results are in the order of targets.
// It stops starting new sizes once ctx is done and returns ctx's error.
func CombineSizes(ctx context.Context, parts PartSet, ref SizeParameters, targets []SizeParameters, opts ...Option) ([]*Result, error) {
	o := newOptions(opts)
	results := make([]*Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Combine(parts, target, ref, opts...)
			o.log().Debug("frame: size combined", "index", i, "bridge", target.BridgeSize,
				"width", target.GlasWidth, "height", target.GlasHeight)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
