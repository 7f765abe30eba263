package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/quickreturn/internal/linkage"
	"github.com/san-kum/quickreturn/internal/metrics"
	"github.com/san-kum/quickreturn/internal/sweep"
)

// Target describes the desired output motion. Zero fields are ignored.
type Target struct {
	Stroke    float64
	TimeRatio float64
}

// Objective sweeps a candidate and returns the summed squared relative error
// against the target. Candidates that fail anywhere on the revolution are
// rejected.
func (t Target) Objective() Objective {
	return func(ctx context.Context, cfg linkage.Config) (float64, error) {
		res, err := sweep.Run(ctx, cfg, sweep.Options{Workers: 1})
		if err != nil {
			return 0, err
		}
		if len(res.Skipped) > 0 {
			return 0, fmt.Errorf("%d of %d samples do not close: %w", len(res.Skipped), cfg.Samples, res.Skipped[0].Err)
		}

		stroke, ratio := metrics.NewStroke(), metrics.NewTimeRatio()
		metrics.Summary(res, stroke, ratio)

		score := 0.0
		if t.Stroke != 0 {
			score += math.Pow((stroke.Value()-t.Stroke)/t.Stroke, 2)
		}
		if t.TimeRatio != 0 {
			score += math.Pow((ratio.Value()-t.TimeRatio)/t.TimeRatio, 2)
		}
		return score, nil
	}
}
