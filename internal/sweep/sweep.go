package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/quickreturn/internal/linkage"
)

// ErrCanceled indicates the sweep was interrupted by its context.
var ErrCanceled = errors.New("sweep: canceled by context")

const minChunk = 32

type Options struct {
	// Start is the first drive angle in radians.
	Start float64
	// Workers bounds the parallelism; zero uses GOMAXPROCS.
	Workers int
}

// Sample is one solved drive angle.
type Sample struct {
	Index int
	linkage.Solution
}

// Failure is a drive angle the solver rejected.
type Failure struct {
	Index int
	Angle float64
	Err   error
}

type Result struct {
	Config  linkage.Config
	Samples []Sample
	Skipped []Failure
}

// Angles returns the drive angles of a sweep of n samples from start.
func Angles(start float64, n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = start + 2*math.Pi*float64(i)/float64(n)
	}
	return angles
}

// Run solves cfg.Samples drive angles over one revolution.
func Run(ctx context.Context, cfg linkage.Config, opts Options) (*Result, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("%w: sample count %d", linkage.ErrInvalidArgument, cfg.Samples)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	angles := Angles(opts.Start, cfg.Samples)
	sols := make([]linkage.Solution, len(angles))
	errs := make([]error, len(angles))

	ParallelFor(len(angles), minChunk, workers, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				errs[i] = ErrCanceled
				continue
			}
			sols[i], errs[i] = linkage.Solve(cfg.Geometry, angles[i], cfg.Omega2)
		}
	})

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
	}

	res := &Result{
		Config:  cfg,
		Samples: make([]Sample, 0, len(angles)),
	}
	for i := range angles {
		if errs[i] != nil {
			res.Skipped = append(res.Skipped, Failure{Index: i, Angle: angles[i], Err: errs[i]})
			continue
		}
		res.Samples = append(res.Samples, Sample{Index: i, Solution: sols[i]})
	}
	if len(res.Skipped) > 0 {
		linkage.Logger().Debug("sweep skipped angles", "count", len(res.Skipped), "samples", len(angles))
	}
	return res, nil
}

// Series returns the drive angles and the values of q for every solved sample.
func (r *Result) Series(q Quantity) (angles, values []float64) {
	angles = make([]float64, len(r.Samples))
	values = make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		angles[i] = s.Theta2
		values[i] = q.Of(s.Solution)
	}
	return angles, values
}
