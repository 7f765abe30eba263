package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/quickreturn/internal/linkage"
)

var ErrNoCandidate = errors.New("optim: no geometry in the grid closes over a full revolution")

// Objective scores a candidate configuration; lower is better. An error
// rejects the candidate.
type Objective func(ctx context.Context, cfg linkage.Config) (float64, error)

// GridSearch evaluates every combination of parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch searches params (r1, r2, r4, r5, r7, theta1) over ranges.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d parameters, %d ranges", linkage.ErrInvalidArgument, len(params), len(ranges))
	}
	var probe linkage.Config
	for i, p := range params {
		if err := apply(&probe, p, 0); err != nil {
			return nil, err
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("%w: empty range for %s", linkage.ErrInvalidArgument, p)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search returns the best parameter values and their score.
func (g *GridSearch) Search(ctx context.Context, base linkage.Config, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base linkage.Config,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base
		for k, v := range current {
			if err := apply(&cfg, k, v); err != nil {
				return err
			}
		}
		if err := cfg.Geometry.Validate(); err != nil {
			return nil
		}

		val, err := objective(ctx, cfg)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			linkage.Logger().Debug("candidate rejected", "params", current, "err", err)
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

func apply(cfg *linkage.Config, name string, v float64) error {
	switch name {
	case "r1":
		cfg.R1 = v
	case "r2":
		cfg.R2 = v
	case "r4":
		cfg.R4 = v
	case "r5":
		cfg.R5 = v
	case "r7":
		cfg.R7 = v
	case "theta1":
		cfg.Theta1 = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", linkage.ErrInvalidArgument, name)
	}
	return nil
}

// ParseRange reads "lo:hi:n" as n evenly spaced values, or a single number.
func ParseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: range %q", linkage.ErrInvalidArgument, s)
		}
		return []float64{v}, nil
	case 3:
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return nil, fmt.Errorf("%w: range %q", linkage.ErrInvalidArgument, s)
		}
		if n == 1 {
			return []float64{lo}, nil
		}
		out := make([]float64, n)
		for i := range out {
			out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: range %q (want lo:hi:n)", linkage.ErrInvalidArgument, s)
}
