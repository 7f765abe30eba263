// Package sweep evaluates a mechanism over one full crank revolution.
//
// Samples are evenly spaced in θ2 and solved independently with
// [linkage.Solve], so chunks run in parallel. Angles that fail to close are
// recorded in [Result.Skipped] and the sweep carries on.
//
//	res, err := sweep.Run(ctx, cfg, sweep.Options{})
//	angles, r6 := res.Series(sweep.SliderPosition)
package sweep
