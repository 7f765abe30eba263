package linkage

import (
	"fmt"
	"math"
	"math/cmplx"
)

// SolvePosition closes both vector loops at drive angle theta2.
//
// Loop 1 gives the slot length r3 by the law of cosines and the rocker angle
// θ4 by atan2. An oscillating rocker (r2 < r1) has θ4 unwrapped around θ1; a
// fully rotating one (r2 > r1) follows the crank, unwrapped around θ2, so θ4
// stays continuous in θ2 either way. Loop 2 is rotated into the slider frame where its imaginary
// part fixes sin φ5; the assembly branch picks the sign of cos φ5.
func SolvePosition(g Geometry, theta2 float64) (Position, error) {
	if err := g.Validate(); err != nil {
		return Position{}, err
	}
	if math.IsNaN(theta2) || math.IsInf(theta2, 0) {
		return Position{}, fmt.Errorf("%w: theta2=%g", ErrInvalidArgument, theta2)
	}
	eps := Tolerance * g.scale()

	r3sq := g.R1*g.R1 + g.R2*g.R2 + 2*g.R1*g.R2*math.Cos(theta2-g.Theta1)
	r3 := math.Sqrt(math.Max(r3sq, 0))
	if r3 <= eps {
		return Position{}, unreachable(theta2, 1, "crank pin coincides with the rocker pivot")
	}
	if r3 > g.R4 {
		return Position{}, unreachable(theta2, 1, "slider block runs off the rocker")
	}

	o2a := rect(g.R1, g.Theta1) + rect(g.R2, theta2)
	center := g.Theta1
	if g.R2 > g.R1 {
		center = theta2
	}
	theta4 := center + math.Remainder(cmplx.Phase(o2a)-center, 2*math.Pi)

	alpha := g.SliderAxis()
	phi4 := theta4 - alpha
	s := (g.R7 - g.R4*math.Sin(phi4)) / g.R5
	if s < -1 || s > 1 {
		return Position{}, unreachable(theta2, 2, "coupler cannot reach the slider line")
	}
	c := math.Sqrt(1 - s*s)

	phi5 := math.Atan2(s, c)
	if g.Assembly == Crossed {
		phi5 = math.Pi - phi5
	}

	return Position{
		Theta2: theta2,
		Theta4: theta4,
		Theta5: phi5 + alpha,
		R3:     r3,
		R6:     g.R4*math.Cos(phi4) + g.R5*math.Cos(phi5),
	}, nil
}

// Residual returns the larger of the two loop-closure residual magnitudes.
func (p Position) Residual(g Geometry) float64 {
	loop1 := rect(g.R1, g.Theta1) + rect(g.R2, p.Theta2) - rect(p.R3, p.Theta4)
	loop2 := rect(g.R4, p.Theta4) + rect(g.R5, p.Theta5) - rect(g.R7, g.Theta1) - rect(p.R6, g.SliderAxis())
	return math.Max(cmplx.Abs(loop1), cmplx.Abs(loop2))
}

func unreachable(theta2 float64, loop int, detail string) error {
	Logger().Debug("loop closure failed", "theta2", theta2, "loop", loop, "reason", detail)
	return &SolveError{Angle: theta2, Loop: loop, Detail: detail, Wrapped: ErrUnreachable}
}
