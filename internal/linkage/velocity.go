package linkage

import (
	"math"
	"math/cmplx"
)

// SolveVelocity differentiates both loops at the solved position p.
//
// Loop 1 yields (ṙ3, ω4) forced by the crank; loop 2 then yields (ω5, ṙ6)
// forced by the rocker. Each is a 2x2 linear system in the unknowns.
func SolveVelocity(g Geometry, p Position, omega2 float64) (Velocity, error) {
	if err := g.Validate(); err != nil {
		return Velocity{}, err
	}
	eps := Tolerance * g.scale()

	s2, c2 := math.Sincos(p.Theta2)
	s4, c4 := math.Sincos(p.Theta4)
	s5, c5 := math.Sincos(p.Theta5)
	sa, ca := math.Sincos(g.SliderAxis())

	r3dot, omega4, ok := solve2x2(
		c4, -p.R3*s4,
		s4, p.R3*c4,
		-g.R2*omega2*s2, g.R2*omega2*c2,
		eps,
	)
	if !ok {
		return Velocity{}, singular(p.Theta2, 1, "slot length vanishes")
	}

	omega5, r6dot, ok := solve2x2(
		-g.R5*s5, -ca,
		g.R5*c5, -sa,
		g.R4*omega4*s4, -g.R4*omega4*c4,
		eps,
	)
	if !ok {
		return Velocity{}, singular(p.Theta2, 2, "coupler perpendicular to the slider axis")
	}

	return Velocity{
		Omega2: omega2,
		Omega4: omega4,
		Omega5: omega5,
		R3Dot:  r3dot,
		R6Dot:  r6dot,
		VA:     complex(0, omega2) * rect(g.R2, p.Theta2),
		VB:     complex(0, omega4) * rect(g.R4, p.Theta4),
		VC:     rect(r6dot, g.SliderAxis()),
	}, nil
}

// Residual returns the larger residual of the differentiated loop equations.
func (v Velocity) Residual(g Geometry, p Position) float64 {
	i := complex(0, 1)
	loop1 := i*complex(g.R2*v.Omega2, 0)*cmplx.Rect(1, p.Theta2) -
		complex(v.R3Dot, 0)*cmplx.Rect(1, p.Theta4) -
		i*complex(p.R3*v.Omega4, 0)*cmplx.Rect(1, p.Theta4)
	loop2 := i*complex(g.R4*v.Omega4, 0)*cmplx.Rect(1, p.Theta4) +
		i*complex(g.R5*v.Omega5, 0)*cmplx.Rect(1, p.Theta5) -
		complex(v.R6Dot, 0)*cmplx.Rect(1, g.SliderAxis())
	return math.Max(cmplx.Abs(loop1), cmplx.Abs(loop2))
}

// solve2x2 solves [a11 a12; a21 a22]·[x; y] = [b1; b2] by Cramer's rule.
// ok is false when |det| <= eps.
func solve2x2(a11, a12, a21, a22, b1, b2, eps float64) (x, y float64, ok bool) {
	det := a11*a22 - a12*a21
	if math.Abs(det) <= eps {
		return 0, 0, false
	}
	x = (b1*a22 - a12*b2) / det
	y = (a11*b2 - b1*a21) / det
	return x, y, true
}

func singular(theta2 float64, loop int, detail string) error {
	Logger().Debug("velocity system singular", "theta2", theta2, "loop", loop, "reason", detail)
	return &SolveError{Angle: theta2, Loop: loop, Detail: detail, Wrapped: ErrSingular}
}
