package linkage

// Solve evaluates position and velocity at theta2 for a crank turning at
// omega2. It has no state; the result depends only on its arguments.
func Solve(g Geometry, theta2, omega2 float64) (Solution, error) {
	pos, err := SolvePosition(g, theta2)
	if err != nil {
		return Solution{}, err
	}
	vel, err := SolveVelocity(g, pos, omega2)
	if err != nil {
		return Solution{}, err
	}
	return Solution{Position: pos, Velocity: vel}, nil
}

// AngularPosition projects a link angle out of the solution.
func (s Solution) AngularPosition(l Link) (float64, error) {
	switch l {
	case Link2:
		return s.Theta2, nil
	case Link3, Link4:
		return s.Theta4, nil
	case Link5:
		return s.Theta5, nil
	}
	return 0, unknownLink(l)
}

// AngularVelocity projects a link angular velocity out of the solution.
func (s Solution) AngularVelocity(l Link) (float64, error) {
	switch l {
	case Link2:
		return s.Omega2, nil
	case Link3, Link4:
		return s.Omega4, nil
	case Link5:
		return s.Omega5, nil
	}
	return 0, unknownLink(l)
}

// PointVelocity returns the absolute velocity of a joint.
func (s Solution) PointVelocity(pt Point) (complex128, error) {
	switch pt {
	case PointA:
		return s.VA, nil
	case PointB:
		return s.VB, nil
	case PointC:
		return s.VC, nil
	}
	return 0, unknownPoint(pt)
}

// Residuals returns the loop-closure residuals of the position and of its
// time derivative.
func (s Solution) Residuals(g Geometry) (pos, vel float64) {
	return s.Position.Residual(g), s.Velocity.Residual(g, s.Position)
}
