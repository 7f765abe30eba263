// Package linkage solves the position and velocity kinematics of a
// crank-driven quick-return mechanism.
//
// The mechanism is described by two vector loops measured from the rocker
// pivot O4:
//
//	r1·e^{iθ1} + r2·e^{iθ2} = r3·e^{iθ4}
//	r4·e^{iθ4} + r5·e^{iθ5} = r7·e^{iθ1} + r6·e^{iα},  α = θ1 − π/2
//
// where θ2 is the drive (crank) angle, r3 the position of the slider block
// along the rocker and r6 the displacement of the output slider.
//
//   - [Geometry]: link lengths, reference angle and assembly branch
//   - [SolvePosition]: closed-form loop closure for θ4, θ5, r3, r6
//   - [SolveVelocity]: differentiated loops solved with Cramer's rule
//   - [Solve]: stateless position + velocity evaluation
//   - [Mechanism]: configuration owner with a cache keyed on the last angle
//
// # Example
//
//	m := linkage.NewMechanism()
//	_ = m.SetLinks(0.025, 0.010, 0.065, 0.030, 0.040, math.Pi/2)
//	_ = m.SetAngularVelocity(-15)
//	x, _ := m.SliderPosition(math.Pi / 6)
//
// # Thread Safety
//
// [Solve] and friends are pure. A [Mechanism] serialises every
// solve-then-read sequence behind a mutex, so one instance may be shared.
package linkage
