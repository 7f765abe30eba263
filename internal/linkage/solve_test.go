package linkage

import (
	"errors"
	"math"
	"testing"
)

func referenceGeometry() Geometry {
	return Geometry{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.030, R7: 0.040, Theta1: math.Pi / 2}
}

const referenceOmega = -15.0

func TestSolveReference(t *testing.T) {
	s, err := Solve(referenceGeometry(), math.Pi/6, referenceOmega)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"r3", s.R3, 0.031224989991991994},
		{"theta4", s.Theta4, 1.289761425292083},
		{"theta5", s.Theta5, -0.8455448967469371},
		{"r6", s.R6, 0.03792746488570564},
		{"r3dot", s.R3Dot, -0.10400628679223048},
		{"omega4", s.Omega4, -3.4615384615384603},
		{"omega5", s.Omega5, 3.135913877785768},
		{"r6dot", s.R6Dot, 0.28657421142465567},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.expected) > 1e-9 {
			t.Errorf("%s: expected %.12f, got %.12f", tt.name, tt.expected, tt.got)
		}
	}
}

func TestSolveCrossedReference(t *testing.T) {
	g := referenceGeometry()
	g.Assembly = Crossed

	s, err := Solve(g, math.Pi/6, referenceOmega)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(s.Theta5-3.98713755033673) > 1e-9 {
		t.Errorf("expected theta5 3.987138, got %f", s.Theta5)
	}
	if math.Abs(s.R6-(-0.0018719521310657586)) > 1e-9 {
		t.Errorf("expected r6 -0.001872, got %f", s.R6)
	}
	if math.Abs(s.Omega5-(-3.1359138777857676)) > 1e-9 {
		t.Errorf("expected omega5 -3.135914, got %f", s.Omega5)
	}
}

func TestClosureResidual(t *testing.T) {
	for _, asm := range []Assembly{Open, Crossed} {
		g := referenceGeometry()
		g.Assembly = asm
		for i := 0; i < 360; i++ {
			theta2 := float64(i) * math.Pi / 180
			s, err := Solve(g, theta2, referenceOmega)
			if err != nil {
				t.Fatalf("%v: solve at %d deg failed: %v", asm, i, err)
			}
			pos, vel := s.Residuals(g)
			if pos > 1e-9 {
				t.Errorf("%v: position residual %.3e at %d deg", asm, pos, i)
			}
			if vel > 1e-9 {
				t.Errorf("%v: velocity residual %.3e at %d deg", asm, vel, i)
			}
		}
	}
}

func TestVelocityMatchesCentralDifference(t *testing.T) {
	g := referenceGeometry()
	const h = 1e-6

	for _, deg := range []float64{0, 30, 75, 140, 210, 300} {
		theta2 := deg * math.Pi / 180
		s, err := Solve(g, theta2, referenceOmega)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		hi, err := SolvePosition(g, theta2+h)
		if err != nil {
			t.Fatal(err)
		}
		lo, err := SolvePosition(g, theta2-h)
		if err != nil {
			t.Fatal(err)
		}

		checks := []struct {
			name     string
			numeric  float64
			analytic float64
		}{
			{"r6dot", (hi.R6 - lo.R6) / (2 * h) * referenceOmega, s.R6Dot},
			{"r3dot", (hi.R3 - lo.R3) / (2 * h) * referenceOmega, s.R3Dot},
			{"omega4", (hi.Theta4 - lo.Theta4) / (2 * h) * referenceOmega, s.Omega4},
			{"omega5", (hi.Theta5 - lo.Theta5) / (2 * h) * referenceOmega, s.Omega5},
		}
		for _, c := range checks {
			if math.Abs(c.numeric-c.analytic) > 1e-5*math.Max(1, math.Abs(c.analytic)) {
				t.Errorf("%s at %.0f deg: numeric %.9f, analytic %.9f", c.name, deg, c.numeric, c.analytic)
			}
		}
	}
}

func TestPeriodicity(t *testing.T) {
	g := referenceGeometry()
	for _, deg := range []float64{-45, 0, 30, 123, 271} {
		theta2 := deg * math.Pi / 180
		a, err := SolvePosition(g, theta2)
		if err != nil {
			t.Fatal(err)
		}
		b, err := SolvePosition(g, theta2+2*math.Pi)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(a.R6-b.R6) > 1e-12 {
			t.Errorf("r6 not periodic at %.0f deg: %.15f vs %.15f", deg, a.R6, b.R6)
		}
		if math.Abs(a.Theta4-b.Theta4) > 1e-12 || math.Abs(a.Theta5-b.Theta5) > 1e-12 {
			t.Errorf("angles not periodic at %.0f deg", deg)
		}
	}
}

func TestBranchContinuity(t *testing.T) {
	for _, asm := range []Assembly{Open, Crossed} {
		g := referenceGeometry()
		g.Assembly = asm

		const n = 3600
		prev, err := SolvePosition(g, 0)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= n; i++ {
			p, err := SolvePosition(g, 2*math.Pi*float64(i)/n)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(p.Theta4-prev.Theta4) > 0.01 || math.Abs(p.Theta5-prev.Theta5) > 0.01 {
				t.Fatalf("%v: jump at sample %d: theta4 %f->%f theta5 %f->%f",
					asm, i, prev.Theta4, p.Theta4, prev.Theta5, p.Theta5)
			}
			prev = p
		}
	}
}

func TestBranchContinuityRotatingRocker(t *testing.T) {
	// crank longer than the ground link: the rocker turns a full revolution
	for _, asm := range []Assembly{Open, Crossed} {
		g := Geometry{R1: 0.010, R2: 0.025, R4: 0.065, R5: 0.12, R7: 0.040, Theta1: math.Pi / 2, Assembly: asm}

		const n = 3600
		prev, err := SolvePosition(g, 0)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= n; i++ {
			theta2 := 2 * math.Pi * float64(i) / n
			p, err := SolvePosition(g, theta2)
			if err != nil {
				t.Fatalf("%v: sample %d: %v", asm, i, err)
			}
			if math.Abs(p.Theta4-prev.Theta4) > 0.01 || math.Abs(p.Theta5-prev.Theta5) > 0.01 {
				t.Fatalf("%v: jump at sample %d: theta4 %f->%f theta5 %f->%f",
					asm, i, prev.Theta4, p.Theta4, prev.Theta5, p.Theta5)
			}
			if r := p.Residual(g); r > 1e-9 {
				t.Fatalf("%v: sample %d: residual %g", asm, i, r)
			}
			prev = p
		}

		first, _ := SolvePosition(g, 0)
		if d := prev.Theta4 - first.Theta4; math.Abs(d-2*math.Pi) > 1e-9 {
			t.Errorf("%v: rocker advanced %f rad over one crank turn, want 2pi", asm, d)
		}
	}
}

func TestUnreachableConfiguration(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		deg  float64
		loop int
	}{
		{
			name: "coupler too short",
			g:    Geometry{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.010, R7: 0.040, Theta1: math.Pi / 2},
			deg:  30,
			loop: 2,
		},
		{
			name: "block off the rocker",
			g:    Geometry{R1: 0.050, R2: 0.030, R4: 0.060, R5: 0.030, R7: 0.040, Theta1: math.Pi / 2},
			deg:  90,
			loop: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta2 := tt.deg * math.Pi / 180
			_, err := Solve(tt.g, theta2, referenceOmega)
			if !errors.Is(err, ErrUnreachable) {
				t.Fatalf("expected ErrUnreachable, got %v", err)
			}
			var se *SolveError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SolveError, got %T", err)
			}
			if se.Angle != theta2 {
				t.Errorf("expected angle %f, got %f", theta2, se.Angle)
			}
			if se.Loop != tt.loop {
				t.Errorf("expected loop %d, got %d", tt.loop, se.Loop)
			}
		})
	}
}

func TestSingularVelocity(t *testing.T) {
	g := referenceGeometry()

	deadPoint := Position{
		Theta2: 0.3,
		Theta4: math.Pi / 2,
		Theta5: g.SliderAxis() + math.Pi/2,
		R3:     0.03,
	}
	if _, err := SolveVelocity(g, deadPoint, referenceOmega); !errors.Is(err, ErrSingular) {
		t.Errorf("expected ErrSingular for perpendicular coupler, got %v", err)
	}

	collapsed := Position{Theta2: 0.3, Theta4: 1.0, Theta5: -0.8}
	if _, err := SolveVelocity(g, collapsed, referenceOmega); !errors.Is(err, ErrSingular) {
		t.Errorf("expected ErrSingular for zero slot length, got %v", err)
	}
}

func TestSolve2x2(t *testing.T) {
	x, y, ok := solve2x2(2, 1, 1, 3, 5, 10, 1e-12)
	if !ok {
		t.Fatal("expected solvable system")
	}
	if math.Abs(x-1) > 1e-12 || math.Abs(y-3) > 1e-12 {
		t.Errorf("expected (1, 3), got (%f, %f)", x, y)
	}

	if _, _, ok := solve2x2(1, 2, 2, 4, 1, 1, 1e-12); ok {
		t.Error("expected singular system to be rejected")
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(g *Geometry)
	}{
		{"zero r1", func(g *Geometry) { g.R1 = 0 }},
		{"negative r2", func(g *Geometry) { g.R2 = -0.01 }},
		{"nan r4", func(g *Geometry) { g.R4 = math.NaN() }},
		{"inf r5", func(g *Geometry) { g.R5 = math.Inf(1) }},
		{"zero r7", func(g *Geometry) { g.R7 = 0 }},
		{"nan theta1", func(g *Geometry) { g.Theta1 = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := referenceGeometry()
			tt.mut(&g)
			if err := g.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}

	if err := referenceGeometry().Validate(); err != nil {
		t.Errorf("reference geometry rejected: %v", err)
	}
}

func TestSolvePositionRejectsNaNAngle(t *testing.T) {
	if _, err := SolvePosition(referenceGeometry(), math.NaN()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPointsAndVelocities(t *testing.T) {
	g := referenceGeometry()
	s, err := Solve(g, math.Pi/6, referenceOmega)
	if err != nil {
		t.Fatal(err)
	}

	a, err := s.Point(g, PointA)
	if err != nil {
		t.Fatal(err)
	}
	o2a := rect(g.R1, g.Theta1) + rect(g.R2, s.Theta2)
	if cmplxDist(a, o2a) > 1e-12 {
		t.Errorf("point A %v does not match crank pin %v", a, o2a)
	}

	c, err := s.Point(g, PointC)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(imag(c)-g.R7) > 1e-12 {
		t.Errorf("slider pin off its line: y=%f", imag(c))
	}

	vc, err := s.PointVelocity(PointC)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(real(vc)-s.R6Dot) > 1e-12 || math.Abs(imag(vc)) > 1e-12 {
		t.Errorf("slider velocity %v does not match r6dot %f", vc, s.R6Dot)
	}

	if _, err := s.Point(g, Point(9)); !errors.Is(err, ErrUnknownLink) {
		t.Errorf("expected ErrUnknownLink, got %v", err)
	}
}

func TestGeometryConvert(t *testing.T) {
	g := referenceGeometry()
	usc := g.Convert(SI, USC)
	if math.Abs(usc.R1-0.025/0.3048) > 1e-12 {
		t.Errorf("expected r1 in feet, got %f", usc.R1)
	}
	back := usc.Convert(USC, SI)
	if math.Abs(back.R4-g.R4) > 1e-15 {
		t.Errorf("round trip changed r4: %f", back.R4)
	}
	if usc.Theta1 != g.Theta1 {
		t.Error("convert must not touch angles")
	}

	// Scaling every length leaves angles unchanged.
	a, err := Solve(g, 1.1, referenceOmega)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Solve(usc, 1.1, referenceOmega)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Theta5-b.Theta5) > 1e-12 || math.Abs(a.Omega4-b.Omega4) > 1e-12 {
		t.Error("unit conversion changed angular results")
	}
}

func cmplxDist(a, b complex128) float64 {
	return math.Hypot(real(a)-real(b), imag(a)-imag(b))
}
