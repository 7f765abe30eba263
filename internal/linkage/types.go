package linkage

import (
	"fmt"
	"math"
)

// Link identifies a body of the mechanism, numbered as in the loop equations.
type Link int

const (
	Link1 Link = iota + 1 // ground
	Link2                 // crank
	Link3                 // slider block on the rocker
	Link4                 // rocker
	Link5                 // coupler
	Link6                 // output slider
)

func (l Link) String() string {
	return fmt.Sprintf("link%d", int(l))
}

// Point identifies a named joint of the mechanism.
type Point int

const (
	PointA Point = iota + 1 // crank pin, carries slider 3
	PointB                  // rocker tip
	PointC                  // output slider pin
)

func (p Point) String() string {
	switch p {
	case PointA:
		return "A"
	case PointB:
		return "B"
	case PointC:
		return "C"
	}
	return fmt.Sprintf("point(%d)", int(p))
}

// Assembly selects one of the two closures of the coupler triangle.
type Assembly int

const (
	// Open places slider C ahead of B along the slider axis.
	Open Assembly = iota
	// Crossed mirrors the coupler about the perpendicular through B.
	Crossed
)

func (a Assembly) String() string {
	switch a {
	case Open:
		return "open"
	case Crossed:
		return "crossed"
	}
	return fmt.Sprintf("assembly(%d)", int(a))
}

// ParseAssembly maps "open" and "crossed" to an Assembly.
func ParseAssembly(s string) (Assembly, error) {
	switch s {
	case "", "open":
		return Open, nil
	case "crossed":
		return Crossed, nil
	}
	return Open, fmt.Errorf("%w: assembly %q", ErrInvalidArgument, s)
}

// Tolerance is the relative threshold used for degenerate and singular
// configurations. It is scaled by the longest link.
const Tolerance = 1e-12

// Geometry holds the fixed dimensions of the mechanism. Lengths are in any
// consistent unit; Theta1 is in radians.
type Geometry struct {
	R1, R2, R4, R5, R7 float64
	Theta1             float64
	Assembly           Assembly
}

// Validate reports ErrInvalidGeometry for non-positive or non-finite lengths.
func (g Geometry) Validate() error {
	lengths := []struct {
		name string
		v    float64
	}{
		{"r1", g.R1}, {"r2", g.R2}, {"r4", g.R4}, {"r5", g.R5}, {"r7", g.R7},
	}
	for _, l := range lengths {
		if !(l.v > 0) || math.IsInf(l.v, 0) {
			return fmt.Errorf("%w: %s=%g must be positive", ErrInvalidGeometry, l.name, l.v)
		}
	}
	if math.IsNaN(g.Theta1) || math.IsInf(g.Theta1, 0) {
		return fmt.Errorf("%w: theta1=%g", ErrInvalidGeometry, g.Theta1)
	}
	if g.Assembly != Open && g.Assembly != Crossed {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, g.Assembly)
	}
	return nil
}

// SliderAxis is the direction α of the output slider's line of action.
func (g Geometry) SliderAxis() float64 {
	return g.Theta1 - math.Pi/2
}

// scale is the characteristic length used to make tolerances unit-free.
func (g Geometry) scale() float64 {
	return math.Max(math.Max(math.Max(g.R1, g.R2), math.Max(g.R4, g.R5)), g.R7)
}

// Config is the full configuration state of a mechanism session.
type Config struct {
	Geometry
	Omega2  float64
	Samples int
	Units   UnitSystem
}

// DefaultSamples is the sweep resolution used when none is configured.
const DefaultSamples = 360

// Position is the solved configuration at one drive angle.
type Position struct {
	Theta2 float64
	Theta4 float64 // rocker and slider block 3
	Theta5 float64 // coupler
	R3     float64 // O4 to the crank pin along the rocker
	R6     float64 // slider displacement along the slider axis
}

// Point returns the location of a joint relative to O4.
func (p Position) Point(g Geometry, pt Point) (complex128, error) {
	switch pt {
	case PointA:
		return rect(p.R3, p.Theta4), nil
	case PointB:
		return rect(g.R4, p.Theta4), nil
	case PointC:
		return rect(g.R7, g.Theta1) + rect(p.R6, g.SliderAxis()), nil
	}
	return 0, unknownPoint(pt)
}

// Velocity is the solved first derivative at one drive angle.
type Velocity struct {
	Omega2 float64
	Omega4 float64
	Omega5 float64
	R3Dot  float64 // sliding speed of block 3 along the rocker
	R6Dot  float64 // output slider speed along its axis
	VA     complex128
	VB     complex128
	VC     complex128
}

// Solution pairs the position and velocity solved at the same drive angle.
type Solution struct {
	Position
	Velocity
}

func rect(r, theta float64) complex128 {
	s, c := math.Sincos(theta)
	return complex(r*c, r*s)
}
