package linkage

import "fmt"

// UnitSystem labels the length unit the geometry is expressed in. It never
// changes solver arithmetic.
type UnitSystem int

const (
	SI UnitSystem = iota
	USC
)

// FeetPerMeter converts SI lengths to US customary feet.
const FeetPerMeter = 1 / 0.3048

func (u UnitSystem) String() string {
	if u == USC {
		return "usc"
	}
	return "si"
}

// Length is the label for lengths.
func (u UnitSystem) Length() string {
	if u == USC {
		return "ft"
	}
	return "m"
}

// Speed is the label for linear velocities.
func (u UnitSystem) Speed() string {
	return u.Length() + "/s"
}

// ParseUnits maps "si" and "usc" to a UnitSystem.
func ParseUnits(s string) (UnitSystem, error) {
	switch s {
	case "", "si", "SI":
		return SI, nil
	case "usc", "USC":
		return USC, nil
	}
	return SI, fmt.Errorf("%w: units %q", ErrInvalidArgument, s)
}

// Convert re-expresses a length-valued geometry from one unit system to
// another. Angles are unchanged.
func (g Geometry) Convert(from, to UnitSystem) Geometry {
	if from == to {
		return g
	}
	k := FeetPerMeter
	if from == USC {
		k = 1 / FeetPerMeter
	}
	g.R1 *= k
	g.R2 *= k
	g.R4 *= k
	g.R5 *= k
	g.R7 *= k
	return g
}
