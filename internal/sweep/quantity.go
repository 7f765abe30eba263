package sweep

import (
	"fmt"
	"sort"

	"github.com/san-kum/quickreturn/internal/linkage"
)

// Quantity names a scalar that can be read out of a solution.
type Quantity string

const (
	SliderPosition Quantity = "slider_pos"
	SliderVelocity Quantity = "slider_vel"
	Theta4         Quantity = "theta4"
	Theta5         Quantity = "theta5"
	Omega4         Quantity = "omega4"
	Omega5         Quantity = "omega5"
	R3             Quantity = "r3"
	R3Dot          Quantity = "r3_dot"
)

var extractors = map[Quantity]func(linkage.Solution) float64{
	SliderPosition: func(s linkage.Solution) float64 { return s.R6 },
	SliderVelocity: func(s linkage.Solution) float64 { return s.R6Dot },
	Theta4:         func(s linkage.Solution) float64 { return s.Theta4 },
	Theta5:         func(s linkage.Solution) float64 { return s.Theta5 },
	Omega4:         func(s linkage.Solution) float64 { return s.Omega4 },
	Omega5:         func(s linkage.Solution) float64 { return s.Omega5 },
	R3:             func(s linkage.Solution) float64 { return s.R3 },
	R3Dot:          func(s linkage.Solution) float64 { return s.R3Dot },
}

// ParseQuantity maps a quantity name to a Quantity.
func ParseQuantity(name string) (Quantity, error) {
	q := Quantity(name)
	if _, ok := extractors[q]; !ok {
		return "", fmt.Errorf("unknown quantity: %s (available: %v)", name, Quantities())
	}
	return q, nil
}

// Quantities lists every known quantity in a stable order.
func Quantities() []Quantity {
	qs := make([]Quantity, 0, len(extractors))
	for q := range extractors {
		qs = append(qs, q)
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i] < qs[j] })
	return qs
}

// Of reads the quantity from a solution.
func (q Quantity) Of(s linkage.Solution) float64 {
	fn, ok := extractors[q]
	if !ok {
		return 0
	}
	return fn(s)
}

// Caption is a human-readable label with units.
func (q Quantity) Caption(u linkage.UnitSystem) string {
	switch q {
	case SliderPosition:
		return fmt.Sprintf("slider position (%s)", u.Length())
	case SliderVelocity:
		return fmt.Sprintf("slider velocity (%s)", u.Speed())
	case Theta4:
		return "theta 4 (rad)"
	case Theta5:
		return "theta 5 (rad)"
	case Omega4:
		return "omega 4 (rad/s)"
	case Omega5:
		return "omega 5 (rad/s)"
	case R3:
		return fmt.Sprintf("r3 (%s)", u.Length())
	case R3Dot:
		return fmt.Sprintf("r3 dot (%s)", u.Speed())
	}
	return string(q)
}
