package linkage

import (
	"fmt"
	"math"
	"sync"
)

// Mechanism owns a configuration and caches the solution for the last drive
// angle it was asked about. Every accessor is a pure function of the
// configuration and the angle; the cache only saves recomputation.
type Mechanism struct {
	mu     sync.Mutex
	cfg    Config
	valid  bool
	key    uint64
	cached Solution
}

// NewMechanism returns a mechanism with no links set. Queries fail with
// ErrInvalidGeometry until SetLinks succeeds.
func NewMechanism() *Mechanism {
	return &Mechanism{cfg: Config{Samples: DefaultSamples}}
}

// NewMechanismFrom validates cfg and returns a mechanism that owns a copy.
func NewMechanismFrom(cfg Config) (*Mechanism, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if err := checkOmega(cfg.Omega2); err != nil {
		return nil, err
	}
	if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}
	if err := checkSamples(cfg.Samples); err != nil {
		return nil, err
	}
	return &Mechanism{cfg: cfg}, nil
}

// SetLinks stores the link lengths and the reference angle theta1 (radians).
// The assembly branch is kept.
func (m *Mechanism) SetLinks(r1, r2, r4, r5, r7, theta1 float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := Geometry{R1: r1, R2: r2, R4: r4, R5: r5, R7: r7, Theta1: theta1, Assembly: m.cfg.Assembly}
	if err := g.Validate(); err != nil {
		return err
	}
	m.cfg.Geometry = g
	m.invalidate()
	return nil
}

// SetAssembly selects the coupler branch.
func (m *Mechanism) SetAssembly(a Assembly) error {
	if a != Open && a != Crossed {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Assembly = a
	m.invalidate()
	return nil
}

// SetAngularVelocity stores the crank angular velocity in rad/s.
func (m *Mechanism) SetAngularVelocity(omega2 float64) error {
	if err := checkOmega(omega2); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Omega2 = omega2
	m.invalidate()
	return nil
}

// SetSampleCount stores the resolution used by sweeps and animations.
func (m *Mechanism) SetSampleCount(n int) error {
	if err := checkSamples(n); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Samples = n
	return nil
}

// SetUnits changes the unit label only.
func (m *Mechanism) SetUnits(u UnitSystem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Units = u
}

// Config returns a copy of the current configuration.
func (m *Mechanism) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Solution returns the full solution at theta2.
func (m *Mechanism) Solution(theta2 float64) (Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.solve(theta2)
}

// SliderPosition returns r6, the output slider displacement.
func (m *Mechanism) SliderPosition(theta2 float64) (float64, error) {
	s, err := m.Solution(theta2)
	return s.R6, err
}

// SliderVelocity returns ṙ6, the output slider velocity.
func (m *Mechanism) SliderVelocity(theta2 float64) (float64, error) {
	s, err := m.Solution(theta2)
	return s.R6Dot, err
}

// AngularPosition returns the angle of link l in radians.
func (m *Mechanism) AngularPosition(theta2 float64, l Link) (float64, error) {
	s, err := m.Solution(theta2)
	if err != nil {
		return 0, err
	}
	return s.AngularPosition(l)
}

// AngularVelocity returns the angular velocity of link l in rad/s.
func (m *Mechanism) AngularVelocity(theta2 float64, l Link) (float64, error) {
	s, err := m.Solution(theta2)
	if err != nil {
		return 0, err
	}
	return s.AngularVelocity(l)
}

// PointPosition returns the location of a joint relative to O4.
func (m *Mechanism) PointPosition(theta2 float64, pt Point) (complex128, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.solve(theta2)
	if err != nil {
		return 0, err
	}
	return s.Point(m.cfg.Geometry, pt)
}

// PointVelocity returns the absolute velocity of a joint.
func (m *Mechanism) PointVelocity(theta2 float64, pt Point) (complex128, error) {
	s, err := m.Solution(theta2)
	if err != nil {
		return 0, err
	}
	return s.PointVelocity(pt)
}

// solve must be called with mu held. The cache is replaced only on success.
func (m *Mechanism) solve(theta2 float64) (Solution, error) {
	key := math.Float64bits(theta2)
	if m.valid && m.key == key {
		return m.cached, nil
	}
	Logger().Debug("solving", "theta2", theta2)
	s, err := Solve(m.cfg.Geometry, theta2, m.cfg.Omega2)
	if err != nil {
		return Solution{}, err
	}
	m.cached, m.key, m.valid = s, key, true
	return s, nil
}

func (m *Mechanism) invalidate() {
	m.valid = false
	m.cached = Solution{}
}

func checkOmega(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: omega2=%g", ErrInvalidArgument, w)
	}
	return nil
}

func checkSamples(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: sample count %d", ErrInvalidArgument, n)
	}
	return nil
}
