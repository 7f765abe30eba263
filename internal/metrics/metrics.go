package metrics

import (
	"math"

	"github.com/san-kum/quickreturn/internal/linkage"
	"github.com/san-kum/quickreturn/internal/sweep"
)

// Metric accumulates a figure of merit over solved samples.
type Metric interface {
	Name() string
	Observe(s linkage.Solution)
	Value() float64
	Reset()
}

// Stroke tracks the extremes of the slider displacement.
type Stroke struct {
	samples    int
	min, max   float64
	thetaAtMin float64
	thetaAtMax float64
}

func NewStroke() *Stroke { return &Stroke{} }

func (s *Stroke) Name() string { return "stroke" }

func (s *Stroke) Observe(sol linkage.Solution) {
	if s.samples == 0 || sol.R6 < s.min {
		s.min, s.thetaAtMin = sol.R6, sol.Theta2
	}
	if s.samples == 0 || sol.R6 > s.max {
		s.max, s.thetaAtMax = sol.R6, sol.Theta2
	}
	s.samples++
}

// Value is the stroke length, max − min.
func (s *Stroke) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.max - s.min
}

func (s *Stroke) Min() float64 { return s.min }
func (s *Stroke) Max() float64 { return s.max }

// Angles returns the crank angles at which the minimum and maximum were seen.
func (s *Stroke) Angles() (atMin, atMax float64) { return s.thetaAtMin, s.thetaAtMax }

func (s *Stroke) Reset() { *s = Stroke{} }

// TimeRatio is the ratio of slow-stroke to fast-stroke crank travel, the
// defining figure of a quick-return mechanism. With a constant crank speed
// it equals the ratio of stroke durations.
type TimeRatio struct {
	stroke Stroke
	omega2 float64
}

func NewTimeRatio() *TimeRatio { return &TimeRatio{} }

func (t *TimeRatio) Name() string { return "time_ratio" }

func (t *TimeRatio) Observe(sol linkage.Solution) {
	t.stroke.Observe(sol)
	t.omega2 = sol.Omega2
}

func (t *TimeRatio) Value() float64 {
	forward, back := t.Travel()
	if forward == 0 || back == 0 {
		return 0
	}
	return math.Max(forward, back) / math.Min(forward, back)
}

// Travel returns the crank travel in radians from minimum to maximum slider
// displacement and back, following the direction of rotation.
func (t *TimeRatio) Travel() (forward, back float64) {
	if t.stroke.samples < 2 {
		return 0, 0
	}
	d := t.stroke.thetaAtMax - t.stroke.thetaAtMin
	if t.omega2 < 0 {
		d = -d
	}
	forward = math.Mod(d, 2*math.Pi)
	if forward < 0 {
		forward += 2 * math.Pi
	}
	return forward, 2*math.Pi - forward
}

func (t *TimeRatio) Reset() { *t = TimeRatio{} }

// PeakVelocity is the largest slider speed seen.
type PeakVelocity struct {
	peak float64
}

func NewPeakVelocity() *PeakVelocity { return &PeakVelocity{} }

func (p *PeakVelocity) Name() string { return "peak_velocity" }

func (p *PeakVelocity) Observe(sol linkage.Solution) {
	p.peak = math.Max(p.peak, math.Abs(sol.R6Dot))
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }

// MaxResidual is the worst loop-closure residual over position and velocity.
type MaxResidual struct {
	g     linkage.Geometry
	worst float64
}

func NewMaxResidual(g linkage.Geometry) *MaxResidual { return &MaxResidual{g: g} }

func (m *MaxResidual) Name() string { return "max_residual" }

func (m *MaxResidual) Observe(sol linkage.Solution) {
	pos, vel := sol.Residuals(m.g)
	m.worst = math.Max(m.worst, math.Max(pos, vel))
}

func (m *MaxResidual) Value() float64 { return m.worst }

func (m *MaxResidual) Reset() { m.worst = 0 }

// Default returns the metrics recorded for every sweep.
func Default(g linkage.Geometry) []Metric {
	return []Metric{NewStroke(), NewTimeRatio(), NewPeakVelocity(), NewMaxResidual(g)}
}

// Summary observes every sample of res and returns the metric values by name.
func Summary(res *sweep.Result, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Default(res.Config.Geometry)
	}
	out := make(map[string]float64, len(ms)+1)
	for _, m := range ms {
		m.Reset()
		for _, s := range res.Samples {
			m.Observe(s.Solution)
		}
		out[m.Name()] = m.Value()
	}
	out["skipped"] = float64(len(res.Skipped))
	return out
}
