package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooFewSamples = errors.New("analysis: not enough samples")

// Harmonic is one term a·cos(k·θ2 + φ) of a periodic series.
type Harmonic struct {
	Order     int
	Amplitude float64
	Phase     float64
}

// Harmonics decomposes one revolution of evenly spaced samples into its mean
// (order 0) and the first orders harmonics. Orders at or above the Nyquist
// limit are not returned.
func Harmonics(values []float64, orders int) ([]Harmonic, error) {
	n := len(values)
	if n < 4 {
		return nil, ErrTooFewSamples
	}
	if limit := (n - 1) / 2; orders > limit {
		orders = limit
	}

	spectrum := fft.FFTReal(values)
	out := make([]Harmonic, 0, orders+1)
	for k := 0; k <= orders; k++ {
		scale := 2 / float64(n)
		if k == 0 {
			scale = 1 / float64(n)
		}
		amp := cmplx.Abs(spectrum[k]) * scale
		phase := 0.0
		if amp > 1e-15 {
			phase = cmplx.Phase(spectrum[k])
		}
		out = append(out, Harmonic{Order: k, Amplitude: amp, Phase: phase})
	}
	return out, nil
}

// Distortion is the RMS of orders 2 and above relative to the fundamental.
// A crank-slider with an infinitely long coupler would give zero.
func Distortion(hs []Harmonic) float64 {
	var fundamental, rest float64
	for _, h := range hs {
		switch {
		case h.Order == 1:
			fundamental = h.Amplitude
		case h.Order > 1:
			rest += h.Amplitude * h.Amplitude
		}
	}
	if fundamental == 0 {
		return 0
	}
	return math.Sqrt(rest) / fundamental
}
