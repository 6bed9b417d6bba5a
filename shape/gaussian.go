package shape

import "math"

// Gaussian is a Gaussian envelope parameterized by full-width-at-half-
// maximum (fwhm). When zero_end is set, the envelope is rescaled so both
// endpoints (t = ±duration/2) evaluate to exactly 0.
type Gaussian struct {
	amplitude float64
	fwhm      float64
	duration  float64
	zeroEnd   bool
	latched   bool
}

// NewGaussian constructs a Gaussian shape.
func NewGaussian(amplitude, fwhm, duration float64, zeroEnd bool) *Gaussian {
	return &Gaussian{amplitude: amplitude, fwhm: fwhm, duration: duration, zeroEnd: zeroEnd}
}

// SetParams latches "amplitude", "fwhm", "duration" and "zero_end" (0/1)
// from p. zero_end defaults to false when absent.
func (g *Gaussian) SetParams(p map[string]float64) error {
	amp, err := requireField(p, "amplitude")
	if err != nil {
		return err
	}
	fwhm, err := requireField(p, "fwhm")
	if err != nil {
		return err
	}
	dur, err := requireField(p, "duration")
	if err != nil {
		return err
	}
	if dur < 0 {
		return invalidParam("duration", dur)
	}
	if fwhm <= 0 {
		return invalidParam("fwhm", fwhm)
	}

	g.amplitude, g.fwhm, g.duration = amp, fwhm, dur
	g.zeroEnd = p["zero_end"] != 0
	g.latched = true

	return nil
}

// Duration returns the latched pulse duration.
func (g *Gaussian) Duration() float64 { return g.duration }

// raw evaluates the unshifted, unrescaled Gaussian at t.
func (g *Gaussian) raw(t float64) float64 {
	sigma := g.fwhm / (2 * math.Sqrt(2*math.Ln2))

	return g.amplitude * math.Exp(-0.5*(t/sigma)*(t/sigma))
}

// Model evaluates the Gaussian, applying the zero-end shift and rescale
// when requested.
func (g *Gaussian) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))

	if !g.zeroEnd {
		for i, t := range relativeTime {
			out[i] = complex(g.raw(t), 0)
		}

		return out
	}

	edge := g.raw(g.duration / 2)
	center := g.raw(0)
	scale := g.amplitude
	if center != edge {
		scale = g.amplitude / (center - edge)
	}
	for i, t := range relativeTime {
		out[i] = complex((g.raw(t)-edge)*scale, 0)
	}

	return out
}

// Clone returns an independent copy.
func (g *Gaussian) Clone() Shape {
	cp := *g

	return &cp
}
