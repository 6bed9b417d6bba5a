package shape

import "math"

// lnTwoPlusSqrtThree is ln(2 + sqrt(3)), the standard hyperbolic-secant
// pulse shape constant relating fwhm to the sech argument scale.
var lnTwoPlusSqrtThree = math.Log(2 + math.Sqrt(3))

// HyperbolicSecant is the sech pulse amplitude/cosh(2*ln(2+sqrt(3))*t/fwhm),
// with the same zero-end shift-and-rescale rule as Gaussian.
type HyperbolicSecant struct {
	amplitude float64
	fwhm      float64
	duration  float64
	zeroEnd   bool
	latched   bool
}

// NewHyperbolicSecant constructs a HyperbolicSecant shape.
func NewHyperbolicSecant(amplitude, fwhm, duration float64, zeroEnd bool) *HyperbolicSecant {
	return &HyperbolicSecant{amplitude: amplitude, fwhm: fwhm, duration: duration, zeroEnd: zeroEnd}
}

// SetParams latches "amplitude", "fwhm", "duration" and "zero_end" from p.
func (h *HyperbolicSecant) SetParams(p map[string]float64) error {
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

	h.amplitude, h.fwhm, h.duration = amp, fwhm, dur
	h.zeroEnd = p["zero_end"] != 0
	h.latched = true

	return nil
}

// Duration returns the latched pulse duration.
func (h *HyperbolicSecant) Duration() float64 { return h.duration }

func (h *HyperbolicSecant) raw(t float64) float64 {
	return h.amplitude / math.Cosh(2*lnTwoPlusSqrtThree*t/h.fwhm)
}

// Model evaluates the sech envelope, applying the zero-end shift and
// rescale when requested.
func (h *HyperbolicSecant) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))

	if !h.zeroEnd {
		for i, t := range relativeTime {
			out[i] = complex(h.raw(t), 0)
		}

		return out
	}

	edge := h.raw(h.duration / 2)
	center := h.raw(0)
	scale := h.amplitude
	if center != edge {
		scale = h.amplitude / (center - edge)
	}
	for i, t := range relativeTime {
		out[i] = complex((h.raw(t)-edge)*scale, 0)
	}

	return out
}

// Clone returns an independent copy.
func (h *HyperbolicSecant) Clone() Shape {
	cp := *h

	return &cp
}
