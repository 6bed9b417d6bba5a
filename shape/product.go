package shape

import (
	"math"
	"math/cmplx"
)

// Product combines an amplitude child and a phase child into
// A(t) * exp(i*pi*P(t)), reading the real part of each child's envelope
// as its scalar A(t)/P(t) value.
type Product struct {
	amplitude Shape
	phase     Shape
	latched   bool
}

// NewProduct constructs a Product shape from an amplitude child and a
// phase child.
func NewProduct(amplitude, phase Shape) *Product {
	return &Product{amplitude: amplitude, phase: phase}
}

// SetParams recursively latches fresh deep copies of both children.
func (pr *Product) SetParams(p map[string]float64) error {
	pr.amplitude = pr.amplitude.Clone()
	if err := pr.amplitude.SetParams(p); err != nil {
		return err
	}

	pr.phase = pr.phase.Clone()
	if err := pr.phase.SetParams(p); err != nil {
		return err
	}

	pr.latched = true

	return nil
}

// Duration returns the longer of the two children's durations.
func (pr *Product) Duration() float64 {
	a, ph := pr.amplitude.Duration(), pr.phase.Duration()
	if ph > a {
		return ph
	}

	return a
}

// Model evaluates A(t) * exp(i*pi*P(t)) sample by sample.
func (pr *Product) Model(relativeTime []float64) []complex128 {
	a := pr.amplitude.Model(relativeTime)
	ph := pr.phase.Model(relativeTime)

	out := make([]complex128, len(relativeTime))
	for i := range relativeTime {
		amp := real(a[i])
		phase := real(ph[i])
		out[i] = complex(amp, 0) * cmplx.Exp(complex(0, math.Pi*phase))
	}

	return out
}

// Clone returns an independent copy, including fresh clones of both children.
func (pr *Product) Clone() Shape {
	return &Product{amplitude: pr.amplitude.Clone(), phase: pr.phase.Clone(), latched: pr.latched}
}
