// Package shape implements the pulse envelope catalog of spec.md §3: pure
// functions from relative time to a complex-valued envelope sample, plus
// composition shapes (FlatTop, Derivative, Union, Product) that build
// larger envelopes out of smaller ones. Every shape is centred on t=0 with
// support |t| <= Duration()/2.
//
// Shapes mirror the teacher's one-variant-per-file layout
// (core/types.go's Vertex/Edge, builder/impl_*.go's one-topology-per-file):
// each envelope family is its own small struct implementing Shape.
package shape

import (
	"errors"
	"fmt"
)

// Sentinel errors for shape parameter validation.
var (
	// ErrInvalidParams indicates a shape was latched with out-of-range
	// parameters (negative duration, edge > duration, ...).
	ErrInvalidParams = errors.New("shape: invalid parameters")

	// ErrNotLatched indicates Model or Duration was called before SetParams.
	ErrNotLatched = errors.New("shape: parameters not latched")
)

// Shape is a pulse envelope family. SetParams latches the family's
// parameters (amplitude, duration, ...) from the owning Pulse's
// fixed-parameter snapshot, taking deep copies of any nested child shapes
// to freeze their parameters at bind time, per spec.md §9 ("Deep copies").
// Model is pure given a latched Shape: the same relativeTime slice always
// produces the same envelope.
type Shape interface {
	// SetParams latches this shape's parameters from p, a flat
	// name->value snapshot of the owning Pulse's parameter map.
	SetParams(p map[string]float64) error

	// Duration returns the latched support width in ns. Valid only after
	// a successful SetParams.
	Duration() float64

	// Model evaluates the envelope at each relative-time sample. Samples
	// outside the shape's support are not passed in by the caller (the
	// Port computes the support mask before calling Model).
	Model(relativeTime []float64) []complex128

	// Clone returns a deep, independent copy of the shape, including any
	// nested children.
	Clone() Shape
}

func invalidParam(field string, value float64) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidParams, field, value)
}

func requireField(p map[string]float64, name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrInvalidParams, name)
	}

	return v, nil
}
