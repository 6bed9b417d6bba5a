package shape

// Adjoint horizontally concatenates its children: each child is evaluated
// centred within its own sub-interval of the overall envelope, in order,
// so the whole envelope's duration is the sum of its children's durations.
// It is the shape-level counterpart to instr.Adjoint's sequential
// instruction composition (a different composite over a different axis).
type Adjoint struct {
	children []Shape
	latched  bool
}

// NewAdjoint constructs an Adjoint over the given children, in order.
func NewAdjoint(children ...Shape) *Adjoint {
	cp := make([]Shape, len(children))
	copy(cp, children)

	return &Adjoint{children: cp}
}

// SetParams recursively latches a fresh deep copy of every child.
func (a *Adjoint) SetParams(p map[string]float64) error {
	for i, c := range a.children {
		cc := c.Clone()
		if err := cc.SetParams(p); err != nil {
			return err
		}
		a.children[i] = cc
	}

	a.latched = true

	return nil
}

// Duration returns the sum of every child's duration.
func (a *Adjoint) Duration() float64 {
	var total float64
	for _, c := range a.children {
		total += c.Duration()
	}

	return total
}

// Model evaluates each child over its own sub-interval of the overall
// span, centred on that sub-interval's own midpoint, and concatenates the
// results in order.
func (a *Adjoint) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))
	cursor := -a.Duration() / 2
	for _, c := range a.children {
		d := c.Duration()
		for i, t := range relativeTime {
			if t < cursor || t > cursor+d {
				continue
			}
			out[i] = c.Model([]float64{t - cursor - d/2})[0]
		}
		cursor += d
	}

	return out
}

// Clone returns an independent copy, including fresh clones of every child.
func (a *Adjoint) Clone() Shape {
	cp := make([]Shape, len(a.children))
	for i, c := range a.children {
		cp[i] = c.Clone()
	}

	return &Adjoint{children: cp, latched: a.latched}
}
