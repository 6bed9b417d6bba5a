package shape

// FlatTop wraps a child edge-shape and inserts a flat plateau of
// top_duration ns at the child's peak amplitude in the middle of the
// envelope. Total duration is child.Duration() + top_duration; the child's
// own envelope realizes both edges, mirrored around the plateau.
type FlatTop struct {
	child       Shape
	topDuration float64
	latched     bool
}

// NewFlatTop constructs a FlatTop shape wrapping child.
func NewFlatTop(child Shape, topDuration float64) *FlatTop {
	return &FlatTop{child: child, topDuration: topDuration}
}

// SetParams latches "top_duration" from p and recursively latches a fresh
// deep copy of the child shape (spec.md §9: nested shapes are
// deep-copied at bind time to freeze their parameters).
func (f *FlatTop) SetParams(p map[string]float64) error {
	top, err := requireField(p, "top_duration")
	if err != nil {
		return err
	}
	if top < 0 {
		return invalidParam("top_duration", top)
	}

	f.child = f.child.Clone()
	if err := f.child.SetParams(p); err != nil {
		return err
	}

	f.topDuration = top
	f.latched = true

	return nil
}

// Duration returns the child's edge duration plus the plateau width.
func (f *FlatTop) Duration() float64 {
	return f.child.Duration() + f.topDuration
}

// Model holds the child's peak value across the central plateau and
// defers to the child's own envelope, shifted outward by half the
// plateau, everywhere else.
func (f *FlatTop) Model(relativeTime []float64) []complex128 {
	half := f.topDuration / 2
	peak := f.child.Model([]float64{0})[0]

	out := make([]complex128, len(relativeTime))
	for i, t := range relativeTime {
		if t >= -half && t <= half {
			out[i] = peak
			continue
		}

		shifted := t - half
		if t < 0 {
			shifted = t + half
		}
		out[i] = f.child.Model([]float64{shifted})[0]
	}

	return out
}

// Clone returns an independent copy, including a fresh clone of the child.
func (f *FlatTop) Clone() Shape {
	return &FlatTop{child: f.child.Clone(), topDuration: f.topDuration, latched: f.latched}
}
