package shape

// Union pointwise-sums its children's envelopes over the same sample
// grid. Its duration is the maximum of its children's durations.
type Union struct {
	children []Shape
	latched  bool
}

// NewUnion constructs a Union over the given children.
func NewUnion(children ...Shape) *Union {
	cp := make([]Shape, len(children))
	copy(cp, children)

	return &Union{children: cp}
}

// SetParams recursively latches a fresh deep copy of every child.
func (u *Union) SetParams(p map[string]float64) error {
	for i, c := range u.children {
		cc := c.Clone()
		if err := cc.SetParams(p); err != nil {
			return err
		}
		u.children[i] = cc
	}

	u.latched = true

	return nil
}

// Duration returns the maximum child duration, or 0 if there are no children.
func (u *Union) Duration() float64 {
	var max float64
	for _, c := range u.children {
		if d := c.Duration(); d > max {
			max = d
		}
	}

	return max
}

// Model sums every child's envelope. All children share t=0 as their
// common centre, so each is simply evaluated at relativeTime and added
// in, skipping samples that fall outside that child's own support.
func (u *Union) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))
	for _, c := range u.children {
		half := c.Duration() / 2
		for i, t := range relativeTime {
			if t < -half || t > half {
				continue
			}
			out[i] += c.Model([]float64{t})[0]
		}
	}

	return out
}

// Clone returns an independent copy, including fresh clones of every child.
func (u *Union) Clone() Shape {
	cp := make([]Shape, len(u.children))
	for i, c := range u.children {
		cp[i] = c.Clone()
	}

	return &Union{children: cp, latched: u.latched}
}
