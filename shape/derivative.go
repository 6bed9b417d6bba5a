package shape

// Derivative wraps a child shape and emits its numerical gradient
// (central differences, one-sided at the ends) over the same sample grid.
type Derivative struct {
	child   Shape
	latched bool
}

// NewDerivative constructs a Derivative shape wrapping child.
func NewDerivative(child Shape) *Derivative {
	return &Derivative{child: child}
}

// SetParams recursively latches a fresh deep copy of the child shape; the
// Derivative itself has no parameters of its own.
func (d *Derivative) SetParams(p map[string]float64) error {
	d.child = d.child.Clone()
	if err := d.child.SetParams(p); err != nil {
		return err
	}

	d.latched = true

	return nil
}

// Duration matches the child's duration.
func (d *Derivative) Duration() float64 { return d.child.Duration() }

// Model computes dEnvelope/dt of the child's waveform over relativeTime,
// assuming a uniform sample step (the Port's DAC_STEP grid).
func (d *Derivative) Model(relativeTime []float64) []complex128 {
	env := d.child.Model(relativeTime)
	out := make([]complex128, len(env))
	n := len(env)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = 0

		return out
	}

	step := relativeTime[1] - relativeTime[0]
	if step == 0 {
		return out
	}

	out[0] = (env[1] - env[0]) / complex(step, 0)
	out[n-1] = (env[n-1] - env[n-2]) / complex(step, 0)
	for i := 1; i < n-1; i++ {
		dt := relativeTime[i+1] - relativeTime[i-1]
		out[i] = (env[i+1] - env[i-1]) / complex(dt, 0)
	}

	return out
}

// Clone returns an independent copy, including a fresh clone of the child.
func (d *Derivative) Clone() Shape {
	return &Derivative{child: d.child.Clone(), latched: d.latched}
}
