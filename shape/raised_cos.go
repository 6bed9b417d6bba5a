package shape

import "math"

// RaisedCos is the raised-cosine envelope
// 0.5*amplitude*(1 + cos(pi*t/(duration/2))), which is exactly 0 at both
// endpoints without needing a zero_end flag.
type RaisedCos struct {
	amplitude float64
	duration  float64
	latched   bool
}

// NewRaisedCos constructs a RaisedCos shape.
func NewRaisedCos(amplitude, duration float64) *RaisedCos {
	return &RaisedCos{amplitude: amplitude, duration: duration}
}

// SetParams latches "amplitude" and "duration" from p.
func (r *RaisedCos) SetParams(p map[string]float64) error {
	amp, err := requireField(p, "amplitude")
	if err != nil {
		return err
	}
	dur, err := requireField(p, "duration")
	if err != nil {
		return err
	}
	if dur <= 0 {
		return invalidParam("duration", dur)
	}

	r.amplitude, r.duration, r.latched = amp, dur, true

	return nil
}

// Duration returns the latched pulse duration.
func (r *RaisedCos) Duration() float64 { return r.duration }

// Model evaluates the raised-cosine envelope.
func (r *RaisedCos) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))
	half := r.duration / 2
	for i, t := range relativeTime {
		v := 0.5 * r.amplitude * (1 + math.Cos(math.Pi*t/half))
		out[i] = complex(v, 0)
	}

	return out
}

// Clone returns an independent copy.
func (r *RaisedCos) Clone() Shape {
	cp := *r

	return &cp
}
