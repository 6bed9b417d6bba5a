package shape

// Square is a constant-amplitude envelope over its full support.
type Square struct {
	amplitude float64
	duration  float64
	latched   bool
}

// NewSquare constructs a Square shape with the given amplitude and duration.
func NewSquare(amplitude, duration float64) *Square {
	return &Square{amplitude: amplitude, duration: duration}
}

// SetParams latches "amplitude" and "duration" from p.
func (s *Square) SetParams(p map[string]float64) error {
	amp, err := requireField(p, "amplitude")
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

	s.amplitude, s.duration, s.latched = amp, dur, true

	return nil
}

// Duration returns the latched pulse duration.
func (s *Square) Duration() float64 { return s.duration }

// Model returns s.amplitude for every sample.
func (s *Square) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))
	for i := range out {
		out[i] = complex(s.amplitude, 0)
	}

	return out
}

// Clone returns an independent copy.
func (s *Square) Clone() Shape {
	cp := *s

	return &cp
}
