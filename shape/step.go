package shape

// Step ramps linearly from 0 to amplitude over [-edge/2, +edge/2],
// centred on t=0 regardless of duration: it is 0 before that window and
// holds amplitude after it. It is most often used as the edge template for
// FlatTop.
type Step struct {
	amplitude float64
	edge      float64
	duration  float64
	latched   bool
}

// NewStep constructs a Step shape. edge must not exceed duration (spec.md
// §9 open question 1: the spec-level choice is to enforce this and fail
// otherwise).
func NewStep(amplitude, edge, duration float64) *Step {
	return &Step{amplitude: amplitude, edge: edge, duration: duration}
}

// SetParams latches "amplitude", "edge" and "duration" from p.
func (s *Step) SetParams(p map[string]float64) error {
	amp, err := requireField(p, "amplitude")
	if err != nil {
		return err
	}
	edge, err := requireField(p, "edge")
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
	if edge < 0 || edge > dur {
		return invalidParam("edge", edge)
	}

	s.amplitude, s.edge, s.duration, s.latched = amp, edge, dur, true

	return nil
}

// Duration returns the latched pulse duration.
func (s *Step) Duration() float64 { return s.duration }

// Model ramps 0 -> amplitude over [-edge/2, +edge/2], centred on t=0
// independent of duration, and holds amplitude afterward.
func (s *Step) Model(relativeTime []float64) []complex128 {
	out := make([]complex128, len(relativeTime))
	half := s.edge / 2
	for i, t := range relativeTime {
		elapsed := t + half
		switch {
		case s.edge <= 0 || t >= half:
			out[i] = complex(s.amplitude, 0)
		case t <= -half:
			out[i] = 0
		default:
			out[i] = complex(s.amplitude*elapsed/s.edge, 0)
		}
	}

	return out
}

// Clone returns an independent copy.
func (s *Step) Clone() Shape {
	cp := *s

	return &cp
}
