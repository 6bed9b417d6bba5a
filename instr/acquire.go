package instr

import "pulseq/variable"

// Acquire advances the port's position by duration and records a
// (start, end) measurement window over that span.
type Acquire struct {
	duration Param
	fixed    *float64

	// execPosition latches the port position at Execute time, since the
	// later Acquire pass runs after every instruction's Execute has
	// already advanced the port to its final position (spec.md §2:
	// "each Port executes its now-synchronized stream twice").
	execPosition float64
}

// NewAcquire constructs an Acquire instruction.
func NewAcquire(duration Param) *Acquire { return &Acquire{duration: duration} }

// RawDuration returns the Acquire's current parameter value without
// requiring FixVariables, for serialization.
func (a *Acquire) RawDuration() float64 { return a.duration.Fix() }

// CollectVariables registers the duration Param's bound Variable, if any.
func (a *Acquire) CollectVariables(reg func(*variable.Variable), _ func(*InstructionVariable)) {
	if v := a.duration.Variable(); v != nil {
		reg(v)
	}
}

// FixVariables resolves the duration Param.
func (a *Acquire) FixVariables() error {
	v := a.duration.Fix()
	a.fixed = &v

	return nil
}

// Duration returns the fixed acquisition length.
func (a *Acquire) Duration() (float64, error) {
	if a.fixed == nil {
		return 0, ErrUnfixed
	}

	return *a.fixed, nil
}

// Execute latches the start position and advances the port by the
// acquisition duration.
func (a *Acquire) Execute(p PortAPI) error {
	dur, err := a.Duration()
	if err != nil {
		return err
	}
	a.execPosition = p.Position()
	p.TimeStep(dur)

	return nil
}

// Write is a no-op for Acquire: it contributes no samples.
func (a *Acquire) Write(PortAPI) error { return nil }

// Acquire records the (start, end) measurement window on p, using the
// position latched at Execute time.
func (a *Acquire) Acquire(p PortAPI) error {
	dur, err := a.Duration()
	if err != nil {
		return err
	}
	p.RecordWindow(a.execPosition, a.execPosition+dur)

	return nil
}

// Clone returns an independent copy.
func (a *Acquire) Clone() Instruction { return &Acquire{duration: a.duration} }
