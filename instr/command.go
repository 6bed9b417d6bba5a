package instr

import (
	"math"

	"pulseq/variable"
)

// Delay advances the port's position without emitting samples.
type Delay struct {
	duration Param
	fixed    *float64
}

// NewDelay constructs a Delay command.
func NewDelay(duration Param) *Delay { return &Delay{duration: duration} }

// RawDuration returns the delay's current parameter value without
// requiring FixVariables, for serialization.
func (d *Delay) RawDuration() float64 { return d.duration.Fix() }

// CollectVariables registers the duration Param's bound Variable, if any.
func (d *Delay) CollectVariables(reg func(*variable.Variable), _ func(*InstructionVariable)) {
	if v := d.duration.Variable(); v != nil {
		reg(v)
	}
}

// FixVariables resolves the duration Param.
func (d *Delay) FixVariables() error {
	v := d.duration.Fix()
	d.fixed = &v

	return nil
}

// Duration returns the fixed delay length.
func (d *Delay) Duration() (float64, error) {
	if d.fixed == nil {
		return 0, ErrUnfixed
	}

	return *d.fixed, nil
}

// Execute advances the port's position by the delay's duration.
func (d *Delay) Execute(p PortAPI) error {
	dur, err := d.Duration()
	if err != nil {
		return err
	}
	p.TimeStep(dur)

	return nil
}

// Write is a no-op for Delay.
func (d *Delay) Write(PortAPI) error { return nil }

// Acquire is a no-op for Delay.
func (d *Delay) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (d *Delay) Clone() Instruction {
	return &Delay{duration: d.duration}
}

// VirtualZ subtracts phase from the port's accumulated phase without
// advancing position or emitting samples.
type VirtualZ struct {
	phase Param
	fixed *float64
}

// NewVirtualZ constructs a VirtualZ command.
func NewVirtualZ(phase Param) *VirtualZ { return &VirtualZ{phase: phase} }

// RawPhase returns the VirtualZ's current parameter value without
// requiring FixVariables, for serialization.
func (z *VirtualZ) RawPhase() float64 { return z.phase.Fix() }

// CollectVariables registers the phase Param's bound Variable, if any.
func (z *VirtualZ) CollectVariables(reg func(*variable.Variable), _ func(*InstructionVariable)) {
	if v := z.phase.Variable(); v != nil {
		reg(v)
	}
}

// FixVariables resolves the phase Param.
func (z *VirtualZ) FixVariables() error {
	v := z.phase.Fix()
	z.fixed = &v

	return nil
}

// Duration is always 0 for VirtualZ.
func (z *VirtualZ) Duration() (float64, error) { return 0, nil }

// Execute subtracts the fixed phase from the port's accumulated phase.
func (z *VirtualZ) Execute(p PortAPI) error {
	if z.fixed == nil {
		return ErrUnfixed
	}
	p.SetPhase(p.Phase() - *z.fixed)

	return nil
}

// Write is a no-op for VirtualZ.
func (z *VirtualZ) Write(PortAPI) error { return nil }

// Acquire is a no-op for VirtualZ.
func (z *VirtualZ) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (z *VirtualZ) Clone() Instruction { return &VirtualZ{phase: z.phase} }

// SetDetuning sets the port's detuning to an absolute value.
type SetDetuning struct {
	detuning Param
	fixed    *float64
}

// NewSetDetuning constructs a SetDetuning command.
func NewSetDetuning(detuning Param) *SetDetuning { return &SetDetuning{detuning: detuning} }

// RawDetuning returns the SetDetuning's current parameter value without
// requiring FixVariables, for serialization.
func (s *SetDetuning) RawDetuning() float64 { return s.detuning.Fix() }

// CollectVariables registers the detuning Param's bound Variable, if any.
func (s *SetDetuning) CollectVariables(reg func(*variable.Variable), _ func(*InstructionVariable)) {
	if v := s.detuning.Variable(); v != nil {
		reg(v)
	}
}

// FixVariables resolves the detuning Param.
func (s *SetDetuning) FixVariables() error {
	v := s.detuning.Fix()
	s.fixed = &v

	return nil
}

// Duration is always 0 for SetDetuning.
func (s *SetDetuning) Duration() (float64, error) { return 0, nil }

// Execute sets the port's detuning to the fixed absolute value.
func (s *SetDetuning) Execute(p PortAPI) error {
	if s.fixed == nil {
		return ErrUnfixed
	}
	p.SetDetuning(*s.fixed)

	return nil
}

// Write is a no-op for SetDetuning.
func (s *SetDetuning) Write(PortAPI) error { return nil }

// Acquire is a no-op for SetDetuning.
func (s *SetDetuning) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (s *SetDetuning) Clone() Instruction { return &SetDetuning{detuning: s.detuning} }

// ResetPhase re-bases the port's phase so the current position becomes a
// known phase origin: the next pulse at this position renders with
// carrier-phase-at-t equal to -phase (spec.md §8 item 7).
type ResetPhase struct {
	phase Param
	fixed *float64
}

// NewResetPhase constructs a ResetPhase command.
func NewResetPhase(phase Param) *ResetPhase { return &ResetPhase{phase: phase} }

// RawPhase returns the ResetPhase's current parameter value without
// requiring FixVariables, for serialization.
func (r *ResetPhase) RawPhase() float64 { return r.phase.Fix() }

// CollectVariables registers the phase Param's bound Variable, if any.
func (r *ResetPhase) CollectVariables(reg func(*variable.Variable), _ func(*InstructionVariable)) {
	if v := r.phase.Variable(); v != nil {
		reg(v)
	}
}

// FixVariables resolves the phase Param.
func (r *ResetPhase) FixVariables() error {
	v := r.phase.Fix()
	r.fixed = &v

	return nil
}

// Duration is always 0 for ResetPhase.
func (r *ResetPhase) Duration() (float64, error) { return 0, nil }

// Execute overwrites the port's accumulated phase with the fixed value
// minus the carrier phase accrued up to the current position at the
// port's SidebandFreq()+Detuning(), so the carrier at this position has
// phase -phase.
func (r *ResetPhase) Execute(p PortAPI) error {
	if r.fixed == nil {
		return ErrUnfixed
	}
	ifFreq := p.SidebandFreq() + p.Detuning()
	p.SetPhase(*r.fixed - 2*math.Pi*ifFreq*p.Position())

	return nil
}

// Write is a no-op for ResetPhase.
func (r *ResetPhase) Write(PortAPI) error { return nil }

// Acquire is a no-op for ResetPhase.
func (r *ResetPhase) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (r *ResetPhase) Clone() Instruction { return &ResetPhase{phase: r.phase} }

// AddAlign pushes a new alignment frame onto the port's align stack. It is
// the synthetic command a scoped align(port, mode) block emits on entry
// (spec.md §4.4, "_AddAlign").
type AddAlign struct {
	mode Align
}

// NewAddAlign constructs an AddAlign command. mode must satisfy ValidFrame.
func NewAddAlign(mode Align) (*AddAlign, error) {
	if !mode.ValidFrame() {
		return nil, ErrUnknownAlign
	}

	return &AddAlign{mode: mode}, nil
}

// CollectVariables is a no-op: AddAlign carries no Variables.
func (a *AddAlign) CollectVariables(func(*variable.Variable), func(*InstructionVariable)) {}

// FixVariables is a no-op.
func (a *AddAlign) FixVariables() error { return nil }

// Duration is always 0 for AddAlign.
func (a *AddAlign) Duration() (float64, error) { return 0, nil }

// Execute pushes the frame onto the port's align stack.
func (a *AddAlign) Execute(p PortAPI) error {
	p.PushAlign(a.mode)

	return nil
}

// Write is a no-op for AddAlign.
func (a *AddAlign) Write(PortAPI) error { return nil }

// Acquire is a no-op for AddAlign.
func (a *AddAlign) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (a *AddAlign) Clone() Instruction { return &AddAlign{mode: a.mode} }

// DelAlign pops the current alignment frame, collapsing it into its
// parent (spec.md §4.4, "_DelAlign"). It is the synthetic command a scoped
// align(port, mode) block emits on exit, via AlignScope.Close in package
// seq; when the caller defers Close, it is emitted even if the block's
// body returned an error.
type DelAlign struct{}

// NewDelAlign constructs a DelAlign command.
func NewDelAlign() *DelAlign { return &DelAlign{} }

// CollectVariables is a no-op: DelAlign carries no Variables.
func (d *DelAlign) CollectVariables(func(*variable.Variable), func(*InstructionVariable)) {}

// FixVariables is a no-op.
func (d *DelAlign) FixVariables() error { return nil }

// Duration is always 0 for DelAlign.
func (d *DelAlign) Duration() (float64, error) { return 0, nil }

// Execute pops the port's current align frame.
func (d *DelAlign) Execute(p PortAPI) error {
	_, err := p.PopAlign()

	return err
}

// Write is a no-op for DelAlign.
func (d *DelAlign) Write(PortAPI) error { return nil }

// Acquire is a no-op for DelAlign.
func (d *DelAlign) Acquire(PortAPI) error { return nil }

// Clone returns an independent copy.
func (d *DelAlign) Clone() Instruction { return &DelAlign{} }
