package instr

import "pulseq/variable"

// InstructionVariable is the Instruction-valued counterpart of
// variable.Variable: a named, indexed choice over a fixed list of
// Instructions, resolved by a Container at FixVariables time (spec.md §9
// open question, "a variable whose value is itself an instruction"). It is
// tracked by its own registry inside Sequence, distinct from the numeric
// variable.Variable registry, since the two hold values of different
// kinds and an UpdateCommand must know which one a name refers to.
type InstructionVariable struct {
	name    string
	options []Instruction
	index   int
}

// NewInstructionVariable constructs an InstructionVariable over a
// non-empty list of candidate Instructions, initially selecting index 0.
func NewInstructionVariable(name string, options ...Instruction) (*InstructionVariable, error) {
	if len(options) == 0 {
		return nil, ErrEmptyInstructionVariable
	}

	return &InstructionVariable{name: name, options: options}, nil
}

// Name returns the variable's name.
func (iv *InstructionVariable) Name() string { return iv.name }

// Len returns the number of candidate Instructions.
func (iv *InstructionVariable) Len() int { return len(iv.options) }

// Index returns the currently selected index.
func (iv *InstructionVariable) Index() int { return iv.index }

// SetIndex selects a candidate by index.
func (iv *InstructionVariable) SetIndex(i int) error {
	if i < 0 || i >= len(iv.options) {
		return ErrIndexOutOfRange
	}
	iv.index = i

	return nil
}

// Value returns the currently selected Instruction.
func (iv *InstructionVariable) Value() Instruction { return iv.options[iv.index] }

// Container defers to whichever Instruction its InstructionVariable
// currently selects, resolved once per FixVariables call (spec.md
// "functional.py", Container._fix_variable).
type Container struct {
	iv       *InstructionVariable
	resolved Instruction
}

// NewContainer constructs a Container deferring to iv's current selection.
func NewContainer(iv *InstructionVariable) *Container { return &Container{iv: iv} }

// CollectVariables registers the InstructionVariable itself; the
// variables of the option Instructions are not walked until one is
// resolved, mirroring the original's lazy _fix_variable.
func (c *Container) CollectVariables(_ func(*variable.Variable), regInstr func(*InstructionVariable)) {
	regInstr(c.iv)
}

// FixVariables clones the currently selected option and fixes it,
// latching the result for the remainder of this compile pass.
func (c *Container) FixVariables() error {
	c.resolved = c.iv.Value().Clone()

	return c.resolved.FixVariables()
}

// Duration forwards to the resolved Instruction.
func (c *Container) Duration() (float64, error) {
	if c.resolved == nil {
		return 0, ErrUnfixed
	}

	return c.resolved.Duration()
}

// Execute forwards to the resolved Instruction.
func (c *Container) Execute(p PortAPI) error {
	if c.resolved == nil {
		return ErrUnfixed
	}

	return c.resolved.Execute(p)
}

// Write forwards to the resolved Instruction.
func (c *Container) Write(p PortAPI) error {
	if c.resolved == nil {
		return ErrUnfixed
	}

	return c.resolved.Write(p)
}

// Acquire forwards to the resolved Instruction.
func (c *Container) Acquire(p PortAPI) error {
	if c.resolved == nil {
		return ErrUnfixed
	}

	return c.resolved.Acquire(p)
}

// Clone returns an independent Container sharing the same
// InstructionVariable (Variables, and InstructionVariables alike, outlive
// the Instructions that reference them).
func (c *Container) Clone() Instruction { return &Container{iv: c.iv} }

// Union overlays its children in parallel, starting each from the same
// position and advancing the port by the longest child (spec.md
// "functional.py", Union._execute).
type Union struct {
	children []Instruction
}

// NewUnion constructs a Union over the given children, executed in
// parallel from a shared start position.
func NewUnion(children ...Instruction) *Union {
	cp := make([]Instruction, len(children))
	copy(cp, children)

	return &Union{children: cp}
}

// CollectVariables registers every child's Variables and InstructionVariables.
func (u *Union) CollectVariables(regNum func(*variable.Variable), regInstr func(*InstructionVariable)) {
	for _, c := range u.children {
		c.CollectVariables(regNum, regInstr)
	}
}

// FixVariables fixes every child.
func (u *Union) FixVariables() error {
	for _, c := range u.children {
		if err := c.FixVariables(); err != nil {
			return err
		}
	}

	return nil
}

// Duration is the longest of the children's durations.
func (u *Union) Duration() (float64, error) {
	var max float64
	for _, c := range u.children {
		d, err := c.Duration()
		if err != nil {
			return 0, err
		}
		if d > max {
			max = d
		}
	}

	return max, nil
}

// Execute runs every child from the same start position, rewinding
// between each, then advances the port by the longest child's advance.
// The rewind is a bare position reset, not a TimeStep: each child's own
// Execute already recorded its duration into the enclosing align frame
// via its own TimeStep calls, so Union must not record a second entry for
// the combined span.
func (u *Union) Execute(p PortAPI) error {
	start := p.Position()
	var maxAdvance float64
	for _, c := range u.children {
		if err := c.Execute(p); err != nil {
			return err
		}
		if advance := p.Position() - start; advance > maxAdvance {
			maxAdvance = advance
		}
		p.SetPosition(start)
	}
	p.SetPosition(start + maxAdvance)

	return nil
}

// Write renders every child. Non-Pulse, non-Functional children have a
// no-op Write, so no type discrimination is needed here.
func (u *Union) Write(p PortAPI) error {
	for _, c := range u.children {
		if err := c.Write(p); err != nil {
			return err
		}
	}

	return nil
}

// Acquire records every child's measurement windows. Non-Acquire,
// non-Functional children have a no-op Acquire.
func (u *Union) Acquire(p PortAPI) error {
	for _, c := range u.children {
		if err := c.Acquire(p); err != nil {
			return err
		}
	}

	return nil
}

// Clone deep-copies every child.
func (u *Union) Clone() Instruction {
	cp := make([]Instruction, len(u.children))
	for i, c := range u.children {
		cp[i] = c.Clone()
	}

	return &Union{children: cp}
}

// Adjoint concatenates its children sequentially: each executes, writes
// and acquires in order, the way a flat instruction list would (spec.md
// "functional.py", Adjoint._execute).
type Adjoint struct {
	children []Instruction
}

// NewAdjoint constructs an Adjoint over the given children, executed in
// sequence.
func NewAdjoint(children ...Instruction) *Adjoint {
	cp := make([]Instruction, len(children))
	copy(cp, children)

	return &Adjoint{children: cp}
}

// CollectVariables registers every child's Variables and InstructionVariables.
func (a *Adjoint) CollectVariables(regNum func(*variable.Variable), regInstr func(*InstructionVariable)) {
	for _, c := range a.children {
		c.CollectVariables(regNum, regInstr)
	}
}

// FixVariables fixes every child.
func (a *Adjoint) FixVariables() error {
	for _, c := range a.children {
		if err := c.FixVariables(); err != nil {
			return err
		}
	}

	return nil
}

// Duration is the sum of the children's durations.
func (a *Adjoint) Duration() (float64, error) {
	var total float64
	for _, c := range a.children {
		d, err := c.Duration()
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total, nil
}

// Execute runs every child in sequence, each starting where the previous
// one left the port.
func (a *Adjoint) Execute(p PortAPI) error {
	for _, c := range a.children {
		if err := c.Execute(p); err != nil {
			return err
		}
	}

	return nil
}

// Write renders every child in order.
func (a *Adjoint) Write(p PortAPI) error {
	for _, c := range a.children {
		if err := c.Write(p); err != nil {
			return err
		}
	}

	return nil
}

// Acquire records every child's measurement windows in order.
func (a *Adjoint) Acquire(p PortAPI) error {
	for _, c := range a.children {
		if err := c.Acquire(p); err != nil {
			return err
		}
	}

	return nil
}

// Clone deep-copies every child.
func (a *Adjoint) Clone() Instruction {
	cp := make([]Instruction, len(a.children))
	for i, c := range a.children {
		cp[i] = c.Clone()
	}

	return &Adjoint{children: cp}
}
