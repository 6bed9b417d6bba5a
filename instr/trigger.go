package instr

import "pulseq/variable"

// Trigger is a synchronization sentinel shared by one or more ports. It
// carries no duration of its own; Execute only records the port's current
// position under the trigger's globally-assigned index (spec.md §4.4,
// "Trigger-edge extraction").
//
// The index is not known when a Trigger is constructed: it is assigned by
// the owning Sequence during the distribute step of compile, once per
// compile pass; the same Trigger instance is added to every port it
// targets, so all of them see the same index (spec.md §4.2 step 4,
// "assign each Trigger the next unique trigger_index").
type Trigger struct {
	align    Align
	index    int
	assigned bool
}

// NewTrigger constructs an unassigned Trigger with the given alignment
// discipline.
func NewTrigger(align Align) (*Trigger, error) {
	if !align.Valid() {
		return nil, ErrUnknownAlign
	}

	return &Trigger{align: align}, nil
}

// Align returns the alignment discipline governing padding distribution on
// the edge starting at this Trigger, up to the next Trigger on the same
// port (spec.md §4.4).
func (t *Trigger) Align() Align { return t.align }

// SetIndex assigns this Trigger's sequence-global index. Called once per
// compile pass by the owning Sequence.
func (t *Trigger) SetIndex(i int) {
	t.index = i
	t.assigned = true
}

// Index returns the assigned global trigger index.
func (t *Trigger) Index() (int, error) {
	if !t.assigned {
		return 0, ErrUnfixed
	}

	return t.index, nil
}

// CollectVariables is a no-op: a Trigger carries no Variables.
func (t *Trigger) CollectVariables(func(*variable.Variable), func(*InstructionVariable)) {}

// FixVariables is a no-op: a Trigger needs no parameter resolution.
func (t *Trigger) FixVariables() error { return nil }

// Duration is always 0 for Trigger.
func (t *Trigger) Duration() (float64, error) { return 0, nil }

// Execute records the port's current position against this Trigger's
// assigned index.
func (t *Trigger) Execute(p PortAPI) error {
	if !t.assigned {
		return ErrUnfixed
	}
	p.RegisterTrigger(t.index, p.Position())

	return nil
}

// Write is a no-op for Trigger.
func (t *Trigger) Write(PortAPI) error { return nil }

// Acquire is a no-op for Trigger.
func (t *Trigger) Acquire(PortAPI) error { return nil }

// Clone returns an unassigned copy: index assignment is per-compile-pass
// and must never leak across clones.
func (t *Trigger) Clone() Instruction { return &Trigger{align: t.align} }
