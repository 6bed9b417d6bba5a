package instr

import "pulseq/variable"

// PortAPI is the mutable port surface an Instruction operates on during
// the execute pass (position/phase/detuning tracking, alignment framing,
// measurement windows) and the write pass (sample rendering). Defined
// here rather than as a concrete *port.Port so instr has no dependency on
// package port.
type PortAPI interface {
	// Position returns the port's current timeline position in ns.
	Position() float64
	// SetPosition overwrites the port's timeline position.
	SetPosition(ns float64)
	// Phase returns the port's current accumulated phase in radians.
	Phase() float64
	// SetPhase overwrites the port's accumulated phase.
	SetPhase(rad float64)
	// Detuning returns the port's current detuning in GHz.
	Detuning() float64
	// SetDetuning overwrites the port's detuning.
	SetDetuning(ghz float64)
	// SidebandFreq returns the port's configured IF/sideband frequency in GHz.
	SidebandFreq() float64

	// TimeStep advances the port's position by d ns, honoring the
	// top-of-stack alignment frame (spec.md §4.4): under a sequential
	// frame it both records d and advances position; under a left frame
	// it only records d.
	TimeStep(d float64)
	// PushAlign pushes a new alignment frame (the synthetic _AddAlign).
	PushAlign(mode Align)
	// PopAlign pops the current alignment frame, collapsing its recorded
	// durations into the parent per the table in spec.md §4.4, and
	// returns the duration collapsed into the parent frame.
	PopAlign() (float64, error)

	// RecordWindow appends a measurement window (start, end) in ns.
	RecordWindow(start, end float64)
	// RegisterTrigger appends a (triggerIndex, position) pair to the
	// port's trigger node list; triggerIndex is assigned by the owning
	// Sequence, not by the port.
	RegisterTrigger(index int, position float64)

	// Grid returns the render-time sample grid (ns), spaced by DAC_STEP.
	Grid() []float64
	// AddSample accumulates v into the output buffer at sample index i.
	AddSample(i int, v complex128)
}

// Instruction is a node in the instruction tree: Pulse, Command, Acquire,
// Trigger, or Functional (Union/Adjoint/Container).
type Instruction interface {
	// CollectVariables registers every Variable and InstructionVariable
	// reachable from this node (spec.md §4.1, "_get_variable").
	CollectVariables(regNum func(*variable.Variable), regInstr func(*InstructionVariable))

	// FixVariables recursively materializes a parameter snapshot by
	// substituting every Variable with its currently selected value
	// (spec.md §4.1, "_fix_variable"). Children are fixed before parents.
	FixVariables() error

	// Duration returns this node's timeline duration in ns. Valid only
	// after FixVariables.
	Duration() (float64, error)

	// Execute mutates p's position/phase/detuning/align state to reflect
	// this node (spec.md §4.2/§4.3 "_execute").
	Execute(p PortAPI) error

	// Write renders this node's samples into p's output buffer
	// (spec.md §4.3 "_write"). A no-op for non-Pulse, non-Functional nodes.
	Write(p PortAPI) error

	// Acquire records this node's measurement windows on p
	// (spec.md §4.2 "_acquire"). A no-op for non-Acquire, non-Functional nodes.
	Acquire(p PortAPI) error

	// Clone returns a deep copy, preventing aliasing when the same
	// Instruction literal is added to a Sequence more than once
	// (spec.md §3, "Lifecycle and ownership").
	Clone() Instruction
}
