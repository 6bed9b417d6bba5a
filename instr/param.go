// Package instr implements the instruction tree of spec.md §3–§4: tagged
// Pulse/Command/Acquire/Trigger/Functional nodes carrying parameter maps
// whose leaves may be literals or deferred Variables, resolved per sweep
// point by FixVariables.
//
// A circular dependency between "instructions mutate port state" and
// "ports hold instructions" is avoided the way core/api.go keeps core
// free of builder: this package defines the narrow PortAPI interface an
// Instruction needs, and the port package's *port.Port satisfies it,
// rather than instr importing port directly.
package instr

import (
	"errors"
	"fmt"

	"pulseq/variable"
)

// Sentinel errors for the instruction tree.
var (
	// ErrUnfixed indicates Execute/Write/Acquire/Duration was called
	// before FixVariables.
	ErrUnfixed = errors.New("instr: variables not fixed")

	// ErrUnknownAlign indicates a Trigger carries an alignment mode
	// outside {left, middle, right}.
	ErrUnknownAlign = errors.New("instr: unknown alignment mode")

	// ErrEmptyInstructionVariable indicates an InstructionVariable was
	// constructed with no candidate Instructions.
	ErrEmptyInstructionVariable = errors.New("instr: instruction variable has no options")

	// ErrIndexOutOfRange indicates an out-of-bounds InstructionVariable
	// index selection.
	ErrIndexOutOfRange = errors.New("instr: index out of range")
)

// Align is an alignment discipline for a Trigger or an align(...) scope.
type Align string

// Recognized alignment disciplines. Left/Middle/Right govern padding
// distribution on a Trigger's inter-edge span; Sequential/Left additionally
// double as the two align-stack frame modes a scoped align(port, mode)
// block may push.
const (
	AlignLeft       Align = "left"
	AlignMiddle     Align = "middle"
	AlignRight      Align = "right"
	AlignSequential Align = "sequential"
)

// Valid reports whether a is one of the three Trigger-facing disciplines.
func (a Align) Valid() bool {
	return a == AlignLeft || a == AlignMiddle || a == AlignRight
}

// ValidFrame reports whether a is one of the two align-stack frame modes.
func (a Align) ValidFrame() bool {
	return a == AlignSequential || a == AlignLeft
}

// Param is a leaf parameter value: either a literal float64 or a Bound
// reference to a Variable resolved at FixVariables time.
type Param struct {
	literal float64
	bound   *variable.Variable
}

// Literal constructs a Param holding a fixed numeric value.
func Literal(v float64) Param { return Param{literal: v} }

// Bound constructs a Param deferring to v's currently selected value.
func Bound(v *variable.Variable) Param { return Param{bound: v} }

// Fix resolves the Param to its current numeric value. A bound Variable
// carrying a Jitter (variable.Variable.WithJitter) is perturbed afresh
// on every call.
func (p Param) Fix() float64 {
	if p.bound != nil {
		return p.bound.JitteredValue()
	}

	return p.literal
}

// Variable returns the bound Variable, or nil for a literal Param.
func (p Param) Variable() *variable.Variable { return p.bound }

// fixMap resolves every entry of a Param map into a flat float64 snapshot.
func fixMap(params map[string]Param) map[string]float64 {
	out := make(map[string]float64, len(params))
	for k, p := range params {
		out[k] = p.Fix()
	}

	return out
}

// collectMap registers every bound Variable found in params.
func collectMap(params map[string]Param, reg func(*variable.Variable)) {
	for _, p := range params {
		if v := p.Variable(); v != nil {
			reg(v)
		}
	}
}

func requireFixed(fixed map[string]float64, what string) error {
	if fixed == nil {
		return fmt.Errorf("%w: %s", ErrUnfixed, what)
	}

	return nil
}
