package seq

import (
	"errors"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/variable"
)

// Sentinel errors for Sequence construction and compilation.
var (
	// ErrNoTargetPorts indicates Trigger was called with an empty port list.
	ErrNoTargetPorts = errors.New("seq: trigger requires at least one port")

	// ErrDuplicateVariableName indicates two distinct Variables share a
	// name within one Sequence.
	ErrDuplicateVariableName = errors.New("seq: duplicate variable name")

	// ErrNotCompiled indicates a result accessor was called before Compile.
	ErrNotCompiled = errors.New("seq: sequence not compiled")
)

// entry is one (Instruction, target ports) pair in permanent insertion
// order, the Sequence-level source of truth redistributed to ports on
// every Compile.
type entry struct {
	inst    instr.Instruction
	targets []*port.Port
}

// Entry is the exported view of one (Instruction, target ports) pair,
// for callers (e.g. package persist) that need to walk a Sequence's
// permanent entry list.
type Entry struct {
	Inst    instr.Instruction
	Targets []*port.Port
}

// Sequence is the root container: registries for ports, numeric
// Variables and InstructionVariables, an ordered entry list, a
// trigger-index counter, and a compiled flag.
type Sequence struct {
	ports      map[string]*port.Port
	portOrder  []string
	entries    []entry
	numVars    map[string]*variable.Variable
	instrVars  map[string]*instr.InstructionVariable
	triggerIdx int
	compiled   bool
}

// New constructs an empty Sequence.
func New() *Sequence {
	return &Sequence{
		ports:     make(map[string]*port.Port),
		numVars:   make(map[string]*variable.Variable),
		instrVars: make(map[string]*instr.InstructionVariable),
	}
}
