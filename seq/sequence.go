package seq

import (
	"fmt"

	"pulseq/instr"
	"pulseq/port"
	"pulseq/variable"
)

// Port registers p by name, returning the Sequence's instance for that
// name: the first sighting of a name wins and is reused by every later
// call or Add/Trigger targeting an equally-named port. The registered
// instance is p itself, not a copy: the caller and the Sequence share the
// same *port.Port, and Compile resets it at the start of every pass.
func (s *Sequence) Port(p *port.Port) *port.Port {
	if existing, ok := s.ports[p.Name()]; ok {
		return existing
	}
	s.ports[p.Name()] = p
	s.portOrder = append(s.portOrder, p.Name())

	return p
}

// Add registers a deep copy of inst against p's Sequence-owned instance,
// appended to the permanent entry list (spec.md §9, "Instructions
// entering a Sequence must be deep-copied to prevent aliasing across
// repeated insertions").
func (s *Sequence) Add(inst instr.Instruction, p *port.Port) error {
	owned := s.Port(p)
	clone := inst.Clone()
	if err := s.registerVariables(clone); err != nil {
		return err
	}
	s.entries = append(s.entries, entry{inst: clone, targets: []*port.Port{owned}})
	s.compiled = false

	return nil
}

// Trigger registers a synchronization point shared by every port in
// ports, with the given alignment discipline governing padding
// distribution on the edge this Trigger opens (up to each port's next
// Trigger).
func (s *Sequence) Trigger(ports []*port.Port, align instr.Align) error {
	if len(ports) == 0 {
		return ErrNoTargetPorts
	}

	tr, err := instr.NewTrigger(align)
	if err != nil {
		return err
	}

	owned := make([]*port.Port, len(ports))
	for i, p := range ports {
		owned[i] = s.Port(p)
	}
	s.entries = append(s.entries, entry{inst: tr, targets: owned})
	s.compiled = false

	return nil
}

// Entries returns the Sequence's permanent (instruction, target ports)
// list in insertion order, for callers that need to walk it directly
// (e.g. package persist's DumpSetting).
func (s *Sequence) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{Inst: e.inst, Targets: e.targets}
	}

	return out
}

// AlignScope is the open half of a scoped align(port, mode) block: Close
// must run on every path, including error returns, to guarantee the
// align stack stays balanced (spec.md §9, "scoped resource").
type AlignScope struct {
	seq  *Sequence
	port *port.Port
}

// Align opens a scoped alignment block on p: every instruction Added
// before the matching Close runs under mode's align-stack frame.
func (s *Sequence) Align(p *port.Port, mode instr.Align) (*AlignScope, error) {
	add, err := instr.NewAddAlign(mode)
	if err != nil {
		return nil, err
	}
	if err := s.Add(add, p); err != nil {
		return nil, err
	}

	return &AlignScope{seq: s, port: p}, nil
}

// Close emits the matching DelAlign, collapsing the block's frame into
// its parent. Call via defer immediately after a successful Align.
func (scope *AlignScope) Close() error {
	return scope.seq.Add(instr.NewDelAlign(), scope.port)
}

// Call appends other's entries to s, flat, re-targeting other's ports by
// name against s's own registry (spec.md §6, "call(other_sequence)
// appends sub-sequence flat").
func (s *Sequence) Call(other *Sequence) error {
	for _, e := range other.entries {
		targets := make([]*port.Port, len(e.targets))
		for i, p := range e.targets {
			targets[i] = s.Port(p)
		}

		if tr, ok := e.inst.(*instr.Trigger); ok {
			if err := s.Trigger(targets, tr.Align()); err != nil {
				return err
			}

			continue
		}

		clone := e.inst.Clone()
		if err := s.registerVariables(clone); err != nil {
			return err
		}
		s.entries = append(s.entries, entry{inst: clone, targets: targets})
	}
	s.compiled = false

	return nil
}

// UpdateVariables applies a single UpdateCommand against whichever
// registry each name belongs to — numeric Variables via variable.Apply,
// InstructionVariables via direct SetIndex — and marks the Sequence
// not-compiled.
func (s *Sequence) UpdateVariables(cmd variable.UpdateCommand) error {
	if err := variable.Apply(cmd, s.numVars); err != nil {
		return err
	}
	for name, idx := range cmd {
		if iv, ok := s.instrVars[name]; ok {
			if err := iv.SetIndex(idx); err != nil {
				return fmt.Errorf("seq: updating %q: %w", name, err)
			}
		}
	}
	s.compiled = false

	return nil
}

// registerVariables walks inst's Variables and InstructionVariables,
// rejecting a name collision between two distinct Variable (or
// InstructionVariable) instances.
func (s *Sequence) registerVariables(inst instr.Instruction) error {
	var regErr error
	inst.CollectVariables(
		func(v *variable.Variable) {
			if regErr != nil {
				return
			}
			if existing, ok := s.numVars[v.Name()]; ok && existing != v {
				regErr = fmt.Errorf("%w: %q", ErrDuplicateVariableName, v.Name())

				return
			}
			s.numVars[v.Name()] = v
		},
		func(iv *instr.InstructionVariable) {
			if regErr != nil {
				return
			}
			if existing, ok := s.instrVars[iv.Name()]; ok && existing != iv {
				regErr = fmt.Errorf("%w: %q", ErrDuplicateVariableName, iv.Name())

				return
			}
			s.instrVars[iv.Name()] = iv
		},
	)

	return regErr
}
