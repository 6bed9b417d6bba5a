package seq

import (
	"fmt"

	"pulseq/dag"
	"pulseq/instr"
	"pulseq/port"
)

// WaveformInfo is one port's entry in the map returned by
// WaveformInformation, shaped for downstream instrument drivers.
type WaveformInfo struct {
	DAQLength          float64
	MeasurementWindows [][2]float64
	WaveformReal       []float64
	WaveformUpdated    bool
	Warnings           []string
}

// ResetCompile discards every result produced by Compile, leaving the
// permanent entry list and registries untouched. Compile calls this as
// its first step; callers may also call it directly between a read of
// compiled results and the next UpdateVariables.
func (s *Sequence) ResetCompile() {
	s.triggerIdx = 0
	for _, name := range s.portOrder {
		s.ports[name].Reset()
	}
	s.compiled = false
}

// Compile runs the full pipeline of spec.md §4.5: fix every instruction's
// variables, frame the entry list with synthetic boundary triggers,
// distribute to ports, extract and globally coalesce trigger edges, solve
// the longest-path DAG, synchronize each port's trigger positions,
// prepend skew-equalizing delays, execute, and render.
func (s *Sequence) Compile() error {
	s.ResetCompile()

	for _, e := range s.entries {
		if err := e.inst.FixVariables(); err != nil {
			return fmt.Errorf("seq: fixing variables: %w", err)
		}
	}

	allPorts := make([]*port.Port, len(s.portOrder))
	for i, name := range s.portOrder {
		allPorts[i] = s.ports[name]
	}
	startTrigger, err := instr.NewTrigger(instr.AlignLeft)
	if err != nil {
		return err
	}
	endTrigger, err := instr.NewTrigger(instr.AlignLeft)
	if err != nil {
		return err
	}
	framed := make([]entry, 0, len(s.entries)+2)
	framed = append(framed, entry{inst: startTrigger, targets: allPorts})
	framed = append(framed, s.entries...)
	framed = append(framed, entry{inst: endTrigger, targets: allPorts})

	for _, e := range framed {
		if tr, ok := e.inst.(*instr.Trigger); ok {
			tr.SetIndex(s.triggerIdx)
			s.triggerIdx++
		}
		for _, p := range e.targets {
			p.Add(e.inst)
		}
	}

	graph := dag.NewGraph(s.triggerIdx)
	for _, name := range s.portOrder {
		edges, err := s.ports[name].ExtractTriggerEdges()
		if err != nil {
			return err
		}
		for _, e := range edges {
			if err := graph.AddEdge(e.From, e.To, e.Weight); err != nil {
				return fmt.Errorf("seq: coalescing trigger edges: %w", err)
			}
		}
	}

	globalPos, err := dag.LongestPath(graph)
	if err != nil {
		return fmt.Errorf("seq: solving trigger positions: %w", err)
	}

	for _, name := range s.portOrder {
		if err := s.ports[name].SyncTriggerPositions(globalPos); err != nil {
			return err
		}
	}

	var maxSkew float64
	for _, name := range s.portOrder {
		if sk := s.ports[name].Skew(); sk > maxSkew {
			maxSkew = sk
		}
	}
	for _, name := range s.portOrder {
		if err := s.ports[name].PrependSkewDelay(maxSkew); err != nil {
			return err
		}
	}

	var maxPosition float64
	for _, name := range s.portOrder {
		p := s.ports[name]
		if err := p.ExecuteInstructions(); err != nil {
			return err
		}
		if p.Position() > maxPosition {
			maxPosition = p.Position()
		}
	}

	totalLength := maxSkew + maxPosition
	for _, name := range s.portOrder {
		if err := s.ports[name].RenderWaveform(totalLength); err != nil {
			return err
		}
	}

	s.compiled = true

	return nil
}

// PortByName returns the Sequence's owned *port.Port for name, if one has
// been registered via Add/Trigger.
func (s *Sequence) PortByName(name string) (*port.Port, error) {
	p, ok := s.ports[name]
	if !ok {
		return nil, fmt.Errorf("seq: unknown port %q", name)
	}

	return p, nil
}

// Warnings collects every port's diagnostic warnings from the most recent
// compile (e.g. amplitude overflow).
func (s *Sequence) Warnings() []string {
	var out []string
	for _, name := range s.portOrder {
		out = append(out, s.ports[name].Warnings()...)
	}

	return out
}

// WaveformInformation compiles the Sequence if needed and returns a
// port-name-keyed summary suitable for downstream instrument drivers
// (spec.md §6, "get_waveform_information()"). Each entry's Warnings is a
// snapshot of that port's diagnostics from this compile, taken before the
// reset below, since ResetCompile clears every port's warning list along
// with its other compiled state. It then resets the compiled state,
// matching the original's "one-shot read" contract: callers that need the
// raw *port.Port results repeatedly should call Compile and PortByName
// directly instead.
func (s *Sequence) WaveformInformation() (map[string]WaveformInfo, error) {
	if !s.compiled {
		if err := s.Compile(); err != nil {
			return nil, err
		}
	}

	out := make(map[string]WaveformInfo, len(s.portOrder))
	for _, name := range s.portOrder {
		p := s.ports[name]
		waveformReal := make([]float64, len(p.Waveform()))
		for i, v := range p.Waveform() {
			waveformReal[i] = real(v)
		}
		warnings := make([]string, len(p.Warnings()))
		copy(warnings, p.Warnings())
		out[name] = WaveformInfo{
			DAQLength:          float64(len(p.Waveform())) * p.DACStep(),
			MeasurementWindows: p.MeasurementWindows(),
			WaveformReal:       waveformReal,
			WaveformUpdated:    false,
			Warnings:           warnings,
		}
	}

	s.ResetCompile()

	return out, nil
}
