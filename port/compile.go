package port

import (
	"fmt"
	"math"

	"pulseq/instr"
)

// ExtractTriggerEdges simulates execution of the raw instruction list
// (pass 1 of compile) to discover the minimum spacing between
// consecutive Triggers on this port (spec.md §4.4, "Trigger-edge
// extraction"). It leaves the port's execute state reset afterward.
func (p *Port) ExtractTriggerEdges() ([]Edge, error) {
	p.resetExecuteState()
	for _, inst := range p.instructions {
		if err := inst.Execute(p); err != nil {
			return nil, fmt.Errorf("port %q: extracting trigger edges: %w", p.name, err)
		}
	}

	edges := make([]Edge, 0, len(p.triggerNodes))
	for i := 0; i+1 < len(p.triggerNodes); i++ {
		a, b := p.triggerNodes[i], p.triggerNodes[i+1]
		edges = append(edges, Edge{From: a.Index, To: b.Index, Weight: b.Position - a.Position})
	}
	p.edges = edges
	p.resetExecuteState()

	return edges, nil
}

// SyncTriggerPositions replays the raw instruction list once more,
// inserting padding Delays wherever the globally-solved trigger positions
// require more spacing than this port's local trace provides, distributed
// according to the alignment of the Trigger preceding each edge (spec.md
// §4.4, "Trigger-position synchronization"). The result is stored as the
// synchronized instruction list consumed by ExecuteInstructions.
func (p *Port) SyncTriggerPositions(globalPos []float64) error {
	edgeDelay := make(map[int]float64, len(p.edges))
	for _, e := range p.edges {
		edgeDelay[e.To] = (globalPos[e.To] - globalPos[e.From]) - e.Weight
	}

	var synced, pending []instr.Instruction
	lastAlign := instr.AlignLeft
	seenFirstTrigger := false

	for _, inst := range p.instructions {
		tr, isTrigger := inst.(*instr.Trigger)
		if !isTrigger {
			pending = append(pending, inst)
			continue
		}

		idx, err := tr.Index()
		if err != nil {
			return fmt.Errorf("port %q: %w", p.name, err)
		}

		if !seenFirstTrigger {
			seenFirstTrigger = true
			pending = append(pending, inst)
			synced = append(synced, pending...)
			pending = nil
			lastAlign = tr.Align()

			continue
		}

		delay := edgeDelay[idx]
		padded, err := padEdge(pending, delay, lastAlign)
		if err != nil {
			return fmt.Errorf("port %q: %w", p.name, err)
		}
		synced = append(synced, padded...)
		synced = append(synced, inst)
		pending = nil
		lastAlign = tr.Align()
	}
	synced = append(synced, pending...)

	p.synchronized = synced

	return nil
}

// padEdge distributes delay ns of padding around pending per the
// alignment of the trigger that opened this edge: left pads after the
// edge's instructions, middle splits evenly front and back, right pads
// before.
func padEdge(pending []instr.Instruction, delay float64, align instr.Align) ([]instr.Instruction, error) {
	switch align {
	case instr.AlignLeft:
		d, err := fixedDelay(delay)
		if err != nil {
			return nil, err
		}

		return append(append([]instr.Instruction{}, pending...), d), nil
	case instr.AlignMiddle:
		front, err := fixedDelay(delay / 2)
		if err != nil {
			return nil, err
		}
		back, err := fixedDelay(delay / 2)
		if err != nil {
			return nil, err
		}
		out := append([]instr.Instruction{front}, pending...)

		return append(out, back), nil
	case instr.AlignRight:
		d, err := fixedDelay(delay)
		if err != nil {
			return nil, err
		}

		return append([]instr.Instruction{d}, pending...), nil
	default:
		return nil, instr.ErrUnknownAlign
	}
}

// fixedDelay constructs a Delay already past FixVariables, ready to
// splice into a synchronized instruction list.
func fixedDelay(ns float64) (*instr.Delay, error) {
	d := instr.NewDelay(instr.Literal(ns))
	if err := d.FixVariables(); err != nil {
		return nil, err
	}

	return d, nil
}

// PrependSkewDelay inserts a leading Delay of maxSkew-p.Skew() ns onto the
// synchronized list, equalizing this port's output-path delay against the
// slowest configured port (spec.md §4.5 step 8).
func (p *Port) PrependSkewDelay(maxSkew float64) error {
	d, err := fixedDelay(maxSkew - p.skew)
	if err != nil {
		return fmt.Errorf("port %q: prepending skew delay: %w", p.name, err)
	}
	p.synchronized = append([]instr.Instruction{d}, p.synchronized...)

	return nil
}

// ExecuteInstructions runs the final execute pass over the synchronized,
// padded instruction list, updating position/phase/detuning and
// populating TriggerNodeList with post-synchronization positions
// (spec.md §4.5 step 9).
func (p *Port) ExecuteInstructions() error {
	p.resetExecuteState()
	for _, inst := range p.synchronized {
		if err := inst.Execute(p); err != nil {
			return fmt.Errorf("port %q: executing: %w", p.name, err)
		}
	}

	return nil
}

// RenderWaveform allocates the sample grid and output buffer up to
// waveformLength ns and dispatches Write/Acquire over the synchronized
// list (spec.md §4.5 step 10). It records a warning, not an error, if the
// rendered amplitude exceeds the soft overflow bound.
func (p *Port) RenderWaveform(waveformLength float64) error {
	n := int(math.Ceil(waveformLength / p.dacStep))
	if n < 0 {
		n = 0
	}

	p.time = make([]float64, n)
	for i := range p.time {
		p.time[i] = float64(i) * p.dacStep
	}
	p.waveform = make([]complex128, n)

	for _, inst := range p.synchronized {
		if err := inst.Write(p); err != nil {
			return fmt.Errorf("port %q: writing waveform: %w", p.name, err)
		}
		if err := inst.Acquire(p); err != nil {
			return fmt.Errorf("port %q: recording acquisitions: %w", p.name, err)
		}
	}

	var maxAbs float64
	for _, v := range p.waveform {
		if m := absComplex(v); m > maxAbs {
			maxAbs = m
		}
	}
	if maxAbs > amplitudeWarnThreshold {
		p.warnings = append(p.warnings, fmt.Sprintf(
			"port %q: waveform amplitude %.4f exceeds 1.0", p.name, maxAbs))
	}

	return nil
}

func absComplex(v complex128) float64 {
	re, im := real(v), imag(v)

	return math.Sqrt(re*re + im*im)
}
