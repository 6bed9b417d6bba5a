package port

import "pulseq/instr"

// The methods in this file implement instr.PortAPI, letting package instr
// mutate a *Port without importing it.
var _ instr.PortAPI = (*Port)(nil)

// Position returns the port's current timeline position in ns.
func (p *Port) Position() float64 { return p.position }

// SetPosition overwrites the port's timeline position.
func (p *Port) SetPosition(ns float64) { p.position = ns }

// Phase returns the port's current accumulated phase in radians.
func (p *Port) Phase() float64 { return p.phase }

// SetPhase overwrites the port's accumulated phase.
func (p *Port) SetPhase(rad float64) { p.phase = rad }

// Detuning returns the port's current detuning in GHz.
func (p *Port) Detuning() float64 { return p.detuning }

// SetDetuning overwrites the port's detuning.
func (p *Port) SetDetuning(ghz float64) { p.detuning = ghz }

// SidebandFreq returns the port's configured IF/sideband frequency in GHz.
func (p *Port) SidebandFreq() float64 { return p.sidebandFreq }

// TimeStep advances the port's position by d ns under a sequential
// top-of-stack frame, or only records d under a left frame, per the
// collapse table in spec.md §4.4.
func (p *Port) TimeStep(d float64) {
	top := len(p.align) - 1
	p.align[top].durations = append(p.align[top].durations, d)
	if p.align[top].mode == instr.AlignSequential {
		p.position += d
	}
}

// PushAlign pushes a new, empty alignment frame.
func (p *Port) PushAlign(mode instr.Align) {
	p.align = append(p.align, alignFrame{mode: mode})
}

// PopAlign pops the current alignment frame and collapses its recorded
// durations into the parent frame per the table in spec.md §4.4:
//
//	parent \ child   sequential            left
//	sequential       sum(durations)        max(durations); position += max
//	left             sum(durations);       max(durations)
//	                 position -= sum
//
// An empty durations list collapses to 0. Returns the collapsed value.
func (p *Port) PopAlign() (float64, error) {
	top := len(p.align) - 1
	if top == 0 {
		return 0, ErrAlignStackUnderflow
	}

	child := p.align[top]
	p.align = p.align[:top]
	parent := &p.align[top-1]

	sum, max := collapse(child.durations)

	var collapsed float64
	switch {
	case parent.mode == instr.AlignSequential && child.mode == instr.AlignSequential:
		collapsed = sum
	case parent.mode == instr.AlignSequential && child.mode == instr.AlignLeft:
		collapsed = max
		p.position += max
	case parent.mode == instr.AlignLeft && child.mode == instr.AlignSequential:
		collapsed = sum
		p.position -= sum
	default: // left parent, left child
		collapsed = max
	}
	parent.durations = append(parent.durations, collapsed)

	return collapsed, nil
}

// collapse returns the sum and max of durations, both 0 for an empty list.
func collapse(durations []float64) (sum, max float64) {
	for _, d := range durations {
		sum += d
		if d > max {
			max = d
		}
	}

	return sum, max
}

// RecordWindow appends a measurement window (start, end) in ns.
func (p *Port) RecordWindow(start, end float64) {
	p.measurementWindows = append(p.measurementWindows, [2]float64{start, end})
}

// RegisterTrigger appends a (triggerIndex, position) pair. Called by
// Trigger.Execute during both the edge-extraction pass (over the raw
// instruction list) and the final execute pass (over the synchronized,
// padded list); resetExecuteState clears this slice before each pass, so
// only the last pass to run leaves its entries visible via
// TriggerNodeList.
func (p *Port) RegisterTrigger(index int, position float64) {
	p.triggerNodes = append(p.triggerNodes, TriggerNode{Index: index, Position: position})
}

// Grid returns the render-time sample grid, in lockstep with the waveform
// buffer being built by RenderWaveform.
func (p *Port) Grid() []float64 { return p.time }

// AddSample accumulates v into the output buffer at sample index i.
func (p *Port) AddSample(i int, v complex128) {
	p.waveform[i] += v
}
