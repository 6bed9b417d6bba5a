package instr

import (
	"fmt"
	"math"
	"math/cmplx"

	"pulseq/shape"
	"pulseq/variable"
)

// Pulse carries a PulseShape reference and the parameter map it needs
// (always including "duration"; "amplitude" and family-specific fields
// depending on the shape). IFFreq optionally overrides the port's
// sideband-frequency-plus-detuning default (spec.md §9 open question 2).
type Pulse struct {
	shapeTemplate shape.Shape
	params        map[string]Param
	ifFreq        *Param

	fixed      map[string]float64
	ifFreqFixed *float64

	// Emission fields latched by Execute (spec.md §3, "Pulse additionally holds").
	execPosition float64
	execPhase    float64
	execIFFreq   float64
	execDetuning float64
}

// NewPulse constructs a Pulse over sh with the given parameter map. params
// must include "duration" and whatever fields sh.SetParams requires.
func NewPulse(sh shape.Shape, params map[string]Param) *Pulse {
	cp := make(map[string]Param, len(params))
	for k, v := range params {
		cp[k] = v
	}

	return &Pulse{shapeTemplate: sh, params: cp}
}

// WithIFFreqOverride sets an explicit IF frequency, bypassing the port's
// SidebandFreq()+Detuning() default.
func (pu *Pulse) WithIFFreqOverride(p Param) *Pulse {
	cp := p
	pu.ifFreq = &cp

	return pu
}

// ShapeTemplate returns the pulse's envelope family, for serialization.
func (pu *Pulse) ShapeTemplate() shape.Shape { return pu.shapeTemplate }

// RawParams returns the pulse's current parameter snapshot without
// requiring FixVariables, for serialization.
func (pu *Pulse) RawParams() map[string]float64 { return fixMap(pu.params) }

// RawIFFreqOverride returns the pulse's IF-frequency override, if any.
func (pu *Pulse) RawIFFreqOverride() (float64, bool) {
	if pu.ifFreq == nil {
		return 0, false
	}

	return pu.ifFreq.Fix(), true
}

// CollectVariables registers every bound Variable in the parameter map
// and the optional IF-frequency override.
func (pu *Pulse) CollectVariables(regNum func(*variable.Variable), _ func(*InstructionVariable)) {
	collectMap(pu.params, regNum)
	if pu.ifFreq != nil {
		if v := pu.ifFreq.Variable(); v != nil {
			regNum(v)
		}
	}
}

// FixVariables materializes the flat parameter snapshot used by Execute,
// Write and the wrapped shape's own SetParams.
func (pu *Pulse) FixVariables() error {
	pu.fixed = fixMap(pu.params)
	if pu.ifFreq != nil {
		v := pu.ifFreq.Fix()
		pu.ifFreqFixed = &v
	}

	if _, ok := pu.fixed["duration"]; !ok {
		return fmt.Errorf("%w: pulse missing \"duration\" parameter", ErrUnfixed)
	}

	return nil
}

// Duration returns the fixed "duration" parameter.
func (pu *Pulse) Duration() (float64, error) {
	if err := requireFixed(pu.fixed, "pulse"); err != nil {
		return 0, err
	}

	return pu.fixed["duration"], nil
}

// Execute latches position, phase, detuning and IF frequency, then
// advances the port by the pulse's duration (spec.md §4.3).
func (pu *Pulse) Execute(p PortAPI) error {
	dur, err := pu.Duration()
	if err != nil {
		return err
	}

	pu.execPosition = p.Position()
	pu.execPhase = p.Phase()
	pu.execDetuning = p.Detuning()
	if pu.ifFreqFixed != nil {
		pu.execIFFreq = *pu.ifFreqFixed
	} else {
		pu.execIFFreq = p.SidebandFreq() + p.Detuning()
	}

	p.TimeStep(dur)

	return nil
}

// Write evaluates the shape over the port's support and accumulates
// C(t)*E(t) into the output buffer, where C is the IF carrier and E is
// the shape's envelope (spec.md §4.3).
func (pu *Pulse) Write(p PortAPI) error {
	if err := requireFixed(pu.fixed, "pulse"); err != nil {
		return err
	}

	sh := pu.shapeTemplate.Clone()
	if err := sh.SetParams(pu.fixed); err != nil {
		return err
	}

	dur := pu.fixed["duration"]
	center := pu.execPosition + dur/2
	half := dur / 2

	grid := p.Grid()
	var idxs []int
	var rel []float64
	for i, t := range grid {
		r := t - center
		if r >= -half && r < half {
			idxs = append(idxs, i)
			rel = append(rel, r)
		}
	}
	if len(idxs) == 0 {
		return nil
	}

	env := sh.Model(rel)
	for j, i := range idxs {
		t := grid[i]
		carrier := cmplx.Exp(complex(0, -(2*math.Pi*pu.execIFFreq*t + pu.execPhase)))
		p.AddSample(i, carrier*env[j])
	}

	return nil
}

// Acquire is a no-op for Pulse.
func (pu *Pulse) Acquire(PortAPI) error { return nil }

// CompensatedClone returns a copy of pu with its fixed "amplitude"
// scaled by ampFactor and its latched execution position shifted by
// positionShift ns, leaving pu itself untouched. Used by IQ-mixer
// compensation, which writes two amplitude- and delay-adjusted copies of
// each pulse into separate I/Q buffers (spec.md §4.7). Must be called
// after both FixVariables and Execute have run.
func (pu *Pulse) CompensatedClone(ampFactor, positionShift float64) (*Pulse, error) {
	if pu.fixed == nil {
		return nil, fmt.Errorf("%w: pulse not fixed", ErrUnfixed)
	}

	cp := &Pulse{
		shapeTemplate: pu.shapeTemplate.Clone(),
		params:        pu.params,
		ifFreq:        pu.ifFreq,
		fixed:         make(map[string]float64, len(pu.fixed)),
		ifFreqFixed:   pu.ifFreqFixed,
		execPosition:  pu.execPosition + positionShift,
		execPhase:     pu.execPhase,
		execIFFreq:    pu.execIFFreq,
		execDetuning:  pu.execDetuning,
	}
	for k, v := range pu.fixed {
		cp.fixed[k] = v
	}
	cp.fixed["amplitude"] *= ampFactor

	return cp, nil
}

// Clone returns a deep copy sharing no structure with pu (bound Variable
// pointers are shared by design: Variables outlive Instructions).
func (pu *Pulse) Clone() Instruction {
	cp := &Pulse{
		shapeTemplate: pu.shapeTemplate.Clone(),
		params:        make(map[string]Param, len(pu.params)),
		ifFreq:        pu.ifFreq,
	}
	for k, v := range pu.params {
		cp.params[k] = v
	}

	return cp
}
