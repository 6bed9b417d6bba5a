package port

import (
	"errors"
	"math"

	"pulseq/instr"
)

// Sentinel errors for port construction and compilation.
var (
	// ErrEmptyName indicates a Port was constructed with an empty name.
	ErrEmptyName = errors.New("port: name must not be empty")

	// ErrAlignStackUnderflow indicates PopAlign was called on the base
	// frame, which a balanced align(port, mode) scope should never do.
	ErrAlignStackUnderflow = errors.New("port: align stack underflow")

	// ErrNotExecuted indicates a result accessor was called before the
	// relevant compile step ran.
	ErrNotExecuted = errors.New("port: not yet executed")
)

// amplitudeWarnThreshold is the soft overflow bound from spec.md §7: a
// diagnostic, not a compile failure.
const amplitudeWarnThreshold = 1.001

// Edge is a minimum-spacing requirement between two trigger indices,
// extracted from one port's local instruction trace.
type Edge struct {
	From, To int
	Weight   float64
}

// TriggerNode is a single (global trigger index, ns position) pair, as
// reported in a compiled port's trigger_node_list.
type TriggerNode struct {
	Index    int
	Position float64
}

// alignFrame is one entry of the align stack: a mode and the durations
// recorded against it by nested TimeStep calls.
type alignFrame struct {
	mode      instr.Align
	durations []float64
}

// Port is one logical output channel. Instructions added via Add mutate
// it through the narrow instr.PortAPI surface; the orchestration methods
// in compile.go are driven by the owning Sequence.
type Port struct {
	name         string
	dacStep      float64
	sidebandFreq float64
	skew         float64

	instructions []instr.Instruction
	synchronized []instr.Instruction
	edges        []Edge

	position float64
	phase    float64
	detuning float64
	align    []alignFrame

	triggerNodes []TriggerNode

	time               []float64
	waveform           []complex128
	measurementWindows [][2]float64
	warnings           []string
}

// New constructs a Port with the given name and functional options.
// Defaults: DAC_STEP = 1.0 ns, SIDEBAND_FREQ = 0.25 GHz, skew = 0
// (spec.md §6, "Defaults").
func New(name string, opts ...Option) (*Port, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	p := &Port{
		name:         name,
		dacStep:      1.0,
		sidebandFreq: 0.25,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resetExecuteState()

	return p, nil
}

// Name returns the port's name.
func (p *Port) Name() string { return p.name }

// DACStep returns the configured sample step in ns.
func (p *Port) DACStep() float64 { return p.dacStep }

// Skew returns the configured output-path skew in ns.
func (p *Port) Skew() float64 { return p.skew }

// Add appends inst to the port's raw instruction list, in insertion
// order. Called by the owning Sequence's distribute step, once per
// compile pass: the raw list is rebuilt from the Sequence's permanent
// (instruction, port) pairs every time, not accumulated across compiles.
func (p *Port) Add(inst instr.Instruction) {
	p.instructions = append(p.instructions, inst)
}

// Reset clears everything a compile pass produces, including the raw
// instruction list populated by the previous distribute step (spec.md
// §4.5 step 1, "_reset"). The owning Sequence repopulates it via Add
// immediately afterward, once per port per compile.
func (p *Port) Reset() {
	p.instructions = nil
	p.synchronized = nil
	p.edges = nil
	p.time = nil
	p.waveform = nil
	p.measurementWindows = nil
	p.warnings = nil
	p.resetExecuteState()
}

// resetExecuteState rewinds position/phase/detuning/align-stack/trigger
// bookkeeping to their initial values. Run before both the trigger-edge
// extraction pass and the final execute pass (spec.md §4.4,
// "_execute_reset").
func (p *Port) resetExecuteState() {
	p.position = 0
	p.phase = 0
	p.detuning = 0
	p.align = []alignFrame{{mode: instr.AlignSequential}}
	p.triggerNodes = nil
}

// TriggerNodeList returns the (global index, ns) pairs recorded by the
// most recent execute pass. Populated only after ExecuteInstructions has
// run against the synchronized list, so it reflects post-synchronization
// positions, not the local pre-sync trace used for edge extraction.
func (p *Port) TriggerNodeList() []TriggerNode { return p.triggerNodes }

// MeasurementWindows returns the (start, end) ns windows recorded during
// the render pass.
func (p *Port) MeasurementWindows() [][2]float64 { return p.measurementWindows }

// Waveform returns the rendered complex sample buffer.
func (p *Port) Waveform() []complex128 { return p.waveform }

// Time returns the sample-time grid, in lockstep with Waveform.
func (p *Port) Time() []float64 { return p.time }

// Warnings returns non-fatal diagnostics accumulated during render (e.g.
// amplitude overflow).
func (p *Port) Warnings() []string { return p.warnings }

// Synchronized returns the padded instruction list produced by
// SyncTriggerPositions/PrependSkewDelay, the list the final execute and
// render passes run over. Exposed for specializations (e.g. iqport.Port)
// that need to replay it with a different Write strategy.
func (p *Port) Synchronized() []instr.Instruction { return p.synchronized }

// AllocateGrid zeroes and sizes the sample-time grid and waveform buffer
// for a render pass of waveformLength ns, returning the sample count.
// Exposed for specializations that replay Synchronized with a different
// Write strategy instead of calling RenderWaveform directly.
func (p *Port) AllocateGrid(waveformLength float64) int {
	n := int(math.Ceil(waveformLength / p.dacStep))
	if n < 0 {
		n = 0
	}

	p.time = make([]float64, n)
	for i := range p.time {
		p.time[i] = float64(i) * p.dacStep
	}
	p.waveform = make([]complex128, n)
	p.measurementWindows = nil
	p.warnings = nil

	return n
}

// SetWaveform overwrites the rendered complex sample buffer in place,
// for specializations that recombine separately rendered channels.
func (p *Port) SetWaveform(w []complex128) { p.waveform = w }

// AppendWarning appends a diagnostic message to the port's warning list.
func (p *Port) AppendWarning(msg string) { p.warnings = append(p.warnings, msg) }
