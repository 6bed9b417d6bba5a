package iqport

import (
	"fmt"
	"math"

	"pulseq/instr"
	"pulseq/port"
)

// amplitudeWarnThreshold mirrors port.Port's soft overflow bound
// (spec.md §7), recomputed here because the combined I/Q waveform is
// built independently of the embedded Port's own render pass.
const amplitudeWarnThreshold = 1.001

// CompensationFunc maps an IF frequency (GHz) to a compensation factor
// or delay (ns), evaluated once per pulse at its own IF frequency.
type CompensationFunc func(ifFreqGHz float64) float64

func unitFactor(float64) float64 { return 1 }
func zeroDelay(float64) float64  { return 0 }

// Port wraps a *port.Port, adding per-channel I/Q amplitude and delay
// compensation. New initializes the compensation functions to identity (no
// imbalance), matching the original's IQPort defaults; a zero-value Port
// has nil compensation functions and must be built with New.
type Port struct {
	*port.Port

	iFactor, qFactor CompensationFunc
	iDelay, qDelay   CompensationFunc
}

// New constructs an IQ-compensating port wrapping a fresh port.Port built
// with opts (spec.md §4.7, "a Port which compensates for the amplitude
// and delay imbalances of an IQ mixer").
func New(name string, opts ...port.Option) (*Port, error) {
	base, err := port.New(name, opts...)
	if err != nil {
		return nil, err
	}

	return &Port{
		Port:    base,
		iFactor: unitFactor,
		qFactor: unitFactor,
		iDelay:  zeroDelay,
		qDelay:  zeroDelay,
	}, nil
}

// SetIFactor sets the I-channel amplitude compensation, evaluated at
// each pulse's IF frequency.
func (p *Port) SetIFactor(f CompensationFunc) { p.iFactor = f }

// SetQFactor sets the Q-channel amplitude compensation.
func (p *Port) SetQFactor(f CompensationFunc) { p.qFactor = f }

// SetIDelay sets the I-channel delay compensation, in ns.
func (p *Port) SetIDelay(f CompensationFunc) { p.iDelay = f }

// SetQDelay sets the Q-channel delay compensation, in ns.
func (p *Port) SetQDelay(f CompensationFunc) { p.qDelay = f }

// channelBuffer is a minimal instr.PortAPI that forwards every
// timekeeping method to the wrapped Port but accumulates AddSample into
// its own buffer, letting a Pulse's ordinary Write method be replayed
// once per channel without disturbing the Port's real state.
type channelBuffer struct {
	*port.Port
	buf []complex128
}

func (c *channelBuffer) AddSample(i int, v complex128) { c.buf[i] += v }

// RenderWaveform replaces the embedded Port's generic render pass: Pulse
// instructions are written twice, once per channel, each with its own
// amplitude factor and position delay evaluated at the pulse's IF
// frequency, then recombined as Re(I) + i*Im(Q); Acquire and every other
// instruction run exactly once, unchanged (spec.md §4.7,
// "_write_waveform").
func (p *Port) RenderWaveform(waveformLength float64) error {
	n := p.Port.AllocateGrid(waveformLength)

	iBuf := &channelBuffer{Port: p.Port, buf: make([]complex128, n)}
	qBuf := &channelBuffer{Port: p.Port, buf: make([]complex128, n)}

	ifFreq := p.SidebandFreq() + p.Detuning()

	for _, inst := range p.Port.Synchronized() {
		if pu, ok := inst.(*instr.Pulse); ok {
			iPulse, err := pu.CompensatedClone(p.iFactor(ifFreq), p.iDelay(ifFreq))
			if err != nil {
				return fmt.Errorf("iqport %q: compensating I channel: %w", p.Name(), err)
			}
			if err := iPulse.Write(iBuf); err != nil {
				return fmt.Errorf("iqport %q: writing I channel: %w", p.Name(), err)
			}

			qPulse, err := pu.CompensatedClone(p.qFactor(ifFreq), p.qDelay(ifFreq))
			if err != nil {
				return fmt.Errorf("iqport %q: compensating Q channel: %w", p.Name(), err)
			}
			if err := qPulse.Write(qBuf); err != nil {
				return fmt.Errorf("iqport %q: writing Q channel: %w", p.Name(), err)
			}

			continue
		}

		if err := inst.Acquire(p.Port); err != nil {
			return fmt.Errorf("iqport %q: recording acquisitions: %w", p.Name(), err)
		}
	}

	combined := make([]complex128, n)
	var maxAbs float64
	for i := range combined {
		combined[i] = complex(real(iBuf.buf[i]), imag(qBuf.buf[i]))
		if m := math.Hypot(real(combined[i]), imag(combined[i])); m > maxAbs {
			maxAbs = m
		}
	}
	p.SetWaveform(combined)

	if maxAbs > amplitudeWarnThreshold {
		p.AppendWarning(fmt.Sprintf("port %q: waveform amplitude %.4f exceeds 1.0", p.Name(), maxAbs))
	}

	return nil
}
