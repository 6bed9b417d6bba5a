// Package pulseq is a pulse-sequence compiler for quantum-control
// experiments: it turns a tree of time-domain instructions (shaped
// pulses, phase/frequency commands, triggers, acquisition markers,
// variable sweeps) distributed across independent output channels into
// per-channel complex-valued baseband waveforms with mutually
// synchronized trigger timing.
//
// The module is organized the way the problem decomposes:
//
//	variable/ — named sweep values and the Cartesian-product update compiler
//	shape/    — the pulse envelope catalog (Square, Gaussian, FlatTop, ...)
//	instr/    — the instruction tree (Pulse, Command, Acquire, Trigger, Functional)
//	port/     — per-channel compile-time state: alignment, trigger edges, render
//	dag/      — the weighted longest-path solver behind trigger synchronization
//	seq/      — Sequence: registries and the compile pipeline tying it together
//	iqport/   — an IQ-mixer-compensated Port specialization
//	persist/  — YAML settings round-trip
//	cmd/pulseqc/ — a CLI front-end
//
// A typical caller builds a Sequence, adds instructions against one or
// more Ports, shares Trigger instances across ports that must stay
// synchronized, and calls Compile to produce each port's waveform:
//
//	s := seq.New()
//	ch0, _ := port.New("ch0")
//	sq := instr.NewPulse(shape.NewSquare(1, 100), map[string]instr.Param{
//		"amplitude": instr.Literal(1),
//		"duration":  instr.Literal(100),
//	})
//	_ = s.Add(sq, ch0)
//	_ = s.Compile()
//	p, _ := s.PortByName("ch0")
//	_ = p.Waveform()
package pulseq
