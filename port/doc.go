// Package port implements a single output channel's compile-time state
// machine: position/phase/detuning tracking, the align-mode stack that
// governs how nested scopes contribute to timing, trigger-edge
// extraction, padding-delay insertion once global trigger positions are
// known, and the two-pass execute/render cycle that produces a complex
// baseband waveform buffer.
//
// Port satisfies instr.PortAPI so the instr package can mutate a Port's
// state without importing it; the dependency runs one way, port -> instr,
// the same shape as builder -> core.
package port
