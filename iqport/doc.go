// Package iqport specializes port.Port for channels driven through an IQ
// mixer: every Pulse is rendered twice, once into an I buffer and once
// into a Q buffer, each independently scaled and delayed to compensate
// for the mixer's amplitude and timing imbalance, then recombined as
// Re(I) + i*Im(Q) (spec.md §4.7). Every other compile step — trigger
// extraction, synchronization, skew alignment, execution — is inherited
// unchanged from the embedded Port.
package iqport
