// Package persist implements dump_setting/load_setting (spec.md §6): a
// YAML round-trip of a Sequence's entry list, each (instruction, target
// ports) pair keyed by a "kind" discriminator in place of the original's
// class-name dictionary. Only the flat instruction kinds (Pulse over a
// leaf shape, the four Commands, Acquire, Trigger) round-trip; Functional
// nodes (Union/Adjoint/Container) are left unsupported, the same scope
// the original leaves commented out in its own setting composer.
package persist
