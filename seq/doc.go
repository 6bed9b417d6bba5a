// Package seq implements the root compile orchestrator: it collects
// (Instruction, Port) pairs and multi-port triggers in insertion order,
// owns the Variable and InstructionVariable registries, and drives the
// compile pipeline — fix variables, frame with sentinel triggers,
// distribute to ports, extract and coalesce trigger edges, solve the
// longest-path DAG, synchronize trigger positions, align skew, execute,
// and render — the way builder.BuildGraph is the single orchestrator
// wrapping a deterministic constructor pipeline over a core.Graph.
package seq
