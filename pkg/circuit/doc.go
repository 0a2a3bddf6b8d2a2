// Package circuit models quantum circuits for export.
//
// A [Circuit] is an ordered list of operations over a fixed number of
// quantum and classical bits: gate applications, measurements, resets,
// barriers, and classically conditioned gates. Gates are a closed set of
// types implementing [Gate]; user-defined gates are built with
// [Composite], either programmatically or from a description string, and
// repeated sub-circuits with [Loop].
//
// The package carries no numerical gate semantics (no matrices or state
// vectors). Gates know their name, arity, and how to emit themselves for
// the supported export targets: LaTeX diagrams (via pkg/export/qcircuit),
// OpenQASM and cQASM instruction streams (via pkg/export/qasm), and
// Graphviz DOT (via pkg/export/dot).
//
// # Example
//
//	c, _ := circuit.New(2, 2)
//	c.AddGate(circuit.NewH(), 0)
//	c.AddGate(circuit.NewCX(), 0, 1)
//	c.Measure(0, 0)
//	c.Measure(1, 1)
//	latex, err := c.LatexDiagram()
package circuit
