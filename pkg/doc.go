// Package pkg provides the core libraries for qsketch circuit rendering.
//
// # Overview
//
// Qsketch turns quantum circuit documents into publication-quality output:
// LaTeX qcircuit diagrams, OpenQASM and cQASM programs, and Graphviz
// drawings. The pkg directory is organized into four main areas:
//
//  1. [circuit] - Domain logic (circuits, gates, composites, loops)
//  2. [export] - Output generation (qcircuit LaTeX, QASM dialects, DOT)
//  3. [source] - Circuit documents (TOML/JSON parsing and building)
//  4. [pipeline] - Orchestration (build → render) with caching
//
// # Architecture
//
// The typical data flow through qsketch:
//
//	Circuit document (TOML/JSON)
//	         ↓
//	    [source] package (parse + build)
//	         ↓
//	    [circuit] package (circuit description)
//	         ↓
//	    [export] packages (diagram layout + code generation)
//	         ↓
//	    LaTeX/QASM/cQASM/DOT/SVG/PNG output
//
// # Quick Start
//
// Build a circuit and render a LaTeX diagram:
//
//	import "github.com/qsketch/qsketch/pkg/circuit"
//
//	c := circuit.New(2, 2)
//	_ = c.AddGate(circuit.NewH(), 0)
//	_ = c.AddGate(circuit.NewCX(), 0, 1)
//	_ = c.Measure(0, 0)
//	_ = c.Measure(1, 1)
//	latex, _ := c.LatexDiagram()
//
// Or run the full pipeline from a document:
//
//	doc, _, _ := source.LoadFile("bell.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"latex", "qasm"},
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [circuit] - Circuit descriptions: gates (builtin table plus composites
// parsed from description strings), classical conditions, measurements in
// X/Y/Z bases, resets, barriers, and static loops.
//
// ## Output Generation
//
// [export/qcircuit] - LaTeX qcircuit diagram layout. Places operations
// greedily into columns over the bit grid and renders the qcircuit macro
// calls, including loop brackets and classical wires.
//
// [export/qasm] - OpenQASM 2.0 and cQASM 1.0 program generation.
//
// [export/dot] - Graphviz DOT generation and SVG/PNG rendering.
//
// ## Documents and Orchestration
//
// [source] - TOML/JSON circuit documents and the builder that turns them
// into circuits.
//
// [pipeline] - Complete build → render pipeline used by CLI and API.
// Ensures consistent behavior across all entry points.
//
// ## Infrastructure
//
// [cache] - Byte caches for rendered artifacts: file (CLI), memory
// (tests), Redis (shared deployments), and null backends.
//
// [store] - Circuit document storage with memory and MongoDB backends.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Optional instrumentation hooks for the pipeline and
// caches.
//
// [api] - The HTTP API server (chi router over pipeline + store).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/circuit/...   # Specific package
//
// [circuit]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/circuit
// [export/qcircuit]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/export/qcircuit
// [export/qasm]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/export/qasm
// [export/dot]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/export/dot
// [source]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/cache
// [store]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/store
// [errors]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/observability
// [api]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/api
// [export]: https://pkg.go.dev/github.com/qsketch/qsketch/pkg/export
package pkg
