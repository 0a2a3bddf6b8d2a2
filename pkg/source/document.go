// Package source loads circuit descriptions from TOML and JSON files.
//
// A document names the register sizes, optional reusable composite gate
// definitions, and the ordered operation list. [Build] turns a parsed
// document into a [circuit.Circuit]; [LoadFile] combines reading,
// format detection and building.
package source

import (
	"fmt"
	"strings"

	"github.com/qsketch/qsketch/pkg/circuit"
	qerrors "github.com/qsketch/qsketch/pkg/errors"
)

// Document is the parsed form of a circuit description file.
type Document struct {
	// Name identifies the circuit, e.g. for store documents and output
	// file naming.
	Name string `toml:"name" json:"name"`

	// QBits and CBits size the quantum and classical registers.
	QBits int `toml:"qbits" json:"qbits"`
	CBits int `toml:"cbits" json:"cbits"`

	// Gates holds named composite gate definitions in the description
	// string grammar, e.g. bell = "H 0; CX 0 1". Operations can reference
	// these by name.
	Gates map[string]string `toml:"gates" json:"gates,omitempty"`

	// Ops is the ordered operation list.
	Ops []OpSpec `toml:"ops" json:"ops"`
}

// OpSpec is one operation record of a document. Type selects the variant;
// the remaining fields matter per variant:
//
//	gate:    gate (name), args, bits, optionally control+target
//	measure: qbit, cbit, basis
//	reset:   qbit
//	barrier: bits
//	loop:    label, count, body (description string), bits
type OpSpec struct {
	Type string `toml:"type" json:"type"`

	Gate    string    `toml:"gate" json:"gate,omitempty"`
	Args    []float64 `toml:"args" json:"args,omitempty"`
	Bits    []int     `toml:"bits" json:"bits,omitempty"`
	Control []int     `toml:"control" json:"control,omitempty"`
	Target  uint64    `toml:"target" json:"target,omitempty"`

	QBit  int    `toml:"qbit" json:"qbit,omitempty"`
	CBit  int    `toml:"cbit" json:"cbit,omitempty"`
	Basis string `toml:"basis" json:"basis,omitempty"`

	Label string `toml:"label" json:"label,omitempty"`
	Count int    `toml:"count" json:"count,omitempty"`
	Body  string `toml:"body" json:"body,omitempty"`
}

// Build validates a document and constructs the circuit it describes.
func Build(doc *Document) (*circuit.Circuit, error) {
	if doc.QBits <= 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidCircuit, "circuit needs at least one qubit, got %d", doc.QBits)
	}
	if doc.CBits < 0 {
		return nil, qerrors.New(qerrors.ErrCodeInvalidCircuit, "negative classical bit count %d", doc.CBits)
	}

	named := make(map[string]*circuit.Composite, len(doc.Gates))
	for name, desc := range doc.Gates {
		if err := qerrors.ValidateGateName(name); err != nil {
			return nil, err
		}
		g, err := circuit.ParseComposite(name, desc)
		if err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidGate, err, "gate definition %q", name)
		}
		named[name] = g
	}

	c := circuit.New(doc.QBits, doc.CBits)
	for i, op := range doc.Ops {
		if err := buildOp(c, named, op); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidCircuit, err, "op %d (%s)", i, op.Type)
		}
	}
	return c, nil
}

func buildOp(c *circuit.Circuit, named map[string]*circuit.Composite, op OpSpec) error {
	switch strings.ToLower(op.Type) {
	case "gate":
		gate, err := resolveGate(named, op)
		if err != nil {
			return err
		}
		if len(op.Control) > 0 {
			return c.AddConditionalGate(op.Control, op.Target, gate, op.Bits...)
		}
		return c.AddGate(gate, op.Bits...)
	case "measure":
		if err := qerrors.ValidateBasis(op.Basis); err != nil {
			return err
		}
		return c.MeasureBasis(op.QBit, op.CBit, op.Basis)
	case "reset":
		return c.Reset(op.QBit)
	case "barrier":
		return c.Barrier(op.Bits...)
	case "loop":
		return buildLoop(c, op)
	default:
		return qerrors.New(qerrors.ErrCodeInvalidInput, "unknown op type %q", op.Type)
	}
}

func resolveGate(named map[string]*circuit.Composite, op OpSpec) (circuit.Gate, error) {
	if op.Gate == "" {
		return nil, qerrors.New(qerrors.ErrCodeInvalidGate, "gate op without gate name")
	}
	// Named composite definitions shadow the builtin gate table.
	if g, ok := named[op.Gate]; ok {
		if len(op.Args) > 0 {
			return nil, qerrors.New(qerrors.ErrCodeInvalidGate, "composite gate %q takes no arguments", op.Gate)
		}
		return g, nil
	}
	gate, err := circuit.NewGate(op.Gate, op.Args)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeInvalidGate, err, "gate %q", op.Gate)
	}
	return gate, nil
}

func buildLoop(c *circuit.Circuit, op OpSpec) error {
	if op.Count < 0 {
		return qerrors.New(qerrors.ErrCodeInvalidInput, "negative loop count %d", op.Count)
	}
	label := op.Label
	if label == "" {
		label = fmt.Sprintf("loop%d", c.OpCount())
	}
	body, err := circuit.ParseComposite(label, op.Body)
	if err != nil {
		return qerrors.Wrap(qerrors.ErrCodeInvalidGate, err, "loop body")
	}

	bits := op.Bits
	if len(bits) == 0 {
		bits = make([]int, body.NumBits())
		for i := range bits {
			bits[i] = i
		}
	}
	return c.AddGate(circuit.NewLoop(label, op.Count, body), bits...)
}
