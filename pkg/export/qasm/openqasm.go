package qasm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qsketch/qsketch/pkg/circuit"
)

var (
	// ErrNotExportable means a gate cannot be written in the requested
	// dialect.
	ErrNotExportable = errors.New("gate has no representation in this dialect")

	// ErrUnsupportedCondition means a classical condition cannot be
	// expressed in the requested dialect.
	ErrUnsupportedCondition = errors.New("condition cannot be expressed in this dialect")

	// ErrUnsupportedMeasurement means a measurement cannot be expressed in
	// the requested dialect.
	ErrUnsupportedMeasurement = errors.New("measurement cannot be expressed in this dialect")
)

// qbitNames returns the operand names of the quantum bits of register reg.
func qbitNames(reg string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s[%d]", reg, i)
	}
	return names
}

// OpenQASM emits c as an OpenQASM 2.0 program. The quantum bits form
// register q and the classical bits register c.
//
// OpenQASM conditionals compare a whole classical register against a
// value, so a conditioned gate is exportable only when its control bits
// are exactly all classical bits in ascending order; anything else
// returns [ErrUnsupportedCondition]. Measurements are in the Z basis
// only.
func OpenQASM(c *circuit.Circuit) (string, error) {
	names := qbitNames("q", c.NumQbits())

	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQbits())
	if c.NumCbits() > 0 {
		fmt.Fprintf(&b, "creg c[%d];\n", c.NumCbits())
	}

	for _, op := range c.Ops() {
		switch op.Kind {
		case circuit.OpGate:
			instr, err := openQASMGate(c, op, names)
			if err != nil {
				return "", err
			}
			if instr == "" {
				continue // zero-iteration loops emit nothing
			}
			// Multi-line instructions (loops) already terminate their
			// inner lines.
			for line := range strings.SplitSeq(instr, "\n") {
				b.WriteString(strings.TrimSuffix(line, ";"))
				b.WriteString(";\n")
			}
		case circuit.OpMeasure:
			if op.Basis != "" {
				return "", fmt.Errorf("%w: basis %q", ErrUnsupportedMeasurement, op.Basis)
			}
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", op.QBit, op.CBit)
		case circuit.OpReset:
			fmt.Fprintf(&b, "reset q[%d];\n", op.QBit)
		case circuit.OpBarrier:
			operands := make([]string, len(op.Bits))
			for i, bit := range op.Bits {
				operands[i] = names[bit]
			}
			fmt.Fprintf(&b, "barrier %s;\n", strings.Join(operands, ", "))
		}
	}
	return b.String(), nil
}

func openQASMGate(c *circuit.Circuit, op circuit.Op, names []string) (string, error) {
	if !op.Conditioned() {
		g, ok := op.Gate.(circuit.OpenQASMer)
		if !ok {
			return "", fmt.Errorf("gate %s: %w", op.Gate.Description(), ErrNotExportable)
		}
		return g.OpenQASM(names, op.Bits)
	}

	if !fullAscendingRegister(op.Control, c.NumCbits()) {
		return "", fmt.Errorf("%w: control bits %v of register c[%d]",
			ErrUnsupportedCondition, op.Control, c.NumCbits())
	}
	condition := fmt.Sprintf("c == %d", op.Target)
	return circuit.ConditionalOpenQASM(op.Gate, condition, names, op.Bits)
}

// fullAscendingRegister reports whether control is exactly the bits
// 0..n-1 in order, i.e. the whole classical register with its natural
// bit significance.
func fullAscendingRegister(control []int, n int) bool {
	if len(control) != n {
		return false
	}
	for i, bit := range control {
		if bit != i {
			return false
		}
	}
	return true
}
