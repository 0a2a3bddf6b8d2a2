package qasm

import (
	"fmt"
	"strings"

	"github.com/qsketch/qsketch/pkg/circuit"
)

// CQasm emits c as a cQASM 1.0 program. The quantum bits are named q[i]
// and the measurement bits b[i].
//
// cQASM binary control fires when all control bits are one, so a
// conditioned gate is exportable only when its target value sets every
// control bit; measurements land in the classical bit paired with the
// measured qubit, so only measurements with matching indices are
// exportable. Barriers have no cQASM form and are skipped.
func CQasm(c *circuit.Circuit) (string, error) {
	names := qbitNames("q", c.NumQbits())

	var b strings.Builder
	b.WriteString("version 1.0\n")
	fmt.Fprintf(&b, "qubits %d\n", c.NumQbits())

	for _, op := range c.Ops() {
		switch op.Kind {
		case circuit.OpGate:
			instr, err := cQasmGate(op, names)
			if err != nil {
				return "", err
			}
			if instr == "" {
				continue
			}
			b.WriteString(instr)
			b.WriteString("\n")
		case circuit.OpMeasure:
			instr, err := cQasmMeasurement(op)
			if err != nil {
				return "", err
			}
			b.WriteString(instr)
			b.WriteString("\n")
		case circuit.OpReset:
			fmt.Fprintf(&b, "prep_z q[%d]\n", op.QBit)
		case circuit.OpBarrier:
			// no cQASM equivalent
		}
	}
	return b.String(), nil
}

func cQasmGate(op circuit.Op, names []string) (string, error) {
	if !op.Conditioned() {
		g, ok := op.Gate.(circuit.CQasmer)
		if !ok {
			return "", fmt.Errorf("gate %s: %w", op.Gate.Description(), ErrNotExportable)
		}
		return g.CQasm(names, op.Bits)
	}

	if op.Target != (uint64(1)<<len(op.Control))-1 {
		return "", fmt.Errorf("%w: binary control requires all control bits set, got target %d for %d bits",
			ErrUnsupportedCondition, op.Target, len(op.Control))
	}
	controls := make([]string, len(op.Control))
	for i, bit := range op.Control {
		controls[i] = fmt.Sprintf("b[%d]", bit)
	}
	return circuit.ConditionalCQasm(op.Gate, strings.Join(controls, ", "), names, op.Bits)
}

func cQasmMeasurement(op circuit.Op) (string, error) {
	if op.QBit != op.CBit {
		return "", fmt.Errorf("%w: qubit %d measured into bit %d", ErrUnsupportedMeasurement, op.QBit, op.CBit)
	}
	switch op.Basis {
	case "":
		return fmt.Sprintf("measure q[%d]", op.QBit), nil
	case "X":
		return fmt.Sprintf("measure_x q[%d]", op.QBit), nil
	case "Y":
		return fmt.Sprintf("measure_y q[%d]", op.QBit), nil
	default:
		return "", fmt.Errorf("%w: basis %q", ErrUnsupportedMeasurement, op.Basis)
	}
}
