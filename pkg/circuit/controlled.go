package circuit

import (
	"fmt"
	"strings"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

// Controlled wraps a gate with a control qubit. The first bit passed to
// the gate is the control; the remaining bits go to the wrapped gate.
// Wrapping can be nested: Controlled(Controlled(X)) is a Toffoli gate.
type Controlled struct {
	gate Gate
	desc string
}

// NewControlled creates a controlled version of gate.
func NewControlled(gate Gate) *Controlled {
	return &Controlled{gate: gate, desc: "C" + gate.Description()}
}

// NewCX creates a controlled Pauli X (CNOT) gate.
func NewCX() *Controlled { return NewControlled(NewX()) }

// NewCY creates a controlled Pauli Y gate.
func NewCY() *Controlled { return NewControlled(NewY()) }

// NewCZ creates a controlled Pauli Z gate.
func NewCZ() *Controlled { return NewControlled(NewZ()) }

// NewCCX creates a doubly controlled X (Toffoli) gate.
func NewCCX() *Controlled { return NewControlled(NewCX()) }

// NewCCZ creates a doubly controlled Z gate.
func NewCCZ() *Controlled { return NewControlled(NewCZ()) }

func (g *Controlled) Description() string { return g.desc }
func (g *Controlled) NumBits() int        { return 1 + g.gate.NumBits() }

func (g *Controlled) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], fmt.Sprintf(`\ctrl{%d}`, bits[1]-bits[0]))
	prev := st.SetControlled(true)
	err := drawGate(g.gate, bits[1:], st)
	st.SetControlled(prev)
	return err
}

// DrawChecked reserves and claims the full range between control and
// targets, so nothing else can land across the control line.
func (g *Controlled) DrawChecked(bits []int, st *qcircuit.State) error {
	st.ReserveRange(bits, nil)
	if err := g.Draw(bits, st); err != nil {
		return err
	}
	st.ClaimRange(bits, nil)
	return nil
}

func (g *Controlled) OpenQASM(bitNames []string, bits []int) (string, error) {
	sub, ok := g.gate.(OpenQASMer)
	if !ok {
		return "", fmt.Errorf("gate %s: %w", g.gate.Description(), ErrNotExportable)
	}
	instr, err := sub.OpenQASM(bitNames, bits[1:])
	if err != nil {
		return "", err
	}
	name, operands, found := strings.Cut(instr, " ")
	if !found {
		return "", fmt.Errorf("gate %s: malformed instruction %q", g.gate.Description(), instr)
	}
	return fmt.Sprintf("c%s %s, %s", name, bitNames[bits[0]], operands), nil
}

func (g *Controlled) CQasm(bitNames []string, bits []int) (string, error) {
	sub, ok := g.gate.(CQasmer)
	if !ok {
		return "", fmt.Errorf("gate %s: %w", g.gate.Description(), ErrNotExportable)
	}
	instr, err := sub.CQasm(bitNames, bits[1:])
	if err != nil {
		return "", err
	}
	name, operands, found := strings.Cut(instr, " ")
	if !found {
		return "", fmt.Errorf("gate %s: malformed instruction %q", g.gate.Description(), instr)
	}
	return fmt.Sprintf("%s %s, %s", cqasmControlledName(name), bitNames[bits[0]], operands), nil
}

// cqasmControlledName maps an instruction name to its controlled cQASM
// form. cQASM has dedicated names for controlled X and Z.
func cqasmControlledName(name string) string {
	switch name {
	case "x":
		return "cnot"
	case "z":
		return "cz"
	case "cnot":
		return "toffoli"
	default:
		return "c-" + name
	}
}
