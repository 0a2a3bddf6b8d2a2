package circuit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

var (
	// ErrNotExportable means a gate has no representation in the
	// requested export format.
	ErrNotExportable = errors.New("gate has no representation in this export format")

	// ErrInvalidBit is returned when an operation references a bit index
	// outside the circuit.
	ErrInvalidBit = errors.New("bit index out of range")

	// ErrBitCountMismatch is returned when a gate is applied to the wrong
	// number of bits.
	ErrBitCountMismatch = errors.New("wrong number of bits for gate")
)

// OpKind discriminates the operation variants of a circuit.
type OpKind int

const (
	// OpGate applies a gate, optionally under a classical condition.
	OpGate OpKind = iota
	// OpMeasure measures a qubit into a classical bit.
	OpMeasure
	// OpReset reinitializes a qubit to |0⟩.
	OpReset
	// OpBarrier separates the operations before and after it.
	OpBarrier
)

// Op is one operation in a circuit. Which fields are meaningful depends
// on Kind: gates use Gate, Bits and the condition fields; measurements
// and resets use QBit/CBit/Basis; barriers use Bits.
type Op struct {
	Kind OpKind

	Gate    Gate
	Bits    []int
	Control []int  // classical condition bits; empty means unconditioned
	Target  uint64 // value the control register must match

	QBit  int
	CBit  int
	Basis string // measurement basis label; empty draws a plain meter
}

// Conditioned reports whether the operation runs under a classical
// condition.
func (op Op) Conditioned() bool { return len(op.Control) > 0 }

// Circuit is an ordered sequence of operations on a fixed set of quantum
// and classical bits. The zero value is an empty circuit on zero bits;
// use [New] for anything useful. Circuits are built by one goroutine and
// are not safe for concurrent mutation.
type Circuit struct {
	nrQbits int
	nrCbits int
	ops     []Op
}

// New creates an empty circuit with nrQbits quantum and nrCbits classical
// bits.
func New(nrQbits, nrCbits int) *Circuit {
	return &Circuit{nrQbits: nrQbits, nrCbits: nrCbits}
}

// NumQbits returns the number of quantum bits in the circuit.
func (c *Circuit) NumQbits() int { return c.nrQbits }

// NumCbits returns the number of classical bits in the circuit.
func (c *Circuit) NumCbits() int { return c.nrCbits }

// Ops returns the operations in execution order. The returned slice is a
// copy; the contained Gate values are shared.
func (c *Circuit) Ops() []Op { return slices.Clone(c.ops) }

// OpCount returns the number of operations in the circuit.
func (c *Circuit) OpCount() int { return len(c.ops) }

func (c *Circuit) checkQbits(bits []int) error {
	for _, b := range bits {
		if b < 0 || b >= c.nrQbits {
			return fmt.Errorf("%w: qubit %d of %d", ErrInvalidBit, b, c.nrQbits)
		}
	}
	return nil
}

func (c *Circuit) checkCbits(bits []int) error {
	for _, b := range bits {
		if b < 0 || b >= c.nrCbits {
			return fmt.Errorf("%w: classical bit %d of %d", ErrInvalidBit, b, c.nrCbits)
		}
	}
	return nil
}

// AddGate appends the application of gate to the qubits in bits.
func (c *Circuit) AddGate(gate Gate, bits ...int) error {
	return c.AddConditionalGate(nil, 0, gate, bits...)
}

// AddConditionalGate appends the application of gate to the qubits in
// bits, executed only when the classical register formed by the bits in
// control (first bit = least significant) equals target. A nil control
// adds an unconditioned gate.
func (c *Circuit) AddConditionalGate(control []int, target uint64, gate Gate, bits ...int) error {
	if len(bits) != gate.NumBits() {
		return fmt.Errorf("%w %s: got %d, want %d", ErrBitCountMismatch, gate.Description(), len(bits), gate.NumBits())
	}
	if err := c.checkQbits(bits); err != nil {
		return err
	}
	if err := c.checkCbits(control); err != nil {
		return err
	}
	c.ops = append(c.ops, Op{
		Kind:    OpGate,
		Gate:    gate,
		Bits:    slices.Clone(bits),
		Control: slices.Clone(control),
		Target:  target,
	})
	return nil
}

// Measure appends a measurement of qbit into classical bit cbit in the
// Pauli Z basis.
func (c *Circuit) Measure(qbit, cbit int) error {
	return c.MeasureBasis(qbit, cbit, "")
}

// MeasureBasis appends a measurement of qbit into classical bit cbit,
// annotated with a basis label ("X", "Y", ...). An empty basis draws a
// plain meter.
func (c *Circuit) MeasureBasis(qbit, cbit int, basis string) error {
	if err := c.checkQbits([]int{qbit}); err != nil {
		return err
	}
	if err := c.checkCbits([]int{cbit}); err != nil {
		return err
	}
	c.ops = append(c.ops, Op{Kind: OpMeasure, QBit: qbit, CBit: cbit, Basis: basis})
	return nil
}

// Reset appends the reinitialization of qbit to |0⟩.
func (c *Circuit) Reset(qbit int) error {
	if err := c.checkQbits([]int{qbit}); err != nil {
		return err
	}
	c.ops = append(c.ops, Op{Kind: OpReset, QBit: qbit})
	return nil
}

// Barrier appends a barrier over the qubits in bits.
func (c *Circuit) Barrier(bits ...int) error {
	if err := c.checkQbits(bits); err != nil {
		return err
	}
	c.ops = append(c.ops, Op{Kind: OpBarrier, Bits: slices.Clone(bits)})
	return nil
}

// =============================================================================
// LaTeX diagram export
// =============================================================================

// DiagramOption configures LaTeX diagram rendering.
type DiagramOption func(*qcircuit.State)

// WithoutInitialization omits the per-row initial value labels.
func WithoutInitialization() DiagramOption {
	return func(st *qcircuit.State) { st.SetAddInit(false) }
}

// WithCollapsedComposites draws composite gates as single multi-bit boxes
// instead of expanding them into their components.
func WithCollapsedComposites() DiagramOption {
	return func(st *qcircuit.State) { st.SetExpandComposite(false) }
}

// LatexDiagram renders the circuit as a qcircuit LaTeX diagram. Each
// operation reserves the rows it needs and writes its fragments; the
// layout, column packing and final serialization are handled by
// pkg/export/qcircuit.
func (c *Circuit) LatexDiagram(opts ...DiagramOption) (string, error) {
	st := qcircuit.NewState(c.nrQbits, c.nrCbits)
	for _, opt := range opts {
		opt(st)
	}

	for _, op := range c.ops {
		if err := drawOp(op, st); err != nil {
			return "", err
		}
	}
	return st.Code(), nil
}

func drawOp(op Op, st *qcircuit.State) error {
	switch op.Kind {
	case OpGate:
		if op.Conditioned() {
			// The condition dots connect to the gate, so the whole
			// range from gate to control bits must be free at once.
			st.ReserveRange(op.Bits, op.Control)
			if err := drawGate(op.Gate, op.Bits, st); err != nil {
				return err
			}
			st.SetCondition(op.Control, op.Target, op.Bits)
			return nil
		}
		d, ok := op.Gate.(qcircuit.Drawer)
		if !ok {
			return fmt.Errorf("gate %s: %w", op.Gate.Description(), ErrNotExportable)
		}
		return qcircuit.DrawChecked(d, op.Bits, st)
	case OpMeasure:
		st.SetMeasurement(op.QBit, op.CBit, op.Basis)
	case OpReset:
		st.SetReset(op.QBit)
	case OpBarrier:
		st.SetBarrier(op.Bits)
	}
	return nil
}

// drawGate draws g without a placement check; the caller has already
// reserved the rows.
func drawGate(g Gate, bits []int, st *qcircuit.State) error {
	d, ok := g.(qcircuit.Drawer)
	if !ok {
		return fmt.Errorf("gate %s: %w", g.Description(), ErrNotExportable)
	}
	return d.Draw(bits, st)
}

// =============================================================================
// Conditional emission defaults
// =============================================================================

// ConditionalOpenQASM emits the classically conditioned OpenQASM form of
// g. Gates implementing [ConditionalOpenQASMer] handle it themselves;
// everything else gets the standard "if (condition) instr" prefix.
func ConditionalOpenQASM(g Gate, condition string, bitNames []string, bits []int) (string, error) {
	return conditionalOpenQASM(g, condition, bitNames, bits)
}

func conditionalOpenQASM(g Gate, condition string, bitNames []string, bits []int) (string, error) {
	if cg, ok := g.(ConditionalOpenQASMer); ok {
		return cg.ConditionalOpenQASM(condition, bitNames, bits)
	}
	q, ok := g.(OpenQASMer)
	if !ok {
		return "", fmt.Errorf("gate %s: %w", g.Description(), ErrNotExportable)
	}
	instr, err := q.OpenQASM(bitNames, bits)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("if (%s) %s", condition, instr), nil
}

// ConditionalCQasm emits the classically conditioned cQASM form of g:
// the instruction name gets a "c-" prefix and the condition bits become
// the first operand. Gates implementing [ConditionalCQasmer] handle it
// themselves.
func ConditionalCQasm(g Gate, condition string, bitNames []string, bits []int) (string, error) {
	return conditionalCQasm(g, condition, bitNames, bits)
}

func conditionalCQasm(g Gate, condition string, bitNames []string, bits []int) (string, error) {
	if cg, ok := g.(ConditionalCQasmer); ok {
		return cg.ConditionalCQasm(condition, bitNames, bits)
	}
	q, ok := g.(CQasmer)
	if !ok {
		return "", fmt.Errorf("gate %s: %w", g.Description(), ErrNotExportable)
	}
	instr, err := q.CQasm(bitNames, bits)
	if err != nil {
		return "", err
	}
	name, operands, found := strings.Cut(instr, " ")
	if !found {
		return fmt.Sprintf("c-%s %s", name, condition), nil
	}
	return fmt.Sprintf("c-%s %s, %s", name, condition, operands), nil
}
