package circuit

// Gate describes a quantum gate: a named operation on a fixed number of
// qubits. The numerical action of the gate is out of scope here; gates
// exist to be placed in a [Circuit] and exported.
type Gate interface {
	// Description returns the gate name as shown in diagrams and
	// instruction listings, e.g. "H", "CX" or "RY(1.5708)".
	Description() string

	// NumBits returns the number of qubits the gate operates on.
	NumBits() int
}

// OpenQASMer is implemented by gates that can emit an OpenQASM
// instruction. bitNames holds the register names of all bits in the
// program; bits selects the ones this gate operates on.
type OpenQASMer interface {
	OpenQASM(bitNames []string, bits []int) (string, error)
}

// ConditionalOpenQASMer is implemented by gates that need custom handling
// when classically conditioned. Gates without the method get the default
// "if (condition) instruction" form; composite gates condition each
// component, loops reject conditions outright.
type ConditionalOpenQASMer interface {
	ConditionalOpenQASM(condition string, bitNames []string, bits []int) (string, error)
}

// CQasmer is implemented by gates that can emit a cQASM instruction.
type CQasmer interface {
	CQasm(bitNames []string, bits []int) (string, error)
}

// ConditionalCQasmer is the cQASM analogue of [ConditionalOpenQASMer].
// The default conditional form is "instr-c condBit, args".
type ConditionalCQasmer interface {
	ConditionalCQasm(condition string, bitNames []string, bits []int) (string, error)
}
