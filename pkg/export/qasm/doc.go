// Package qasm emits quantum assembly programs for a circuit.
//
// Two dialects are supported: OpenQASM 2.0 ([OpenQASM]) and cQASM 1.0
// ([CQasm]). Individual gates know their own instruction forms; this
// package adds the program headers, register declarations and the
// per-operation statements around them, and reports which operations a
// dialect cannot express.
package qasm
