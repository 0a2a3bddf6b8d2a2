package circuit

import (
	"fmt"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

// H is the Hadamard gate.
type H struct{}

// NewH creates a new Hadamard gate.
func NewH() *H { return &H{} }

func (*H) Description() string { return "H" }
func (*H) NumBits() int        { return 1 }

func (*H) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{H}`)
	return nil
}

func (*H) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("h %s", bitNames[bits[0]]), nil
}

func (*H) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("h %s", bitNames[bits[0]]), nil
}

// X is the Pauli X gate. It draws as a boxed X normally, and as the
// exclusive-or symbol when used as the target of a controlled gate.
type X struct{}

// NewX creates a new Pauli X gate.
func NewX() *X { return &X{} }

func (*X) Description() string { return "X" }
func (*X) NumBits() int        { return 1 }

func (*X) Draw(bits []int, st *qcircuit.State) error {
	if st.IsControlled() {
		st.SetField(bits[0], `\targ`)
	} else {
		st.SetField(bits[0], `\gate{X}`)
	}
	return nil
}

func (*X) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("x %s", bitNames[bits[0]]), nil
}

func (*X) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("x %s", bitNames[bits[0]]), nil
}

// Y is the Pauli Y gate.
type Y struct{}

// NewY creates a new Pauli Y gate.
func NewY() *Y { return &Y{} }

func (*Y) Description() string { return "Y" }
func (*Y) NumBits() int        { return 1 }

func (*Y) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{Y}`)
	return nil
}

func (*Y) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("y %s", bitNames[bits[0]]), nil
}

func (*Y) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("y %s", bitNames[bits[0]]), nil
}

// Z is the Pauli Z gate. Its controlled form draws as a bare control dot
// on the wire, since a controlled Z is symmetric in its bits.
type Z struct{}

// NewZ creates a new Pauli Z gate.
func NewZ() *Z { return &Z{} }

func (*Z) Description() string { return "Z" }
func (*Z) NumBits() int        { return 1 }

func (*Z) Draw(bits []int, st *qcircuit.State) error {
	if st.IsControlled() {
		st.SetField(bits[0], `\control \qw`)
	} else {
		st.SetField(bits[0], `\gate{Z}`)
	}
	return nil
}

func (*Z) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("z %s", bitNames[bits[0]]), nil
}

func (*Z) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("z %s", bitNames[bits[0]]), nil
}

// S is the phase gate, rotating the state over π/2 around the z axis.
type S struct{}

// NewS creates a new S gate.
func NewS() *S { return &S{} }

func (*S) Description() string { return "S" }
func (*S) NumBits() int        { return 1 }

func (*S) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{S}`)
	return nil
}

func (*S) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("s %s", bitNames[bits[0]]), nil
}

func (*S) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("s %s", bitNames[bits[0]]), nil
}

// Sdg is the conjugate of the S gate.
type Sdg struct{}

// NewSdg creates a new S† gate.
func NewSdg() *Sdg { return &Sdg{} }

func (*Sdg) Description() string { return "S†" }
func (*Sdg) NumBits() int        { return 1 }

func (*Sdg) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{S^\dagger}`)
	return nil
}

func (*Sdg) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("sdg %s", bitNames[bits[0]]), nil
}

func (*Sdg) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("sdag %s", bitNames[bits[0]]), nil
}

// T rotates the state over π/4 around the z axis; the square root of S.
type T struct{}

// NewT creates a new T gate.
func NewT() *T { return &T{} }

func (*T) Description() string { return "T" }
func (*T) NumBits() int        { return 1 }

func (*T) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{T}`)
	return nil
}

func (*T) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("t %s", bitNames[bits[0]]), nil
}

func (*T) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("t %s", bitNames[bits[0]]), nil
}

// Tdg is the conjugate of the T gate.
type Tdg struct{}

// NewTdg creates a new T† gate.
func NewTdg() *Tdg { return &Tdg{} }

func (*Tdg) Description() string { return "T†" }
func (*Tdg) NumBits() int        { return 1 }

func (*Tdg) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\gate{T^\dagger}`)
	return nil
}

func (*Tdg) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("tdg %s", bitNames[bits[0]]), nil
}

func (*Tdg) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("tdag %s", bitNames[bits[0]]), nil
}

// Swap exchanges two qubits.
type Swap struct{}

// NewSwap creates a new Swap gate.
func NewSwap() *Swap { return &Swap{} }

func (*Swap) Description() string { return "Swap" }
func (*Swap) NumBits() int        { return 2 }

func (*Swap) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], `\qswap`)
	st.SetField(bits[1], fmt.Sprintf(`\qswap \qwx[%d]`, bits[0]-bits[1]))
	return nil
}

// DrawChecked reserves the whole range between the swapped bits, so the
// connecting line cannot cross other content.
func (sw *Swap) DrawChecked(bits []int, st *qcircuit.State) error {
	st.ReserveRange(bits, nil)
	if err := sw.Draw(bits, st); err != nil {
		return err
	}
	st.ClaimRange(bits, nil)
	return nil
}

func (*Swap) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("swap %s, %s", bitNames[bits[0]], bitNames[bits[1]]), nil
}

func (*Swap) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("swap %s, %s", bitNames[bits[0]], bitNames[bits[1]]), nil
}
