package circuit

import (
	"fmt"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

// RX rotates the state over theta radians around the x axis.
type RX struct {
	theta float64
	desc  string
}

// NewRX creates a new RX gate with rotation angle theta.
func NewRX(theta float64) *RX {
	return &RX{theta: theta, desc: fmt.Sprintf("RX(%.4f)", theta)}
}

func (g *RX) Description() string { return g.desc }
func (*RX) NumBits() int          { return 1 }

func (g *RX) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], fmt.Sprintf(`\gate{R_x(%.4f)}`, g.theta))
	return nil
}

func (g *RX) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("rx(%v) %s", g.theta, bitNames[bits[0]]), nil
}

func (g *RX) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("rx %s, %v", bitNames[bits[0]], g.theta), nil
}

// RY rotates the state over theta radians around the y axis.
type RY struct {
	theta float64
	desc  string
}

// NewRY creates a new RY gate with rotation angle theta.
func NewRY(theta float64) *RY {
	return &RY{theta: theta, desc: fmt.Sprintf("RY(%.4f)", theta)}
}

func (g *RY) Description() string { return g.desc }
func (*RY) NumBits() int          { return 1 }

func (g *RY) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], fmt.Sprintf(`\gate{R_y(%.4f)}`, g.theta))
	return nil
}

// OpenQASM emits the u3 form: ry is not part of the base OpenQASM gate
// set accepted by all backends, but u3(θ, 0, 0) is equivalent.
func (g *RY) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("u3(%v, 0, 0) %s", g.theta, bitNames[bits[0]]), nil
}

func (g *RY) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("ry %s, %v", bitNames[bits[0]], g.theta), nil
}

// RZ rotates the state over lambda radians around the z axis.
type RZ struct {
	lambda float64
	desc   string
}

// NewRZ creates a new RZ gate with rotation angle lambda.
func NewRZ(lambda float64) *RZ {
	return &RZ{lambda: lambda, desc: fmt.Sprintf("RZ(%.4f)", lambda)}
}

func (g *RZ) Description() string { return g.desc }
func (*RZ) NumBits() int          { return 1 }

func (g *RZ) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], fmt.Sprintf(`\gate{R_z(%.4f)}`, g.lambda))
	return nil
}

func (g *RZ) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("rz(%v) %s", g.lambda, bitNames[bits[0]]), nil
}

func (g *RZ) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("rz %s, %v", bitNames[bits[0]], g.lambda), nil
}

// U1 applies a phase shift of lambda to the |1⟩ component.
type U1 struct {
	lambda float64
	desc   string
}

// NewU1 creates a new U1 gate with phase lambda.
func NewU1(lambda float64) *U1 {
	return &U1{lambda: lambda, desc: fmt.Sprintf("U1(%.4f)", lambda)}
}

func (g *U1) Description() string { return g.desc }
func (*U1) NumBits() int          { return 1 }

func (g *U1) Draw(bits []int, st *qcircuit.State) error {
	st.SetField(bits[0], fmt.Sprintf(`\gate{U_1(%.4f)}`, g.lambda))
	return nil
}

func (g *U1) OpenQASM(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("u1(%v) %s", g.lambda, bitNames[bits[0]]), nil
}

func (g *U1) CQasm(bitNames []string, bits []int) (string, error) {
	return fmt.Sprintf("rz %s, %v", bitNames[bits[0]], g.lambda), nil
}
