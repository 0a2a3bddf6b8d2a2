// Package qcircuit builds LaTeX circuit diagrams in the qcircuit dialect.
//
// The package implements an online layout engine over a growing grid of
// diagram cells. Rows correspond to bit lines (qubits first, classical
// bits after them), columns correspond to rendered time steps. Operations
// reserve the rows they are about to touch, write their LaTeX fragments,
// and the final diagram is serialized once with [State.Code].
//
// # Layout model
//
// A [State] owns an append-only list of columns plus an occupancy vector
// describing which rows of the newest column are taken. Placement is a
// greedy, single-pass bin-packer: when a reservation finds a conflicting
// row, a fresh column is opened and earlier columns are frozen. There is
// no backtracking and no attempt to minimize diagram width.
//
// # Usage
//
//	st := qcircuit.NewState(2, 1)
//	st.Reserve([]int{0}, nil)
//	st.SetField(0, `\gate{H}`)
//	st.SetMeasurement(0, 0, "")
//	fmt.Print(st.Code())
//
// Gates that can draw themselves implement [Drawer]. The emitted tokens
// (\qw, \cw, \meter, \cctrl, ...) are a compatibility contract with the
// qcircuit LaTeX package and downstream tooling; they must not change.
package qcircuit
