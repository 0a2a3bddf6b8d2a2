package qcircuit

// Drawer is implemented by gates that can draw themselves into a diagram.
type Drawer interface {
	// Draw adds the gate, operating on the bits in bits, to the state.
	// The caller must have reserved the touched rows beforehand.
	Draw(bits []int, st *State) error
}

// CheckedDrawer is implemented by gates that need more than their own rows
// free before drawing: controlled gates reserve and claim the whole range
// crossed by their connecting line, multi-bit boxes reserve the rows they
// span. Gates without the method get the default placement of
// [DrawChecked]: a plain reserve over exactly the touched bits.
type CheckedDrawer interface {
	Drawer
	DrawChecked(bits []int, st *State) error
}

// DrawChecked ensures the rows d needs are free and then draws it. Gates
// implementing [CheckedDrawer] place themselves; all others get a plain
// reserve over bits first.
func DrawChecked(d Drawer, bits []int, st *State) error {
	if cd, ok := d.(CheckedDrawer); ok {
		return cd.DrawChecked(bits, st)
	}
	st.Reserve(bits, nil)
	return d.Draw(bits, st)
}
