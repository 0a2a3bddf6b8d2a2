package qcircuit

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoOpenLoop is returned by [State.EndLoop] when no loop is currently
// open. Closing an unopened loop is a construction bug in the caller; the
// recorded spans would be meaningless if it were ignored.
var ErrNoOpenLoop = errors.New("no loop is currently open")

// loopSpan is a closed loop annotation over a column range.
type loopSpan struct {
	start int // first column inside the loop
	end   int // last column inside the loop
	count int // number of iterations
}

// openLoop marks a loop that has been started but not yet closed.
type openLoop struct {
	start int
	count int
}

// State accumulates the cell grid for one diagram. Every row in the grid
// corresponds to a bit line: qubit q is row q, classical bit c is row
// NumQbits+c. Every column holds exactly NumQbits+NumCbits cells, each
// either empty or a LaTeX fragment.
//
// A State is built up by one sequential pass over a circuit and rendered
// once; it is not safe for concurrent use and is not meant to be reused
// after [State.Code].
type State struct {
	nrQbits int
	nrCbits int

	// addInit controls whether bit lines get \lstick initialization labels.
	addInit bool
	// expandComposite controls whether composite gates draw their
	// components or a single multi-bit box.
	expandComposite bool

	// columns holds the LaTeX fragment per cell; "" means empty. The outer
	// index is the column (rendered time step), the inner index the row.
	columns [][]string
	// inUse flags which rows of the newest column are occupied. It starts
	// all-true so that the first write opens column 0, and resets to
	// all-false on every append.
	inUse []bool
	// controlled selects the controlled drawing variant for gates that
	// have one (e.g. \targ instead of \gate{X}).
	controlled bool

	loops     []loopSpan
	openLoops []openLoop
}

// NewState creates a layout state for a circuit with nrQbits quantum bits
// and nrCbits classical bits. Initialization labels and composite
// expansion are enabled by default.
func NewState(nrQbits, nrCbits int) *State {
	inUse := make([]bool, nrQbits+nrCbits)
	for i := range inUse {
		inUse[i] = true
	}
	return &State{
		nrQbits:         nrQbits,
		nrCbits:         nrCbits,
		addInit:         true,
		expandComposite: true,
		inUse:           inUse,
	}
}

// NumQbits returns the number of quantum bit lines.
func (st *State) NumQbits() int { return st.nrQbits }

// NumCbits returns the number of classical bit lines.
func (st *State) NumCbits() int { return st.nrCbits }

// TotalBits returns the total number of bit lines in the diagram.
func (st *State) TotalBits() int { return st.nrQbits + st.nrCbits }

// addColumn appends a blank column and marks every row free.
func (st *State) addColumn() {
	st.columns = append(st.columns, make([]string, st.TotalBits()))
	for i := range st.inUse {
		st.inUse[i] = false
	}
}

// mergeBits maps classical bit numbers onto the unified row index space
// and merges them with the quantum bits into one slice.
func (st *State) mergeBits(qbits, cbits []int) []int {
	bits := slices.Clone(qbits)
	for _, c := range cbits {
		bits = append(bits, st.nrQbits+c)
	}
	return bits
}

// Reserve ensures the rows for qbits and cbits are free in the current
// column, opening a new column if any of them is occupied. Use it when the
// forthcoming write touches exactly these rows with no connecting line.
func (st *State) Reserve(qbits, cbits []int) {
	for _, bit := range st.mergeBits(qbits, cbits) {
		if st.inUse[bit] {
			st.addColumn()
			return
		}
	}
}

// ReserveRange ensures that every row between the lowest and highest bit
// in qbits and cbits (inclusive) is free, opening a new column otherwise.
// Use it when a connecting line will span the range, so that nothing may
// sit between the endpoints. An empty bit set is a no-op.
func (st *State) ReserveRange(qbits, cbits []int) {
	bits := st.mergeBits(qbits, cbits)
	if len(bits) == 0 {
		return
	}
	first := slices.Min(bits)
	last := slices.Max(bits)
	if slices.Contains(st.inUse[first:last+1], true) {
		st.addColumn()
	}
}

// reserveAll ensures the current column is completely empty, opening a new
// column if any row at all is occupied. Used for full-width elements such
// as loop brackets.
func (st *State) reserveAll() {
	if slices.Contains(st.inUse, true) {
		st.addColumn()
	}
}

// ClaimRange marks every row between the lowest and highest bit in qbits
// and cbits (inclusive) as occupied without writing content. This keeps
// later operations out of columns crossed by a connecting line between
// the endpoints. An empty bit set is a no-op.
func (st *State) ClaimRange(qbits, cbits []int) {
	bits := st.mergeBits(qbits, cbits)
	if len(bits) == 0 {
		return
	}
	first := slices.Min(bits)
	last := slices.Max(bits)
	for bit := first; bit <= last; bit++ {
		st.inUse[bit] = true
	}
}

// SetField writes the LaTeX fragment for row bit in the current column and
// marks the row occupied. Callers are expected to reserve space first; if
// no column exists yet one is created so a forgotten reservation does not
// crash the export.
func (st *State) SetField(bit int, contents string) {
	if len(st.columns) == 0 {
		st.addColumn()
	}
	col := st.columns[len(st.columns)-1]
	col[bit] = contents
	st.inUse[bit] = true
}

// SetMeasurement adds a measurement of qbit into classical bit cbit. When
// basis is non-empty the meter is annotated with it. The classical row
// gets a \cwx arrow whose offset is the signed row distance up to the
// measured qubit.
func (st *State) SetMeasurement(qbit, cbit int, basis string) {
	cbitIdx := st.nrQbits + cbit
	st.ReserveRange([]int{qbit}, []int{cbit})
	meter := `\meter`
	if basis != "" {
		meter = fmt.Sprintf(`\meterB{%s}`, basis)
	}
	st.SetField(qbit, meter)
	st.SetField(cbitIdx, fmt.Sprintf(`\cw \cwx[%d]`, qbit-cbitIdx))
	st.ClaimRange([]int{qbit}, []int{cbit})
}

// SetReset adds the reinitialization of qbit to |0⟩, drawn as a pushed ket
// with an arrow to the previous column.
func (st *State) SetReset(qbit int) {
	st.Reserve([]int{qbit}, nil)
	st.SetField(qbit, `\push{~\ket{0}~} \ar @{|-{}} [0,-1]`)
}

// SetCondition draws the classical control of an operation on qbits by the
// register made up of the classical bits in control. The first bit in
// control corresponds to the least significant bit of target. Only the
// control dots and their connecting offsets are drawn here; the controlled
// operation itself is drawn by its own gate. A condition on no quantum
// bits draws nothing.
func (st *State) SetCondition(control []int, target uint64, qbits []int) {
	if len(qbits) == 0 {
		return
	}

	pbit := slices.Max(qbits)
	type bitPos struct{ bit, pos int }
	bp := make([]bitPos, len(control))
	for pos, idx := range control {
		bp[pos] = bitPos{bit: st.nrQbits + idx, pos: pos}
	}
	slices.SortFunc(bp, func(a, b bitPos) int { return a.bit - b.bit })

	for _, c := range bp {
		ctrl := `\cctrl`
		if target&(1<<c.pos) == 0 {
			ctrl = `\cctrlo`
		}
		st.SetField(c.bit, fmt.Sprintf("%s{%d}", ctrl, pbit-c.bit))
		pbit = c.bit
	}

	st.ClaimRange(qbits, control)
}

// SetBarrier adds a barrier over the quantum bits in qbits. Each maximal
// run of adjacent bits gets one \barrier fragment at its lowest row,
// spanning the run. Barriers always occupy a column of their own.
func (st *State) SetBarrier(qbits []int) {
	ranges := bitRanges(qbits)

	st.addColumn()
	for _, r := range ranges {
		st.SetField(r.first, fmt.Sprintf(`\qw \barrier{%d}`, r.last-r.first))
	}
}

// StartLoop opens a loop of count iterations at the current column. Loops
// occupy full-width columns so that the bracket aligns with the columns it
// spans. Close with [State.EndLoop].
func (st *State) StartLoop(count int) {
	st.reserveAll()
	st.openLoops = append(st.openLoops, openLoop{start: len(st.columns) - 1, count: count})
}

// EndLoop closes the loop opened by the most recent [State.StartLoop] and
// records its span for rendering. Returns ErrNoOpenLoop if no loop is
// open.
func (st *State) EndLoop() error {
	if len(st.openLoops) == 0 {
		return ErrNoOpenLoop
	}
	open := st.openLoops[len(st.openLoops)-1]
	st.openLoops = st.openLoops[:len(st.openLoops)-1]
	st.loops = append(st.loops, loopSpan{start: open.start, end: len(st.columns) - 1, count: open.count})
	st.reserveAll()
	return nil
}

// AddDots writes label centered over count rows downward from bit, in a
// full-width column of its own. This is used for the dots indicating the
// repeated body of a loop.
func (st *State) AddDots(bit, count int, label string) {
	st.reserveAll()
	st.SetField(bit, fmt.Sprintf(`\cds{%d}{%s}`, count, label))
	st.reserveAll()
}

// SetControlled switches between normal and controlled drawing variants
// and returns the previous setting. Callers should restore the previous
// value once their sub-gate has been drawn.
func (st *State) SetControlled(controlled bool) bool {
	prev := st.controlled
	st.controlled = controlled
	return prev
}

// IsControlled reports whether gates should currently draw their
// controlled variant.
func (st *State) IsControlled() bool { return st.controlled }

// SetExpandComposite sets whether composite gates draw their components
// (true) or a single multi-bit box (false).
func (st *State) SetExpandComposite(expand bool) { st.expandComposite = expand }

// ExpandComposite reports whether composite gates should draw their
// components.
func (st *State) ExpandComposite() bool { return st.expandComposite }

// SetAddInit sets whether bit lines are prefixed with their initial value.
func (st *State) SetAddInit(addInit bool) { st.addInit = addInit }

// bitRange is a maximal run of adjacent bit indices.
type bitRange struct {
	first int
	last  int
}

// bitRanges groups bits into maximal runs of adjacent indices. The input
// need not be sorted; duplicates collapse into their run.
func bitRanges(bits []int) []bitRange {
	if len(bits) == 0 {
		return nil
	}
	sorted := slices.Clone(bits)
	slices.Sort(sorted)

	ranges := []bitRange{{first: sorted[0], last: sorted[0]}}
	for _, b := range sorted[1:] {
		cur := &ranges[len(ranges)-1]
		if b <= cur.last+1 {
			cur.last = max(cur.last, b)
			continue
		}
		ranges = append(ranges, bitRange{first: b, last: b})
	}
	return ranges
}
