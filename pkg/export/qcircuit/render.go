package qcircuit

import (
	"fmt"
	"slices"
	"strings"
)

// Code serializes the accumulated grid to qcircuit LaTeX. It is read-only
// and can be called repeatedly, though a State is normally rendered once.
//
// The output starts with the \Qcircuit header, followed by one bracket
// line and one filler line when loops were recorded, then one line per bit
// row, and the closing brace. Empty cells render as idle wire (\qw for
// quantum rows, \cw for classical rows). When the final column has any
// occupied row, every row gets one extra trailing wire cell so the diagram
// ends on a clean segment.
func (st *State) Code() string {
	var b strings.Builder
	b.WriteString("\\Qcircuit @C=1em @R=.7em {\n")

	if len(st.loops) > 0 {
		st.writeLoopBrackets(&b)
	}

	lastColUsed := slices.Contains(st.inUse, true)
	for i := 0; i < st.TotalBits(); i++ {
		if st.addInit {
			if i < st.nrQbits {
				b.WriteString(`    \lstick{\ket{0}}`)
			} else {
				b.WriteString(`    \lstick{0}`)
			}
		} else {
			b.WriteString("    ")
		}

		for _, col := range st.columns {
			b.WriteString(" & ")
			if col[i] != "" {
				b.WriteString(col[i])
			} else {
				b.WriteString(st.idleWire(i))
			}
		}

		if lastColUsed {
			b.WriteString(" & ")
			b.WriteString(st.idleWire(i))
		}
		b.WriteString(" \\\\\n")
	}
	b.WriteString("}\n")

	return b.String()
}

// writeLoopBrackets emits the bracket line referencing each recorded loop
// span, then a filler line matching the column count. The fixed "2" row
// coordinates place the braces above the first bit line.
func (st *State) writeLoopBrackets(b *strings.Builder) {
	prevIdx := 0
	b.WriteString(`    & `)
	for _, l := range st.loops {
		b.WriteString(strings.Repeat("& ", l.start-prevIdx))
		fmt.Fprintf(b,
			"\\mbox{} \\POS\"%d,%d\".\"%d,%d\".\"%d,%d\".\"%d,%d\"!C*+<.7em>\\frm{^\\}},+U*++!D{%d\\times}",
			2, l.start+2, 2, l.start+2, 2, l.end+2, 2, l.end+2, l.count)
		prevIdx = l.start
	}
	b.WriteString("\\\\\n")

	b.WriteString("    ")
	b.WriteString(strings.Repeat("& ", len(st.columns)))
	b.WriteString("\\\\\n")
}

// idleWire returns the default wire token for a row: quantum rows run a
// quantum wire, classical rows a classical one.
func (st *State) idleWire(row int) string {
	if row < st.nrQbits {
		return `\qw`
	}
	return `\cw`
}
