// Package dot renders circuits as Graphviz node-link diagrams.
//
// [ToDOT] lays the circuit out left to right: one source node per bit
// line, one box per operation, and wire edges threading each bit line
// through the operations that touch it. Classical wires are dashed.
// The DOT string can be rasterized with [RenderSVG] or [RenderPNG].
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/qsketch/qsketch/pkg/circuit"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes the operand bits in operation labels. When false,
	// only the gate description is shown.
	Detailed bool
}

// ToDOT converts a circuit to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(c *circuit.Circuit, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	totalBits := c.NumQbits() + c.NumCbits()
	last := make([]string, totalBits)
	for row := range last {
		id := fmt.Sprintf("bit%d", row)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=\"\"];\n", id, rowLabel(c, row))
		last[row] = id
	}
	buf.WriteString("\n")

	var edges bytes.Buffer
	for i, op := range c.Ops() {
		id := fmt.Sprintf("op%d", i)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(opAttrs(c, op, opts), ", "))
		for _, row := range opRows(c, op) {
			style := ""
			if row >= c.NumQbits() {
				style = " [style=dashed]"
			}
			fmt.Fprintf(&edges, "  %q -> %q%s;\n", last[row], id, style)
			last[row] = id
		}
	}

	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

func rowLabel(c *circuit.Circuit, row int) string {
	if row < c.NumQbits() {
		return fmt.Sprintf("q%d", row)
	}
	return fmt.Sprintf("c%d", row-c.NumQbits())
}

// opRows returns the bit line rows an operation touches, classical bits
// mapped behind the quantum ones.
func opRows(c *circuit.Circuit, op circuit.Op) []int {
	switch op.Kind {
	case circuit.OpGate:
		rows := make([]int, 0, len(op.Bits)+len(op.Control))
		rows = append(rows, op.Bits...)
		for _, cb := range op.Control {
			rows = append(rows, c.NumQbits()+cb)
		}
		return rows
	case circuit.OpMeasure:
		return []int{op.QBit, c.NumQbits() + op.CBit}
	case circuit.OpReset:
		return []int{op.QBit}
	case circuit.OpBarrier:
		return op.Bits
	}
	return nil
}

func opAttrs(c *circuit.Circuit, op circuit.Op, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", opLabel(c, op, opts))}
	switch op.Kind {
	case circuit.OpBarrier:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case circuit.OpMeasure:
		attrs = append(attrs, "fillcolor=lightyellow")
	case circuit.OpGate:
		if op.Conditioned() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
	}
	return attrs
}

func opLabel(c *circuit.Circuit, op circuit.Op, opts Options) string {
	var label string
	switch op.Kind {
	case circuit.OpGate:
		label = op.Gate.Description()
		if op.Conditioned() {
			label = fmt.Sprintf("%s if c=%d", label, op.Target)
		}
	case circuit.OpMeasure:
		label = "measure"
		if op.Basis != "" {
			label = fmt.Sprintf("measure %s", op.Basis)
		}
	case circuit.OpReset:
		label = "reset"
	case circuit.OpBarrier:
		label = "barrier"
	}

	if opts.Detailed {
		operands := make([]string, len(opRows(c, op)))
		for i, row := range opRows(c, op) {
			operands[i] = rowLabel(c, row)
		}
		label = fmt.Sprintf("%s\n%s", label, strings.Join(operands, ", "))
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if post != nil {
		return post(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the viewBox starts at the
// origin and the element carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
