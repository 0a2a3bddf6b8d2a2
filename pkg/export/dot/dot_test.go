package dot

import (
	"strings"
	"testing"

	"github.com/qsketch/qsketch/pkg/circuit"
)

func TestToDOT_Basic(t *testing.T) {
	c := circuit.New(2, 0)
	if err := c.AddGate(circuit.NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if err := c.AddGate(circuit.NewCX(), 0, 1); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}

	dot := ToDOT(c, Options{})

	if !strings.Contains(dot, "digraph circuit") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"bit0" [label="q0"`) {
		t.Error("ToDOT() output missing bit line q0")
	}
	if !strings.Contains(dot, `label="H"`) {
		t.Error("ToDOT() output missing H gate node")
	}
	if !strings.Contains(dot, `"bit0" -> "op0"`) {
		t.Error("ToDOT() output missing wire from bit line to first gate")
	}
	if !strings.Contains(dot, `"op0" -> "op1"`) {
		t.Error("ToDOT() output missing wire between gates")
	}
	if !strings.Contains(dot, `"bit1" -> "op1"`) {
		t.Error("ToDOT() output missing wire from second bit line")
	}
}

func TestToDOT_ClassicalWiresDashed(t *testing.T) {
	c := circuit.New(1, 1)
	if err := c.Measure(0, 0); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}

	dot := ToDOT(c, Options{})

	if !strings.Contains(dot, `"bit1" [label="c0"`) {
		t.Error("ToDOT() output missing classical bit line c0")
	}
	if !strings.Contains(dot, `"bit1" -> "op0" [style=dashed]`) {
		t.Error("ToDOT() classical wire missing dashed style")
	}
	if !strings.Contains(dot, `label="measure"`) {
		t.Error("ToDOT() output missing measurement node")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	c := circuit.New(2, 0)
	if err := c.AddGate(circuit.NewCX(), 0, 1); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}

	dot := ToDOT(c, Options{Detailed: true})

	if !strings.Contains(dot, `label="CX\nq0, q1"`) {
		t.Error("ToDOT() detailed output missing operand bits")
	}
}

func TestToDOT_Barrier(t *testing.T) {
	c := circuit.New(2, 0)
	if err := c.Barrier(0, 1); err != nil {
		t.Fatalf("Barrier() error: %v", err)
	}

	dot := ToDOT(c, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() barrier missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() barrier missing lightgrey fill")
	}
}

func TestToDOT_Conditioned(t *testing.T) {
	c := circuit.New(1, 1)
	if err := c.AddConditionalGate([]int{0}, 1, circuit.NewX(), 0); err != nil {
		t.Fatalf("AddConditionalGate() error: %v", err)
	}

	dot := ToDOT(c, Options{})

	if !strings.Contains(dot, `label="X if c=1"`) {
		t.Error("ToDOT() conditioned gate missing condition in label")
	}
	if !strings.Contains(dot, `"bit1" -> "op0" [style=dashed]`) {
		t.Error("ToDOT() conditioned gate missing classical control wire")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="100pt" height="50pt" viewBox="10.00 20.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() viewBox not moved to origin: %q", got)
	}
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() missing pixel dimensions: %q", got)
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg">`)
	if got := normalizeViewBox(svg); string(got) != string(svg) {
		t.Errorf("normalizeViewBox() modified svg without viewBox: %q", got)
	}
}
