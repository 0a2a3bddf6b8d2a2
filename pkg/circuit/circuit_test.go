package circuit

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCircuit(t *testing.T) {
	c := New(3, 2)
	if c.NumQbits() != 3 {
		t.Errorf("NumQbits() = %d, want 3", c.NumQbits())
	}
	if c.NumCbits() != 2 {
		t.Errorf("NumCbits() = %d, want 2", c.NumCbits())
	}
	if c.OpCount() != 0 {
		t.Errorf("OpCount() = %d, want 0", c.OpCount())
	}
}

func TestAddGateValidation(t *testing.T) {
	c := New(2, 1)

	if err := c.AddGate(NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if err := c.AddGate(NewH(), 0, 1); !errors.Is(err, ErrBitCountMismatch) {
		t.Errorf("AddGate() with too many bits: error = %v, want %v", err, ErrBitCountMismatch)
	}
	if err := c.AddGate(NewH(), 2); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("AddGate() on qubit 2 of 2: error = %v, want %v", err, ErrInvalidBit)
	}
	if err := c.AddGate(NewH(), -1); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("AddGate() on qubit -1: error = %v, want %v", err, ErrInvalidBit)
	}
	if err := c.AddConditionalGate([]int{1}, 1, NewH(), 0); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("AddConditionalGate() on cbit 1 of 1: error = %v, want %v", err, ErrInvalidBit)
	}
	if c.OpCount() != 1 {
		t.Errorf("OpCount() = %d after failed adds, want 1", c.OpCount())
	}
}

func TestMeasureValidation(t *testing.T) {
	c := New(1, 1)
	if err := c.Measure(0, 0); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if err := c.Measure(1, 0); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("Measure() on qubit 1 of 1: error = %v, want %v", err, ErrInvalidBit)
	}
	if err := c.Measure(0, 1); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("Measure() into cbit 1 of 1: error = %v, want %v", err, ErrInvalidBit)
	}
	if err := c.Reset(3); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("Reset() on qubit 3 of 1: error = %v, want %v", err, ErrInvalidBit)
	}
	if err := c.Barrier(0, 2); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("Barrier() over qubit 2 of 1: error = %v, want %v", err, ErrInvalidBit)
	}
}

func TestOpsReturnsCopy(t *testing.T) {
	c := New(1, 0)
	if err := c.AddGate(NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	ops := c.Ops()
	ops[0].Kind = OpBarrier
	if c.Ops()[0].Kind != OpGate {
		t.Error("mutating the returned ops changed the circuit")
	}
}

func TestLatexDiagram(t *testing.T) {
	c := New(2, 2)
	if err := c.AddGate(NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if err := c.AddGate(NewCX(), 0, 1); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if err := c.Measure(0, 0); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if err := c.Measure(1, 1); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}

	got, err := c.LatexDiagram()
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	want := "\\Qcircuit @C=1em @R=.7em {\n" +
		"    \\lstick{\\ket{0}} & \\gate{H} & \\ctrl{1} & \\meter & \\qw & \\qw \\\\\n" +
		"    \\lstick{\\ket{0}} & \\qw & \\targ & \\qw & \\meter & \\qw \\\\\n" +
		"    \\lstick{0} & \\cw & \\cw & \\cw \\cwx[-2] & \\cw & \\cw \\\\\n" +
		"    \\lstick{0} & \\cw & \\cw & \\cw & \\cw \\cwx[-2] & \\cw \\\\\n" +
		"}\n"
	if got != want {
		t.Errorf("LatexDiagram() = %q, want %q", got, want)
	}
}

func TestLatexDiagramConditional(t *testing.T) {
	c := New(1, 2)
	if err := c.AddConditionalGate([]int{0, 1}, 1, NewX(), 0); err != nil {
		t.Fatalf("AddConditionalGate() error: %v", err)
	}

	got, err := c.LatexDiagram()
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	want := "\\Qcircuit @C=1em @R=.7em {\n" +
		"    \\lstick{\\ket{0}} & \\gate{X} & \\qw \\\\\n" +
		"    \\lstick{0} & \\cctrl{-1} & \\cw \\\\\n" +
		"    \\lstick{0} & \\cctrlo{-1} & \\cw \\\\\n" +
		"}\n"
	if got != want {
		t.Errorf("LatexDiagram() = %q, want %q", got, want)
	}
}

func TestLatexDiagramWithoutInitialization(t *testing.T) {
	c := New(1, 0)
	if err := c.AddGate(NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}

	got, err := c.LatexDiagram(WithoutInitialization())
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	want := "\\Qcircuit @C=1em @R=.7em {\n" +
		"     & \\gate{H} & \\qw \\\\\n" +
		"}\n"
	if got != want {
		t.Errorf("LatexDiagram() = %q, want %q", got, want)
	}
}

func TestLatexDiagramCompositeModes(t *testing.T) {
	build := func() *Circuit {
		g := NewComposite("G", 2)
		g.AddGate(NewH(), 0)
		g.AddGate(NewX(), 1)
		c := New(2, 0)
		if err := c.AddGate(g, 0, 1); err != nil {
			t.Fatalf("AddGate() error: %v", err)
		}
		return c
	}

	expanded, err := build().LatexDiagram()
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	want := "\\Qcircuit @C=1em @R=.7em {\n" +
		"    \\lstick{\\ket{0}} & \\gate{H} & \\qw \\\\\n" +
		"    \\lstick{\\ket{0}} & \\gate{X} & \\qw \\\\\n" +
		"}\n"
	if expanded != want {
		t.Errorf("expanded LatexDiagram() = %q, want %q", expanded, want)
	}

	collapsed, err := build().LatexDiagram(WithCollapsedComposites())
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	want = "\\Qcircuit @C=1em @R=.7em {\n" +
		"    \\lstick{\\ket{0}} & \\multigate{1}{G} & \\qw \\\\\n" +
		"    \\lstick{\\ket{0}} & \\ghost{G} & \\qw \\\\\n" +
		"}\n"
	if collapsed != want {
		t.Errorf("collapsed LatexDiagram() = %q, want %q", collapsed, want)
	}
}

func TestLatexDiagramBarrierAndReset(t *testing.T) {
	c := New(2, 0)
	if err := c.AddGate(NewH(), 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if err := c.Barrier(0, 1); err != nil {
		t.Fatalf("Barrier() error: %v", err)
	}
	if err := c.Reset(0); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	got, err := c.LatexDiagram()
	if err != nil {
		t.Fatalf("LatexDiagram() error: %v", err)
	}
	if !strings.Contains(got, `\barrier{1}`) {
		t.Errorf("LatexDiagram() missing barrier: %q", got)
	}
	if !strings.Contains(got, `\push{~\ket{0}~}`) {
		t.Errorf("LatexDiagram() missing reset: %q", got)
	}
}

// opaqueGate implements Gate but none of the export interfaces.
type opaqueGate struct{}

func (opaqueGate) Description() string { return "opaque" }
func (opaqueGate) NumBits() int        { return 1 }

func TestLatexDiagramNotExportable(t *testing.T) {
	c := New(1, 0)
	if err := c.AddGate(opaqueGate{}, 0); err != nil {
		t.Fatalf("AddGate() error: %v", err)
	}
	if _, err := c.LatexDiagram(); !errors.Is(err, ErrNotExportable) {
		t.Errorf("LatexDiagram() error = %v, want %v", err, ErrNotExportable)
	}
}

func TestConditionalDefaults(t *testing.T) {
	got, err := ConditionalOpenQASM(NewH(), "b == 1", qasmNames, []int{0})
	if err != nil {
		t.Fatalf("ConditionalOpenQASM() error: %v", err)
	}
	if want := "if (b == 1) h qb0"; got != want {
		t.Errorf("ConditionalOpenQASM() = %q, want %q", got, want)
	}

	got, err = ConditionalCQasm(NewX(), "b", qasmNames, []int{0})
	if err != nil {
		t.Fatalf("ConditionalCQasm() error: %v", err)
	}
	if want := "c-x b, qb0"; got != want {
		t.Errorf("ConditionalCQasm() = %q, want %q", got, want)
	}

	if _, err := ConditionalOpenQASM(opaqueGate{}, "b == 1", qasmNames, []int{0}); !errors.Is(err, ErrNotExportable) {
		t.Errorf("ConditionalOpenQASM(opaque) error = %v, want %v", err, ErrNotExportable)
	}
}
