package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qsketch/qsketch/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"latex"}},
		{"qasm", []string{"qasm"}},
		{"latex,svg,png", []string{"latex", "svg", "png"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base   string
		format string
		multi  bool
		want   string
	}{
		{"out.tex", pipeline.FormatLaTeX, false, "out.tex"},
		{"out", pipeline.FormatLaTeX, false, "out.tex"},
		{"out.tex", pipeline.FormatLaTeX, true, "out.tex"},
		{"out.tex", pipeline.FormatSVG, true, "out.svg"},
		{"diagrams/bell", pipeline.FormatOpenQASM, true, "diagrams/bell.qasm"},
		{"bell", pipeline.FormatPNG, true, "bell.png"},
	}

	for _, tt := range tests {
		got := outputPath(tt.base, tt.format, tt.multi)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q, %v) = %q, want %q", tt.base, tt.format, tt.multi, got, tt.want)
		}
	}
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.tex")

	if err := writeArtifact(path, []byte("content")); err != nil {
		t.Fatalf("writeArtifact() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("content = %q, want %q", data, "content")
	}
}

func TestRenderCommandToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bell.toml")
	circuit := `
name = "bell"
qbits = 2
cbits = 2

[[ops]]
type = "gate"
gate = "h"
bits = [0]

[[ops]]
type = "gate"
gate = "cx"
bits = [0, 1]
`
	if err := os.WriteFile(input, []byte(circuit), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	output := filepath.Join(dir, "bell")
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "latex,qasm", "-o", output, "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	latex, err := os.ReadFile(output + ".tex")
	if err != nil {
		t.Fatalf("read latex output: %v", err)
	}
	if !strings.Contains(string(latex), `\Qcircuit`) {
		t.Errorf("latex output missing \\Qcircuit:\n%s", latex)
	}

	qasm, err := os.ReadFile(output + ".qasm")
	if err != nil {
		t.Fatalf("read qasm output: %v", err)
	}
	if !strings.Contains(string(qasm), "cx q[0], q[1];") {
		t.Errorf("qasm output missing cx:\n%s", qasm)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bell.toml")
	if err := os.WriteFile(input, []byte("name = \"x\"\nqbits = 1\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "pdf", "--no-cache"})

	if err := root.Execute(); err == nil {
		t.Error("render with invalid format should fail")
	}
}
