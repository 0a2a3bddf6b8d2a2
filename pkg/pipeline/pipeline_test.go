package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/qsketch/qsketch/pkg/cache"
	"github.com/qsketch/qsketch/pkg/source"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"latex", false},
		{"qasm", false},
		{"cqasm", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"LATEX", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"latex", "qasm"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"latex", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatLaTeX {
		t.Errorf("Formats should default to [latex], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if !opts.ShouldAddInit() {
		t.Error("ShouldAddInit() should default to true")
	}
	if !opts.ShouldExpand() {
		t.Error("ShouldExpand() should default to true")
	}
}

func TestOptionsValidateRejectsBadFormat(t *testing.T) {
	opts := Options{Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid format should fail")
	}
}

func TestArtifactKeyOptsVary(t *testing.T) {
	a := Options{}
	b := Options{SkipInit: true}

	keyer := cache.NewDefaultKeyer()
	hash := "abc123"
	if keyer.ArtifactKey(hash, a.ArtifactKeyOpts("latex")) == keyer.ArtifactKey(hash, b.ArtifactKeyOpts("latex")) {
		t.Error("Different render options should produce different cache keys")
	}
	if keyer.ArtifactKey(hash, a.ArtifactKeyOpts("latex")) == keyer.ArtifactKey(hash, a.ArtifactKeyOpts("qasm")) {
		t.Error("Different formats should produce different cache keys")
	}
}

func bellDocument() *source.Document {
	return &source.Document{
		Name:  "bell",
		QBits: 2,
		CBits: 2,
		Ops: []source.OpSpec{
			{Type: "gate", Gate: "h", Bits: []int{0}},
			{Type: "gate", Gate: "cx", Bits: []int{0, 1}},
			{Type: "measure", QBit: 0, CBit: 0},
			{Type: "measure", QBit: 1, CBit: 1},
		},
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), bellDocument(), Options{
		Formats: []string{FormatLaTeX, FormatOpenQASM},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Circuit == nil {
		t.Fatal("Result.Circuit is nil")
	}
	if result.Stats.QBitCount != 2 {
		t.Errorf("QBitCount = %d, want 2", result.Stats.QBitCount)
	}
	if result.Stats.OpCount != 4 {
		t.Errorf("OpCount = %d, want 4", result.Stats.OpCount)
	}
	if result.CircuitHash == "" {
		t.Error("CircuitHash is empty")
	}

	latex := string(result.Artifacts[FormatLaTeX])
	if !strings.Contains(latex, `\Qcircuit`) {
		t.Errorf("LaTeX artifact missing \\Qcircuit:\n%s", latex)
	}
	openqasm := string(result.Artifacts[FormatOpenQASM])
	if !strings.Contains(openqasm, "OPENQASM 2.0;") {
		t.Errorf("QASM artifact missing header:\n%s", openqasm)
	}
	if !strings.Contains(openqasm, "cx q[0], q[1];") {
		t.Errorf("QASM artifact missing cx:\n%s", openqasm)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatLaTeX}}

	first, err := runner.Execute(context.Background(), bellDocument(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("First run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), bellDocument(), opts)
	if err != nil {
		t.Fatalf("Execute() second run error: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("Second run should hit the cache")
	}
	if string(first.Artifacts[FormatLaTeX]) != string(second.Artifacts[FormatLaTeX]) {
		t.Error("Cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache
	refreshOpts := Options{Formats: []string{FormatLaTeX}, Refresh: true}
	third, err := runner.Execute(context.Background(), bellDocument(), refreshOpts)
	if err != nil {
		t.Fatalf("Execute() refresh error: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("Refresh run should not hit the cache")
	}
}

func TestRunnerExecuteBuildError(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := &source.Document{Name: "bad", QBits: 0}
	if _, err := runner.Execute(context.Background(), doc, Options{}); err == nil {
		t.Error("Execute() with invalid document should fail")
	}
}

func TestRenderDOT(t *testing.T) {
	c, err := source.Build(bellDocument())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	artifacts, err := Render(c, Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	dotSrc := string(artifacts[FormatDOT])
	if !strings.Contains(dotSrc, "digraph circuit") {
		t.Errorf("DOT artifact missing digraph header:\n%s", dotSrc)
	}
}

func TestDocumentHashStable(t *testing.T) {
	h1 := DocumentHash(bellDocument())
	h2 := DocumentHash(bellDocument())
	if h1 == "" {
		t.Fatal("DocumentHash returned empty string")
	}
	if h1 != h2 {
		t.Errorf("DocumentHash not stable: %q vs %q", h1, h2)
	}

	other := bellDocument()
	other.QBits = 3
	if DocumentHash(other) == h1 {
		t.Error("Different documents should hash differently")
	}
}
