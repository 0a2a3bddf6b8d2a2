// Package pipeline provides the core circuit rendering pipeline for qsketch.
//
// This package implements the complete build → render pipeline that can be
// used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Turn a circuit document into an executable circuit description
//  2. Render: Generate output in various formats (LaTeX, QASM, cQASM, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"latex"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	latex := result.Artifacts["latex"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/qsketch/qsketch/pkg/cache"
	"github.com/qsketch/qsketch/pkg/circuit"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatLaTeX    = "latex"
	FormatOpenQASM = "qasm"
	FormatCQasm    = "cqasm"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatPNG      = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatLaTeX:    true,
	FormatOpenQASM: true,
	FormatCQasm:    true,
	FormatDOT:      true,
	FormatSVG:      true,
	FormatPNG:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render options
	Formats []string `json:"formats,omitempty"`

	// SkipInit omits the |0⟩ / 0 initialization labels from LaTeX diagrams
	// (default: false = labels are drawn).
	SkipInit bool `json:"skip_init,omitempty"`

	// Collapse draws composite gates as single blocks instead of expanding
	// them into their constituent gates (default: false = expand).
	Collapse bool `json:"collapse,omitempty"`

	// Detailed adds operand annotations to DOT/SVG/PNG output.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Circuit is the built circuit.
	Circuit *circuit.Circuit

	// CircuitHash is the content hash of the circuit document.
	CircuitHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	QBitCount  int
	OpCount    int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: latex, qasm, cqasm, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the formats and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatLaTeX}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ShouldAddInit returns whether LaTeX diagrams label the initial bit states.
func (o *Options) ShouldAddInit() bool {
	return !o.SkipInit
}

// ShouldExpand returns whether composite gates are drawn expanded.
func (o *Options) ShouldExpand() bool {
	return !o.Collapse
}

// DiagramOptions converts render options into diagram options for LaTeX output.
func (o *Options) DiagramOptions() []circuit.DiagramOption {
	var opts []circuit.DiagramOption
	if o.SkipInit {
		opts = append(opts, circuit.WithoutInitialization())
	}
	if o.Collapse {
		opts = append(opts, circuit.WithCollapsedComposites())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          format,
		AddInit:         o.ShouldAddInit(),
		ExpandComposite: o.ShouldExpand(),
		Detailed:        o.Detailed,
	}
}
