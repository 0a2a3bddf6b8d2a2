package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qsketch/qsketch/pkg/pipeline"
	"github.com/qsketch/qsketch/pkg/source"
)

// formatExtensions maps output formats to their file extensions.
var formatExtensions = map[string]string{
	pipeline.FormatLaTeX:    ".tex",
	pipeline.FormatOpenQASM: ".qasm",
	pipeline.FormatCQasm:    ".cq",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatPNG:      ".png",
}

// binaryFormats are formats that cannot be written to a terminal.
var binaryFormats = map[string]bool{
	pipeline.FormatPNG: true,
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path for multiple formats)
	formats  string // comma-separated output formats
	noInit   bool   // omit initial state labels from LaTeX diagrams
	collapse bool   // draw composite gates as single blocks
	detailed bool   // show operand annotations in DOT/SVG/PNG output
	noCache  bool   // disable the artifact cache
	refresh  bool   // bypass cached artifacts
}

// renderCommand creates the render command for generating circuit output.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <circuit-file>",
		Short: "Render a circuit file as LaTeX, QASM, or a Graphviz drawing",
		Long: `Render reads a circuit document (TOML or JSON) and generates output in
one or more formats.

Formats:
  latex   LaTeX qcircuit diagram (default)
  qasm    OpenQASM 2.0 program
  cqasm   cQASM 1.0 program
  dot     Graphviz DOT source
  svg     SVG drawing (via Graphviz)
  png     PNG drawing (via Graphviz)

With a single text format and no --output, the result is written to stdout.
With --output, each format is written to a file whose extension matches the
format.`,
		Example: `  qsketch render bell.toml
  qsketch render bell.toml -f qasm
  qsketch render bell.toml -f latex,svg -o diagrams/bell
  qsketch render teleport.json --collapse -o teleport.tex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (base path for multiple formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated output formats (default: latex)")
	cmd.Flags().BoolVar(&opts.noInit, "no-init", false, "omit initial state labels from the diagram")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", false, "draw composite gates as single blocks")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate DOT/SVG/PNG nodes with their operands")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached artifacts exist")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	doc, _, err := source.LoadFile(path)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Formats:  parseFormats(opts.formats),
		SkipInit: opts.noInit,
		Collapse: opts.collapse,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	// Writing to stdout only works for a single text format.
	toStdout := opts.output == ""
	if toStdout {
		if len(pipeOpts.Formats) > 1 {
			return fmt.Errorf("multiple formats require --output")
		}
		if binaryFormats[pipeOpts.Formats[0]] {
			return fmt.Errorf("%s output requires --output", pipeOpts.Formats[0])
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(cmd.Context(), "Rendering "+filepath.Base(path))
	if !toStdout {
		spin.Start()
	}

	result, err := runner.Execute(cmd.Context(), doc, pipeOpts)
	if err != nil {
		spin.Stop()
		return err
	}
	spin.Stop()

	if toStdout {
		fmt.Print(string(result.Artifacts[pipeOpts.Formats[0]]))
		return nil
	}

	printSuccess("Rendered %s", filepath.Base(path))
	printStats(result.Circuit.NumQbits(), result.Circuit.OpCount(), result.CacheInfo.RenderHit)

	for _, format := range pipeOpts.Formats {
		out := outputPath(opts.output, format, len(pipeOpts.Formats) > 1)
		if err := writeArtifact(out, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(out)
	}
	return nil
}

// outputPath derives the output file name for a format. With multiple
// formats, the base path's extension is replaced per format.
func outputPath(base, format string, multi bool) string {
	ext := formatExtensions[format]
	if !multi && filepath.Ext(base) != "" {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
