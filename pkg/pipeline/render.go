package pipeline

import (
	"fmt"

	"github.com/qsketch/qsketch/pkg/circuit"
	"github.com/qsketch/qsketch/pkg/export/dot"
	"github.com/qsketch/qsketch/pkg/export/qasm"
)

// Render generates output artifacts in the requested formats.
func Render(c *circuit.Circuit, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		data, err := RenderFormat(c, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single output artifact.
func RenderFormat(c *circuit.Circuit, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatLaTeX:
		code, err := c.LatexDiagram(opts.DiagramOptions()...)
		if err != nil {
			return nil, err
		}
		return []byte(code), nil
	case FormatOpenQASM:
		code, err := qasm.OpenQASM(c)
		if err != nil {
			return nil, err
		}
		return []byte(code), nil
	case FormatCQasm:
		code, err := qasm.CQasm(c)
		if err != nil {
			return nil, err
		}
		return []byte(code), nil
	case FormatDOT:
		return []byte(dot.ToDOT(c, opts.dotOptions())), nil
	case FormatSVG:
		return dot.RenderSVG(dot.ToDOT(c, opts.dotOptions()))
	case FormatPNG:
		return dot.RenderPNG(dot.ToDOT(c, opts.dotOptions()))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (o *Options) dotOptions() dot.Options {
	return dot.Options{Detailed: o.Detailed}
}
