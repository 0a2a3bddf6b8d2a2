package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/qsketch/qsketch/pkg/circuit"
	qerrors "github.com/qsketch/qsketch/pkg/errors"
)

// Format identifies a circuit description file format.
type Format string

const (
	// FormatTOML is the TOML circuit description format.
	FormatTOML Format = "toml"
	// FormatJSON is the JSON circuit description format.
	FormatJSON Format = "json"
)

// DetectFormat determines the description format from a file name.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", qerrors.New(qerrors.ErrCodeInvalidFormat, "unsupported circuit file %q (want .toml or .json)", filepath.Base(path))
	}
}

// Parse decodes a circuit description document in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "parse TOML circuit")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "parse JSON circuit")
		}
	default:
		return nil, qerrors.New(qerrors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return &doc, nil
}

// LoadFile reads a circuit description file, detects its format from the
// extension, and builds the circuit. The returned document carries the
// name and register sizes alongside the constructed circuit.
func LoadFile(path string) (*Document, *circuit.Circuit, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, qerrors.Wrap(qerrors.ErrCodeFileNotFound, err, "circuit file %s", path)
		}
		return nil, nil, qerrors.Wrap(qerrors.ErrCodeInternal, err, "read circuit file %s", path)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, nil, err
	}
	c, err := Build(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, c, nil
}
