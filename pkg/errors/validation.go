package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCircuitName validates a circuit name for safety and correctness.
// It rejects names that could be used for path traversal or injection
// attacks when the name doubles as a file or document key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateCircuitName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCircuit, "circuit name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidCircuit, "circuit name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCircuit, "circuit name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidCircuit, "circuit name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// gateNameRegex matches the gate names accepted by the composite gate
// description grammar.
var gateNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// ValidateGateName validates a gate name as used in circuit description
// files and composite gate definitions.
func ValidateGateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGate, "gate name cannot be empty")
	}

	if !gateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidGate, "invalid gate name: %q", name)
	}

	return nil
}

// ValidateBasis validates a measurement basis label. Supported bases are
// the empty string (Z), "X" and "Y".
func ValidateBasis(basis string) error {
	switch basis {
	case "", "X", "Y":
		return nil
	default:
		return New(ErrCodeInvalidInput, "invalid measurement basis: %q", basis)
	}
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
