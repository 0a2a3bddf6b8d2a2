package errors

import (
	"testing"
)

func TestValidateCircuitName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "bell", false},
		{"valid with dash", "bell-pair", false},
		{"valid with underscore", "bell_pair", false},
		{"valid with dot", "bell.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCircuitName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCircuitName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid lowercase", "h", false},
		{"valid multi char", "ccx", false},
		{"valid with digit", "u1", false},
		{"valid uppercase", "CX", false},

		{"empty", "", true},
		{"leading digit", "1x", true},
		{"with space", "c x", true},
		{"with punctuation", "x!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBasis(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default Z", "", false},
		{"X basis", "X", false},
		{"Y basis", "Y", false},

		{"lowercase x", "x", true},
		{"arbitrary label", "W", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBasis(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBasis(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/circuit.tex", false},
		{"valid simple", "circuit.svg", false},
		{"valid absolute", "/tmp/circuit.tex", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
