package errors

import (
	"strings"
	"testing"
)

func TestValidateWordText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "joy", false},
		{"empty", "", false},
		{"unicode", "Freude", false},
		{"with spaces", "deeply moved", false},
		{"max length", strings.Repeat("a", MaxWordLength), false},

		{"too long", strings.Repeat("a", MaxWordLength+1), true},
		{"invalid utf8", "\xff\xfe", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWordText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateWordText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateNodeCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -3, false},
		{"at limit", 64, false},
		{"over limit", 65, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeCount(tt.n, 64)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeTooLarge) {
				t.Errorf("ValidateNodeCount(%d) code = %v, want %v", tt.n, GetCode(err), ErrCodeTooLarge)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digits", "#4caf50", false},
		{"uppercase", "#E53935", false},
		{"three digits", "#fff", false},

		{"empty", "", true},
		{"no hash", "4caf50", true},
		{"named", "red", true},
		{"too short", "#12", true},
		{"bad digit", "#12345g", true},
		{"with alpha", "#11223344", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateKeyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"hash", "9f86d081884c7d65", false},
		{"namespaced", "layout:v1:abc", false},
		{"with slash", "artifact/svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("k", 300), true},
		{"path traversal", "foo/../bar", true},
		{"double slash", "foo//bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKeyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
