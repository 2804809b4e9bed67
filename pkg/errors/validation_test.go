package errors

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		wantErr bool
	}{
		{"valid handle", "octocat", 39, false},
		{"valid url", "https://example.com/path?q=1", 2048, false},
		{"no limit", strings.Repeat("a", 5000), 0, false},

		{"empty", "", 39, true},
		{"whitespace only", "   ", 39, true},
		{"too long", strings.Repeat("a", 40), 39, true},
		{"null byte", "foo\x00bar", 39, true},
		{"control char", "foo\x01bar", 39, true},
		{"newline", "foo\nbar", 39, true},
		{"carriage return", "foo\rbar", 39, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(ErrCodeInvalidInput, "handle", tt.input, tt.maxLen)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateInputCode(t *testing.T) {
	err := ValidateInput(ErrCodeInvalidTarget, "target", "", 0)
	if !Is(err, ErrCodeInvalidTarget) {
		t.Errorf("expected INVALID_TARGET, got %v", err)
	}
	if !strings.Contains(UserMessage(err), "target") {
		t.Errorf("message should name the field: %q", UserMessage(err))
	}
}

func TestValidateInputNamesValue(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("é", 100)
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantOut string
	}{
		{"control char", "http://a/\x01", 0, `target "http://a/\x01" contains invalid control characters`, ""},
		{"too long", long, 50, `target "https://example.com/`, long},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := UserMessage(ValidateInput(ErrCodeInvalidTarget, "target", tt.input, tt.maxLen))
			if !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.want)
			}
			if tt.wantOut != "" && strings.Contains(msg, tt.wantOut) {
				t.Errorf("message echoes the whole input: %q", msg)
			}
			if !utf8.ValidString(msg) {
				t.Errorf("message is not valid UTF-8: %q", msg)
			}
		})
	}
}
