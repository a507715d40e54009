package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmSelection(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
		retries     int
	}{
		{name: "yes", input: "y\n", expected: true},
		{name: "full yes uppercase", input: "YES\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "retry until answered", input: "maybe\nsure\nno\n", expected: false, retries: 2},
		{name: "eof", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ConfirmSelection(strings.NewReader(tt.input), &out, "lint (#42)")

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ConfirmSelection() = %v, want %v", got, tt.expected)
			}
			if !strings.Contains(out.String(), "You selected: lint (#42)") {
				t.Errorf("prompt %q should name the selection", out.String())
			}
			if n := strings.Count(out.String(), "Please enter 'y' or 'n'."); n != tt.retries {
				t.Errorf("expected %d retries, got %d", tt.retries, n)
			}
		})
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, err := SelectCheckRun(nil); err == nil {
		t.Errorf("SelectCheckRun(nil) should fail")
	}
	if _, err := SelectPackageVersion(nil); err == nil {
		t.Errorf("SelectPackageVersion(nil) should fail")
	}
}
