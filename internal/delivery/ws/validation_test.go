package ws

import (
	"strings"
	"testing"
)

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal name", "Alice", "Alice"},
		{"Empty stays empty", "", ""},
		{"Whitespace only", "   ", ""},
		{"Trim whitespace", "  Alice  ", "Alice"},
		{"HTML tags stripped", "<script>alert('xss')</script>Alice", "alert('xss')Alice"},
		{"Control chars removed", "Ali\x00ce\x1F", "Alice"},
		{"Long name truncated", strings.Repeat("a", 100), strings.Repeat("a", 32)},
		{"Only tags", "<b></b>", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeUsername(tc.input)
			if result != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, result)
			}
		})
	}
}
