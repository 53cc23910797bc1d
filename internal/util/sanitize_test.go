package util

import "testing"

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "clean string", input: "1.2.3.4 login", expected: "1.2.3.4 login"},
		{name: "crlf", input: "Hello\r\nWorld", expected: "Hello World"},
		{name: "injected log line", input: "user\nlevel=error msg=forged", expected: "user level=error msg=forged"},
		{name: "control run collapses", input: "a\x00\x01\x1Fb", expected: "a b"},
		{name: "DEL character", input: "a\x7Fb", expected: "a b"},
		{name: "tab", input: "a\tb", expected: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeForLog(tt.input); got != tt.expected {
				t.Errorf("SanitizeForLog(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"abc":          "***",
		"abcd":         "****",
		"pb-key-12345": "********2345",
	}
	for in, want := range tests {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
