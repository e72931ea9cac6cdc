package internal

import (
	"regexp"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"नमस्ते", "नमस्ते"},
		{"नमः त्वम्", "नमः_त्वम्"},
		{"hello/world", "hello_world"},
		{"a-b_c", "a-b_c"},
		{"deck: 1", "deck__1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerateAudioID(t *testing.T) {
	id := GenerateAudioID("hi-sa", "नमः")
	if !regexp.MustCompile(`^\d+_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("GenerateAudioID() = %q, unexpected format", id)
	}

	other := GenerateAudioID("sa-hi", "नमः")
	if id[len(id)-8:] == other[len(other)-8:] {
		t.Error("direction should change the hash part")
	}
}
