package lexicon

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadFile_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "extra.yaml")
	content := `entries:
  - hindi: पानी
    sanskrit: जलम्
  - hindi: " सूर्य "
    sanskrit: सूर्यः
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	expected := []Entry{
		{Hindi: "पानी", Sanskrit: "जलम्"},
		{Hindi: "सूर्य", Sanskrit: "सूर्यः"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("LoadFile() = %v, want %v", entries, expected)
	}
}

func TestLoadFile_Pairs(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "extra.txt")
	content := "# extra words\n\nपानी = जलम्\r\nसूर्य=सूर्यः\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	expected := []Entry{
		{Hindi: "पानी", Sanskrit: "जलम्"},
		{Hindi: "सूर्य", Sanskrit: "सूर्यः"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("LoadFile() = %v, want %v", entries, expected)
	}
}

func TestReadPairs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"missing separator", "पानी जलम्\n", "line 1"},
		{"empty right side", "# c\nपानी =\n", "line 2"},
		{"empty left side", "= जलम्\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPairs(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want it to mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestReadYAML_MissingField(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("entries:\n  - hindi: पानी\n"))
	if err == nil {
		t.Error("expected error for entry without sanskrit word")
	}
}

func TestReadYAML_Empty(t *testing.T) {
	entries, err := ReadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/dictionary.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadWithExtras(t *testing.T) {
	d, err := LoadWithExtras("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != Default() {
		t.Error("empty path should return the default dictionary")
	}

	path := filepath.Join(t.TempDir(), "extra.txt")
	if err := os.WriteFile(path, []byte("पानी = जलम्\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	d, err = LoadWithExtras(path)
	if err != nil {
		t.Fatalf("LoadWithExtras failed: %v", err)
	}
	if got := d.Translate("नमस्ते पानी", HindiToSanskrit); got != "नमः जलम्" {
		t.Errorf("Translate = %q, want %q", got, "नमः जलम्")
	}
}
