package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type entryFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads extra entries from path. Files ending in .yaml or .yml use
// the form
//
//	entries:
//	  - hindi: पानी
//	    sanskrit: जलम्
//
// Any other file is read as "hindi = sanskrit" lines where blank lines and
// lines starting with # are ignored.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadPairs(f)
	}
}

// ReadYAML decodes entries from a YAML document
func ReadYAML(r io.Reader) ([]Entry, error) {
	var doc entryFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		e.Hindi = strings.TrimSpace(e.Hindi)
		e.Sanskrit = strings.TrimSpace(e.Sanskrit)
		if e.Hindi == "" || e.Sanskrit == "" {
			return nil, fmt.Errorf("entry %d: both hindi and sanskrit are required", i+1)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadPairs parses "hindi = sanskrit" lines
func ReadPairs(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, fmt.Errorf("line %d: expected \"hindi = sanskrit\"", lineNo)
		}
		hindi := strings.TrimSpace(line[:idx])
		sanskrit := strings.TrimSpace(line[idx+1:])
		if hindi == "" || sanskrit == "" {
			return nil, fmt.Errorf("line %d: both sides of '=' are required", lineNo)
		}
		entries = append(entries, Entry{Hindi: hindi, Sanskrit: sanskrit})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err > %w", err)
	}
	return entries, nil
}

// LoadWithExtras returns the default dictionary extended by the entries in
// path. An empty path returns Default unchanged.
func LoadWithExtras(path string) (*Dictionary, error) {
	if path == "" {
		return Default(), nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(extra), nil
}
