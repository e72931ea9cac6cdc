package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// Item is one line of a batch file
type Item struct {
	Line      int
	Text      string
	Direction lexicon.Direction
	// HasDirection is false when the line carried no language prefix and
	// the caller's default direction applies
	HasDirection bool
}

// ReadBatchFile reads texts to translate, one per line.
// Supported line formats:
//   - "नमस्ते आप"       translated in the default direction
//   - "hi: नमस्ते आप"   Hindi source, translated to Sanskrit
//   - "sa: नमः त्वम्"    Sanskrit source, translated to Hindi
//   - "sa-hi: नमः"      explicit direction
//
// Blank lines and lines starting with # are ignored.
func ReadBatchFile(filename string) ([]Item, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	var items []Item
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		item, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		if item.Text == "" {
			continue
		}
		item.Line = lineNo
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return items, nil
}

func parseLine(line string) (Item, error) {
	prefix, rest, found := strings.Cut(line, ":")
	if !found || !isPrefix(prefix) {
		return Item{Text: line}, nil
	}

	prefix = strings.TrimSpace(prefix)
	dir, err := lexicon.DirectionFromSource(prefix)
	if err != nil {
		dir, err = lexicon.ParseDirection(prefix)
		if err != nil {
			return Item{}, err
		}
	}
	return Item{Text: strings.TrimSpace(rest), Direction: dir, HasDirection: true}, nil
}

// isPrefix reports whether s looks like a language prefix. Devanagari text
// containing a colon is not one.
func isPrefix(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > len("sanskrit-hindi") {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

// Directions resolves every item's direction against def
func Directions(items []Item, def lexicon.Direction) []lexicon.Direction {
	dirs := make([]lexicon.Direction, len(items))
	for i, item := range items {
		if item.HasDirection {
			dirs[i] = item.Direction
		} else {
			dirs[i] = def
		}
	}
	return dirs
}
