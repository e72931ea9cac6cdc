package processor

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/vaani/internal"
	"codeberg.org/snonux/vaani/internal/anki"
	"codeberg.org/snonux/vaani/internal/history"
)

// DefaultDeckName is used for APKG exports without an explicit deck name
const DefaultDeckName = "Hindi Sanskrit Vocabulary"

// ExportStats describes a finished Anki export
type ExportStats struct {
	Path      string
	Cards     int
	WithAudio int
}

// ExportAnki writes records as an Anki package (.apkg) or, for a .csv
// path, as a CSV file with the audio copied to a media folder beside it.
// A directory path gets a file named after the deck.
func ExportAnki(records []history.Record, path, deckName string) (*ExportStats, error) {
	if deckName == "" {
		deckName = DefaultDeckName
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".apkg" {
		path = filepath.Join(path, internal.SanitizeFilename(deckName)+".apkg")
		ext = ".apkg"
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{OutputPath: path, IncludeHeaders: true})
	gen.AddRecords(records)
	total, withAudio := gen.Stats()
	if total == 0 {
		return nil, fmt.Errorf("no translations to export")
	}

	if ext == ".csv" {
		if err := gen.GenerateCSV(); err != nil {
			return nil, fmt.Errorf("failed to generate CSV: %w", err)
		}
		mediaDir := strings.TrimSuffix(path, filepath.Ext(path)) + "_media"
		if withAudio > 0 {
			if _, err := gen.CopyMedia(mediaDir); err != nil {
				return nil, err
			}
		}
	} else {
		if err := gen.GenerateAPKG(path, deckName); err != nil {
			return nil, fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	return &ExportStats{Path: path, Cards: total, WithAudio: withAudio}, nil
}
