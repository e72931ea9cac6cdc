package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/vaani/internal/history"
)

// Card is one Hindi/Sanskrit pair
type Card struct {
	Hindi     string
	Sanskrit  string
	AudioFile string // path to the spoken output, may be empty
	Direction string // direction the pair was translated in
	Notes     string
}

// CardFromRecord orders a history record into Hindi and Sanskrit fields
func CardFromRecord(rec history.Record) Card {
	card := Card{AudioFile: rec.AudioFile, Direction: rec.Direction}
	dir, err := rec.Dir()
	if err == nil && dir.Source() == "sa" {
		card.Sanskrit, card.Hindi = rec.Source, rec.Target
	} else {
		card.Hindi, card.Sanskrit = rec.Source, rec.Target
	}
	return card
}

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string
	IncludeHeaders bool
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{options: options}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddRecords adds one card per history record, skipping duplicates of
// the same Hindi/Sanskrit pair
func (g *Generator) AddRecords(records []history.Record) {
	seen := make(map[[2]string]bool, len(g.cards))
	for _, c := range g.cards {
		seen[[2]string{c.Hindi, c.Sanskrit}] = true
	}
	for _, rec := range records {
		card := CardFromRecord(rec)
		key := [2]string{card.Hindi, card.Sanskrit}
		if card.Hindi == "" || card.Sanskrit == "" || seen[key] {
			continue
		}
		seen[key] = true
		g.AddCard(card)
	}
}

// Cards returns the collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Hindi", "Sanskrit", "Audio", "Direction", "Notes"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Hindi,
			card.Sanskrit,
			formatAudioField(card.AudioFile),
			card.Direction,
			card.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatAudioField formats the audio file reference for Anki
func formatAudioField(audioFile string) string {
	if audioFile == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", MediaName(audioFile))
}

// MediaName is the file name an audio file gets in Anki's media folder.
// Every translation writes audio.<ext>, so the parent directory is kept.
func MediaName(audioFile string) string {
	return filepath.Base(filepath.Dir(audioFile)) + "_" + filepath.Base(audioFile)
}

// GenerateAPKG creates an .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	pkg := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		pkg.AddCard(card)
	}
	return pkg.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withAudio int) {
	totalCards = len(g.cards)
	for _, card := range g.cards {
		if card.AudioFile != "" {
			withAudio++
		}
	}
	return
}

// CopyMedia copies the cards' audio files into dir under their MediaName,
// ready to be dropped into Anki's collection.media folder. Missing audio
// files are skipped. It returns the number of files copied.
func (g *Generator) CopyMedia(dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create media directory: %w", err)
	}
	copied := 0
	for _, card := range g.cards {
		if card.AudioFile == "" {
			continue
		}
		if _, err := os.Stat(card.AudioFile); err != nil {
			continue
		}
		if err := copyFile(card.AudioFile, filepath.Join(dir, MediaName(card.AudioFile))); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", card.AudioFile, err)
		}
		copied++
	}
	return copied, nil
}
