package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/vaani/internal"
	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/lexicon"
	"codeberg.org/snonux/vaani/internal/speech"
	"codeberg.org/snonux/vaani/internal/translation"
)

// ErrEmptyInput is returned for input that is empty after trimming. The
// caller should prompt for text instead of translating.
var ErrEmptyInput = errors.New("please enter some Hindi or Sanskrit text")

// Recorder stores completed translations
type Recorder interface {
	Add(ctx context.Context, rec *history.Record) (int64, error)
}

// PhoneticFetcher writes a pronunciation guide into a directory
type PhoneticFetcher interface {
	FetchAndSave(ctx context.Context, text, langCode, dir string) (string, error)
}

// Options controls what ProcessText produces
type Options struct {
	OutputDir   string
	AudioFormat string // "mp3" or "wav"
	SkipAudio   bool
	Phonetic    bool
	Concurrency int // batch workers
}

// Result of one translation
type Result struct {
	Direction    lexicon.Direction
	Original     string
	Translated   string
	Engine       string
	Dir          string // directory holding translation.txt and the audio
	AudioFile    string // empty when no audio was produced
	PhoneticFile string
	HistoryID    int64
	Warnings     []string
}

// HasAudio reports whether an audio file was produced
func (r *Result) HasAudio() bool {
	return r.AudioFile != ""
}

func (r *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Warn(msg, "text", r.Original)
	r.Warnings = append(r.Warnings, msg)
}

// Processor handles the translation flow
type Processor struct {
	translator translation.Translator
	speech     speech.Provider
	history    Recorder
	phonetic   PhoneticFetcher
	options    Options
}

// NewProcessor creates a processor around translator. Repeated inputs are
// answered from an in-memory translation cache.
func NewProcessor(translator translation.Translator, options Options) *Processor {
	if options.AudioFormat == "" {
		options.AudioFormat = "mp3"
	}
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	return &Processor{
		translator: translation.NewCachedTranslator(translator, translation.NewTranslationCache()),
		options:    options,
	}
}

// WithSpeech enables audio synthesis
func (p *Processor) WithSpeech(provider speech.Provider) *Processor {
	p.speech = provider
	return p
}

// WithHistory records every translation in r
func (p *Processor) WithHistory(r Recorder) *Processor {
	p.history = r
	return p
}

// WithPhonetic fetches a pronunciation guide when Options.Phonetic is set
func (p *Processor) WithPhonetic(f PhoneticFetcher) *Processor {
	p.phonetic = f
	return p
}

// ProcessText translates text in direction dir. Only empty input and
// translation engine failures are errors; audio, phonetic and history
// problems end up in Result.Warnings.
func (p *Processor) ProcessText(ctx context.Context, text string, dir lexicon.Direction) (*Result, error) {
	original := strings.TrimSpace(text)
	if original == "" {
		return nil, ErrEmptyInput
	}

	translated, err := p.translator.Translate(ctx, original, dir)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	result := &Result{
		Direction:  dir,
		Original:   original,
		Translated: translated,
		Engine:     p.translator.Name(),
	}
	slog.Debug("translated", "direction", dir.String(), "engine", result.Engine, "text", original)

	outDir, err := createItemDirectory(p.options.OutputDir, internal.GenerateAudioID(dir.String(), original))
	if err != nil {
		result.warn("failed to create output directory: %v", err)
	} else {
		result.Dir = outDir
		if err := translation.SaveTranslation(outDir, original, translated, dir); err != nil {
			result.warn("failed to save translation: %v", err)
		}
	}

	if result.Dir != "" && p.speech != nil && !p.options.SkipAudio {
		p.generateAudio(ctx, result)
	}

	if result.Dir != "" && p.phonetic != nil && p.options.Phonetic {
		path, err := p.phonetic.FetchAndSave(ctx, translated, dir.Target(), result.Dir)
		if err != nil {
			result.warn("failed to fetch phonetic info: %v", err)
		} else {
			result.PhoneticFile = path
		}
	}

	if p.history != nil {
		rec := &history.Record{
			Direction: dir.String(),
			Source:    original,
			Target:    translated,
			Engine:    result.Engine,
			AudioFile: result.AudioFile,
		}
		if id, err := p.history.Add(ctx, rec); err != nil {
			slog.Error("failed to record history", "error", err)
		} else {
			result.HistoryID = id
		}
	}

	return result, nil
}

func (p *Processor) generateAudio(ctx context.Context, result *Result) {
	lang := speech.LanguageFor(result.Direction)
	audioFile := filepath.Join(result.Dir, "audio."+p.options.AudioFormat)

	err := p.speech.GenerateAudio(ctx, result.Translated, lang, audioFile)
	if err == nil {
		result.AudioFile = audioFile
		return
	}

	var synthErr *speech.SynthesisError
	if errors.As(err, &synthErr) && synthErr.Reason == speech.EmptyText {
		return
	}
	result.warn("audio unavailable: %v", err)
}

// createItemDirectory creates base/id, adding a numeric suffix when a
// directory of that name already exists
func createItemDirectory(base, id string) (string, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", err
	}
	dir := filepath.Join(base, id)
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) || i > 100 {
			return "", err
		}
		dir = filepath.Join(base, fmt.Sprintf("%s-%d", id, i))
	}
}
