package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vaani/internal/archive"
	"codeberg.org/snonux/vaani/internal/config"
	"codeberg.org/snonux/vaani/internal/display"
	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/models"
	"codeberg.org/snonux/vaani/internal/phonetic"
	"codeberg.org/snonux/vaani/internal/processor"
	"codeberg.org/snonux/vaani/internal/speech"
	"codeberg.org/snonux/vaani/internal/translation"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printerFor(cmd *cobra.Command) *display.Printer {
	return display.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// openHistory opens and migrates the history database
func openHistory(ctx context.Context, cfg *config.Config) (*history.Store, error) {
	store, err := history.Open(cfg.HistoryStoreConfig())
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// buildProcessor wires the configured translator, speech provider,
// phonetic fetcher and history store. Problems with the optional parts
// are reported as warnings and the part is left out.
func buildProcessor(ctx context.Context, cfg *config.Config, store *history.Store, printer *display.Printer) (*processor.Processor, error) {
	dict, err := cfg.Dictionary()
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	translator, err := translation.NewTranslator(ctx, cfg.TranslatorConfig(dict))
	if err != nil {
		return nil, err
	}

	proc := processor.NewProcessor(translator, processor.Options{
		OutputDir:   cfg.Output.Directory,
		AudioFormat: cfg.Speech.Format,
		SkipAudio:   cfg.Speech.Disabled,
		Phonetic:    cfg.Phonetic,
		Concurrency: cfg.Batch.Concurrency,
	})

	if !cfg.Speech.Disabled {
		provider, err := speech.NewProvider(cfg.SpeechProviderConfig())
		if err != nil {
			printer.Warn("audio disabled: %v", err)
		} else {
			proc.WithSpeech(provider)
		}
	}

	if cfg.Phonetic {
		if cfg.OpenAI.APIKey == "" {
			printer.Warn("phonetic guide needs an OpenAI API key (OPENAI_API_KEY)")
		} else {
			proc.WithPhonetic(phonetic.NewFetcher(cfg.OpenAI.APIKey))
		}
	}

	if store != nil {
		proc.WithHistory(store)
	}
	return proc, nil
}

// RunRoot runs the root command: translate the arguments, standard input
// or a batch file
func RunRoot(cmd *cobra.Command, args []string, flags *Flags) error {
	ctx := commandContext(cmd)
	printer := printerFor(cmd)

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if flags.Archive {
		path, err := archive.ArchiveOutput(cfg.Output.Directory)
		if err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		printer.Success("Output directory archived to: %s", path)
		return nil
	}

	if flags.ListModels {
		catalog, err := models.NewLister(cfg.OpenAI.APIKey).List(ctx)
		if err != nil {
			return err
		}
		catalog.Print(cmd.OutOrStdout())
		return nil
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = openHistory(ctx, cfg)
		if err != nil {
			printer.Warn("history disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	proc, err := buildProcessor(ctx, cfg, store, printer)
	if err != nil {
		return err
	}

	if flags.BatchFile != "" {
		summary, err := proc.ProcessBatch(ctx, flags.BatchFile, cfg.Dir())
		if err != nil {
			return err
		}
		printer.BatchSummary(summary)
		fmt.Fprintf(cmd.OutOrStdout(), "\nDone! Output saved to: %s\n", cfg.Output.Directory)
		return nil
	}

	text := strings.Join(args, " ")
	if text == "" {
		if text, err = readInput(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	result, err := proc.ProcessText(ctx, text, cfg.Dir())
	if errors.Is(err, processor.ErrEmptyInput) {
		printer.Prompt(err)
		return nil
	}
	if err != nil {
		return err
	}

	printer.Result(result)
	if cfg.Speech.Play && result.HasAudio() {
		if err := printer.Play(result.AudioFile); err != nil {
			printer.Warn("%v", err)
		}
	}
	return nil
}

// readInput reads text piped on standard input. An interactive terminal
// yields no input.
func readInput(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
