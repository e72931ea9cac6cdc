package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vaani/internal/config"
	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/lexicon"
	"codeberg.org/snonux/vaani/internal/processor"
	"codeberg.org/snonux/vaani/internal/speech"
)

func newHistoryCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show, search, clear or export past translations",
	}
	historyCmd.AddCommand(
		newHistoryListCommand(),
		newHistorySearchCommand(),
		newHistoryClearCommand(),
		newHistoryExportCommand(),
	)
	return historyCmd
}

// withStore loads the configuration and runs fn with an open history store
func withStore(cmd *cobra.Command, fn func(cfg *config.Config, store *history.Store) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	store, err := openHistory(commandContext(cmd), cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func newHistoryListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *config.Config, store *history.Store) error {
				records, err := store.Recent(commandContext(cmd), limit)
				if err != nil {
					return err
				}
				printerFor(cmd).History(records)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of translations to show")
	return cmd
}

func newHistorySearchCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find translations whose source or target contains text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *config.Config, store *history.Store) error {
				records, err := store.Search(commandContext(cmd), strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				printerFor(cmd).History(records)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of matches")
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *config.Config, store *history.Store) error {
				n, err := store.Clear(commandContext(cmd))
				if err != nil {
					return err
				}
				printerFor(cmd).Success("Deleted %d translations", n)
				return nil
			})
		},
	}
}

func newHistoryExportCommand() *cobra.Command {
	var deckName string
	cmd := &cobra.Command{
		Use:   "export <file.apkg|file.csv|directory>",
		Short: "Export the history as an Anki package or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ *config.Config, store *history.Store) error {
				ctx := commandContext(cmd)
				n, err := store.Count(ctx)
				if err != nil {
					return err
				}
				records, err := store.Recent(ctx, n)
				if err != nil {
					return err
				}
				stats, err := processor.ExportAnki(records, args[0], deckName)
				if err != nil {
					return err
				}
				printerFor(cmd).Success("Exported %d cards (%d with audio) to %s", stats.Cards, stats.WithAudio, stats.Path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deckName, "deck-name", processor.DefaultDeckName, "Deck name for APKG export")
	return cmd
}

func newDictionaryCommand() *cobra.Command {
	dictionaryCmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Inspect the word dictionary",
	}
	dictionaryCmd.AddCommand(newDictionaryListCommand(), newDictionaryLookupCommand())
	return dictionaryCmd
}

func newDictionaryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all Hindi/Sanskrit word pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			dict, err := cfg.Dictionary()
			if err != nil {
				return err
			}
			printerFor(cmd).Dictionary(dict)
			return nil
		},
	}
}

func newDictionaryLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Look words up in the dictionary, with suggestions for unknown ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			dict, err := cfg.Dictionary()
			if err != nil {
				return err
			}
			dir := cfg.Dir()

			var suggester *lexicon.Suggester
			printer := printerFor(cmd)
			for _, word := range args {
				translation, found := dict.Lookup(word, dir)
				var suggestions []string
				if !found {
					if suggester == nil {
						if suggester, err = lexicon.NewSuggester(dict, dir); err != nil {
							return err
						}
					}
					suggestions = suggester.Suggest(word, 3)
				}
				printer.Lookup(word, dir, translation, found, suggestions)
			}
			return nil
		},
	}
}

func newCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the speech cache",
	}
	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show the number and size of cached audio files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := LoadConfig()
				if err != nil {
					return err
				}
				files, size, err := speech.CacheStats(cfg.Speech.CacheDir)
				if err != nil {
					return err
				}
				printerFor(cmd).CacheStats(cfg.Speech.CacheDir, files, size)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all cached audio files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := LoadConfig()
				if err != nil {
					return err
				}
				if err := speech.ClearCache(cfg.Speech.CacheDir); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				printerFor(cmd).Success("Speech cache cleared: %s", cfg.Speech.CacheDir)
				return nil
			},
		},
	)
	return cacheCmd
}
