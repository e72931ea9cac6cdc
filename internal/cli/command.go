package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vaani/internal"
	"codeberg.org/snonux/vaani/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vaani [text...]",
		Short: "Hindi ↔ Sanskrit text and voice translator",
		Long: `vaani translates between Hindi and Sanskrit and speaks the result.

The dictionary engine substitutes words from a built-in Hindi/Sanskrit
word list and keeps unknown words as they are. The openai and gemini
engines ask a pretrained model instead.

Examples:
  vaani नमस्ते आप                      # Hindi → Sanskrit, with audio
  vaani -d sa-hi नमः त्वम्              # Sanskrit → Hindi
  vaani --engine openai --play मेरा घर  # model translation, play the audio
  vaani --batch lines.txt             # translate a file line by line
  vaani history export deck.apkg      # export past translations to Anki`,
		Args:          cobra.ArbitraryArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			SetupLogger(flags.Verbose, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRoot(cmd, args, flags)
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newHistoryCommand(),
		newDictionaryCommand(),
		newCacheCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	defaultOutputDir := filepath.Join(config.StateDir(), "audio")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vaani.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.Direction, "direction", "d", flags.Direction, "Translation direction: hi-sa or sa-hi")
	cmd.PersistentFlags().BoolVar(&flags.Swap, "swap", false, "Reverse the translation direction")
	cmd.PersistentFlags().StringVar(&flags.DictionaryFile, "dictionary-file", "", "Extra dictionary entries (YAML or 'hindi = sanskrit' lines)")
	cmd.PersistentFlags().BoolVar(&flags.History, "history", flags.History, "Record translations in the history database")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory")
	cmd.Flags().StringVar(&flags.Engine, "engine", flags.Engine, "Translation engine: dictionary, openai or gemini")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (optional hi:/sa: prefix per line)")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Lines translated in parallel in batch mode")
	cmd.Flags().BoolVar(&flags.Phonetic, "phonetic", false, "Save an IAST/IPA pronunciation guide (needs OpenAI)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the output directory into the archive and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Speech flags
	cmd.Flags().StringVar(&flags.SpeechProvider, "speech-provider", flags.SpeechProvider, "Speech provider: google, openai or espeak")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Speech provider tried when the first one fails")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	cmd.Flags().BoolVar(&flags.NoAudio, "no-audio", false, "Skip audio generation")
	cmd.Flags().BoolVar(&flags.Play, "play", false, "Play the audio after translating")
	cmd.Flags().BoolVar(&flags.Cache, "cache", flags.Cache, "Reuse previously synthesised audio")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.TranslationModel, "translation-model", flags.TranslationModel, "OpenAI chat model for --engine openai")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for --engine gemini")

	bindFlagsToViper(cmd)
}

// flagKeys maps flag names to configuration keys
var flagKeys = map[string]string{
	"direction":         "direction",
	"swap":              "swap",
	"dictionary-file":   "translation.dictionary_file",
	"history":           "history.enabled",
	"output":            "output.directory",
	"engine":            "translation.engine",
	"concurrency":       "batch.concurrency",
	"phonetic":          "phonetic",
	"speech-provider":   "speech.provider",
	"fallback-provider": "speech.fallback",
	"format":            "speech.format",
	"no-audio":          "speech.disabled",
	"play":              "speech.play",
	"cache":             "speech.cache",
	"openai-model":      "speech.openai_model",
	"openai-voice":      "speech.openai_voice",
	"openai-speed":      "speech.openai_speed",
	"translation-model": "openai.model",
	"gemini-model":      "gemini.model",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			slog.Warn("failed to bind flag", "flag", name, "error", err)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vaani" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vaani")
	}

	// VAANI_SPEECH_PROVIDER overrides speech.provider
	viper.SetEnvPrefix("VAANI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}
}

// LoadConfig returns the validated configuration built from the config
// file, the environment and the bound flags
func LoadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// SetupLogger configures the default slog logger on w
func SetupLogger(verbose bool, w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
