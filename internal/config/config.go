// Package config turns the merged viper settings (config file, VAANI_*
// environment and bound flags) into a typed, validated Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/lexicon"
	"codeberg.org/snonux/vaani/internal/speech"
	"codeberg.org/snonux/vaani/internal/translation"
)

type Config struct {
	Direction   string            `mapstructure:"direction" validate:"required,direction"`
	Swap        bool              `mapstructure:"swap"`
	Phonetic    bool              `mapstructure:"phonetic"`
	Translation TranslationConfig `mapstructure:"translation"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	Output      OutputConfig      `mapstructure:"output"`
	History     HistoryConfig     `mapstructure:"history"`
	Batch       BatchConfig       `mapstructure:"batch"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
}

type TranslationConfig struct {
	Engine         string `mapstructure:"engine" validate:"oneof=dictionary openai gemini"`
	DictionaryFile string `mapstructure:"dictionary_file" validate:"omitempty,readable_file"`
	Fallback       bool   `mapstructure:"fallback"`
}

type SpeechConfig struct {
	Disabled        bool    `mapstructure:"disabled"`
	Play            bool    `mapstructure:"play"`
	Provider        string  `mapstructure:"provider" validate:"oneof=google gtts openai espeak espeak-ng"`
	Fallback        string  `mapstructure:"fallback" validate:"omitempty,oneof=google gtts openai espeak espeak-ng"`
	Format          string  `mapstructure:"format" validate:"oneof=mp3 wav"`
	Cache           bool    `mapstructure:"cache"`
	CacheDir        string  `mapstructure:"cache_dir" validate:"required_if=Cache true"`
	GoogleSlow      bool    `mapstructure:"google_slow"`
	GoogleRateLimit float64 `mapstructure:"google_rate_limit" validate:"gt=0"`
	GoogleRetries   uint    `mapstructure:"google_retries" validate:"lte=10"`
	OpenAIModel     string  `mapstructure:"openai_model"`
	OpenAIVoice     string  `mapstructure:"openai_voice"`
	OpenAISpeed     float64 `mapstructure:"openai_speed" validate:"gte=0.25,lte=4"`
	ESpeakSpeed     int     `mapstructure:"espeak_speed" validate:"gte=80,lte=450"`
	ESpeakPitch     int     `mapstructure:"espeak_pitch" validate:"gte=0,lte=99"`
	ESpeakAmplitude int     `mapstructure:"espeak_amplitude" validate:"gte=0,lte=200"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver" validate:"oneof=sqlite3 mysql"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=32"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// StateDir is where vaani keeps audio, the history database and the cache
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vaani"
	}
	return filepath.Join(home, ".local", "state", "vaani")
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	state := StateDir()
	v.SetDefault("direction", lexicon.HindiToSanskrit.String())
	v.SetDefault("swap", false)
	v.SetDefault("phonetic", false)
	v.SetDefault("translation.engine", translation.EngineDictionary)
	v.SetDefault("translation.fallback", true)
	v.SetDefault("speech.provider", "google")
	v.SetDefault("speech.format", "mp3")
	v.SetDefault("speech.cache", true)
	v.SetDefault("speech.cache_dir", filepath.Join(state, "cache"))
	v.SetDefault("speech.google_rate_limit", 2.0)
	v.SetDefault("speech.google_retries", 3)
	v.SetDefault("speech.openai_model", "gpt-4o-mini-tts")
	v.SetDefault("speech.openai_voice", "alloy")
	v.SetDefault("speech.openai_speed", 1.0)
	v.SetDefault("speech.espeak_speed", 140)
	v.SetDefault("speech.espeak_pitch", 50)
	v.SetDefault("speech.espeak_amplitude", 100)
	v.SetDefault("output.directory", filepath.Join(state, "audio"))
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.driver", history.DriverSQLite)
	v.SetDefault("history.dsn", filepath.Join(state, "history.db"))
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("gemini.model", translation.DefaultGeminiModel)
}

// Load reads the typed configuration from v. Reading the config file is the
// caller's job; Load only adds defaults and the API key environment bindings.
func Load(v *viper.Viper) (*Config, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	SetDefaults(v)

	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var errorMsgs []string
		for _, e := range err.(validator.ValidationErrors) {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Dir returns the parsed translation direction, reversed when Swap is set
func (c *Config) Dir() lexicon.Direction {
	dir, err := lexicon.ParseDirection(c.Direction)
	if err != nil {
		dir = lexicon.HindiToSanskrit
	}
	if c.Swap {
		return dir.Reverse()
	}
	return dir
}

// Dictionary returns the canonical dictionary, extended by the configured
// dictionary file when there is one
func (c *Config) Dictionary() (*lexicon.Dictionary, error) {
	return lexicon.LoadWithExtras(c.Translation.DictionaryFile)
}

func (c *Config) TranslatorConfig(dict *lexicon.Dictionary) translation.Config {
	return translation.Config{
		Engine:               c.Translation.Engine,
		Dictionary:           dict,
		FallbackToDictionary: c.Translation.Fallback,
		OpenAIKey:            c.OpenAI.APIKey,
		OpenAIModel:          c.OpenAI.Model,
		GeminiKey:            c.Gemini.APIKey,
		GeminiModel:          c.Gemini.Model,
	}
}

func (c *Config) SpeechProviderConfig() *speech.Config {
	sc := speech.DefaultProviderConfig()
	sc.Provider = c.Speech.Provider
	sc.Fallback = c.Speech.Fallback
	sc.OutputFormat = c.Speech.Format
	sc.EnableCache = c.Speech.Cache
	sc.CacheDir = c.Speech.CacheDir
	sc.GoogleSlow = c.Speech.GoogleSlow
	sc.GoogleRateLimit = c.Speech.GoogleRateLimit
	sc.GoogleRetries = c.Speech.GoogleRetries
	sc.OpenAIKey = c.OpenAI.APIKey
	sc.OpenAIModel = c.Speech.OpenAIModel
	sc.OpenAIVoice = c.Speech.OpenAIVoice
	sc.OpenAISpeed = c.Speech.OpenAISpeed
	sc.ESpeakSpeed = c.Speech.ESpeakSpeed
	sc.ESpeakPitch = c.Speech.ESpeakPitch
	sc.ESpeakAmplitude = c.Speech.ESpeakAmplitude
	return sc
}

func (c *Config) HistoryStoreConfig() history.Config {
	return history.Config{Driver: c.History.Driver, DSN: c.History.DSN}
}
