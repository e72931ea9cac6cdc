package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

//go:generate mockgen -source=provider.go -destination=../mocks/speech/mock_provider.go -package=mock_speech Provider

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio synthesises text spoken in lang and saves it to outputFile.
	// Failures are always *SynthesisError.
	GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error

	// Supports reports whether the provider can speak lang at all
	Supports(lang Language) bool
}

// Config holds common configuration for speech providers
type Config struct {
	Provider     string // "google", "openai" or "espeak"
	Fallback     string // optional provider tried when the primary fails
	OutputFormat string // "mp3" or "wav"

	EnableCache bool
	CacheDir    string

	// Google Translate TTS settings
	GoogleBaseURL   string
	GoogleSlow      bool
	GoogleRateLimit float64 // requests per second
	GoogleRetries   uint

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed float64 // 0.25 to 4.0

	// espeak-ng settings
	ESpeakSpeed     int
	ESpeakPitch     int
	ESpeakAmplitude int
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:        "google",
		OutputFormat:    "mp3",
		GoogleBaseURL:   DefaultGoogleBaseURL,
		GoogleRateLimit: 2,
		GoogleRetries:   3,
		OpenAIModel:     "gpt-4o-mini-tts",
		OpenAIVoice:     "alloy",
		OpenAISpeed:     1.0,
		ESpeakSpeed:     140,
		ESpeakPitch:     50,
		ESpeakAmplitude: 100,
	}
}

// NewProvider creates the configured provider, wrapped with the fallback
// and the cache when those are enabled.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	provider, err := newSingleProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback != "" && config.Fallback != config.Provider {
		fallback, err := newSingleProvider(config.Fallback, config)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
		provider = NewProviderWithFallback(provider, fallback)
	}

	if config.EnableCache && config.CacheDir != "" {
		provider, err = NewCachingProvider(provider, config.CacheDir, cacheSalt(config))
		if err != nil {
			return nil, err
		}
	}

	return provider, nil
}

func newSingleProvider(name string, config *Config) (Provider, error) {
	switch strings.ToLower(name) {
	case "google", "gtts", "":
		return NewGoogleProvider(config), nil
	case "openai":
		provider, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "espeak", "espeak-ng":
		return NewESpeakProvider(&ESpeakConfig{
			Speed:     config.ESpeakSpeed,
			Pitch:     &config.ESpeakPitch,
			Amplitude: &config.ESpeakAmplitude,
		}), nil
	default:
		return nil, fmt.Errorf("unknown speech provider: %s", name)
	}
}

// cacheSalt separates cache entries of differently configured providers
func cacheSalt(config *Config) string {
	salt := config.Provider + "|" + config.Fallback
	if strings.EqualFold(config.Provider, "openai") || strings.EqualFold(config.Fallback, "openai") {
		salt += fmt.Sprintf("|%s|%s|%.2f", config.OpenAIModel, config.OpenAIVoice, config.OpenAISpeed)
	}
	if isESpeak(config.Provider) || isESpeak(config.Fallback) {
		salt += fmt.Sprintf("|%d|%d|%d", config.ESpeakSpeed, config.ESpeakPitch, config.ESpeakAmplitude)
	}
	if config.GoogleSlow {
		salt += "|slow"
	}
	return salt
}

func isESpeak(name string) bool {
	return strings.EqualFold(name, "espeak") || strings.EqualFold(name, "espeak-ng")
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries the primary provider first. Languages the primary
// cannot speak go straight to the fallback.
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	if p.primary.Supports(lang) {
		err := p.primary.GenerateAudio(ctx, text, lang, outputFile)
		if err == nil {
			return nil
		}
		var se *SynthesisError
		if errors.As(err, &se) && se.Reason == EmptyText {
			return err
		}
		slog.Warn("primary speech provider failed, falling back",
			"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)
	}
	return p.fallback.GenerateAudio(ctx, text, lang, outputFile)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// Supports reports whether either provider speaks lang
func (p *ProviderWithFallback) Supports(lang Language) bool {
	return p.primary.Supports(lang) || p.fallback.Supports(lang)
}
