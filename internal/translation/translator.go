package translation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// Translator converts text between Hindi and Sanskrit
type Translator interface {
	Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error)
	Name() string
}

const (
	EngineDictionary = "dictionary"
	EngineOpenAI     = "openai"
	EngineGemini     = "gemini"
)

// Config selects and configures a translation engine
type Config struct {
	Engine string

	// Dictionary used by the dictionary engine and as the fallback of the
	// model engines. Nil means lexicon.Default().
	Dictionary *lexicon.Dictionary

	// FallbackToDictionary wraps model engines in a circuit breaker that
	// answers from the dictionary while the model fails
	FallbackToDictionary bool

	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
}

// NewTranslator creates the translator for cfg.Engine
func NewTranslator(ctx context.Context, cfg Config) (Translator, error) {
	dict := cfg.Dictionary
	if dict == nil {
		dict = lexicon.Default()
	}
	dictionary := NewDictionaryTranslator(dict)

	var model Translator
	switch strings.ToLower(cfg.Engine) {
	case EngineDictionary, "":
		return dictionary, nil
	case EngineOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for the openai engine")
		}
		model = NewOpenAITranslator(cfg.OpenAIKey, cfg.OpenAIModel)
	case EngineGemini:
		gemini, err := NewGeminiTranslator(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		model = gemini
	default:
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}

	if cfg.FallbackToDictionary {
		return NewBreakerTranslator(model, dictionary), nil
	}
	return model, nil
}

// SaveTranslation saves the translation to a file in the output directory
func SaveTranslation(outputDir, original, translated string, dir lexicon.Direction) error {
	outputFile := filepath.Join(outputDir, "translation.txt")
	content := fmt.Sprintf("# %s\n%s = %s\n", dir.Label(), original, translated)

	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write translation file: %w", err)
	}

	return nil
}

// TranslationCache stores translations in memory for batch operations
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[cacheKey]string
}

type cacheKey struct {
	dir  lexicon.Direction
	text string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[cacheKey]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(dir lexicon.Direction, text, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[cacheKey{dir, text}] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(dir lexicon.Direction, text string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[cacheKey{dir, text}]
	return translation, ok
}

// GetAll returns a copy of the cached translations of one direction
func (tc *TranslationCache) GetAll(dir lexicon.Direction) map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	result := make(map[string]string)
	for k, v := range tc.translations {
		if k.dir == dir {
			result[k.text] = v
		}
	}
	return result
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

// CachedTranslator answers repeated requests from a TranslationCache
type CachedTranslator struct {
	inner Translator
	cache *TranslationCache
}

// NewCachedTranslator wraps inner with cache
func NewCachedTranslator(inner Translator, cache *TranslationCache) *CachedTranslator {
	return &CachedTranslator{inner: inner, cache: cache}
}

func (c *CachedTranslator) Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error) {
	key := strings.Join(strings.Fields(text), " ")
	if translated, ok := c.cache.Get(dir, key); ok {
		return translated, nil
	}

	translated, err := c.inner.Translate(ctx, text, dir)
	if err != nil {
		return "", err
	}
	c.cache.Add(dir, key, translated)
	return translated, nil
}

func (c *CachedTranslator) Name() string {
	return c.inner.Name()
}
