package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// DefaultGeminiModel is used when no Gemini model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiTranslator translates with a Google Gemini model
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a Gemini translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	return newGeminiTranslator(ctx, apiKey, model, genai.HTTPOptions{})
}

func newGeminiTranslator(ctx context.Context, apiKey, model string, httpOptions genai.HTTPOptions) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for the gemini engine")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Translate sends text to the model. Blank text is returned as "" without
// a request.
func (t *GeminiTranslator) Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(translationPrompt(text, dir)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := cleanResponse(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

func (t *GeminiTranslator) Name() string {
	return EngineGemini
}
