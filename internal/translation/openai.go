package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// OpenAITranslator translates with an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance. An empty model
// selects gpt-4o-mini.
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	return newOpenAITranslator(apiKey, model, openai.DefaultConfig(apiKey))
}

func newOpenAITranslator(apiKey, model string, config openai.ClientConfig) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// Translate sends text to the model. Blank text is returned as "" without
// a request.
func (t *OpenAITranslator) Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translationPrompt(text, dir),
			},
		},
		MaxTokens:   500,
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := cleanResponse(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

func (t *OpenAITranslator) Name() string {
	return EngineOpenAI
}
