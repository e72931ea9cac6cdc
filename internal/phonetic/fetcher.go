package phonetic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Fetcher handles fetching phonetic information
type Fetcher struct {
	apiKey  string
	client  *openai.Client
	timeout time.Duration
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(apiKey string) *Fetcher {
	return newFetcher(apiKey, openai.DefaultConfig(apiKey))
}

func newFetcher(apiKey string, config openai.ClientConfig) *Fetcher {
	return &Fetcher{
		apiKey:  apiKey,
		client:  openai.NewClientWithConfig(config),
		timeout: 30 * time.Second,
	}
}

func languageName(code string) string {
	if code == "sa" {
		return "Sanskrit"
	}
	return "Hindi"
}

// Fetch returns the pronunciation guide for text spoken in the language
// with the given code ("hi" or "sa")
func (f *Fetcher) Fetch(ctx context.Context, text, langCode string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text to transcribe")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	lang := languageName(langCode)
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a %s language expert helping learners with pronunciation. "+
					"Use IAST for romanisation and the International Phonetic Alphabet (IPA) for sounds. "+
					"Explain unfamiliar sounds with English comparisons where possible.", lang),
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`For the %s text '%s':
1. Give the IAST romanisation
2. Give the complete IPA transcription
3. Explain each sound that does not exist in English (retroflex, aspirated, anusvara, visarga, halant endings)

Example format:
IAST: namaḥ
IPA: [nɐmɐh(ɐ)]
• /ɐ/ - like 'u' in English 'but'
• /h(ɐ)/ - visarga, a breathy echo of the preceding vowel`, lang, text),
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// FetchAndSave fetches the guide and writes it to phonetic.txt in dir
func (f *Fetcher) FetchAndSave(ctx context.Context, text, langCode, dir string) (string, error) {
	info, err := f.Fetch(ctx, text, langCode)
	if err != nil {
		return "", err
	}

	phoneticFile := filepath.Join(dir, "phonetic.txt")
	if err := os.WriteFile(phoneticFile, []byte(info+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write phonetic file: %w", err)
	}

	return info, nil
}
