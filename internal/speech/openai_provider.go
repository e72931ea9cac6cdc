package speech

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var openAIInstructions = map[string]string{
	"hi": "You are speaking Hindi (हिन्दी). Read the Devanagari text with natural Hindi pronunciation and speak clearly.",
	"sa": "You are speaking Sanskrit (संस्कृतम्). Read the Devanagari text with classical Sanskrit pronunciation: " +
		"sound the final halant consonants, give visarga its echo vowel and keep long vowels long. Speak slowly and clearly.",
}

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// GenerateAudio generates audio using OpenAI TTS
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	if err := ValidateText(p.Name(), text, lang); err != nil {
		return err
	}
	if !p.Supports(lang) {
		return unsupported(p.Name(), lang)
	}

	req := p.speechRequest(preprocessText(text), lang, outputFile)
	slog.Debug("openai tts request", "model", req.Model, "voice", req.Voice, "speed", req.Speed, "language", lang.Code())

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && supportsInstructions(p.config.OpenAIModel) {
			err = fmt.Errorf("%w (the %s model requires access, try --openai-model tts-1-hd)", err, p.config.OpenAIModel)
		}
		return serviceError(p.Name(), lang, fmt.Errorf("OpenAI TTS API error: %w", err))
	}
	defer response.Close()

	if _, err := writeAudio(outputFile, response); err != nil {
		return serviceError(p.Name(), lang, err)
	}
	return nil
}

func (p *OpenAIProvider) speechRequest(text string, lang Language, outputFile string) openai.CreateSpeechRequest {
	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(p.config.OpenAIModel),
		Input: text,
		Voice: openai.SpeechVoice(p.config.OpenAIVoice),
		Speed: p.config.OpenAISpeed,
	}

	if supportsInstructions(p.config.OpenAIModel) {
		req.Instructions = openAIInstructions[lang.Code()]
	}

	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		req.ResponseFormat = openai.SpeechResponseFormatWav
	case ".opus":
		req.ResponseFormat = openai.SpeechResponseFormatOpus
	case ".aac":
		req.ResponseFormat = openai.SpeechResponseFormatAac
	case ".flac":
		req.ResponseFormat = openai.SpeechResponseFormatFlac
	default:
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	}
	return req
}

func supportsInstructions(model string) bool {
	return model == "gpt-4o-mini-tts" || model == "gpt-4o-mini-audio-preview"
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that an API key is configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// Supports reports whether lang can be spoken; both Hindi and Sanskrit can
func (p *OpenAIProvider) Supports(lang Language) bool {
	_, ok := openAIInstructions[lang.Code()]
	return ok
}

// preprocessText drops punctuation that the voice would otherwise read out.
// The danda and double danda are kept since they mark sentence pauses.
func preprocessText(text string) string {
	replacer := strings.NewReplacer(
		"\"", "", "'", "", "(", "", ")", "", "[", "", "]", "", "{", "", "}", "",
		"“", "", "”", "", "‘", "", "’", "",
	)
	return strings.Join(strings.Fields(replacer.Replace(text)), " ")
}
