package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// DefaultGoogleBaseURL is the host of the Google Translate TTS endpoint
	DefaultGoogleBaseURL = "https://translate.google.com"

	// googleMaxChunk is the longest text the endpoint accepts per request
	googleMaxChunk = 100

	googleUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// GoogleProvider speaks text through the Google Translate TTS endpoint.
// The endpoint knows Hindi but has no Sanskrit voice.
type GoogleProvider struct {
	client     *resty.Client
	limiter    *rate.Limiter
	slow       bool
	retries    uint
	retryDelay time.Duration
}

// NewGoogleProvider creates a new Google Translate TTS provider
func NewGoogleProvider(config *Config) *GoogleProvider {
	baseURL := config.GoogleBaseURL
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}

	limit := rate.Inf
	if config.GoogleRateLimit > 0 {
		limit = rate.Limit(config.GoogleRateLimit)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", googleUserAgent).
		SetHeader("Referer", "https://translate.google.com/").
		SetTimeout(20 * time.Second)

	return &GoogleProvider{
		client:     client,
		limiter:    rate.NewLimiter(limit, 1),
		slow:       config.GoogleSlow,
		retries:    config.GoogleRetries,
		retryDelay: 300 * time.Millisecond,
	}
}

// GenerateAudio fetches the MP3 for every chunk of text and writes the
// concatenated stream to outputFile.
func (p *GoogleProvider) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	if err := ValidateText(p.Name(), text, lang); err != nil {
		return err
	}
	if !p.Supports(lang) {
		return unsupported(p.Name(), lang)
	}

	chunks := splitChunks(text, googleMaxChunk)
	slog.Debug("google tts request", "language", lang.Code(), "chunks", len(chunks))

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := p.fetchChunk(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			return serviceError(p.Name(), lang, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err))
		}
		audio.Write(data)
	}

	if _, err := writeAudio(outputFile, &audio); err != nil {
		return serviceError(p.Name(), lang, err)
	}
	return nil
}

func (p *GoogleProvider) fetchChunk(ctx context.Context, chunk string, lang Language, idx, total int) ([]byte, error) {
	speed := "1"
	if p.slow {
		speed = "0.3"
	}

	var data []byte
	err := retry.Do(
		func() error {
			if err := p.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := p.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"ie":       "UTF-8",
					"client":   "tw-ob",
					"q":        chunk,
					"tl":       lang.Code(),
					"ttsspeed": speed,
					"idx":      strconv.Itoa(idx),
					"total":    strconv.Itoa(total),
					"textlen":  strconv.Itoa(utf8.RuneCountInString(chunk)),
				}).
				Get("/translate_tts")
			if err != nil {
				return err
			}
			if resp.IsError() {
				statusErr := fmt.Errorf("status code: %d", resp.StatusCode())
				if isRetryableStatus(resp.StatusCode()) {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}
			if len(resp.Body()) == 0 {
				return retry.Unrecoverable(fmt.Errorf("empty audio response"))
			}
			data = resp.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.retries+1),
		retry.Delay(p.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	return data, err
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable needs no credentials; reachability is only known per request
func (p *GoogleProvider) IsAvailable() error {
	return nil
}

// Supports reports whether lang has a Google voice
func (p *GoogleProvider) Supports(lang Language) bool {
	return lang.Code() == Hindi.Code()
}

// splitChunks breaks text on whitespace into pieces of at most limit runes.
// A single word longer than limit is cut at rune boundaries.
func splitChunks(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if len(runes) == 0 {
			continue
		}

		needed := len(runes)
		if currentLen > 0 {
			needed++
		}
		if currentLen+needed > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()

	return chunks
}
