package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Catalog groups model IDs by what vaani can use them for
type Catalog struct {
	Speech      []string
	Translation []string
	Other       int
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return newLister(apiKey, openai.DefaultConfig(apiKey))
}

func newLister(apiKey string, config openai.ClientConfig) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// List fetches and categorises the models available to the API key
func (l *Lister) List(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .vaani.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	return Categorize(ids), nil
}

// Categorize sorts model IDs into speech and chat models
func Categorize(ids []string) *Catalog {
	catalog := &Catalog{}
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts"):
			catalog.Speech = append(catalog.Speech, id)
		case strings.Contains(id, "audio") || strings.Contains(id, "realtime") || strings.Contains(id, "transcribe"):
			catalog.Other++
		case strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4"):
			catalog.Translation = append(catalog.Translation, id)
		default:
			catalog.Other++
		}
	}
	sort.Strings(catalog.Speech)
	sort.Strings(catalog.Translation)
	return catalog
}

// Print writes the catalog in the --list-models format
func (c *Catalog) Print(w io.Writer) {
	fmt.Fprintln(w, "Available OpenAI Models:")

	fmt.Fprintln(w, "\nText-to-Speech models (--openai-model, speech provider openai):")
	if len(c.Speech) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range c.Speech {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nTranslation models (--engine openai, --translation-model):")
	if len(c.Translation) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range c.Translation {
		fmt.Fprintf(w, "  %s\n", model)
	}

	if c.Other > 0 {
		fmt.Fprintf(w, "\n... and %d other models\n", c.Other)
	}
}
