package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/snonux/vaani/internal/history"
	"codeberg.org/snonux/vaani/internal/lexicon"
)

// MockTranslator mocks a translation engine. Safe for concurrent use.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	EngineName   string

	mu    sync.Mutex
	Calls []string
}

// Translate returns the canned translation for text, or the dictionary
// translation when none is configured
func (m *MockTranslator) Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (%s)", text, dir))
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return lexicon.Translate(text, dir), nil
}

func (m *MockTranslator) Name() string {
	if m.EngineName == "" {
		return "mock"
	}
	return m.EngineName
}

// CallCount returns the number of Translate calls so far
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockRecorder collects history records in memory
type MockRecorder struct {
	Err error

	mu      sync.Mutex
	Records []history.Record
}

func (m *MockRecorder) Add(ctx context.Context, rec *history.Record) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = int64(len(m.Records) + 1)
	m.Records = append(m.Records, *rec)
	return rec.ID, nil
}

// Len returns the number of stored records
func (m *MockRecorder) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

// MockPhonetic mocks the pronunciation guide fetcher
type MockPhonetic struct {
	Guide string
	Err   error

	mu    sync.Mutex
	Calls []string
}

func (m *MockPhonetic) FetchAndSave(ctx context.Context, text, langCode, dir string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s:%s", langCode, text))
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	path := filepath.Join(dir, "phonetic.txt")
	if err := os.WriteFile(path, []byte(m.Guide), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// GenerateAudioData generates mock audio data
func (g *TestDataGenerator) GenerateAudioData() []byte {
	// MP3 frame header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
