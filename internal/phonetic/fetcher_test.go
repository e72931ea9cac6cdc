package phonetic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func newTestFetcher(t *testing.T, answer string) (*Fetcher, *[]openai.ChatCompletionMessage) {
	t.Helper()
	var messages []openai.ChatCompletionMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			messages = req.Messages
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
			}},
		})
	}))
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return newFetcher("test-key", config), &messages
}

func TestNewFetcher(t *testing.T) {
	fetcher := NewFetcher("test-api-key")

	if fetcher.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", fetcher.apiKey)
	}
	if fetcher.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestFetch_NoAPIKey(t *testing.T) {
	fetcher := NewFetcher("")

	_, err := fetcher.Fetch(context.Background(), "नमः", "sa")
	if err == nil || err.Error() != "OpenAI API key not configured" {
		t.Errorf("Expected 'OpenAI API key not configured' error, got: %v", err)
	}
}

func TestFetchAndSave(t *testing.T) {
	fetcher, messages := newTestFetcher(t, "  IAST: namaḥ\nIPA: [nɐmɐh]  ")
	tmpDir := t.TempDir()

	info, err := fetcher.FetchAndSave(context.Background(), "नमः", "sa", tmpDir)
	if err != nil {
		t.Fatalf("FetchAndSave failed: %v", err)
	}
	if info != "IAST: namaḥ\nIPA: [nɐmɐh]" {
		t.Errorf("info = %q", info)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, "phonetic.txt"))
	if err != nil {
		t.Fatalf("Failed to read phonetic file: %v", err)
	}
	if string(content) != info+"\n" {
		t.Errorf("file content = %q", content)
	}

	if len(*messages) != 2 || !strings.Contains((*messages)[1].Content, "Sanskrit text 'नमः'") {
		t.Errorf("unexpected request messages: %+v", *messages)
	}
}

func TestFetch_EmptyAnswer(t *testing.T) {
	fetcher, _ := newTestFetcher(t, "   ")

	if _, err := fetcher.Fetch(context.Background(), "नमस्ते", "hi"); err == nil {
		t.Error("expected error for empty answer")
	}
}

func TestFetchAndSave_InvalidDirectory(t *testing.T) {
	fetcher, _ := newTestFetcher(t, "IPA: [nəmsteː]")

	if _, err := fetcher.FetchAndSave(context.Background(), "नमस्ते", "hi", "/nonexistent/dir"); err == nil {
		t.Error("Expected error for invalid directory")
	}
}

func TestFetch_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	info, err := NewFetcher(apiKey).Fetch(context.Background(), "नमः त्वम्", "sa")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	t.Logf("Phonetic info for 'नमः त्वम्':\n%s", info)
}
