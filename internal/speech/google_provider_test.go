package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"
)

func newTestGoogleProvider(serverURL string, retries uint) *GoogleProvider {
	p := NewGoogleProvider(&Config{GoogleBaseURL: serverURL, GoogleRetries: retries})
	p.retryDelay = 0
	return p
}

func TestGoogleProvider_GenerateAudio(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_tts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-audio"))
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL, 0)
	outputFile := filepath.Join(t.TempDir(), "audio", "out.mp3")

	if err := p.GenerateAudio(context.Background(), "नमस्ते आप", Hindi, outputFile); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if string(data) != "ID3-audio" {
		t.Errorf("output = %q, want %q", data, "ID3-audio")
	}

	q := gotQuery.Load().(url.Values)
	if q.Get("tl") != "hi" {
		t.Errorf("tl = %v, want hi", q["tl"])
	}
	if q.Get("q") != "नमस्ते आप" {
		t.Errorf("q = %v, want the input text", q["q"])
	}
}

func TestGoogleProvider_ConcatenatesChunks(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL, 0)
	outputFile := filepath.Join(t.TempDir(), "out.mp3")
	text := strings.Repeat("पुस्तकम् ", 30)

	if err := p.GenerateAudio(context.Background(), text, Hindi, outputFile); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}

	n := atomic.LoadInt32(&calls)
	if n < 2 {
		t.Fatalf("expected several chunk requests, got %d", n)
	}
	data, _ := os.ReadFile(outputFile)
	if !strings.HasPrefix(string(data), "[0][1]") {
		t.Errorf("chunks not written in order: %q", data)
	}
}

func TestGoogleProvider_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL, 3)
	outputFile := filepath.Join(t.TempDir(), "out.mp3")

	if err := p.GenerateAudio(context.Background(), "नमस्ते", Hindi, outputFile); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestGoogleProvider_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL, 3)
	outputFile := filepath.Join(t.TempDir(), "out.mp3")

	err := p.GenerateAudio(context.Background(), "नमस्ते", Hindi, outputFile)
	if !IsUnavailable(err) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
	if IsUnsupportedLanguage(err) {
		t.Error("a service failure must not be reported as unsupported language")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
	if _, statErr := os.Stat(outputFile); !os.IsNotExist(statErr) {
		t.Error("no output file should be left behind")
	}
}

func TestGoogleProvider_SanskritUnsupported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unsupported language")
	}))
	defer server.Close()

	p := newTestGoogleProvider(server.URL, 0)
	err := p.GenerateAudio(context.Background(), "नमः त्वम्", Sanskrit, filepath.Join(t.TempDir(), "out.mp3"))
	if !IsUnsupportedLanguage(err) {
		t.Errorf("expected unsupported language error, got %v", err)
	}
}

func TestGoogleProvider_EmptyText(t *testing.T) {
	p := NewGoogleProvider(&Config{})
	err := p.GenerateAudio(context.Background(), "   ", Hindi, filepath.Join(t.TempDir(), "out.mp3"))

	var se *SynthesisError
	if !asError(err, &se) || se.Reason != EmptyText {
		t.Errorf("expected EmptyText SynthesisError, got %v", err)
	}
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "नमः त्वम्", 100, []string{"नमः त्वम्"}},
		{"word boundary", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"collapses spaces", "  a   b  ", 10, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitChunks(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("splitChunks() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
				if utf8.RuneCountInString(got[i]) > tt.limit {
					t.Errorf("chunk %d longer than %d runes", i, tt.limit)
				}
			}
		})
	}
}
