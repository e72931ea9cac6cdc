package speech

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCachingProvider(t *testing.T) {
	tmpDir := t.TempDir()
	inner := &fakeProvider{name: "fake", langs: hiAndSa(), content: "audio"}
	c, err := NewCachingProvider(inner, filepath.Join(tmpDir, "cache"), "salt")
	if err != nil {
		t.Fatalf("NewCachingProvider failed: %v", err)
	}

	first := filepath.Join(tmpDir, "a.mp3")
	second := filepath.Join(tmpDir, "b.mp3")
	ctx := context.Background()

	if err := c.GenerateAudio(ctx, "नमः", Sanskrit, first); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if err := c.GenerateAudio(ctx, "नमः", Sanskrit, second); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if inner.generateCalls != 1 {
		t.Errorf("inner calls = %d, want 1 (second call should hit the cache)", inner.generateCalls)
	}
	data, err := os.ReadFile(second)
	if err != nil || string(data) != "audio" {
		t.Errorf("cached copy = %q, %v", data, err)
	}

	// Same text in the other language is a different entry
	if err := c.GenerateAudio(ctx, "नमः", Hindi, second); err != nil {
		t.Fatalf("third call failed: %v", err)
	}
	if inner.generateCalls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.generateCalls)
	}

	count, size, err := c.Stats()
	if err != nil || count != 2 || size != int64(2*len("audio")) {
		t.Errorf("Stats() = %d, %d, %v", count, size, err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "cache")); !os.IsNotExist(err) {
		t.Error("cache directory should be removed")
	}
}

func TestCachingProvider_ErrorNotCached(t *testing.T) {
	tmpDir := t.TempDir()
	inner := &fakeProvider{name: "fake", langs: hiAndSa(), generateErr: serviceError("fake", Hindi, errors.New("down"))}
	c, err := NewCachingProvider(inner, filepath.Join(tmpDir, "cache"), "")
	if err != nil {
		t.Fatalf("NewCachingProvider failed: %v", err)
	}

	out := filepath.Join(tmpDir, "a.mp3")
	for i := 0; i < 2; i++ {
		if err := c.GenerateAudio(context.Background(), "नमस्ते", Hindi, out); !IsUnavailable(err) {
			t.Fatalf("expected SynthesisError, got %v", err)
		}
	}
	if inner.generateCalls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.generateCalls)
	}
}

func TestCachingProvider_SaltSeparatesEntries(t *testing.T) {
	c1 := &CachingProvider{cacheDir: "/c", salt: "openai|alloy"}
	c2 := &CachingProvider{cacheDir: "/c", salt: "openai|nova"}

	if c1.cachePath("नमः", Sanskrit, "x.mp3") == c2.cachePath("नमः", Sanskrit, "x.mp3") {
		t.Error("different salts should give different cache paths")
	}
	if filepath.Ext(c1.cachePath("नमः", Sanskrit, "x.wav")) != ".wav" {
		t.Error("cache path should keep the output extension")
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	files, size, err := CacheStats(dir)
	if err != nil || files != 0 || size != 0 {
		t.Fatalf("missing cache: %d, %d, %v", files, size, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "ab"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ab", "cdef.mp3"), []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}

	files, size, err = CacheStats(dir)
	if err != nil || files != 1 || size != 5 {
		t.Errorf("CacheStats = %d, %d, %v", files, size, err)
	}

	if err := ClearCache(dir); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("cache directory should be removed")
	}
}

// bytesProvider writes data for every request and is safe for concurrent use
type bytesProvider struct {
	data  []byte
	calls atomic.Int32
}

func (b *bytesProvider) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	b.calls.Add(1)
	_, err := writeAudio(outputFile, bytes.NewReader(b.data))
	return err
}

func (b *bytesProvider) Name() string                { return "bytes" }
func (b *bytesProvider) IsAvailable() error          { return nil }
func (b *bytesProvider) Supports(lang Language) bool { return true }

func TestCachingProvider_ConcurrentRequestsGetCompleteFiles(t *testing.T) {
	tmpDir := t.TempDir()
	inner := &bytesProvider{data: bytes.Repeat([]byte("0123456789abcdef"), 256*1024)}
	c, err := NewCachingProvider(inner, filepath.Join(tmpDir, "cache"), "salt")
	if err != nil {
		t.Fatalf("NewCachingProvider failed: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := filepath.Join(tmpDir, "out", string(rune('a'+i))+".mp3")
			errs[i] = c.GenerateAudio(context.Background(), "मम गृहः", Sanskrit, out)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
		out := filepath.Join(tmpDir, "out", string(rune('a'+i))+".mp3")
		info, err := os.Stat(out)
		if err != nil {
			t.Fatalf("worker %d output: %v", i, err)
		}
		if info.Size() != int64(len(inner.data)) {
			t.Errorf("worker %d got %d bytes, want %d", i, info.Size(), len(inner.data))
		}
	}

	files, size, err := c.Stats()
	if err != nil || files != 1 || size != int64(len(inner.data)) {
		t.Errorf("Stats() = %d, %d, %v; want one complete entry", files, size, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "nested", "dst.mp3")
	if err := os.WriteFile(src, []byte("new audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old audio that is longer"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "new audio" {
		t.Errorf("dst = %q, %v", data, err)
	}

	if err := copyFile(filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "nested", "other.mp3")); err == nil {
		t.Error("expected error for missing source")
	}
	entries, err := os.ReadDir(filepath.Dir(dst))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only dst.mp3 in %s, found %d entries", filepath.Dir(dst), len(entries))
	}
}
