package speech

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CachingProvider keeps every synthesised file in an on-disk cache keyed by
// the md5 of language, text, output extension and a provider salt.
type CachingProvider struct {
	inner    Provider
	cacheDir string
	salt     string
}

// NewCachingProvider wraps inner with a cache rooted at cacheDir
func NewCachingProvider(inner Provider, cacheDir, salt string) (*CachingProvider, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &CachingProvider{inner: inner, cacheDir: cacheDir, salt: salt}, nil
}

// GenerateAudio copies a cached file when present, otherwise delegates and
// stores the result. Cache write failures are logged and ignored.
func (c *CachingProvider) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	if err := ValidateText(c.Name(), text, lang); err != nil {
		return err
	}

	cacheFile := c.cachePath(text, lang, outputFile)
	if _, err := os.Stat(cacheFile); err == nil {
		if err := copyFile(cacheFile, outputFile); err == nil {
			slog.Debug("speech cache hit", "file", cacheFile)
			return nil
		}
	}

	if err := c.inner.GenerateAudio(ctx, text, lang, outputFile); err != nil {
		return err
	}

	if err := copyFile(outputFile, cacheFile); err != nil {
		slog.Warn("failed to store audio in cache", "file", cacheFile, "error", err)
	}
	return nil
}

func (c *CachingProvider) cachePath(text string, lang Language, outputFile string) string {
	h := md5.New()
	h.Write([]byte(c.salt))
	h.Write([]byte{0})
	h.Write([]byte(lang.Code()))
	h.Write([]byte{0})
	h.Write([]byte(text))
	hash := hex.EncodeToString(h.Sum(nil))

	ext := filepath.Ext(outputFile)
	if ext == "" {
		ext = ".mp3"
	}

	// First two hex chars as subdirectory keep directories small
	return filepath.Join(c.cacheDir, hash[:2], hash[2:]+ext)
}

// Name returns the wrapped provider name
func (c *CachingProvider) Name() string {
	return c.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (c *CachingProvider) IsAvailable() error {
	return c.inner.IsAvailable()
}

// Supports delegates to the wrapped provider
func (c *CachingProvider) Supports(lang Language) bool {
	return c.inner.Supports(lang)
}

// Clear removes all cached audio files
func (c *CachingProvider) Clear() error {
	return os.RemoveAll(c.cacheDir)
}

// Stats returns the number and total size of cached files
func (c *CachingProvider) Stats() (fileCount int, totalSize int64, err error) {
	if _, err := os.Stat(c.cacheDir); os.IsNotExist(err) {
		return 0, 0, nil
	}
	err = filepath.Walk(c.cacheDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		// Dot files are copies still in progress
		if !info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return fileCount, totalSize, err
}

// CacheStats reports on the cache at cacheDir without a provider
func CacheStats(cacheDir string) (fileCount int, totalSize int64, err error) {
	return (&CachingProvider{cacheDir: cacheDir}).Stats()
}

// ClearCache removes the cache at cacheDir
func ClearCache(cacheDir string) error {
	return (&CachingProvider{cacheDir: cacheDir}).Clear()
}
