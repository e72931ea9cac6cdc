//go:build linux || darwin

package speech

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

func TestCopyFile_DestinationHiddenUntilComplete(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.fifo")
	if err := syscall.Mkfifo(src, 0600); err != nil {
		t.Skipf("mkfifo not available: %v", err)
	}
	dst := filepath.Join(dir, "cache", "ab", "entry.mp3")

	done := make(chan error, 1)
	go func() { done <- copyFile(src, dst) }()

	// Opening the write end blocks until copyFile has opened the read end
	w, err := os.OpenFile(src, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open fifo: %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte("first half ")); err != nil {
		t.Fatal(err)
	}

	pattern := filepath.Join(filepath.Dir(dst), ".entry.mp3.*.tmp")
	deadline := time.Now().Add(5 * time.Second)
	for {
		matches, _ := filepath.Glob(pattern)
		if len(matches) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("copy never started writing its temporary file")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("destination visible before the copy finished: %v", err)
	}

	if _, err := w.Write([]byte("second half")); err != nil {
		t.Fatal(err)
	}
	w.Close()

	if err := <-done; err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "first half second half" {
		t.Errorf("dst = %q, %v", data, err)
	}
	if matches, _ := filepath.Glob(pattern); len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}
