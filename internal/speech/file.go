package speech

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeAudio stores the audio stream r at outputFile, creating parent
// directories as needed. An empty stream is an error and leaves no file.
func writeAudio(outputFile string, r io.Reader) (int64, error) {
	if err := ensureDir(outputFile); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	written, err := io.Copy(out, r)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputFile)
		return 0, fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		os.Remove(outputFile)
		return 0, fmt.Errorf("no audio data received")
	}
	return written, nil
}

func ensureDir(file string) error {
	dir := filepath.Dir(file)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// copyFile copies src to dst through a temporary file in dst's directory
// that is renamed into place, so dst is either absent or complete.
func copyFile(src, dst string) error {
	if err := ensureDir(dst); err != nil {
		return err
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, source)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0644)
	}
	if err == nil {
		err = os.Rename(tmpName, dst)
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
