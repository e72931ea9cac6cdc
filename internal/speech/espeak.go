package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
// Speed 0 and nil pointers keep the defaults; 0 is a valid pitch and
// amplitude.
type ESpeakConfig struct {
	Speed     int  // words per minute
	Pitch     *int // 0 to 99
	Amplitude *int // 0 to 200
}

var espeakVoices = map[string]string{
	"hi": "hi",
}

type espeakSettings struct {
	speed     int
	pitch     int
	amplitude int
}

// ESpeakProvider speaks text with the local espeak-ng binary. MP3 output is
// produced by converting the WAV with ffmpeg.
type ESpeakProvider struct {
	config espeakSettings
	binary string
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *ESpeakConfig) *ESpeakProvider {
	cfg := espeakSettings{speed: 140, pitch: 50, amplitude: 100}
	if config != nil {
		if config.Speed > 0 {
			cfg.speed = clamp(config.Speed, 80, 450)
		}
		if config.Pitch != nil {
			cfg.pitch = clamp(*config.Pitch, 0, 99)
		}
		if config.Amplitude != nil {
			cfg.amplitude = clamp(*config.Amplitude, 0, 200)
		}
	}
	return &ESpeakProvider{config: cfg, binary: "espeak-ng"}
}

// GenerateAudio generates audio using espeak-ng
func (p *ESpeakProvider) GenerateAudio(ctx context.Context, text string, lang Language, outputFile string) error {
	if err := ValidateText(p.Name(), text, lang); err != nil {
		return err
	}
	if !p.Supports(lang) {
		return unsupported(p.Name(), lang)
	}
	if err := ensureDir(outputFile); err != nil {
		return serviceError(p.Name(), lang, err)
	}

	if strings.ToLower(filepath.Ext(outputFile)) == ".wav" {
		return p.wrap(lang, p.synthesise(ctx, text, lang, outputFile))
	}

	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"
	defer os.Remove(tempWAV)

	if err := p.synthesise(ctx, text, lang, tempWAV); err != nil {
		return p.wrap(lang, err)
	}
	return p.wrap(lang, convertWAVToMP3(ctx, tempWAV, outputFile))
}

func (p *ESpeakProvider) wrap(lang Language, err error) error {
	if err == nil {
		return nil
	}
	return serviceError(p.Name(), lang, err)
}

func (p *ESpeakProvider) synthesise(ctx context.Context, text string, lang Language, wavFile string) error {
	args := []string{
		"-v", espeakVoices[lang.Code()],
		"-s", strconv.Itoa(p.config.speed),
		"-p", strconv.Itoa(p.config.pitch),
		"-a", strconv.Itoa(p.config.amplitude),
		"-w", wavFile,
		text,
	}

	output, err := exec.CommandContext(ctx, p.binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

func convertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-loglevel", "error", "-i", wavFile, "-acodec", "mp3", "-y", mp3File)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// Supports reports whether espeak-ng has a voice for lang
func (p *ESpeakProvider) Supports(lang Language) bool {
	_, ok := espeakVoices[lang.Code()]
	return ok
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
