package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/vaani/internal/history"
)

func TestCardFromRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  history.Record
		want Card
	}{
		{
			name: "hindi source",
			rec:  history.Record{Direction: "hi-sa", Source: "नमस्ते", Target: "नमः", AudioFile: "/a/x.mp3"},
			want: Card{Hindi: "नमस्ते", Sanskrit: "नमः", AudioFile: "/a/x.mp3", Direction: "hi-sa"},
		},
		{
			name: "sanskrit source",
			rec:  history.Record{Direction: "sa-hi", Source: "गृहः", Target: "घर"},
			want: Card{Hindi: "घर", Sanskrit: "गृहः", Direction: "sa-hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardFromRecord(tt.rec); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CardFromRecord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAddRecords_Dedup(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddRecords([]history.Record{
		{Direction: "hi-sa", Source: "नमस्ते", Target: "नमः"},
		{Direction: "sa-hi", Source: "नमः", Target: "नमस्ते"},
		{Direction: "hi-sa", Source: "घर", Target: "गृहः"},
		{Direction: "hi-sa", Source: "", Target: ""},
	})

	if len(gen.Cards()) != 2 {
		t.Errorf("expected 2 unique cards, got %d: %+v", len(gen.Cards()), gen.Cards())
	}
}

func TestGenerateCSV(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "anki.csv")

	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath, IncludeHeaders: true})
	gen.AddCard(Card{Hindi: "नमस्ते", Sanskrit: "नमः", AudioFile: "/out/1_ab/audio.mp3", Direction: "hi-sa"})
	gen.AddCard(Card{Hindi: "घर", Sanskrit: "गृहः", Direction: "sa-hi", Notes: "house, home"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	f, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	want := [][]string{
		{"Hindi", "Sanskrit", "Audio", "Direction", "Notes"},
		{"नमस्ते", "नमः", "[sound:1_ab_audio.mp3]", "hi-sa", ""},
		{"घर", "गृहः", "", "sa-hi", "house, home"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("CSV = %v, want %v", records, want)
	}

	total, withAudio := gen.Stats()
	if total != 2 || withAudio != 1 {
		t.Errorf("Stats() = %d, %d", total, withAudio)
	}
}

func TestGenerateCSV_NoHeaders(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "anki.csv")
	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath})
	gen.AddCard(Card{Hindi: "जल", Sanskrit: "वारि"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}
	data, _ := os.ReadFile(outputPath)
	if string(data) != "जल,वारि,,,\n" {
		t.Errorf("CSV = %q", data)
	}
}

func TestGenerateCSV_InvalidPath(t *testing.T) {
	gen := NewGenerator(&GeneratorOptions{OutputPath: "/nonexistent/dir/anki.csv"})
	if err := gen.GenerateCSV(); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestFormatAudioField(t *testing.T) {
	if got := formatAudioField(""); got != "" {
		t.Errorf("empty = %q", got)
	}
	if got := formatAudioField("/x/y/audio.mp3"); got != "[sound:y_audio.mp3]" {
		t.Errorf("got %q", got)
	}
}

func TestCopyMedia(t *testing.T) {
	tmpDir := t.TempDir()
	audio := filepath.Join(tmpDir, "out", "1_ab", "audio.mp3")
	if err := os.MkdirAll(filepath.Dir(audio), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(audio, []byte("mp3"), 0644); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(nil)
	gen.AddCard(Card{Hindi: "नमस्ते", Sanskrit: "नमः", AudioFile: audio})
	gen.AddCard(Card{Hindi: "घर", Sanskrit: "गृहः", AudioFile: filepath.Join(tmpDir, "missing", "audio.mp3")})
	gen.AddCard(Card{Hindi: "जल", Sanskrit: "जलम्"})

	mediaDir := filepath.Join(tmpDir, "media")
	n, err := gen.CopyMedia(mediaDir)
	if err != nil {
		t.Fatalf("CopyMedia failed: %v", err)
	}
	if n != 1 {
		t.Errorf("copied %d files, want 1", n)
	}
	data, err := os.ReadFile(filepath.Join(mediaDir, "1_ab_audio.mp3"))
	if err != nil || string(data) != "mp3" {
		t.Errorf("media file = %q, %v", data, err)
	}
}
