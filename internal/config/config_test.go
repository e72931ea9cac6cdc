package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

func clearKeys(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func loadYAML(t *testing.T, content string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	clearKeys(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	state := StateDir()
	assert.Equal(t, "hi-sa", cfg.Direction)
	assert.Equal(t, lexicon.HindiToSanskrit, cfg.Dir())
	assert.Equal(t, "dictionary", cfg.Translation.Engine)
	assert.True(t, cfg.Translation.Fallback)
	assert.Equal(t, "google", cfg.Speech.Provider)
	assert.Equal(t, "mp3", cfg.Speech.Format)
	assert.True(t, cfg.Speech.Cache)
	assert.Equal(t, filepath.Join(state, "cache"), cfg.Speech.CacheDir)
	assert.Equal(t, uint(3), cfg.Speech.GoogleRetries)
	assert.Equal(t, 1.0, cfg.Speech.OpenAISpeed)
	assert.Equal(t, filepath.Join(state, "audio"), cfg.Output.Directory)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "sqlite3", cfg.History.Driver)
	assert.Equal(t, filepath.Join(state, "history.db"), cfg.History.DSN)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Empty(t, cfg.OpenAI.APIKey)
}

func TestConfig_DirSwap(t *testing.T) {
	tests := []struct {
		direction string
		swap      bool
		want      lexicon.Direction
	}{
		{"hi-sa", false, lexicon.HindiToSanskrit},
		{"hi-sa", true, lexicon.SanskritToHindi},
		{"sa-hi", false, lexicon.SanskritToHindi},
		{"sa-hi", true, lexicon.HindiToSanskrit},
	}

	for _, tt := range tests {
		cfg := &Config{Direction: tt.direction, Swap: tt.swap}
		assert.Equal(t, tt.want, cfg.Dir(), "direction %s swap %v", tt.direction, tt.swap)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	clearKeys(t)

	cfg, err := loadYAML(t, `direction: sa-hi
phonetic: true
translation:
  engine: openai
  fallback: false
speech:
  provider: openai
  fallback: google
  format: wav
  openai_voice: nova
  openai_speed: 0.9
output:
  directory: /tmp/vaani-out
history:
  driver: mysql
  dsn: user:pass@tcp(localhost:3306)/vaani
batch:
  concurrency: 8
openai:
  model: gpt-4o
`)
	require.NoError(t, err)

	assert.Equal(t, lexicon.SanskritToHindi, cfg.Dir())
	assert.True(t, cfg.Phonetic)
	assert.Equal(t, "openai", cfg.Translation.Engine)
	assert.False(t, cfg.Translation.Fallback)
	assert.Equal(t, "openai", cfg.Speech.Provider)
	assert.Equal(t, "google", cfg.Speech.Fallback)
	assert.Equal(t, "wav", cfg.Speech.Format)
	assert.Equal(t, "nova", cfg.Speech.OpenAIVoice)
	assert.Equal(t, 0.9, cfg.Speech.OpenAISpeed)
	assert.Equal(t, "/tmp/vaani-out", cfg.Output.Directory)
	assert.Equal(t, "mysql", cfg.History.Driver)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoad_APIKeysFromEnvironment(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gm-test", cfg.Gemini.APIKey)
}

func TestLoad_ValidationErrors(t *testing.T) {
	clearKeys(t)

	tests := []struct {
		name              string
		content           string
		wantErrorContains []string
	}{
		{
			name:              "unknown engine",
			content:           "translation:\n  engine: bing\n",
			wantErrorContains: []string{"invalid configuration", "engine must be one of"},
		},
		{
			name:              "unknown direction",
			content:           "direction: en-sa\n",
			wantErrorContains: []string{"direction must be one of hi-sa"},
		},
		{
			name:              "missing dictionary file",
			content:           "translation:\n  dictionary_file: /does/not/exist.yaml\n",
			wantErrorContains: []string{"translation.dictionary_file must be an existing and readable file"},
		},
		{
			name:              "unknown speech provider",
			content:           "speech:\n  provider: polly\n",
			wantErrorContains: []string{"provider must be one of"},
		},
		{
			name:              "unsupported audio format",
			content:           "speech:\n  format: ogg\n",
			wantErrorContains: []string{"format must be one of"},
		},
		{
			name:              "speed out of range",
			content:           "speech:\n  openai_speed: 5\n",
			wantErrorContains: []string{"openai_speed"},
		},
		{
			name:              "pitch out of range",
			content:           "speech:\n  espeak_pitch: 100\n",
			wantErrorContains: []string{"espeak_pitch"},
		},
		{
			name:              "zero concurrency",
			content:           "batch:\n  concurrency: 0\n",
			wantErrorContains: []string{"concurrency"},
		},
		{
			name:              "history enabled without dsn",
			content:           "history:\n  driver: mysql\n  dsn: \"\"\n",
			wantErrorContains: []string{"dsn"},
		},
		{
			name:              "several errors are joined",
			content:           "translation:\n  engine: bing\nbatch:\n  concurrency: 0\n",
			wantErrorContains: []string{"engine must be one of", ", ", "concurrency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.content)
			require.Error(t, err)
			for _, want := range tt.wantErrorContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoad_DictionaryFile(t *testing.T) {
	clearKeys(t)

	path := filepath.Join(t.TempDir(), "extra.txt")
	require.NoError(t, os.WriteFile(path, []byte("सूर्य = सूर्यः\n"), 0644))

	v := viper.New()
	v.Set("translation.dictionary_file", path)
	cfg, err := Load(v)
	require.NoError(t, err)

	dict, err := cfg.Dictionary()
	require.NoError(t, err)
	assert.Equal(t, "नमः सूर्यः", dict.Translate("नमस्ते सूर्य", lexicon.HindiToSanskrit))
}

func TestConfig_ComponentConfigs(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	v := viper.New()
	v.Set("translation.engine", "openai")
	v.Set("speech.provider", "openai")
	v.Set("speech.fallback", "espeak")
	v.Set("speech.openai_voice", "sage")
	v.Set("speech.espeak_amplitude", 0)
	cfg, err := Load(v)
	require.NoError(t, err)

	tc := cfg.TranslatorConfig(nil)
	assert.Equal(t, "openai", tc.Engine)
	assert.Equal(t, "sk-test", tc.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", tc.OpenAIModel)
	assert.True(t, tc.FallbackToDictionary)

	sc := cfg.SpeechProviderConfig()
	assert.Equal(t, "openai", sc.Provider)
	assert.Equal(t, "espeak", sc.Fallback)
	assert.Equal(t, "sage", sc.OpenAIVoice)
	assert.Equal(t, 50, sc.ESpeakPitch)
	assert.Equal(t, 0, sc.ESpeakAmplitude)
	assert.Equal(t, "sk-test", sc.OpenAIKey)
	assert.Equal(t, "mp3", sc.OutputFormat)
	assert.Equal(t, cfg.Speech.CacheDir, sc.CacheDir)
	assert.NotEmpty(t, sc.GoogleBaseURL)

	hc := cfg.HistoryStoreConfig()
	assert.Equal(t, "sqlite3", hc.Driver)
	assert.Equal(t, cfg.History.DSN, hc.DSN)
}
