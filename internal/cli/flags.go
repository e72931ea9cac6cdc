package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	OutputDir      string
	Direction      string
	Swap           bool
	Engine         string
	DictionaryFile string
	BatchFile      string
	Concurrency    int
	Phonetic       bool
	History        bool
	Archive        bool
	ListModels     bool
	Verbose        bool

	// Speech flags
	SpeechProvider   string
	FallbackProvider string
	AudioFormat      string
	NoAudio          bool
	Play             bool
	Cache            bool

	// OpenAI flags
	OpenAIModel      string
	OpenAIVoice      string
	OpenAISpeed      float64
	TranslationModel string

	// Gemini flags
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Direction:        "hi-sa",
		Engine:           "dictionary",
		Concurrency:      4,
		History:          true,
		SpeechProvider:   "google",
		AudioFormat:      "mp3",
		Cache:            true,
		OpenAIModel:      "gpt-4o-mini-tts",
		OpenAIVoice:      "alloy",
		OpenAISpeed:      1.0,
		TranslationModel: "gpt-4o-mini",
		GeminiModel:      "gemini-2.5-flash",
	}
}
