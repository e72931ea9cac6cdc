package speech

import "strings"

// ValidateText rejects text with nothing to speak
func ValidateText(provider string, text string, lang Language) error {
	if strings.TrimSpace(text) == "" {
		return &SynthesisError{Provider: provider, Language: lang, Reason: EmptyText}
	}
	return nil
}
