package translation

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

func languageName(code string) string {
	if code == lexicon.CodeSanskrit {
		return "Sanskrit"
	}
	return "Hindi"
}

func translationPrompt(text string, dir lexicon.Direction) string {
	src := languageName(dir.Source())
	tgt := languageName(dir.Target())
	return fmt.Sprintf("Translate the following %s text to %s. "+
		"Respond with only the %s translation written in Devanagari script, nothing else.\n\n%s",
		src, tgt, tgt, text)
}

// cleanResponse strips whitespace and wrapping quotes a model may add
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'“”‘’`")
	return strings.Join(strings.Fields(s), " ")
}
