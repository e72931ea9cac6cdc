package translation

import (
	"context"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// DictionaryTranslator substitutes words from a lexicon dictionary.
// Unknown words pass through unchanged and it never fails.
type DictionaryTranslator struct {
	dict *lexicon.Dictionary
}

// NewDictionaryTranslator creates a translator over dict
func NewDictionaryTranslator(dict *lexicon.Dictionary) *DictionaryTranslator {
	return &DictionaryTranslator{dict: dict}
}

func (t *DictionaryTranslator) Translate(_ context.Context, text string, dir lexicon.Direction) (string, error) {
	return t.dict.Translate(text, dir), nil
}

func (t *DictionaryTranslator) Name() string {
	return EngineDictionary
}
