package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/f1monkey/spellchecker"
)

// Suggester proposes known words that are close to an unknown token
type Suggester struct {
	dir Direction
	sc  *spellchecker.Spellchecker
}

// NewSuggester indexes the words of d for the given direction. The
// spellchecker alphabet is the set of runes used by those words.
func NewSuggester(d *Dictionary, dir Direction) (*Suggester, error) {
	words := d.Words(dir)
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary has no %s words", dir.Source())
	}

	sc, err := spellchecker.New(alphabet(words), spellchecker.WithMaxErrors(2))
	if err != nil {
		return nil, fmt.Errorf("spellchecker.New > %w", err)
	}
	sc.Add(words...)

	return &Suggester{dir: dir, sc: sc}, nil
}

// Suggest returns up to n candidates for word, best first
func (s *Suggester) Suggest(word string, n int) []string {
	if s == nil || n <= 0 || strings.TrimSpace(word) == "" {
		return nil
	}
	if s.sc.IsCorrect(word) {
		return []string{word}
	}
	suggestions, err := s.sc.Suggest(word, n)
	if err != nil {
		return nil
	}
	return suggestions
}

func alphabet(words []string) string {
	set := make(map[rune]struct{})
	for _, w := range words {
		for _, r := range w {
			set[r] = struct{}{}
		}
	}

	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	var b strings.Builder
	for _, r := range runes {
		b.WriteRune(r)
	}
	return b.String()
}
