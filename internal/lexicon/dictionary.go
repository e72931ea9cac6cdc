package lexicon

import (
	"strings"
	"sync"
)

// Entry is one (Hindi, Sanskrit) pair of the word list
type Entry struct {
	Hindi    string `yaml:"hindi"`
	Sanskrit string `yaml:"sanskrit"`
}

// canonical is the hand-authored word list both tables are derived from.
var canonical = []Entry{
	{Hindi: "नमस्ते", Sanskrit: "नमः"},
	{Hindi: "आप", Sanskrit: "त्वम्"},
	{Hindi: "कैसे", Sanskrit: "कथम्"},
	{Hindi: "हैं", Sanskrit: "असि"},
	{Hindi: "मैं", Sanskrit: "अहम्"},
	{Hindi: "मेरा", Sanskrit: "मम"},
	{Hindi: "घर", Sanskrit: "गृहः"},
	{Hindi: "जल", Sanskrit: "वारि"},
	{Hindi: "पुस्तक", Sanskrit: "पुस्तकम्"},
	{Hindi: "विद्यालय", Sanskrit: "पाठशाला"},
	{Hindi: "धन्यवाद", Sanskrit: "धन्यः"},
	{Hindi: "खाना", Sanskrit: "भोजनम्"},
}

// Canonical returns a copy of the built-in word list
func Canonical() []Entry {
	out := make([]Entry, len(canonical))
	copy(out, canonical)
	return out
}

// Dictionary holds the forward (Hindi → Sanskrit) and reverse
// (Sanskrit → Hindi) tables. It is read-only after New returns.
type Dictionary struct {
	entries []Entry
	forward map[string]string
	reverse map[string]string
}

// New builds both tables from entries. A repeated Hindi word keeps its last
// Sanskrit value; when two Hindi words share a Sanskrit value the reverse
// table keeps the later one.
func New(entries []Entry) *Dictionary {
	d := &Dictionary{
		forward: make(map[string]string, len(entries)),
		reverse: make(map[string]string, len(entries)),
	}

	for _, e := range entries {
		if e.Hindi == "" || e.Sanskrit == "" {
			continue
		}
		d.forward[e.Hindi] = e.Sanskrit
	}

	// Invert the forward table in list order so the result matches a plain
	// {v: k for k, v in forward} comprehension.
	seen := make(map[string]bool, len(d.forward))
	for _, e := range entries {
		if e.Hindi == "" || e.Sanskrit == "" || seen[e.Hindi] {
			continue
		}
		seen[e.Hindi] = true
		value := d.forward[e.Hindi]
		d.reverse[value] = e.Hindi
		d.entries = append(d.entries, Entry{Hindi: e.Hindi, Sanskrit: value})
	}

	return d
}

var (
	defaultDict *Dictionary
	once        sync.Once
)

// Default returns the process-wide dictionary over the canonical list
func Default() *Dictionary {
	once.Do(func() {
		defaultDict = New(canonical)
	})
	return defaultDict
}

// Translate runs the default dictionary over text
func Translate(text string, dir Direction) string {
	return Default().Translate(text, dir)
}

func (d *Dictionary) table(dir Direction) map[string]string {
	if dir == SanskritToHindi {
		return d.reverse
	}
	return d.forward
}

// Lookup returns the mapped word for a single token
func (d *Dictionary) Lookup(word string, dir Direction) (string, bool) {
	mapped, ok := d.table(dir)[word]
	return mapped, ok
}

// Translate replaces every whitespace-delimited token that the table for
// dir knows and keeps the rest unchanged. Tokens are joined by a single
// space, so surrounding and repeated whitespace collapses.
func (d *Dictionary) Translate(text string, dir Direction) string {
	words := strings.Fields(text)
	table := d.table(dir)

	for i, w := range words {
		if mapped, ok := table[w]; ok {
			words[i] = mapped
		}
	}

	return strings.Join(words, " ")
}

// Entries returns the deduplicated entries in list order
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of Hindi keys
func (d *Dictionary) Len() int {
	return len(d.forward)
}

// Words returns the keys of the table used for dir
func (d *Dictionary) Words(dir Direction) []string {
	words := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		if dir == SanskritToHindi {
			if d.reverse[e.Sanskrit] == e.Hindi {
				words = append(words, e.Sanskrit)
			}
			continue
		}
		words = append(words, e.Hindi)
	}
	return words
}

// Merge returns a new Dictionary with the receiver's entries followed by
// extra. Entries in extra override existing Hindi keys.
func (d *Dictionary) Merge(extra []Entry) *Dictionary {
	all := make([]Entry, 0, len(d.entries)+len(extra))
	all = append(all, d.entries...)
	all = append(all, extra...)
	return New(all)
}
