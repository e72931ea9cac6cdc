// Package lexicon holds the Hindi ↔ Sanskrit word tables and the
// word-for-word substitution translator built on them. Both lookup
// directions are derived from one canonical entry list and never change
// after construction, so a Dictionary is safe for concurrent use.
package lexicon
