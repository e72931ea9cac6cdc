package lexicon

import (
	"fmt"
	"strings"
)

// Direction selects which table a translation uses
type Direction int

const (
	HindiToSanskrit Direction = iota
	SanskritToHindi
)

// Language codes used across the application
const (
	CodeHindi    = "hi"
	CodeSanskrit = "sa"
)

// Source returns the language code of the input side
func (d Direction) Source() string {
	if d == SanskritToHindi {
		return CodeSanskrit
	}
	return CodeHindi
}

// Target returns the language code of the output side
func (d Direction) Target() string {
	if d == SanskritToHindi {
		return CodeHindi
	}
	return CodeSanskrit
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == SanskritToHindi {
		return HindiToSanskrit
	}
	return SanskritToHindi
}

func (d Direction) String() string {
	return d.Source() + "-" + d.Target()
}

// Label returns the human readable form shown to users
func (d Direction) Label() string {
	if d == SanskritToHindi {
		return "Sanskrit → Hindi"
	}
	return "Hindi → Sanskrit"
}

// ParseDirection accepts "hi-sa", "sa-hi", "hindi-sanskrit", "sanskrit-hindi"
// and the arrow labels returned by Label.
func ParseDirection(s string) (Direction, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("→", "-", "->", "-", ">", "-", "_", "-", " ", "").Replace(norm)

	switch norm {
	case "hi-sa", "hindi-sanskrit", "hi2sa":
		return HindiToSanskrit, nil
	case "sa-hi", "sanskrit-hindi", "sa2hi":
		return SanskritToHindi, nil
	}
	return HindiToSanskrit, fmt.Errorf("unknown direction %q (use hi-sa or sa-hi)", s)
}

// DirectionFromSource returns the direction whose input language is code
func DirectionFromSource(code string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case CodeHindi, "hindi":
		return HindiToSanskrit, nil
	case CodeSanskrit, "sanskrit":
		return SanskritToHindi, nil
	}
	return HindiToSanskrit, fmt.Errorf("unknown source language %q", code)
}
