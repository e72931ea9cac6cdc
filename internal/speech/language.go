package speech

import (
	"golang.org/x/text/language"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// Language is a speech language identified by its BCP 47 tag
type Language struct {
	tag language.Tag
}

var (
	Hindi    = Language{tag: language.Hindi}
	Sanskrit = Language{tag: language.MustParse("sa")}
)

// LanguageFor returns the language the output of dir is spoken in
func LanguageFor(dir lexicon.Direction) Language {
	if dir.Target() == lexicon.CodeSanskrit {
		return Sanskrit
	}
	return Hindi
}

// Code returns the two-letter language code
func (l Language) Code() string {
	base, _ := l.tag.Base()
	return base.String()
}

// Name returns the English language name
func (l Language) Name() string {
	switch l.Code() {
	case "hi":
		return "Hindi"
	case "sa":
		return "Sanskrit"
	}
	return l.tag.String()
}

func (l Language) String() string {
	return l.Code()
}
