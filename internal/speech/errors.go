package speech

import (
	"errors"
	"fmt"
)

// Reason classifies a synthesis failure
type Reason int

const (
	// ServiceError covers network, API and subprocess failures
	ServiceError Reason = iota
	// UnsupportedLanguage means the provider cannot speak the language
	UnsupportedLanguage
	// EmptyText means there was nothing to speak
	EmptyText
)

func (r Reason) String() string {
	switch r {
	case UnsupportedLanguage:
		return "unsupported language"
	case EmptyText:
		return "empty text"
	default:
		return "service error"
	}
}

// SynthesisError is returned by every Provider when no audio was produced
type SynthesisError struct {
	Provider string
	Language Language
	Reason   Reason
	Err      error
}

func (e *SynthesisError) Error() string {
	msg := fmt.Sprintf("%s: speech synthesis unavailable for %s (%s)", e.Provider, e.Language.Name(), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is a synthesis failure
func IsUnavailable(err error) bool {
	var se *SynthesisError
	return errors.As(err, &se)
}

// IsUnsupportedLanguage reports whether err says the language is not spoken
func IsUnsupportedLanguage(err error) bool {
	var se *SynthesisError
	return errors.As(err, &se) && se.Reason == UnsupportedLanguage
}

func unsupported(provider string, lang Language) error {
	return &SynthesisError{Provider: provider, Language: lang, Reason: UnsupportedLanguage}
}

func serviceError(provider string, lang Language, err error) error {
	var se *SynthesisError
	if errors.As(err, &se) {
		return err
	}
	return &SynthesisError{Provider: provider, Language: lang, Reason: ServiceError, Err: err}
}
