// Package speech synthesises Hindi and Sanskrit text to audio files. It
// provides the Provider interface with Google Translate, OpenAI and
// espeak-ng implementations, a fallback wrapper and an on-disk cache.
// Every synthesis failure is reported as a *SynthesisError so callers can
// keep the text result and skip the audio.
package speech
