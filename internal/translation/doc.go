// Package translation turns Hindi text into Sanskrit and back. The
// dictionary engine substitutes words from the lexicon; the OpenAI and
// Gemini engines ask a remote model and fall back to the dictionary while
// the model is failing. It also holds the translation cache used by batch
// runs and the translation.txt writer.
package translation
