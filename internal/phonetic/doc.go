// Package phonetic fetches a pronunciation guide for Hindi or Sanskrit text:
// IAST romanisation plus an IPA transcription with a short explanation of
// each sound for learners.
package phonetic
