// Package anki exports translation history as Anki flashcards, either as a
// CSV file for Anki's text importer or as a self-contained .apkg package
// with the audio embedded.
package anki
