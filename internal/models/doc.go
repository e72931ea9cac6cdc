// Package models lists the OpenAI models usable for translation and speech
// with the configured API key.
package models
