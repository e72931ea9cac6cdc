// Package processor contains the core flow run for every piece of input
// text: translate, save the translation, synthesise the audio, fetch the
// optional pronunciation guide and record the history entry. It is the
// coordinator between all other components.
package processor
