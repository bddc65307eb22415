// Package processor runs the enrichment pass over a vocabulary file. It walks
// every entry in order, fills in the Spanish part of speech, definition and
// etymology where they are missing, checkpoints the file periodically and
// reports a summary. A failing entry is logged and counted, never fatal.
package processor
