// Package deckindex maintains index.json, the map from a "{native}_{target}"
// language pair to the deck built for it.
//
// The file is rewritten whole on every update through a temp file and rename.
// A missing or unparsable file is treated as an empty index with a warning, so
// a damaged index never blocks a deck build.
package deckindex
