// Package ankipkg writes Anki deck packages (.apkg).
//
// A package is a zip archive holding collection.anki2, an SQLite database in
// the Anki 2.0 schema, plus a "media" JSON manifest that maps numbered archive
// entries back to their original file names. The collection is built in a
// temporary directory with modernc.org/sqlite and the archive is renamed into
// place once complete, so a failed write never leaves a partial package.
package ankipkg
