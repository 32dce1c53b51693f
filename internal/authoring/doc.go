// Package authoring implements the word list workflows that run before a deck
// is built: seeding a list from curated basics and a frequency list,
// finalizing it with fresh keys, filtering and exporting records, merging
// edited records back from a dump, and rendering the refinement prompt handed
// to an editor.
package authoring
