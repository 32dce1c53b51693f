// Package main hosts the snail CLI entrypoint and command graph.
//
// The Cobra-based command tree drives the vocabulary workspace: seeding and
// finalizing word lists, round-tripping them through a dump directory for
// manual refinement, validating shards, and packaging decks for a target
// language. It centralizes configuration resolution, logger setup and
// workspace locking so subcommands only wire the internal packages together.
//
// Keep this package lean: list and deck semantics belong in internal/
// packages, and commands here should stay a thin layer over them.
package main
