// Package textutil provides text helpers shared by the media resolver and the
// deck builder.
//
// Slugify turns arbitrary text into a lowercase ASCII token joined by hyphens.
// Accented letters are folded to their base form through Unicode NFKD
// decomposition with combining marks removed; every other run of characters
// outside [a-z0-9] collapses into a single hyphen. Input that leaves nothing
// behind becomes "unknown" so callers always get a usable filename.
package textutil
