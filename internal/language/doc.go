// Package language holds the closed set of languages a word list or deck can
// use, together with the per-language metadata the rest of snail needs.
//
// Each language is a Code (the value stored as a field name in word records
// and used in list and deck directory names). The associated table carries a
// display name, the BCP-47 locale tag used for speech synthesis, the voice
// name when one is available, and the code used by frequency lists.
//
// All lookups are pure functions over that table; no other package should
// branch on individual language codes.
package language
