// Package word defines the vocabulary record shared by every stage of the
// list and deck pipeline: the Record mapping, the closed set of word types
// and genders, and the canonical field names.
package word
