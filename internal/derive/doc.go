// Package derive renders the supplementary card markup for a record: noun
// gender and plural markers, adjective comparison tables, verb conjugation
// tables, and the comment box.
//
// Every method is total. Missing inputs yield an empty string, and labels are
// resolved through the Localizer the Deriver carries, so no method reads
// global state or touches the filesystem.
package derive
