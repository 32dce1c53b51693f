// Package deck turns validated records into study-card notes and writes the
// deck package.
//
// Assembly is all or nothing: the first record lacking native or target text
// aborts the build with a *MissingTextError and nothing is written. Media is
// optional; records without audio or images still produce notes with empty
// references.
package deck
