// Package preflight provides readiness checks for the filesystem paths snail
// reads and writes.
//
// The CLI "snail check" command runs RunAll and renders one line per check.
// Required paths fail when missing or inaccessible; optional inputs such as
// the prompt template or the locale override directory pass with a note when
// they are absent, because a built-in fallback exists.
package preflight
