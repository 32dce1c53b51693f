// Package logging assembles the structured slog loggers used across snail.
//
// It owns the console and JSON handlers, maps configured level and format
// strings onto slog, and provides attribute helpers so packages emit warnings
// with the same shape: an event type, a hint at the cause, and the impact on
// the current operation. Library packages default to NewNop so they can be
// used without wiring.
package logging
