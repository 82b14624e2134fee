// Package slogobs implements the observability.Observer interface on top of
// Go's standard library slog, so callers get structured logging without any
// external observability dependency.
package slogobs
