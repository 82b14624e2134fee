// Package observability defines the logging abstraction shared by the
// dispatch layer and the provider adapters. An [Observer] travels through
// context.Context so that library code never depends on a concrete logging
// backend; the slogobs sub-package provides the standard-library slog
// implementation used by the CLI.
package observability
