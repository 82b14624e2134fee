// Package dispatch implements the concurrent fan-out of one user message to
// several LLM backends. Each selected adapter runs on its own goroutine; the
// dispatcher waits for every call to finish (success, failure, or timeout),
// isolates per-adapter faults so one backend cannot abort its siblings, and
// returns exactly one normalized [Result] per selected provider, ordered by
// the caller's selection order rather than by completion order.
package dispatch
