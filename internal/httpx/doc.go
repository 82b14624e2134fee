// Package httpx contains the shared HTTP plumbing used by every provider
// implementation: a generic JSON POST helper with typed errors for status
// failures and undecodable bodies. Decoding applies an automatic JSON repair
// pass before giving up, and HTML error pages (as served by gateways and
// proxies in front of the real API) are converted to markdown so the error
// text stays readable.
package httpx
