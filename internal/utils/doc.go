// Package utils provides small generic helpers (timing, pointers, string
// truncation) shared across the provider and dispatch layers.
package utils
