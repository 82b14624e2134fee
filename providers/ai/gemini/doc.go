// Package gemini implements the ai.Provider interface for Google's Gemini
// generateContent API.
package gemini
