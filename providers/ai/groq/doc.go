// Package groq implements the ai.Provider interface for Groq's
// OpenAI-compatible chat completions API, used here to serve Llama models.
package groq
