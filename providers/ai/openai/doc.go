// Package openai implements the ai.Provider interface for OpenAI's
// chat completions API.
package openai
