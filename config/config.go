// Package config holds the per-adapter configuration recognized by the
// dispatch layer: model identifier, credential lookup key, sampling options,
// and the per-call timeout. It also loads .env files and provides the key
// diagnostic used by the CLI.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/leofalp/multichat/internal/utils"
)

// Adapter holds the options for one provider adapter instance. Zero values
// mean "use the adapter-specific default": an empty Model defers to the
// provider, a nil Temperature sends none, a zero MaxOutputTokens sends no
// cap, and a zero Timeout disables the per-call deadline.
type Adapter struct {
	Model           string        // model identifier sent to the backend
	APIKeyEnv       string        // environment variable holding the credential
	Temperature     *float64      // sampling temperature in [0, 2]
	MaxOutputTokens int           // upper bound on generated tokens
	Timeout         time.Duration // upper bound on one backend call
}

// Default per-provider settings, matching the models and limits the hosted
// comparison originally shipped with.
const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 1024
	DefaultTimeout         = 30 * time.Second
)

// Defaults returns the built-in configuration for every known provider,
// keyed by provider id. Callers may mutate the returned map freely.
func Defaults() map[string]Adapter {
	return map[string]Adapter{
		"openai": {
			Model:           "gpt-4",
			APIKeyEnv:       "OPENAI_API_KEY",
			Temperature:     utils.Ptr(DefaultTemperature),
			MaxOutputTokens: DefaultMaxOutputTokens,
			Timeout:         DefaultTimeout,
		},
		"groq": {
			Model:           "llama-3.3-70b-versatile",
			APIKeyEnv:       "GROQ_API_KEY",
			Temperature:     utils.Ptr(DefaultTemperature),
			MaxOutputTokens: DefaultMaxOutputTokens,
			Timeout:         DefaultTimeout,
		},
		"gemini": {
			Model:           "gemini-2.5-flash",
			APIKeyEnv:       "GOOGLE_API_KEY",
			Temperature:     utils.Ptr(DefaultTemperature),
			MaxOutputTokens: DefaultMaxOutputTokens,
			Timeout:         DefaultTimeout,
		},
	}
}

// DefaultSelection is the provider order used when the caller does not pick
// an explicit subset.
func DefaultSelection() []string {
	return []string{"openai", "groq", "gemini"}
}

// LoadEnv loads environment variables from the given .env file, or from
// ./.env when path is empty. A missing file is not an error; already-set
// variables are never overridden.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}
