package config

import "os"

// KeyStatus reports whether a provider's credential is present in the
// environment, with a masked preview safe for terminal output.
type KeyStatus struct {
	ProviderID string
	EnvVar     string
	Present    bool
	Preview    string
}

// CheckKeys inspects the environment for every adapter's credential.
// Results follow the iteration order of the given selection.
func CheckKeys(selection []string, adapters map[string]Adapter) []KeyStatus {
	statuses := make([]KeyStatus, 0, len(selection))
	for _, id := range selection {
		cfg, ok := adapters[id]
		if !ok {
			continue
		}
		key := os.Getenv(cfg.APIKeyEnv)
		statuses = append(statuses, KeyStatus{
			ProviderID: id,
			EnvVar:     cfg.APIKeyEnv,
			Present:    key != "",
			Preview:    MaskKey(key),
		})
	}
	return statuses
}

// MaskKey returns a preview of a credential that keeps only the first seven
// and last four characters. Short keys are fully masked.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 11 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
