package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsCoverAllKnownProviders(t *testing.T) {
	defaults := Defaults()

	for _, id := range DefaultSelection() {
		cfg, ok := defaults[id]
		if !ok {
			t.Errorf("no default configuration for provider %q", id)
			continue
		}
		if cfg.Model == "" {
			t.Errorf("provider %q has no default model", id)
		}
		if cfg.APIKeyEnv == "" {
			t.Errorf("provider %q has no credential lookup key", id)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("provider %q: expected 30s default timeout, got %s", id, cfg.Timeout)
		}
		if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
			t.Errorf("provider %q: expected default temperature 0.7, got %v", id, cfg.Temperature)
		}
	}
}

func TestDefaultsReturnsFreshMap(t *testing.T) {
	first := Defaults()
	first["openai"] = Adapter{Model: "mutated"}

	if Defaults()["openai"].Model == "mutated" {
		t.Error("mutating the returned map must not affect later calls")
	}
}

func TestLoadEnvMissingFileIsNotAnError(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "does-not-exist.env")); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadEnvReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MULTICHAT_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("MULTICHAT_TEST_VALUE", "")
	os.Unsetenv("MULTICHAT_TEST_VALUE")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("unexpected error loading env file: %v", err)
	}
	if got := os.Getenv("MULTICHAT_TEST_VALUE"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"sk-proj-abcdefghijkl1234", "sk-proj...1234"},
	}
	for _, tt := range tests {
		if got := MaskKey(tt.key); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestCheckKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-proj-abcdefghijkl1234")
	t.Setenv("GROQ_API_KEY", "")
	os.Unsetenv("GROQ_API_KEY")

	statuses := CheckKeys([]string{"openai", "groq"}, Defaults())

	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Present || statuses[0].Preview != "sk-proj...1234" {
		t.Errorf("unexpected openai status: %+v", statuses[0])
	}
	if statuses[1].Present || statuses[1].Preview != "" {
		t.Errorf("unexpected groq status: %+v", statuses[1])
	}
}

func TestCheckKeysSkipsUnknownProviders(t *testing.T) {
	statuses := CheckKeys([]string{"ghost"}, Defaults())
	if len(statuses) != 0 {
		t.Errorf("expected unknown providers to be skipped, got %+v", statuses)
	}
}
