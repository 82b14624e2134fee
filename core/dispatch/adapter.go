package dispatch

import (
	"context"
	"os"
	"slices"

	"github.com/leofalp/multichat/config"
	"github.com/leofalp/multichat/internal/utils"
	"github.com/leofalp/multichat/providers/ai"
)

// Adapter is the per-provider capability the dispatcher fans out to. Query
// never returns a Go error: every failure is recovered at this boundary and
// reported through the Result record.
type Adapter interface {
	// ID returns the stable provider identifier used in selections.
	ID() string

	// Query sends one user message plus the conversation snapshot to the
	// backend and reports the normalized outcome, including elapsed time
	// measured around the backend call.
	Query(ctx context.Context, input string, history []ai.Message) Result
}

// ProviderAdapter adapts an ai.Provider into the Adapter contract: it
// resolves the credential at construction time, applies the configured
// model/sampling/timeout options per call, and converts every provider
// failure into a categorized Result.
//
// Adapters are stateless with respect to conversation content; all context
// arrives through the history parameter on each call.
type ProviderAdapter struct {
	id          string
	provider    ai.Provider
	cfg         config.Adapter
	unavailable string // non-empty reason when the adapter cannot be used
}

// NewProviderAdapter builds an adapter for the given provider. A missing
// credential does not fail construction: the adapter is created in the
// unavailable state and reports itself as such at dispatch time, without
// ever attempting a network call.
func NewProviderAdapter(id string, provider ai.Provider, cfg config.Adapter) *ProviderAdapter {
	adapter := &ProviderAdapter{
		id:       id,
		provider: provider,
		cfg:      cfg,
	}

	if cfg.APIKeyEnv != "" {
		key := os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			adapter.unavailable = cfg.APIKeyEnv + " not found in environment"
		} else {
			provider.WithAPIKey(key)
		}
	}

	return adapter
}

// ID implements the Adapter interface.
func (a *ProviderAdapter) ID() string {
	return a.id
}

// Available reports whether the adapter holds a usable credential.
func (a *ProviderAdapter) Available() bool {
	return a.unavailable == ""
}

// Query implements the Adapter interface.
func (a *ProviderAdapter) Query(ctx context.Context, input string, history []ai.Message) Result {
	if a.unavailable != "" {
		return Result{
			ProviderID:   a.id,
			Status:       StatusUnavailable,
			ErrorMessage: "model not available (check API key): " + a.unavailable,
		}
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	request := ai.ChatRequest{
		Model:    a.cfg.Model,
		Messages: append(slices.Clone(history), ai.Message{Role: ai.RoleUser, Content: input}),
		GenerationConfig: &ai.GenerationConfig{
			Temperature:     a.cfg.Temperature,
			MaxOutputTokens: a.cfg.MaxOutputTokens,
		},
	}

	timer := utils.NewTimer()
	response, err := a.provider.SendMessage(ctx, request)
	timer.Stop()

	if err != nil {
		return Result{
			ProviderID:   a.id,
			Status:       StatusError,
			Elapsed:      timer.GetDuration(),
			ErrorMessage: errorMessage(err),
		}
	}

	return Result{
		ProviderID: a.id,
		Status:     StatusSuccess,
		Text:       response.Content,
		Elapsed:    timer.GetDuration(),
		Usage:      response.Usage,
	}
}
