// Package session ties the conversation log and the adapter registry
// together for one interactive session. It owns the rule that the log grows
// only after a dispatch has fully completed: first the user turn, then the
// first successful answer as the assistant turn.
package session

import (
	"context"

	"github.com/leofalp/multichat/core/chat"
	"github.com/leofalp/multichat/core/dispatch"
	"github.com/leofalp/multichat/providers/ai"
)

// Session is one user's conversation against a fixed set of adapters.
type Session struct {
	history  *chat.History
	registry *dispatch.Registry
}

// New creates a session with an empty conversation log.
func New(registry *dispatch.Registry) *Session {
	return &Session{
		history:  chat.NewHistory(),
		registry: registry,
	}
}

// Send dispatches input to the selected providers with the current
// conversation snapshot and returns the ordered result set. When selected is
// empty, all registered providers are queried in registration order.
//
// The history is appended only after the full result set is produced, so no
// provider ever observes a partially-updated conversation.
func (s *Session) Send(ctx context.Context, input string, selected []string) (dispatch.ResultSet, error) {
	if len(selected) == 0 {
		selected = s.registry.IDs()
	}

	request := dispatch.Request{
		Input:    input,
		History:  s.history.Snapshot(),
		Selected: selected,
	}

	results, err := dispatch.Dispatch(ctx, request, s.registry.Adapters())
	if err != nil {
		return nil, err
	}

	s.history.Append(ai.RoleUser, input)
	for _, result := range results {
		// The first successful answer becomes the shared assistant turn,
		// keeping a single coherent thread across all backends.
		if result.Status == dispatch.StatusSuccess {
			s.history.Append(ai.RoleAssistant, result.Text)
			break
		}
	}

	return results, nil
}

// History exposes the session's conversation log.
func (s *Session) History() *chat.History {
	return s.history
}

// Reset clears the conversation log.
func (s *Session) Reset() {
	s.history.Reset()
}
