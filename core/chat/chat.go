// Package chat holds the session-scoped conversation state: an append-only,
// ordered log of user and assistant turns. Every provider queried in one
// dispatch receives the same immutable snapshot of this log, so all backends
// see identical context.
package chat

import (
	"sync"

	"github.com/leofalp/multichat/providers/ai"
)

// History is the ordered conversation log for one session. Turns are
// append-only; the log is cleared only by an explicit [History.Reset].
// Snapshots are copies, so readers never observe a partially-updated log.
type History struct {
	mu    sync.Mutex
	turns []ai.Message
}

// NewHistory creates an empty conversation log.
func NewHistory() *History {
	return &History{}
}

// Append adds one turn to the end of the log.
func (h *History) Append(role ai.MessageRole, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, ai.Message{Role: role, Content: content})
}

// Snapshot returns a copy of the current log. The copy is owned by the
// caller; later appends to the history do not alter it.
func (h *History) Snapshot() []ai.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	snapshot := make([]ai.Message, len(h.turns))
	copy(snapshot, h.turns)
	return snapshot
}

// Recent returns a copy of the last n turns (or fewer when the log is
// shorter).
func (h *History) Recent(n int) []ai.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.turns) {
		n = len(h.turns)
	}
	if n <= 0 {
		return nil
	}
	recent := make([]ai.Message, n)
	copy(recent, h.turns[len(h.turns)-n:])
	return recent
}

// Len returns the number of turns in the log.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Reset clears the log, starting a fresh conversation.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
