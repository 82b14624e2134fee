package dispatch

import (
	"time"

	"github.com/leofalp/multichat/providers/ai"
)

// Status is the normalized outcome of one provider call.
type Status string

const (
	// StatusSuccess means the backend answered and Text is populated.
	StatusSuccess Status = "success"

	// StatusError means the call was attempted and failed; ErrorMessage
	// carries a human-readable categorization of the failure.
	StatusError Status = "error"

	// StatusUnavailable means the adapter could not be constructed (for
	// example, a missing credential) and no call was attempted.
	StatusUnavailable Status = "unavailable"
)

// Result is the normalized record for one provider within one dispatch.
// Status determines which optional fields are populated: success carries
// Text (and Usage when the backend reported it), error and unavailable
// carry ErrorMessage.
type Result struct {
	ProviderID   string
	Status       Status
	Text         string
	Elapsed      time.Duration
	Usage        *ai.Usage // nil when the backend reported no token usage
	ErrorMessage string
}

// ElapsedSeconds returns the call duration in seconds.
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// ResultSet is the ordered outcome of one dispatch: exactly one Result per
// selected provider, in selection order. It is produced once and owned by
// the caller afterwards.
type ResultSet []Result

// Request carries one user message, the conversation snapshot shared by all
// backends, and the ordered provider selection. It is constructed fresh per
// message and not mutated after creation.
type Request struct {
	Input    string
	History  []ai.Message
	Selected []string
}
