package httpx

import (
	"fmt"
	"time"
)

// HTTPError is returned when the backend answered with a non-2xx status.
// The body is preserved (truncated) so callers can classify the failure
// from the status code and surface the backend's own message.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	RetryAfter time.Duration // zero when the backend sent no Retry-After header
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("non-2xx status %d", e.StatusCode)
	}
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response body could not be parsed as
// the expected JSON structure, even after a repair attempt.
type DecodeError struct {
	Err     error
	Preview string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error unmarshaling LLM response body: %v\nResponse preview: %s", e.Err, e.Preview)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
