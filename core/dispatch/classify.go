package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/leofalp/multichat/internal/httpx"
)

// errorMessage converts a provider error into a human-readable message that
// names the failure category. Raw errors never travel past this point; the
// message is what the UI shows next to the provider.
func errorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout: the provider did not answer within the configured deadline"
	}
	if errors.Is(err, context.Canceled) {
		return "timeout: the request was cancelled before the provider answered"
	}

	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Sprintf("auth error: the backend rejected the API key (status %d): %s", httpErr.StatusCode, httpErr.Body)
		case http.StatusTooManyRequests:
			msg := fmt.Sprintf("quota exceeded: rate limit or billing quota hit (status %d)", httpErr.StatusCode)
			if httpErr.RetryAfter > 0 {
				msg += fmt.Sprintf(", retry after %s", httpErr.RetryAfter)
			}
			return msg + ": " + httpErr.Body
		case http.StatusNotFound:
			return fmt.Sprintf("model unavailable: the requested model is unknown or deprecated (status %d): %s", httpErr.StatusCode, httpErr.Body)
		default:
			return fmt.Sprintf("backend error: unexpected status %d: %s", httpErr.StatusCode, httpErr.Body)
		}
	}

	var decodeErr *httpx.DecodeError
	if errors.As(err, &decodeErr) {
		return "malformed response: the backend returned a shape that could not be parsed: " + decodeErr.Error()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout: the provider did not answer within the configured deadline"
		}
		return "network error: " + err.Error()
	}

	return "error: " + err.Error()
}
