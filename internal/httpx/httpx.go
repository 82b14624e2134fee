package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/multichat/internal/utils"
	"github.com/leofalp/multichat/providers/observability"
)

// HeaderOption is an extra request header set alongside the defaults.
type HeaderOption struct {
	Key   string
	Value string
}

// DoPost performs a synchronous HTTP POST request with JSON body and parses
// the response. It handles observability events, authorization headers, and
// proper resource cleanup.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - Non-2xx responses return a typed [*HTTPError] carrying the status
//     code, a readable body, and the parsed Retry-After header if present
//   - Undecodable 2xx bodies are retried once through jsonrepair, then
//     return a typed [*DecodeError]
//   - Response body close errors are logged but don't override primary errors
func DoPost[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	observer := observability.ObserverFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	if observer != nil {
		observer.Trace(ctx, "http request prepared",
			observability.String(observability.AttrHTTPMethod, "POST"),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if observer != nil {
			observer.Trace(ctx, "http request failed",
				observability.Error(err),
				observability.Duration("http.request.duration", requestDuration),
			)
		}
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			// Don't override the main error; if the main function returns
			// an error, it takes precedence.
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if observer != nil {
		observer.Trace(ctx, "http response received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration("http.request.duration", requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       readableBody(res.Header.Get("Content-Type"), respBody),
			RetryAfter: parseRetryAfter(res.Header.Get("Retry-After")),
		}
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		// Some backends (and the proxies in front of them) emit almost-JSON:
		// trailing commas, unquoted keys, stray control characters. Repair
		// once before declaring the body malformed.
		repaired, repairErr := jsonrepair.JSONRepair(string(respBody))
		if repairErr != nil || json.Unmarshal([]byte(repaired), &resStruct) != nil {
			return res, nil, &DecodeError{
				Err:     err,
				Preview: utils.TruncateString(string(respBody), 500),
			}
		}
	}

	return res, &resStruct, nil
}

// readableBody turns an error response body into something fit for a log
// line or a user-facing error message. HTML pages are converted to markdown,
// everything is truncated.
func readableBody(contentType string, body []byte) string {
	text := string(body)
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		if markdown, err := htmltomarkdown.ConvertString(text); err == nil {
			text = strings.TrimSpace(markdown)
		}
	}
	return utils.TruncateString(text, 500)
}

// parseRetryAfter interprets the Retry-After header, which is either a
// number of seconds or an HTTP date. Returns zero when absent or invalid.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}
