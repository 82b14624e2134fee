package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leofalp/multichat/config"
	"github.com/leofalp/multichat/internal/httpx"
	"github.com/leofalp/multichat/internal/utils"
	"github.com/leofalp/multichat/providers/ai"
)

// fakeProvider implements ai.Provider with a pluggable SendMessage.
type fakeProvider struct {
	name  string
	send  func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)
	calls atomic.Int64
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	f.calls.Add(1)
	return f.send(ctx, request)
}

func (f *fakeProvider) WithAPIKey(string) ai.Provider           { return f }
func (f *fakeProvider) WithBaseURL(string) ai.Provider          { return f }
func (f *fakeProvider) WithHttpClient(*http.Client) ai.Provider { return f }

func TestProviderAdapterMissingCredentialNeverCalls(t *testing.T) {
	t.Setenv("FAKE_API_KEY", "")

	provider := &fakeProvider{name: "fake", send: func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
		t.Fatal("provider must not be called when the credential is missing")
		return nil, nil
	}}

	adapter := NewProviderAdapter("fake", provider, config.Adapter{APIKeyEnv: "FAKE_API_KEY"})
	if adapter.Available() {
		t.Error("expected adapter to be unavailable without credential")
	}

	result := adapter.Query(context.Background(), "hello", nil)

	if result.Status != StatusUnavailable {
		t.Errorf("expected status unavailable, got %s", result.Status)
	}
	if !strings.Contains(result.ErrorMessage, "FAKE_API_KEY") {
		t.Errorf("expected error message naming the missing variable, got %q", result.ErrorMessage)
	}
	if calls := provider.calls.Load(); calls != 0 {
		t.Errorf("expected zero provider calls, got %d", calls)
	}
}

func TestProviderAdapterSuccess(t *testing.T) {
	t.Setenv("FAKE_API_KEY", "sk-test-key")

	usage := &ai.Usage{PromptTokens: 12, CompletionTokens: 34, TotalTokens: 46}
	provider := &fakeProvider{name: "fake", send: func(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		if request.Model != "test-model" {
			t.Errorf("expected configured model, got %q", request.Model)
		}
		last := request.Messages[len(request.Messages)-1]
		if last.Role != ai.RoleUser || last.Content != "hello" {
			t.Errorf("expected user input as final message, got %+v", last)
		}
		return &ai.ChatResponse{Content: "hi there", Usage: usage}, nil
	}}

	adapter := NewProviderAdapter("fake", provider, config.Adapter{
		Model:       "test-model",
		APIKeyEnv:   "FAKE_API_KEY",
		Temperature: utils.Ptr(0.7),
	})

	result := adapter.Query(context.Background(), "hello", []ai.Message{{Role: ai.RoleUser, Content: "earlier"}})

	if result.Status != StatusSuccess {
		t.Fatalf("expected success, got %s (%s)", result.Status, result.ErrorMessage)
	}
	if result.Text != "hi there" {
		t.Errorf("expected response text, got %q", result.Text)
	}
	if result.Usage == nil || result.Usage.TotalTokens != 46 {
		t.Errorf("expected usage passed through, got %+v", result.Usage)
	}
	if result.Elapsed < 0 {
		t.Errorf("expected nonnegative elapsed time, got %s", result.Elapsed)
	}
}

func TestProviderAdapterUsageAbsentStaysAbsent(t *testing.T) {
	t.Setenv("FAKE_API_KEY", "sk-test-key")

	provider := &fakeProvider{name: "fake", send: func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{Content: "answer"}, nil
	}}
	adapter := NewProviderAdapter("fake", provider, config.Adapter{APIKeyEnv: "FAKE_API_KEY"})

	result := adapter.Query(context.Background(), "hello", nil)
	if result.Usage != nil {
		t.Errorf("expected nil usage when the backend reported none, got %+v", result.Usage)
	}
}

func TestProviderAdapterDoesNotMutateHistory(t *testing.T) {
	t.Setenv("FAKE_API_KEY", "sk-test-key")

	provider := &fakeProvider{name: "fake", send: func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{Content: "answer"}, nil
	}}
	adapter := NewProviderAdapter("fake", provider, config.Adapter{APIKeyEnv: "FAKE_API_KEY"})

	history := []ai.Message{{Role: ai.RoleUser, Content: "first"}}
	adapter.Query(context.Background(), "second", history)

	if len(history) != 1 || history[0].Content != "first" {
		t.Errorf("adapter mutated the caller's history: %+v", history)
	}
}

func TestProviderAdapterTimeout(t *testing.T) {
	t.Setenv("FAKE_API_KEY", "sk-test-key")

	provider := &fakeProvider{name: "fake", send: func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	adapter := NewProviderAdapter("fake", provider, config.Adapter{
		APIKeyEnv: "FAKE_API_KEY",
		Timeout:   50 * time.Millisecond,
	})

	start := time.Now()
	result := adapter.Query(context.Background(), "hello", nil)
	elapsed := time.Since(start)

	if result.Status != StatusError {
		t.Fatalf("expected error status on timeout, got %s", result.Status)
	}
	if !strings.Contains(result.ErrorMessage, "timeout") {
		t.Errorf("expected timeout-indicating message, got %q", result.ErrorMessage)
	}
	if elapsed > time.Second {
		t.Errorf("timeout did not bound the call: %s", elapsed)
	}
}

func TestErrorMessageClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"auth 401", &httpx.HTTPError{StatusCode: 401, Body: "invalid api key"}, "auth error"},
		{"auth 403", &httpx.HTTPError{StatusCode: 403, Body: "forbidden"}, "auth error"},
		{"quota", &httpx.HTTPError{StatusCode: 429, Body: "slow down", RetryAfter: 3 * time.Second}, "quota exceeded"},
		{"model unknown", &httpx.HTTPError{StatusCode: 404, Body: "model `gpt-9` does not exist"}, "model unavailable"},
		{"server error", &httpx.HTTPError{StatusCode: 500, Body: "oops"}, "backend error"},
		{"malformed", &httpx.DecodeError{Err: errors.New("invalid character '<'"), Preview: "<garbage>"}, "malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected message containing %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorMessageQuotaIncludesRetryHint(t *testing.T) {
	got := errorMessage(&httpx.HTTPError{StatusCode: 429, RetryAfter: 30 * time.Second})
	if !strings.Contains(got, "retry after 30s") {
		t.Errorf("expected retry-after hint, got %q", got)
	}
}
