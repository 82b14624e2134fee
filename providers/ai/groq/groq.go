package groq

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/multichat/internal/httpx"
	"github.com/leofalp/multichat/providers/ai"
	"github.com/leofalp/multichat/providers/observability"
)

const (
	defaultBaseURL          = "https://api.groq.com/openai/v1"
	chatCompletionsEndpoint = "/chat/completions"
	defaultModel            = "llama-3.3-70b-versatile"
)

// GroqProvider implements the ai.Provider interface for Groq's API.
type GroqProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a new Groq provider instance with default values from environment.
// Environment variables:
//   - GROQ_API_KEY: API key for authentication
//   - GROQ_API_BASE_URL: Base URL for API (optional, defaults to Groq's API)
func New() *GroqProvider {
	apiKey := os.Getenv("GROQ_API_KEY")
	baseURL := os.Getenv("GROQ_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GroqProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Name returns the provider identifier.
func (p *GroqProvider) Name() string {
	return "groq"
}

// WithAPIKey sets the API key for the provider.
func (p *GroqProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GroqProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GroqProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the ai.Provider interface.
func (p *GroqProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	observer := observability.ObserverFromContext(ctx)

	model := request.Model
	if model == "" {
		model = defaultModel
	}
	request.Model = model

	if observer != nil {
		observer.Trace(ctx, "Groq provider preparing request",
			observability.String(observability.AttrLLMProvider, p.Name()),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
		)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}

	httpResponse, resp, err := httpx.DoPost[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestToChatCompletion(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Groq API: %s", httpResponse.Status)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	result := responseToGeneric(*resp)
	result.Model = model // Ensure model is set even if not in response

	if observer != nil {
		observer.Trace(ctx, "Groq provider received response",
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
		)
	}

	return result, nil
}
