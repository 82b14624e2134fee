package gemini

import (
	"strings"

	"github.com/leofalp/multichat/providers/ai"
)

// contextWindowTurns bounds how many prior conversation turns are forwarded
// to Gemini. Long histories blow up the prompt token count quickly on this
// API, so only the most recent turns travel with the final user message.
const contextWindowTurns = 5

// requestToGemini converts an ai.ChatRequest to a Gemini generateContentRequest.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	req.Contents = buildContents(request.Messages)
	req.GenerationConfig = buildGenerationConfig(request.GenerationConfig)

	return req
}

// buildContents converts ai.Message slice to Gemini content slice, keeping
// the final message plus at most contextWindowTurns preceding turns.
// Role mapping: user -> user, assistant -> model.
func buildContents(messages []ai.Message) []content {
	if len(messages) > contextWindowTurns+1 {
		messages = messages[len(messages)-(contextWindowTurns+1):]
	}

	var contents []content
	for _, msg := range messages {
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}
	return contents
}

// buildGenerationConfig converts the generic generation config to Gemini format.
func buildGenerationConfig(cfg *ai.GenerationConfig) *generationConfig {
	if cfg == nil {
		return nil
	}

	out := &generationConfig{Temperature: cfg.Temperature}
	if cfg.MaxOutputTokens > 0 {
		maxTokens := cfg.MaxOutputTokens
		out.MaxOutputTokens = &maxTokens
	}
	if out.Temperature == nil && out.MaxOutputTokens == nil {
		return nil
	}
	return out
}

// geminiToGeneric converts a generateContentResponse to ai.ChatResponse.
func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    resp.ResponseID,
		Model: resp.ModelVersion,
	}

	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		result.FinishReason = strings.ToLower(cand.FinishReason)
		if cand.Content != nil {
			texts := make([]string, 0, len(cand.Content.Parts))
			for _, p := range cand.Content.Parts {
				if p.Text != "" {
					texts = append(texts, p.Text)
				}
			}
			result.Content = strings.Join(texts, "")
		}
	}

	// Usage stays nil when the backend reported none; absence is meaningful.
	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result
}
