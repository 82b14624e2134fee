package aggregate

import (
	"testing"
	"time"

	"github.com/leofalp/multichat/core/dispatch"
	"github.com/leofalp/multichat/providers/ai"
)

func sampleResults() dispatch.ResultSet {
	return dispatch.ResultSet{
		{
			ProviderID: "openai",
			Status:     dispatch.StatusSuccess,
			Text:       "Paris.",
			Elapsed:    1500 * time.Millisecond,
			Usage:      &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		},
		{
			ProviderID:   "groq",
			Status:       dispatch.StatusError,
			Elapsed:      200 * time.Millisecond,
			ErrorMessage: "quota exceeded: rate limit hit",
		},
		{
			ProviderID:   "gemini",
			Status:       dispatch.StatusUnavailable,
			ErrorMessage: "model not available (check API key): GOOGLE_API_KEY not found in environment",
		},
	}
}

func TestSummarizePreservesOrderAndUsage(t *testing.T) {
	rows := Summarize(sampleResults())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ProviderID != "openai" || rows[1].ProviderID != "groq" || rows[2].ProviderID != "gemini" {
		t.Errorf("row order does not follow result order: %+v", rows)
	}
	if rows[0].ElapsedSeconds != 1.5 {
		t.Errorf("expected 1.5 elapsed seconds, got %v", rows[0].ElapsedSeconds)
	}
	if rows[0].Usage == nil || rows[0].Usage.TotalTokens != 15 {
		t.Errorf("expected usage carried through, got %+v", rows[0].Usage)
	}
	if rows[1].Usage != nil {
		t.Errorf("expected absent usage to stay absent, got %+v", rows[1].Usage)
	}
}

func TestDisplaySeparatesSuccessFromFailure(t *testing.T) {
	entries := Display(sampleResults())

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].IsError || entries[0].Text != "Paris." {
		t.Errorf("expected success entry with response text, got %+v", entries[0])
	}
	if !entries[1].IsError || entries[1].Text != "quota exceeded: rate limit hit" {
		t.Errorf("expected error entry with error text, got %+v", entries[1])
	}
	if !entries[2].IsError {
		t.Errorf("expected unavailable provider rendered as error, got %+v", entries[2])
	}
}

func TestDisplayFallbackForEmptyErrorMessage(t *testing.T) {
	entries := Display(dispatch.ResultSet{{ProviderID: "x", Status: dispatch.StatusError}})
	if entries[0].Text == "" {
		t.Error("expected a non-empty fallback error text")
	}
}

func TestProjectionsDoNotMutateInput(t *testing.T) {
	results := sampleResults()
	Summarize(results)
	Display(results)

	if results[0].Text != "Paris." || results[1].ErrorMessage != "quota exceeded: rate limit hit" {
		t.Errorf("projections mutated their input: %+v", results)
	}
}
