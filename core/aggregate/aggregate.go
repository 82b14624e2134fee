// Package aggregate turns a dispatch ResultSet into comparison-ready views.
// Both projections are pure functions of their input: no side effects, no
// network access, no mutation of the result set or the conversation state.
package aggregate

import (
	"github.com/leofalp/multichat/core/dispatch"
	"github.com/leofalp/multichat/providers/ai"
)

// SummaryRow is one line of the comparison table: outcome and timing per
// provider, with token usage only when the backend reported it.
type SummaryRow struct {
	ProviderID     string
	Status         dispatch.Status
	ElapsedSeconds float64
	Usage          *ai.Usage // nil when the backend reported none
}

// Summarize projects a result set into comparison rows, preserving order.
func Summarize(results dispatch.ResultSet) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, result := range results {
		rows = append(rows, SummaryRow{
			ProviderID:     result.ProviderID,
			Status:         result.Status,
			ElapsedSeconds: result.ElapsedSeconds(),
			Usage:          result.Usage,
		})
	}
	return rows
}

// DisplayEntry is the renderable body for one provider: the response text on
// success, a user-facing error string otherwise.
type DisplayEntry struct {
	ProviderID string
	Text       string
	IsError    bool
}

// Display projects a result set into renderable entries, preserving order.
func Display(results dispatch.ResultSet) []DisplayEntry {
	entries := make([]DisplayEntry, 0, len(results))
	for _, result := range results {
		entry := DisplayEntry{ProviderID: result.ProviderID}
		if result.Status == dispatch.StatusSuccess {
			entry.Text = result.Text
		} else {
			entry.IsError = true
			entry.Text = result.ErrorMessage
			if entry.Text == "" {
				entry.Text = "no response"
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
