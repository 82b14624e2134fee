package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leofalp/multichat/config"
	"github.com/leofalp/multichat/core/aggregate"
	"github.com/leofalp/multichat/core/dispatch"
	"github.com/leofalp/multichat/providers/ai"
)

var (
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	failMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(76)
)

// renderBanner prints the startup line naming the selected providers and
// their configured models.
func renderBanner(selection []string, configs map[string]config.Adapter) string {
	parts := make([]string, 0, len(selection))
	for _, id := range selection {
		parts = append(parts, fmt.Sprintf("%s (%s)", id, configs[id].Model))
	}
	return titleStyle.Render("multichat") + dimStyle.Render(" comparing: "+strings.Join(parts, ", "))
}

func renderHelp() string {
	return dimStyle.Render("commands: /reset clears the conversation, /keys checks credentials, /history shows recent turns, /quit exits")
}

// renderResults renders one panel per provider followed by the comparison
// table.
func renderResults(entries []aggregate.DisplayEntry, rows []aggregate.SummaryRow, configs map[string]config.Adapter) string {
	var b strings.Builder

	for _, entry := range entries {
		header := titleStyle.Render(providerLabel(entry.ProviderID, configs))
		body := entry.Text
		if entry.IsError {
			body = errorStyle.Render(body)
		}
		b.WriteString(panelStyle.Render(header + "\n" + body))
		b.WriteString("\n")
	}

	b.WriteString(renderSummary(rows))
	return b.String()
}

// renderSummary builds the comparison table: provider, outcome, elapsed
// seconds, and token usage when the backend reported it.
func renderSummary(rows []aggregate.SummaryRow) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%-10s %-14s %10s %18s", "provider", "status", "time (s)", "tokens")))
	b.WriteString("\n")
	for _, row := range rows {
		mark := successMark
		if row.Status != dispatch.StatusSuccess {
			mark = failMark
		}
		b.WriteString(fmt.Sprintf("%-10s %s %-12s %10.2f %18s\n",
			row.ProviderID, mark, row.Status, row.ElapsedSeconds, tokensLabel(row.Usage)))
	}
	return b.String()
}

func renderKeys(statuses []config.KeyStatus) string {
	var b strings.Builder
	for _, status := range statuses {
		if status.Present {
			b.WriteString(fmt.Sprintf("%s %s: %s\n", successMark, status.EnvVar, status.Preview))
		} else {
			b.WriteString(fmt.Sprintf("%s %s: %s\n", failMark, status.EnvVar, errorStyle.Render("NOT FOUND")))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHistory(recent []ai.Message, total int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d turns in conversation", total)))
	for _, turn := range recent {
		preview := turn.Content
		if len(preview) > 50 {
			preview = preview[:50] + "..."
		}
		b.WriteString(fmt.Sprintf("\n%s: %s", turn.Role, preview))
	}
	return b.String()
}

func tokensLabel(usage *ai.Usage) string {
	if usage == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d (%d+%d)", usage.TotalTokens, usage.PromptTokens, usage.CompletionTokens)
}

func providerLabel(id string, configs map[string]config.Adapter) string {
	if cfg, ok := configs[id]; ok && cfg.Model != "" {
		return fmt.Sprintf("%s · %s", id, cfg.Model)
	}
	return id
}
