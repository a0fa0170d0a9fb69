package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/report"
	"github.com/sprite-ai/bugalert/internal/source"
)

const gaugeWidth = 30

func renderOverview(res model.PredictionResult, in source.Input, width int) string {
	risk := RiskStyle(res.RiskLevel)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Bug Probability"))
	b.WriteByte('\n')
	b.WriteString(probabilityStyle.Foreground(RiskColor(res.RiskLevel)).Render(fmt.Sprintf("%d%%", res.BugProbability)))
	b.WriteString("  ")
	b.WriteString(risk.Render(report.RiskLabel(res.RiskLevel)))
	b.WriteString("\n")
	b.WriteString(gauge(res.BugProbability, min(gaugeWidth, max(width-2, 1)), RiskColor(res.RiskLevel)))
	b.WriteString("\n\n")

	rows := []report.Row{
		{Label: "Model Confidence", Value: fmt.Sprintf("%d%%", res.Confidence)},
		{Label: "Language", Value: in.Language()},
		{Label: "Lines of Code", Value: fmt.Sprint(res.Metrics.LinesOfCode)},
	}
	b.WriteString(renderRows(rows))
	return b.String()
}

func renderMetrics(res model.PredictionResult) string {
	var b strings.Builder
	b.WriteString(renderRows(report.MetricRows(res.Metrics)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Risk factors"))
	b.WriteByte('\n')
	b.WriteString(renderRows(report.FactorRows(res.Factors)))
	return b.String()
}

func renderRecommendations(res model.PredictionResult, width int) string {
	var b strings.Builder
	textWidth := max(width-2, 10)
	for i, rec := range res.Recommendations {
		wrapped := lipgloss.NewStyle().Width(textWidth).Render(rec)
		lines := strings.Split(wrapped, "\n")
		for j, line := range lines {
			if j == 0 {
				b.WriteString(bulletStyle.Render("• "))
			} else {
				b.WriteString("  ")
			}
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
		}
		if i < len(res.Recommendations)-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCode shows the analyzed text with syntax colors, starting at offset.
func renderCode(code []source.HighlightedLine, offset, width, height int) string {
	end := min(offset+height, len(code))
	maxContent := width - 6 // line number + gap

	var b strings.Builder
	for i := offset; i < end; i++ {
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%4d", i+1)))
		b.WriteString("  ")
		b.WriteString(renderHighlighted(code[i], maxContent))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderHighlighted colors a line's tokens, falling back to plain text when the
// line does not fit.
func renderHighlighted(hl source.HighlightedLine, maxContent int) string {
	plain := strings.ReplaceAll(hl.Plain(), "\t", "    ")
	if maxContent > 0 && lipgloss.Width(plain) > maxContent {
		return truncate(plain, maxContent)
	}

	var b strings.Builder
	for _, tok := range hl.Tokens {
		text := strings.ReplaceAll(tok.Text, "\t", "    ")
		if tok.Color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(text))
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}

func renderRows(rows []report.Row) string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Label))
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, row.Label)))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(row.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// gauge draws a horizontal bar filled to percent.
func gauge(percent, width int, color lipgloss.Color) string {
	filled := percent * width / 100
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}
