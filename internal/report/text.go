package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	textTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bd93f9")).
			Bold(true)

	textSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8be9fd")).
				Bold(true)

	textLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272a4"))
)

func writeText(w io.Writer, r Report) error {
	res := r.Result
	risk := lipgloss.NewStyle().Foreground(lipgloss.Color(RiskHex(res.RiskLevel))).Bold(true)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n\n", textTitleStyle.Render("bugalert"), r.Title(), r.Input.Language())
	fmt.Fprintf(&b, "  %s %s  %s\n", textLabelStyle.Render("Bug probability "), risk.Render(fmt.Sprintf("%d%%", res.BugProbability)), risk.Render(RiskLabel(res.RiskLevel)))
	fmt.Fprintf(&b, "  %s %d%%\n\n", textLabelStyle.Render("Confidence      "), res.Confidence)

	b.WriteString(textSectionStyle.Render("Code Metrics"))
	b.WriteByte('\n')
	writeRows(&b, MetricRows(res.Metrics))

	b.WriteByte('\n')
	b.WriteString(textSectionStyle.Render("Recommendations"))
	b.WriteByte('\n')
	for _, rec := range res.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRows(b *strings.Builder, rows []Row) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Label))
	}
	for _, row := range rows {
		fmt.Fprintf(b, "  %s  %s\n", textLabelStyle.Render(fmt.Sprintf("%-*s", width, row.Label)), row.Value)
	}
}
