// Package report renders a prediction for people and tools: a terminal report,
// JSON, Markdown and a standalone HTML page.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/source"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: want text, json, markdown or html", s)
}

// Report is one analyzed input and its prediction.
type Report struct {
	Input  source.Input
	Result model.PredictionResult
}

// Title names the analyzed input for headings.
func (r Report) Title() string {
	if r.Input.Name == "" {
		return "pasted code"
	}
	return r.Input.Name
}

// Write renders r to w in the given format.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatMarkdown:
		return writeMarkdown(w, r)
	case FormatHTML:
		return writeHTML(w, r)
	case FormatText:
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// RiskLabel is the badge text for a risk level, e.g. "HIGH RISK".
func RiskLabel(r model.RiskLevel) string {
	return strings.ToUpper(r.String()) + " RISK"
}

// Risk palette: red, yellow, green.
const (
	ColorHigh   = "#ff5555"
	ColorMedium = "#f1fa8c"
	ColorLow    = "#50fa7b"
)

// RiskHex returns the display color for a risk level.
func RiskHex(r model.RiskLevel) string {
	switch r {
	case model.RiskHigh:
		return ColorHigh
	case model.RiskMedium:
		return ColorMedium
	default:
		return ColorLow
	}
}

// Row is one labelled value in a metrics table.
type Row struct {
	Label string
	Value string
}

// MetricRows lists the raw metrics in display order.
func MetricRows(m model.CodeMetrics) []Row {
	return []Row{
		{"Lines of Code", fmt.Sprint(m.LinesOfCode)},
		{"Cyclomatic Complexity", fmt.Sprint(m.CyclomaticComplexity)},
		{"Functions", fmt.Sprint(m.FunctionCount)},
		{"Classes", fmt.Sprint(m.ClassCount)},
		{"Max Nesting", fmt.Sprint(m.NestingDepth)},
		{"Comment Ratio", fmt.Sprintf("%d%%", m.CommentRatio)},
		{"Duplicate Lines", fmt.Sprint(m.DuplicateLines)},
		{"Avg Lines/Function", fmt.Sprint(AvgLinesPerFunction(m))},
	}
}

// FactorRows lists the normalized sub-scores as percentages.
func FactorRows(f model.Factors) []Row {
	pct := func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }
	return []Row{
		{"Complexity", pct(f.Complexity)},
		{"Size", pct(f.Size)},
		{"Nesting", pct(f.Nesting)},
		{"Function Density", pct(f.FunctionDensity)},
		{"Comments", pct(f.Comment)},
		{"Duplication", pct(f.Duplicate)},
	}
}

// AvgLinesPerFunction is the rounded lines-per-function figure, 0 without functions.
func AvgLinesPerFunction(m model.CodeMetrics) int {
	if m.FunctionCount == 0 {
		return 0
	}
	return int(math.Round(float64(m.LinesOfCode) / float64(m.FunctionCount)))
}

// jsonReport flattens the prediction next to the input details.
type jsonReport struct {
	Filename string `json:"filename,omitempty"`
	Language string `json:"language"`
	model.PredictionResult
}

func writeJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Filename:         r.Input.Name,
		Language:         r.Input.Language(),
		PredictionResult: r.Result,
	})
}

func writeMarkdown(w io.Writer, r Report) error {
	res := r.Result
	var b strings.Builder

	fmt.Fprintf(&b, "## Bug Risk Report: %s\n\n", r.Title())
	fmt.Fprintf(&b, "**Bug probability:** %d%% | **Risk:** %s | **Confidence:** %d%% | **Language:** %s\n\n",
		res.BugProbability, RiskLabel(res.RiskLevel), res.Confidence, r.Input.Language())

	b.WriteString("### Code Metrics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, row := range MetricRows(res.Metrics) {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}

	b.WriteString("\n### Recommendations\n\n")
	for _, rec := range res.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
