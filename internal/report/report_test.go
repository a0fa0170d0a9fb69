package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() Report {
	return Report{
		Input: source.Input{Name: "users.py", Text: "def f():\n    return 1\n"},
		Result: model.PredictionResult{
			BugProbability:  83,
			RiskLevel:       model.RiskHigh,
			Recommendations: []string{"Split <big> things & more."},
			Confidence:      90,
			Metrics: model.CodeMetrics{
				LinesOfCode:          150,
				CyclomaticComplexity: 15,
				FunctionCount:        4,
				CommentRatio:         20,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRiskLabelAndColor(t *testing.T) {
	assert.Equal(t, "HIGH RISK", RiskLabel(model.RiskHigh))
	assert.Equal(t, "LOW RISK", RiskLabel(model.RiskLow))
	assert.Equal(t, ColorHigh, RiskHex(model.RiskHigh))
	assert.Equal(t, ColorMedium, RiskHex(model.RiskMedium))
	assert.Equal(t, ColorLow, RiskHex(model.RiskLow))
}

func TestAvgLinesPerFunction(t *testing.T) {
	assert.Equal(t, 0, AvgLinesPerFunction(model.CodeMetrics{LinesOfCode: 100}))
	assert.Equal(t, 38, AvgLinesPerFunction(model.CodeMetrics{LinesOfCode: 150, FunctionCount: 4}))
}

func TestMetricRows(t *testing.T) {
	rows := MetricRows(testReport().Result.Metrics)
	require.Len(t, rows, 8)
	assert.Equal(t, Row{"Lines of Code", "150"}, rows[0])
	assert.Equal(t, Row{"Comment Ratio", "20%"}, rows[5])
	assert.Equal(t, Row{"Avg Lines/Function", "38"}, rows[7])
}

func TestFactorRows(t *testing.T) {
	rows := FactorRows(model.Factors{Complexity: 1, Comment: 0.8})
	assert.Equal(t, Row{"Complexity", "100%"}, rows[0])
	assert.Equal(t, Row{"Comments", "80%"}, rows[4])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, testReport()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "users.py", out["filename"])
	assert.Equal(t, "Python", out["language"])
	assert.Equal(t, float64(83), out["bug_probability"])
	assert.Equal(t, "high", out["risk_level"])
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, testReport()))

	out := buf.String()
	assert.Contains(t, out, "users.py")
	assert.Contains(t, out, "83%")
	assert.Contains(t, out, "HIGH RISK")
	assert.Contains(t, out, "Cyclomatic Complexity")
	assert.Contains(t, out, "- Split <big> things & more.")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, testReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "## Bug Risk Report: users.py"))
	assert.Contains(t, out, "| Lines of Code | 150 |")
	assert.Contains(t, out, "**Risk:** HIGH RISK")
}

func TestWriteHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	r := testReport()
	r.Input.Name = "<script>.py"
	require.NoError(t, Write(&buf, FormatHTML, r))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "HIGH RISK")
	assert.Contains(t, out, ColorHigh)
	assert.Contains(t, out, "Split &lt;big&gt; things &amp; more.")
	assert.NotContains(t, out, "<script>.py")
}

func TestPastedTitle(t *testing.T) {
	assert.Equal(t, "pasted code", Report{}.Title())
}
