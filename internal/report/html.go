package report

import (
	"html/template"
	"io"

	"github.com/sprite-ai/bugalert/internal/model"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"riskLabel": RiskLabel,
	"riskHex":   RiskHex,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>bugalert Report: {{.Title}}</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; background: #282a36; color: #f8f8f2; }
  h1 { color: #bd93f9; }
  h2 { color: #8be9fd; }
  .summary { background: #343746; padding: 16px; border-radius: 8px; margin-bottom: 24px; }
  .summary span { margin-right: 24px; }
  .probability { font-size: 2em; font-weight: bold; }
  .badge { padding: 4px 10px; border-radius: 6px; border: 1px solid; font-weight: bold; }
  table { width: 100%; border-collapse: collapse; }
  th { text-align: left; padding: 8px 12px; background: #44475a; color: #f8f8f2; }
  td { padding: 8px 12px; border-bottom: 1px solid #44475a; }
  tr:hover { background: #343746; }
  li { margin-bottom: 8px; }
  footer { margin-top: 32px; color: #6272a4; font-size: 0.85em; }
</style>
</head>
<body>
<h1>bugalert Report: <code>{{.Title}}</code></h1>
{{with .Result}}<div class="summary">
  <span class="probability" style="color:{{riskHex .RiskLevel}}">{{.BugProbability}}%</span>
  <span class="badge" style="color:{{riskHex .RiskLevel}}">{{riskLabel .RiskLevel}}</span>
  <span>Confidence: <strong>{{.Confidence}}%</strong></span>
  <span>Language: <strong>{{$.Language}}</strong></span>
</div>{{end}}
<h2>Code Metrics</h2>
<table>
<thead><tr><th>Metric</th><th>Value</th></tr></thead>
<tbody>
{{range .Metrics}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</tbody>
</table>
<h2>Recommendations</h2>
<ul>
{{range .Result.Recommendations}}<li>{{.}}</li>
{{end}}</ul>
<footer>Generated by <strong>bugalert</strong></footer>
</body>
</html>
`))

type htmlData struct {
	Title    string
	Language string
	Result   model.PredictionResult
	Metrics  []Row
}

func writeHTML(w io.Writer, r Report) error {
	return htmlTemplate.Execute(w, htmlData{
		Title:    r.Title(),
		Language: r.Input.Language(),
		Result:   r.Result,
		Metrics:  MetricRows(r.Result.Metrics),
	})
}
