package visuals

import (
	"bytes"
	"fmt"
	"html/template"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/stats"
)

// MermaidScriptURL is the ES module the rendered page loads Mermaid from.
const MermaidScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
section { margin-bottom: 3rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Innings}}<section>
<h2>{{.Label}}</h2>
<pre class="mermaid">
{{.Chart}}</pre>
<table>
<tr><th>Outcome</th><th>Percentage</th></tr>
{{range .Rows}}<tr><td>{{.Outcome}}</td><td>{{printf "%.2f" .Percentage}}</td></tr>
{{end}}</table>
</section>
{{end}}<script type="module">
import mermaid from "{{.ScriptURL}}";
mermaid.initialize({ startOnLoad: true });
</script>
</body>
</html>
`))

type pageRow struct {
	Outcome    string
	Percentage float64
}

type pageInnings struct {
	Label string
	Chart string
	Rows  []pageRow
}

type pageData struct {
	Title     string
	ScriptURL template.URL
	Innings   []pageInnings
}

// RenderHTML returns a standalone page with one Mermaid chart and one table per innings of the model.
func RenderHTML(model stats.Model) ([]byte, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	data := pageData{Title: "Ball Outcome Probabilities", ScriptURL: template.URL(MermaidScriptURL)}
	for _, label := range cricket.InningsLabels {
		dist := model[label]
		inn := pageInnings{Label: label, Chart: outcomeChartBody(label, dist)}
		for i, o := range dist.Outcomes {
			inn.Rows = append(inn.Rows, pageRow{Outcome: o.String(), Percentage: dist.Percentages[i]})
		}
		data.Innings = append(data.Innings, inn)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render chart page: %w", err)
	}
	return buf.Bytes(), nil
}
