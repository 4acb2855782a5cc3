// Package visuals renders probability models and simulation summaries as Mermaid charts.
package visuals

import (
	"fmt"
	"math"
	"strings"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/simulation"
	"cricket-mcs/internal/stats"
)

// GenerateOutcomeChart creates a Mermaid bar chart of the outcome percentages for one innings.
func GenerateOutcomeChart(label string, dist stats.Distribution) string {
	body := outcomeChartBody(label, dist)
	if body == "" {
		return ""
	}
	return fence(body)
}

// GenerateModelCharts renders one outcome chart per innings, keyed by innings label.
func GenerateModelCharts(model stats.Model) map[string]string {
	charts := make(map[string]string, len(cricket.InningsLabels))
	for _, label := range cricket.InningsLabels {
		dist, ok := model[label]
		if !ok {
			continue
		}
		if chart := GenerateOutcomeChart(label, dist); chart != "" {
			charts[label] = chart
		}
	}
	return charts
}

// GenerateTrialChart creates a Mermaid bar chart of how often each side won across a batch of trials.
func GenerateTrialChart(summary simulation.Summary) string {
	if summary.Trials == 0 {
		return ""
	}

	counts := []int{summary.FirstWins, summary.SecondWins, summary.Ties}
	maxVal := 0
	values := make([]string, len(counts))
	for i, c := range counts {
		values[i] = fmt.Sprintf("%d", c)
		if c > maxVal {
			maxVal = c
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Simulated Results (%d trials)\"\n", summary.Trials))
	sb.WriteString("    x-axis [\"Batting first\", \"Chasing\", \"Tie\"]\n")
	sb.WriteString(fmt.Sprintf("    y-axis \"Matches Won\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return fence(sb.String())
}

func outcomeChartBody(label string, dist stats.Distribution) string {
	if len(dist.Outcomes) == 0 || len(dist.Outcomes) != len(dist.Percentages) {
		return ""
	}

	labels := make([]string, len(dist.Outcomes))
	values := make([]string, len(dist.Percentages))
	maxVal := 0.0
	for i, o := range dist.Outcomes {
		labels[i] = fmt.Sprintf("\"%s\"", o)
		values[i] = fmt.Sprintf("%.2f", dist.Percentages[i])
		if dist.Percentages[i] > maxVal {
			maxVal = dist.Percentages[i]
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Ball Outcomes (%s)\"\n", label))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Percentage of Deliveries\" 0 --> %d\n", int(math.Min(100, math.Ceil(maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

func fence(body string) string {
	return "```mermaid\n" + body + "```"
}
