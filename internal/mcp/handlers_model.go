package mcp

import (
	"context"
	"fmt"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/ingest"
	"cricket-mcs/internal/stats"
	"cricket-mcs/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DistributionView is one innings of the model with outcomes rendered as labels.
type DistributionView struct {
	Outcomes    []string  `json:"outcomes" jsonschema:"Run values and W for a wicket. The wicket is always last."`
	Percentages []float64 `json:"percentages" jsonschema:"Percentage of deliveries per outcome. Sums to 100."`
}

// ModelOutput describes the active probability model.
type ModelOutput struct {
	Source   string                      `json:"source" jsonschema:"default (built-in table), file (saved build) or built (built in this session)."`
	Matches  int                         `json:"matches,omitempty" jsonschema:"Matches tallied into the model."`
	Added    int                         `json:"added,omitempty" jsonschema:"Matches parsed for the first time by this build."`
	Innings  map[string]DistributionView `json:"innings"`
	Charts   map[string]string           `json:"charts,omitempty"`
	Guidance []string                    `json:"guidance,omitempty"`
}

// ChartOutput holds Mermaid charts keyed by innings label.
type ChartOutput struct {
	Charts map[string]string `json:"charts"`
}

func (s *Server) handleBuildModel(ctx context.Context, _ *sdk.CallToolRequest, in BuildModelInput) (*sdk.CallToolResult, ModelOutput, error) {
	opts := ingest.Options{
		MatchDir:  s.cfg.MatchDir,
		CacheDir:  s.cfg.CacheDir,
		ModelPath: s.cfg.ModelPath,
		Rebuild:   in.Rebuild,
	}
	if in.Download {
		opts.URL = s.cfg.CricsheetURL
	}

	res, err := ingest.BuildModel(ctx, opts)
	if err != nil {
		return nil, ModelOutput{}, err
	}
	s.setModel(res.Model, ingest.SourceBuilt, res.Matches)

	out := s.modelOutput(res.Model, ingest.SourceBuilt, res.Matches)
	out.Added = res.Added
	return nil, out, nil
}

func (s *Server) handleGetModel(_ context.Context, _ *sdk.CallToolRequest, _ GetModelInput) (*sdk.CallToolResult, ModelOutput, error) {
	model, source, err := s.currentModel()
	if err != nil {
		return nil, ModelOutput{}, err
	}
	return nil, s.modelOutput(model, source, s.matchCount()), nil
}

func (s *Server) handleGetOutcomeChart(_ context.Context, _ *sdk.CallToolRequest, in OutcomeChartInput) (*sdk.CallToolResult, ChartOutput, error) {
	model, _, err := s.currentModel()
	if err != nil {
		return nil, ChartOutput{}, err
	}

	charts := visuals.GenerateModelCharts(model)
	if in.Innings == "" {
		return nil, ChartOutput{Charts: charts}, nil
	}

	chart, ok := charts[in.Innings]
	if !ok {
		return nil, ChartOutput{}, fmt.Errorf("%w: unknown innings %q", cricket.ErrInvalidInput, in.Innings)
	}
	return nil, ChartOutput{Charts: map[string]string{in.Innings: chart}}, nil
}

func (s *Server) modelOutput(model stats.Model, source string, matches int) ModelOutput {
	out := ModelOutput{
		Source:  source,
		Matches: matches,
		Innings: make(map[string]DistributionView, len(model)),
	}
	for _, label := range cricket.InningsLabels {
		out.Innings[label] = distributionView(model[label])
	}

	if s.cfg.EnableMermaidCharts {
		out.Charts = visuals.GenerateModelCharts(model)
	}

	switch source {
	case ingest.SourceDefault:
		out.Guidance = append(out.Guidance,
			"This is the built-in table precomputed from the T20 international archive. Call 'build_probability_model' to derive one from local match files.")
	case ingest.SourceBuilt:
		out.Guidance = append(out.Guidance,
			fmt.Sprintf("Model built from %d matches and saved; it stays active for later simulations.", matches))
	}
	return out
}

func distributionView(d stats.Distribution) DistributionView {
	v := DistributionView{
		Outcomes:    make([]string, len(d.Outcomes)),
		Percentages: append([]float64(nil), d.Percentages...),
	}
	for i, o := range d.Outcomes {
		v.Outcomes[i] = o.String()
	}
	return v
}
