package mcp

import (
	"context"
	"errors"

	"cricket-mcs/internal/archive"
	"cricket-mcs/internal/simulation"
	"cricket-mcs/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const defaultListLimit = 10

var errArchiveUnavailable = errors.New("simulation archive is not available")

// SimulateMatchOutput is the result of one simulated match.
type SimulateMatchOutput struct {
	ID     string            `json:"id,omitempty" jsonschema:"Archive id of this simulation."`
	Score  string            `json:"score" jsonschema:"runs1/wickets1 vs runs2/wickets2"`
	Winner string            `json:"winner" jsonschema:"'1st innings', '2nd innings' or 'tie'."`
	Balls  int               `json:"balls"`
	Seed   int64             `json:"seed"`
	Policy string            `json:"wicket_policy"`
	Result simulation.Result `json:"result"`
}

// TrialsOutput is the summary of a batch of simulated matches.
type TrialsOutput struct {
	ID      string             `json:"id,omitempty" jsonschema:"Archive id of this batch."`
	Policy  string             `json:"wicket_policy"`
	Summary simulation.Summary `json:"summary"`
	Chart   string             `json:"chart,omitempty"`
}

// ListSimulationsOutput holds archived simulations, newest first.
type ListSimulationsOutput struct {
	Results []archive.StoredResult  `json:"results"`
	Trials  []archive.StoredSummary `json:"trials"`
}

func (s *Server) handleSimulateMatch(ctx context.Context, _ *sdk.CallToolRequest, in SimulateMatchInput) (*sdk.CallToolResult, SimulateMatchOutput, error) {
	engine, balls, err := s.engineFor(in.SimulationOptions)
	if err != nil {
		return nil, SimulateMatchOutput{}, err
	}

	res, err := engine.Simulate(balls)
	if err != nil {
		return nil, SimulateMatchOutput{}, err
	}

	out := SimulateMatchOutput{
		Score:  res.String(),
		Winner: res.Winner(),
		Balls:  balls,
		Seed:   engine.Seed(),
		Policy: string(engine.WicketPolicy()),
		Result: res,
	}

	if s.archive != nil {
		id, err := s.archive.SaveResult(ctx, res, archive.RunMeta{Balls: balls, Seed: engine.Seed(), Policy: engine.WicketPolicy()})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to archive simulation")
		}
		out.ID = id
	}
	return nil, out, nil
}

func (s *Server) handleRunTrials(ctx context.Context, _ *sdk.CallToolRequest, in RunTrialsInput) (*sdk.CallToolResult, TrialsOutput, error) {
	engine, balls, err := s.engineFor(in.SimulationOptions)
	if err != nil {
		return nil, TrialsOutput{}, err
	}

	trials := in.Trials
	if trials == 0 {
		trials = s.cfg.Simulation.Trials
	}
	workers := in.Workers
	if workers == 0 {
		workers = s.cfg.Simulation.Workers
	}

	summary, err := engine.RunTrials(ctx, balls, trials, workers)
	if err != nil {
		return nil, TrialsOutput{}, err
	}

	out := TrialsOutput{Policy: string(engine.WicketPolicy()), Summary: summary}
	if s.cfg.EnableMermaidCharts {
		out.Chart = visuals.GenerateTrialChart(summary)
	}

	if s.archive != nil {
		id, err := s.archive.SaveSummary(ctx, summary, engine.WicketPolicy())
		if err != nil {
			log.Warn().Err(err).Msg("Failed to archive trial summary")
		}
		out.ID = id
	}
	return nil, out, nil
}

func (s *Server) handleListSimulations(ctx context.Context, _ *sdk.CallToolRequest, in ListSimulationsInput) (*sdk.CallToolResult, ListSimulationsOutput, error) {
	if s.archive == nil {
		return nil, ListSimulationsOutput{}, errArchiveUnavailable
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	results, err := s.archive.RecentResults(ctx, limit)
	if err != nil {
		return nil, ListSimulationsOutput{}, err
	}
	trials, err := s.archive.RecentSummaries(ctx, limit)
	if err != nil {
		return nil, ListSimulationsOutput{}, err
	}
	return nil, ListSimulationsOutput{Results: results, Trials: trials}, nil
}

// engineFor applies per-call overrides to the configured simulation defaults.
func (s *Server) engineFor(opts SimulationOptions) (*simulation.Engine, int, error) {
	model, _, err := s.currentModel()
	if err != nil {
		return nil, 0, err
	}

	sim := s.cfg.Simulation
	if opts.Seed != 0 {
		sim.Seed = opts.Seed
	}
	if opts.WicketPolicy != "" {
		p, err := simulation.ParseWicketPolicy(opts.WicketPolicy)
		if err != nil {
			return nil, 0, err
		}
		sim.WicketPolicy = p
	}
	if opts.StopAtAllOut != nil {
		sim.StopAtAllOut = *opts.StopAtAllOut
	}

	balls := sim.Balls
	if opts.Balls != 0 {
		balls = opts.Balls
	}
	return sim.NewEngine(model), balls, nil
}
