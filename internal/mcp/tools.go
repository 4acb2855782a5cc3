package mcp

import (
	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/simulation"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolBuildModel      = "build_probability_model"
	ToolGetModel        = "get_probability_model"
	ToolSimulateMatch   = "simulate_match"
	ToolRunTrials       = "run_simulation_trials"
	ToolGetOutcomeChart = "get_outcome_chart"
	ToolListSimulations = "list_simulations"
)

// BuildModelInput are the arguments of build_probability_model.
type BuildModelInput struct {
	Download bool `json:"download,omitempty" jsonschema:"Download the Cricsheet T20 archive first if no match files are present."`
	Rebuild  bool `json:"rebuild,omitempty" jsonschema:"Ignore cached per-match tallies and re-parse every match file."`
}

// GetModelInput are the arguments of get_probability_model.
type GetModelInput struct{}

// SimulationOptions are the engine settings shared by simulate_match and run_simulation_trials.
type SimulationOptions struct {
	Balls        int    `json:"balls,omitempty" jsonschema:"Deliveries per innings. Defaults to SIM_BALLS (120)."`
	Seed         int64  `json:"seed,omitempty" jsonschema:"Random seed for a reproducible run. 0 uses the configured seed or the clock."`
	WicketPolicy string `json:"wicket_policy,omitempty" jsonschema:"How the wicket outcome joins the draw: 'walk' (every wicket slot passed counts) or 'draw' (only a drawn wicket counts)."`
	StopAtAllOut *bool  `json:"stop_at_all_out,omitempty" jsonschema:"End an innings once ten wickets have fallen."`
}

// SimulateMatchInput are the arguments of simulate_match.
type SimulateMatchInput struct {
	SimulationOptions
}

// RunTrialsInput are the arguments of run_simulation_trials.
type RunTrialsInput struct {
	SimulationOptions
	Trials  int `json:"trials,omitempty" jsonschema:"Number of independent matches to simulate. Defaults to SIM_TRIALS."`
	Workers int `json:"workers,omitempty" jsonschema:"Parallel workers. Defaults to SIM_WORKERS."`
}

// OutcomeChartInput are the arguments of get_outcome_chart.
type OutcomeChartInput struct {
	Innings string `json:"innings,omitempty" jsonschema:"Restrict the chart to '1st innings' or '2nd innings'. Both when omitted."`
}

// ListSimulationsInput are the arguments of list_simulations.
type ListSimulationsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries of each kind to return. Defaults to 10."`
}

func (s *Server) registerTools(server *sdk.Server) {
	sdk.AddTool(server, &sdk.Tool{
		Name: ToolBuildModel,
		Description: "Tally every delivery of the Cricsheet T20 archive by outcome (runs 0..7 or wicket W) for the 1st and 2nd innings " +
			"and derive the percentage model the simulator draws from. Matches tallied before are reused from the cache. " +
			"Call this before simulating if you want a model built from current data instead of the built-in table.",
	}, s.handleBuildModel)

	sdk.AddTool(server, &sdk.Tool{
		Name:        ToolGetModel,
		Description: "Return the active outcome probability model: per innings, the outcomes (wicket last) and their percentages.",
	}, s.handleGetModel)

	sdk.AddTool(server, &sdk.Tool{
		Name: ToolSimulateMatch,
		Description: "Simulate one T20 match ball by ball from the active model. The 2nd innings stops as soon as it passes the 1st innings score. " +
			"Returns both scores as runs/wickets and the winner.",
		InputSchema: schemaFor[SimulateMatchInput](constrainSimulationOptions),
	}, s.handleSimulateMatch)

	sdk.AddTool(server, &sdk.Tool{
		Name: ToolRunTrials,
		Description: "Run many independent simulated matches and summarise them: wins per side, ties, early chases, median and 85th percentile scores. " +
			"A fixed seed and worker count give the same summary every time.",
		InputSchema: schemaFor[RunTrialsInput](func(sc *jsonschema.Schema) {
			constrainSimulationOptions(sc)
			minimum(sc, "trials", 1)
			minimum(sc, "workers", 1)
		}),
	}, s.handleRunTrials)

	sdk.AddTool(server, &sdk.Tool{
		Name:        ToolGetOutcomeChart,
		Description: "Render the active model as Mermaid bar charts, one per innings.",
		InputSchema: schemaFor[OutcomeChartInput](func(sc *jsonschema.Schema) {
			enum(sc, "innings", cricket.FirstInnings, cricket.SecondInnings)
		}),
	}, s.handleGetOutcomeChart)

	sdk.AddTool(server, &sdk.Tool{
		Name:        ToolListSimulations,
		Description: "List the most recent archived simulated matches and trial batches, newest first.",
		InputSchema: schemaFor[ListSimulationsInput](func(sc *jsonschema.Schema) {
			minimum(sc, "limit", 1)
		}),
	}, s.handleListSimulations)
}

func constrainSimulationOptions(sc *jsonschema.Schema) {
	minimum(sc, "balls", 1)
	enum(sc, "wicket_policy", string(simulation.WicketOnWalk), string(simulation.WicketOnDraw))
}

// schemaFor infers the input schema of T and lets adjust tighten individual properties.
func schemaFor[T any](adjust func(*jsonschema.Schema)) *jsonschema.Schema {
	sc, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	adjust(sc)
	return sc
}

func minimum(sc *jsonschema.Schema, prop string, v float64) {
	if p, ok := sc.Properties[prop]; ok {
		p.Minimum = jsonschema.Ptr(v)
	}
}

func enum(sc *jsonschema.Schema, prop string, values ...string) {
	if p, ok := sc.Properties[prop]; ok {
		p.Enum = make([]any, len(values))
		for i, v := range values {
			p.Enum[i] = v
		}
	}
}
