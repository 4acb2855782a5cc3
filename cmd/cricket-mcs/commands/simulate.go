package commands

import (
	"context"
	"fmt"
	"io"

	"cricket-mcs/internal/archive"
	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/ingest"
	"cricket-mcs/internal/simulation"
	"cricket-mcs/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// simFlags are the engine flags shared by simulate and trials.
type simFlags struct {
	balls        int
	seed         int64
	modelPath    string
	policy       string
	stopAtAllOut bool
	noArchive    bool
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.balls, "balls", 0, "deliveries per innings (default SIM_BALLS)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default SIM_SEED, 0 = clock)")
	cmd.Flags().StringVar(&f.modelPath, "model", "", "model file in the exchange format (default: the built model, else the built-in table)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "wicket policy: walk or draw (default WICKET_POLICY)")
	cmd.Flags().BoolVar(&f.stopAtAllOut, "stop-at-all-out", false, "end an innings after ten wickets (default STOP_AT_ALL_OUT)")
	cmd.Flags().BoolVar(&f.noArchive, "no-archive", false, "do not store the result in the simulation archive")
}

// engine applies the flags that were set on top of the configured defaults.
func (f *simFlags) engine(cmd *cobra.Command) (*simulation.Engine, int, error) {
	model, err := f.model()
	if err != nil {
		return nil, 0, err
	}

	sim := cfg.Simulation
	if f.seed != 0 {
		sim.Seed = f.seed
	}
	if f.policy != "" {
		p, err := simulation.ParseWicketPolicy(f.policy)
		if err != nil {
			return nil, 0, err
		}
		sim.WicketPolicy = p
	}
	if cmd.Flags().Changed("stop-at-all-out") {
		sim.StopAtAllOut = f.stopAtAllOut
	}

	balls := sim.Balls
	if cmd.Flags().Changed("balls") {
		balls = f.balls
	}
	return sim.NewEngine(model), balls, nil
}

func (f *simFlags) model() (stats.Model, error) {
	if f.modelPath != "" {
		return stats.LoadModel(f.modelPath)
	}
	m, source, err := ingest.LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("source", source).Msg("Using probability model")
	return m, nil
}

// withArchive runs fn against the archive unless archiving is disabled or the archive cannot be opened.
func (f *simFlags) withArchive(ctx context.Context, fn func(context.Context, *archive.Store) (string, error)) {
	if f.noArchive {
		return
	}
	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		log.Warn().Err(err).Msg("Simulation archive unavailable")
		return
	}
	defer arch.Close()

	id, err := fn(ctx, arch)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to archive simulation")
		return
	}
	log.Debug().Str("id", id).Msg("Archived")
}

var simulateOpts simFlags

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one match and print both innings scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, balls, err := simulateOpts.engine(cmd)
		if err != nil {
			return err
		}

		res, err := engine.Simulate(balls)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)

		simulateOpts.withArchive(cmd.Context(), func(ctx context.Context, arch *archive.Store) (string, error) {
			return arch.SaveResult(ctx, res, archive.RunMeta{Balls: balls, Seed: engine.Seed(), Policy: engine.WicketPolicy()})
		})
		return nil
	},
}

func printResult(w io.Writer, res simulation.Result) {
	fmt.Fprintf(w, "1st Innings: %d/%d\n", res.Runs1, res.Wickets1)
	fmt.Fprintf(w, "2nd Innings: %d/%d\n", res.Runs2, res.Wickets2)
	switch res.Winner() {
	case cricket.FirstInnings:
		fmt.Fprintln(w, "1st Innings Win")
	case cricket.SecondInnings:
		fmt.Fprintln(w, "2nd Innings Win")
	default:
		fmt.Fprintln(w, "Tie")
	}
}

func init() {
	simulateOpts.register(simulateCmd)
}
