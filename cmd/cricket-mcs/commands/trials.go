package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"cricket-mcs/internal/archive"
	"cricket-mcs/internal/visuals"

	"github.com/spf13/cobra"
)

var (
	trialsOpts    simFlags
	trialsCount   int
	trialsWorkers int
	trialsJSON    bool
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Simulate many matches and summarise wins, chases and score percentiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, balls, err := trialsOpts.engine(cmd)
		if err != nil {
			return err
		}

		count := cfg.Simulation.Trials
		if cmd.Flags().Changed("count") {
			count = trialsCount
		}
		workers := cfg.Simulation.Workers
		if cmd.Flags().Changed("workers") {
			workers = trialsWorkers
		}

		summary, err := engine.RunTrials(cmd.Context(), balls, count, workers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if trialsJSON {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			fmt.Fprintf(out, "Trials: %d (seed %d, %d balls, %s wickets)\n", summary.Trials, summary.Seed, summary.Balls, engine.WicketPolicy())
			fmt.Fprintf(out, "1st Innings wins: %d\n", summary.FirstWins)
			fmt.Fprintf(out, "2nd Innings wins: %d (%d chased early)\n", summary.SecondWins, summary.Chases)
			fmt.Fprintf(out, "Ties: %d\n", summary.Ties)
			fmt.Fprintf(out, "1st Innings runs: median %.1f, p85 %d, mean wickets %.1f\n", summary.MedianRuns1, summary.P85Runs1, summary.MeanWickets1)
			fmt.Fprintf(out, "2nd Innings runs: median %.1f, p85 %d, mean wickets %.1f\n", summary.MedianRuns2, summary.P85Runs2, summary.MeanWickets2)
			if cfg.EnableMermaidCharts {
				fmt.Fprintln(out, visuals.GenerateTrialChart(summary))
			}
		}

		trialsOpts.withArchive(cmd.Context(), func(ctx context.Context, arch *archive.Store) (string, error) {
			return arch.SaveSummary(ctx, summary, engine.WicketPolicy())
		})
		return nil
	},
}

func init() {
	trialsOpts.register(trialsCmd)
	trialsCmd.Flags().IntVar(&trialsCount, "count", 0, "number of simulated matches (default SIM_TRIALS)")
	trialsCmd.Flags().IntVar(&trialsWorkers, "workers", 0, "parallel workers (default SIM_WORKERS)")
	trialsCmd.Flags().BoolVar(&trialsJSON, "json", false, "print the summary as JSON")
}
