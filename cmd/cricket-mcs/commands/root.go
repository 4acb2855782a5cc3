package commands

import (
	"context"
	"os"
	"os/signal"

	"cricket-mcs/internal/config"
	"cricket-mcs/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "cricket-mcs",
	Short: "cricket-mcs simulates T20 matches from Cricsheet ball-by-ball data",
	Long: `Tallies ball-by-ball outcomes from the Cricsheet T20 archive into a per-innings probability model
and plays Monte-Carlo simulated matches from it. Without a subcommand it serves the MCP tools over stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("cricket-mcs starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

// Execute runs the root command. An interrupt cancels the running command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = Version

	rootCmd.AddCommand(fetchCmd, buildCmd, simulateCmd, trialsCmd, chartCmd, serveCmd)
}
