package commands

import (
	"fmt"

	"cricket-mcs/internal/cricsheet"

	"github.com/spf13/cobra"
)

var fetchURL string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and extract the Cricsheet archive unless match files are already present",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := fetchURL
		if url == "" {
			url = cfg.CricsheetURL
		}
		if err := cricsheet.EnsureData(cmd.Context(), cfg.MatchDir, url); err != nil {
			return err
		}

		files, err := cricsheet.ListMatchFiles(cfg.MatchDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d match files in %s\n", len(files), cfg.MatchDir)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "archive URL (default CRICSHEET_URL)")
}
