package commands

import (
	"encoding/json"
	"fmt"

	"cricket-mcs/internal/ingest"

	"github.com/spf13/cobra"
)

var (
	buildDownload bool
	buildRebuild  bool
	buildNoCache  bool
	buildPrint    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Tally the match files and write the outcome probability model",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ingest.Options{
			MatchDir:  cfg.MatchDir,
			CacheDir:  cfg.CacheDir,
			ModelPath: cfg.ModelPath,
			Rebuild:   buildRebuild,
		}
		if buildDownload {
			opts.URL = cfg.CricsheetURL
		}
		if buildNoCache {
			opts.CacheDir = ""
		}

		res, err := ingest.BuildModel(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Model built from %d matches (%d newly parsed), saved to %s\n", res.Matches, res.Added, cfg.ModelPath)
		if buildPrint {
			data, err := json.MarshalIndent(res.Model, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildDownload, "download", true, "download the archive first if no match files are present")
	buildCmd.Flags().BoolVar(&buildRebuild, "rebuild", false, "ignore cached per-match tallies")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "fold every match in memory without reading or writing the tally log")
	buildCmd.Flags().BoolVar(&buildPrint, "print", false, "print the model in the exchange format")
}
