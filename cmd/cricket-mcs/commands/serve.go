package commands

import (
	"cricket-mcs/internal/archive"
	"cricket-mcs/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func serve(cmd *cobra.Command) error {
	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.ArchivePath).Msg("Simulation archive unavailable, results will not be stored")
	} else {
		defer arch.Close()
	}

	return mcp.NewServer(cfg, arch).Serve(cmd.Context(), Version)
}
