package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	chartModel simFlags
	chartHTML  string
	chartOpen  bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the outcome probabilities as Mermaid charts or an HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := chartModel.model()
		if err != nil {
			return err
		}

		if chartHTML == "" && !chartOpen {
			charts := visuals.GenerateModelCharts(model)
			for _, label := range cricket.InningsLabels {
				fmt.Fprintln(cmd.OutOrStdout(), charts[label])
			}
			return nil
		}

		page, err := visuals.RenderHTML(model)
		if err != nil {
			return err
		}

		path := chartHTML
		if path == "" {
			path = filepath.Join(cfg.CacheDir, "outcomes.html")
		}
		if err := os.WriteFile(path, page, 0644); err != nil {
			return fmt.Errorf("failed to write chart page: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart page written to %s\n", path)

		if chartOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to open browser")
			}
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartModel.modelPath, "model", "", "model file in the exchange format (default: the built model, else the built-in table)")
	chartCmd.Flags().StringVar(&chartHTML, "html", "", "write an HTML page to this path instead of printing Mermaid")
	chartCmd.Flags().BoolVar(&chartOpen, "open", false, "write the HTML page and open it in the browser")
}
