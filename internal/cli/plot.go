package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/config"
	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/services"
	"github.com/pmarcum/roman-xmatch/internal/plot"
)

func newPlotCmd(settings *config.Settings) *cobra.Command {
	var (
		inputDir string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render matched objects as an interactive sky chart",
		Long: `Reads the JSON match artifacts from a previous run and writes a
standalone HTML sky chart with one series per survey/catalog combination
and the time-domain field boundaries overlaid.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputDir == "" {
				inputDir = settings.OutputDir
			}
			if output == "" {
				output = filepath.Join(inputDir, "sky_plot.html")
			}
			return runPlot(cmd, inputDir, output)
		},
	}
	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "",
		"directory holding the match artifacts (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"HTML file to write (default <input-dir>/sky_plot.html)")
	return cmd
}

func runPlot(cmd *cobra.Command, inputDir, output string) error {
	series, err := plot.LoadArtifacts(inputDir)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no match artifacts found in %s (run the pipeline first)", inputDir)
	}

	registry := services.NewFootprintRegistry()
	var footprints []*domain.Footprint
	for _, key := range registry.Keys() {
		fp, err := registry.Lookup(key)
		if err != nil {
			return err
		}
		footprints = append(footprints, fp)
	}

	if err := plot.RenderSky(output, "Matched objects by survey/catalog", series, footprints); err != nil {
		return err
	}
	cmd.Printf("Sky plot written to %s\n", output)
	return nil
}
