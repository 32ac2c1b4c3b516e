// Package cli implements the roman-xmatch command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/config"
	"github.com/pmarcum/roman-xmatch/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// NewRootCmd builds the full command tree. Each call returns a fresh
// tree with its own flag state, so repeated executions never see flag
// values left over from a previous run.
func NewRootCmd() *cobra.Command {
	// Loaded configuration file values; flags override them per command.
	settings := config.DefaultSettings()
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "roman-xmatch",
		Short: "Cross-match astronomical catalogs against Roman survey footprints",
		Long: `roman-xmatch identifies objects from established astronomical catalogs
(Abell, SDSS, 2MASX, NGC/IC, NED, or a custom CSV) that fall within the
footprints of the Roman Space Telescope's core community surveys:

  hlwas  High-Latitude Wide-Area Survey
  hltds  High-Latitude Time-Domain Survey
  gbtds  Galactic Bulge Time-Domain Survey

Matched objects are written as CSV and JSON artifacts per survey/catalog
combination.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetVerbose(verbose)

			loaded, err := config.Load("")
			if err != nil {
				return err
			}
			settings = loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose diagnostic output on stderr")

	rootCmd.AddCommand(
		newRunCmd(&settings),
		newSurveysCmd(),
		newCatalogsCmd(),
		newHistoryCmd(&settings),
		newPlotCmd(&settings),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return NewRootCmd().Execute()
}
