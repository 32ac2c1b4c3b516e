package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/catalogs"
	"github.com/pmarcum/roman-xmatch/internal/config"
	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
	"github.com/pmarcum/roman-xmatch/internal/core/services"
	"github.com/pmarcum/roman-xmatch/internal/healpix"
	"github.com/pmarcum/roman-xmatch/internal/logger"
	"github.com/pmarcum/roman-xmatch/internal/sink"
	"github.com/pmarcum/roman-xmatch/internal/store/sqlite"
)

var banner = `===============================================================
  Roman Survey Footprint Cross-Match
  HLWAS | HLTDS | GBTDS
===============================================================`

func newRunCmd(settings *config.Settings) *cobra.Command {
	var opts domain.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the footprint cross-match pipeline",
		Long: `Fetches each selected catalog, tests every object against each selected
survey footprint (or against a HEALPix mask when one is given) and writes
the matches as CSV and JSON files.

Survey keys: hlwas, hltds, gbtds, or "all".
Catalog keys: abell, sdss, 2masx, ngc, ned, custom, or "all" ("all" never
includes custom; pass it explicitly together with --custom-file).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, opts, settings)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Surveys, "survey", "s", []string{"hlwas"},
		"survey footprints to match against")
	cmd.Flags().StringSliceVarP(&opts.Catalogs, "catalogs", "c", []string{"abell", "ngc"},
		"catalogs to query")
	cmd.Flags().StringVarP(&opts.MaskPath, "mask", "m", "",
		"HEALPix mask file overriding footprint geometry")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "",
		"directory for match artifacts (default from config)")
	cmd.Flags().IntVarP(&opts.RowLimit, "row-limit", "r", 0,
		"maximum rows fetched per catalog (default from config)")
	cmd.Flags().StringVar(&opts.CustomFile, "custom-file", "",
		"CSV file for the custom catalog source")
	cmd.Flags().StringVar(&opts.CustomRACol, "custom-ra-col", "RA",
		"RA column name in the custom file")
	cmd.Flags().StringVar(&opts.CustomDecCol, "custom-dec-col", "Dec",
		"Dec column name in the custom file")
	return cmd
}

func runPipeline(cmd *cobra.Command, opts domain.RunOptions, settings *config.Settings) error {
	cmd.Println(banner)

	if opts.MaskPath != "" && !healpix.Available() {
		return domain.ErrMaskSupportUnavailable
	}

	if opts.OutputDir == "" {
		opts.OutputDir = settings.OutputDir
	}
	if opts.RowLimit <= 0 {
		opts.RowLimit = settings.RowLimit
	}

	engine := services.NewMembershipEngine()
	registry := catalogs.NewRegistry(catalogs.Config{
		VizieRBaseURL: settings.VizieRBaseURL,
		NEDBaseURL:    settings.NEDBaseURL,
		CustomFile:    opts.CustomFile,
		CustomRACol:   opts.CustomRACol,
		CustomDecCol:  opts.CustomDecCol,
	}, engine.Test)

	pipeline := services.NewPipelineOrchestrator(
		services.NewFootprintRegistry(),
		engine,
		registry,
		sink.NewFileSink(),
		healpix.LoadMask,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now().UTC()
	results, err := pipeline.Run(ctx, opts, func(msg string) {
		cmd.Println(msg)
	})
	if err != nil {
		return err
	}
	finished := time.Now().UTC()

	printSummary(cmd, results)
	saveHistory(ctx, settings.DataDir, started, finished, results)
	return nil
}

func printSummary(cmd *cobra.Command, results []domain.MatchResult) {
	cmd.Println()
	cmd.Println("Summary")
	cmd.Println("-------")
	for _, r := range results {
		if r.Failed() {
			cmd.Printf("  %s × %s: FAILED (%s)\n",
				strings.ToUpper(r.Survey), r.Catalog, r.Err)
			continue
		}
		line := fmt.Sprintf("  %s × %s: %d/%d matched",
			strings.ToUpper(r.Survey), r.Catalog, r.Matched, r.Retrieved)
		if r.CSVPath != "" {
			line += " → " + r.CSVPath
		}
		cmd.Println(line)
	}
	cmd.Printf("  Total matched: %d\n", domain.TotalMatched(results))
}

// saveHistory records the run; history is best-effort and never fails
// the run itself.
func saveHistory(ctx context.Context, dataDir string, started, finished time.Time, results []domain.MatchResult) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
		return
	}
	defer store.Close()

	record := driven.RunRecord{
		ID:           sqlite.NewRunID(),
		StartedAt:    started,
		FinishedAt:   finished,
		TotalMatched: domain.TotalMatched(results),
		Results:      results,
	}
	if err := store.SaveRun(ctx, record); err != nil {
		logger.Warn("saving run history: %v", err)
	}
}
