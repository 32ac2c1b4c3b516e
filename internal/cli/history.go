package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/config"
	"github.com/pmarcum/roman-xmatch/internal/store/sqlite"
)

func newHistoryCmd(settings *config.Settings) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, settings.DataDir, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10,
		"maximum number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, dataDir string, limit int) error {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s  (%s)  %d matched\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.ID,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
			run.TotalMatched)
		for _, r := range run.Results {
			status := "ok"
			if r.Failed() {
				status = "FAILED: " + r.Err
			}
			cmd.Printf("    %s × %-6s %6d/%d  %s\n",
				strings.ToUpper(r.Survey), r.Catalog, r.Matched, r.Retrieved, status)
		}
	}
	return nil
}
