package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/services"
)

func newSurveysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surveys",
		Short: "List the supported survey footprints",
		RunE:  runSurveysList,
	}
}

func runSurveysList(cmd *cobra.Command, _ []string) error {
	registry := services.NewFootprintRegistry()

	cmd.Println("Supported surveys:")
	for _, key := range registry.Keys() {
		fp, err := registry.Lookup(key)
		if err != nil {
			return err
		}
		cmd.Printf("  %-6s %s\n", key, fp.Description)
		cmd.Printf("         %s\n", describeFootprint(fp))
	}
	return nil
}

func describeFootprint(fp *domain.Footprint) string {
	switch fp.Type {
	case domain.FootprintSkyCuts:
		return fmt.Sprintf("|b| >= %.0f°, |ecliptic lat| >= %.0f°, dec <= %.0f°",
			fp.GalLatMin, fp.EclLatMin, fp.DecMax)
	case domain.FootprintCircles:
		fields := make([]string, 0, len(fp.Fields))
		for _, f := range fp.Fields {
			fields = append(fields, fmt.Sprintf("%s (%.2f, %.2f) r=%.2f°",
				f.Label, f.RA, f.Dec, f.RadiusDeg))
		}
		return strings.Join(fields, "; ")
	default:
		return string(fp.Type)
	}
}
