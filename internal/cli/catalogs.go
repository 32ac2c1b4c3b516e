package cli

import (
	"github.com/spf13/cobra"

	"github.com/pmarcum/roman-xmatch/internal/catalogs"
)

func newCatalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List the supported catalog sources",
		RunE:  runCatalogsList,
	}
}

func runCatalogsList(cmd *cobra.Command, _ []string) error {
	// A listing never fetches, so the registry needs no membership test.
	registry := catalogs.NewRegistry(catalogs.Config{}, nil)

	cmd.Println("Supported catalogs:")
	for _, line := range registry.Labels() {
		cmd.Printf("  %s\n", line)
	}
	cmd.Println()
	cmd.Println(`"all" selects every catalog except custom; use custom together with --custom-file.`)
	return nil
}
