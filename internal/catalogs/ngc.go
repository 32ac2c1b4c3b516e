package catalogs

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// Ensure NGCSource implements the interface.
var _ driven.CatalogSource = (*NGCSource)(nil)

// NGCSource fetches the NGC/IC catalogue (VizieR VII/118). Positions are
// requested as the VizieR-computed ICRS columns rather than the
// catalogue's native B2000 sexagesimal ones.
type NGCSource struct {
	client *VizierClient
}

// NewNGCSource creates the NGC/IC source over a shared VizieR client.
func NewNGCSource(client *VizierClient) *NGCSource {
	return &NGCSource{client: client}
}

// Key returns the catalog key identifier.
func (s *NGCSource) Key() string { return "ngc" }

// Label returns the human-readable catalog description.
func (s *NGCSource) Label() string { return "NGC/IC Catalog (VizieR VII/118)" }

// Capabilities returns what this source supports.
func (s *NGCSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{RateLimited: true}
}

// Fetch retrieves the catalogue up to the row limit.
func (s *NGCSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	c.Progress.Report("Querying NGC/IC catalog (VizieR VII/118)...")

	records, err := s.client.QueryCatalog(ctx, "VII/118",
		[]string{"Name", "_RA.icrs", "_DE.icrs", "Type", "mag"}, c.RowLimit)
	if err != nil {
		return nil, err
	}
	return standardise(records, "_RA.icrs", "_DE.icrs", "NGC", "Name"), nil
}
