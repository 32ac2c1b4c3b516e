package catalogs

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// Ensure TwoMASXSource implements the interface.
var _ driven.CatalogSource = (*TwoMASXSource)(nil)

// TwoMASXSource fetches the 2MASS Extended Source Catalog (VizieR VII/233).
type TwoMASXSource struct {
	client *VizierClient
}

// NewTwoMASXSource creates the 2MASX source over a shared VizieR client.
func NewTwoMASXSource(client *VizierClient) *TwoMASXSource {
	return &TwoMASXSource{client: client}
}

// Key returns the catalog key identifier.
func (s *TwoMASXSource) Key() string { return "2masx" }

// Label returns the human-readable catalog description.
func (s *TwoMASXSource) Label() string { return "2MASS Extended Source Catalog (VizieR VII/233)" }

// Capabilities returns what this source supports.
func (s *TwoMASXSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{RateLimited: true}
}

// Fetch retrieves the catalogue up to the row limit.
func (s *TwoMASXSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	c.Progress.Report("Querying 2MASS Extended Source Catalog (VizieR VII/233)...")

	records, err := s.client.QueryCatalog(ctx, "VII/233",
		[]string{"2MASX", "RAJ2000", "DEJ2000", "Ktmag"}, c.RowLimit)
	if err != nil {
		return nil, err
	}
	return standardise(records, "RAJ2000", "DEJ2000", "2MASX", "2MASX"), nil
}
