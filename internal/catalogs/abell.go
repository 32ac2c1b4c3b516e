package catalogs

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// Ensure AbellSource implements the interface.
var _ driven.CatalogSource = (*AbellSource)(nil)

// AbellSource fetches the Abell cluster catalogue (VizieR VII/110A).
// Small enough to retrieve in a single whole-catalogue query.
type AbellSource struct {
	client *VizierClient
}

// NewAbellSource creates the Abell source over a shared VizieR client.
func NewAbellSource(client *VizierClient) *AbellSource {
	return &AbellSource{client: client}
}

// Key returns the catalog key identifier.
func (s *AbellSource) Key() string { return "abell" }

// Label returns the human-readable catalog description.
func (s *AbellSource) Label() string { return "Abell Clusters (VizieR VII/110A)" }

// Capabilities returns what this source supports.
func (s *AbellSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{RateLimited: true}
}

// Fetch retrieves the catalogue up to the row limit.
func (s *AbellSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	c.Progress.Report("Querying Abell cluster catalog (VizieR VII/110A)...")

	records, err := s.client.QueryCatalog(ctx, "VII/110A",
		[]string{"ACO", "_RA.icrs", "_DE.icrs", "z", "Rich", "Dclass"}, c.RowLimit)
	if err != nil {
		return nil, err
	}

	batch := standardise(records, "_RA.icrs", "_DE.icrs", "Abell", "ACO")
	for i := range batch {
		batch[i].ObjectID = "ACO_" + batch[i].ObjectID
	}
	return batch, nil
}
