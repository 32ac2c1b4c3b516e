package catalogs

import (
	"context"
	"fmt"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
	"github.com/pmarcum/roman-xmatch/internal/logger"
)

// Ensure SDSSSource implements the interface.
var _ driven.CatalogSource = (*SDSSSource)(nil)

// SDSSSource fetches SDSS photometric objects (VizieR II/294). The
// catalogue is far too large to fetch wholesale — VizieR answers such
// requests with a positional default slice — so the whole sky is tiled
// into bounded cone searches and the overlapping results deduplicated.
type SDSSSource struct {
	client *VizierClient
}

// NewSDSSSource creates the SDSS source over a shared VizieR client.
func NewSDSSSource(client *VizierClient) *SDSSSource {
	return &SDSSSource{client: client}
}

// Key returns the catalog key identifier.
func (s *SDSSSource) Key() string { return "sdss" }

// Label returns the human-readable catalog description.
func (s *SDSSSource) Label() string { return "SDSS Photometric Catalog DR7 (VizieR II/294)" }

// Capabilities returns what this source supports.
func (s *SDSSSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{Tiled: true, RateLimited: true}
}

// Fetch tiles the sky and retrieves each tile via cone search. Tiles that
// fail are skipped: a partial SDSS retrieval is more useful than none,
// and the footprint filter runs downstream regardless.
func (s *SDSSSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	tiles := skyTiles()
	c.Progress.Report("Querying SDSS photometric catalog (VizieR II/294) via sky tiling...")
	c.Progress.Report(fmt.Sprintf("  Querying %d sky tiles...", len(tiles)))

	var batch domain.PositionBatch
	for i, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.client.QueryRegion(ctx, "II/294",
			[]string{"objID", "RA_ICRS", "DE_ICRS", "cl", "rmag"},
			tile.RA, tile.Dec, tile.RadiusDeg, tileRowLimit)
		if err != nil {
			logger.Debug("SDSS tile (%.0f, %.0f) failed: %v", tile.RA, tile.Dec, err)
			continue
		}

		tileBatch := standardise(records, "RA_ICRS", "DE_ICRS", "SDSS", "objID")
		// Keep galaxies only (cl == 3).
		for _, row := range tileBatch {
			if row.Extra["cl"] == "3" {
				batch = append(batch, row)
			}
		}

		if (i+1)%tileLogEvery == 0 {
			c.Progress.Report(fmt.Sprintf("  ... %d/%d tiles queried", i+1, len(tiles)))
		}
		if len(batch) >= c.RowLimit {
			break
		}
	}

	batch = dedupeByID(batch)
	if len(batch) > c.RowLimit {
		batch = batch[:c.RowLimit]
	}
	c.Progress.Report(fmt.Sprintf("  Retrieved %d SDSS galaxies after deduplication.", len(batch)))
	return batch, nil
}
