package driven

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// CatalogSource fetches object positions from one external catalog.
// The supported sources form a fixed closed set selected through an
// explicit registry, never by branching on arbitrary strings.
type CatalogSource interface {
	// Key returns the catalog key identifier (e.g. "abell", "ned").
	Key() string

	// Label returns the human-readable catalog description.
	Label() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Fetch retrieves catalog rows subject to the given constraints.
	// Returning zero rows is not an error: an empty tile or temporarily
	// unavailable catalog yields (nil, nil). Rows with non-finite or
	// unparsable coordinates are dropped before returning.
	Fetch(ctx context.Context, c FetchConstraints) (domain.PositionBatch, error)
}

// SourceCapabilities describes what a catalog source supports.
// The orchestrator keys its control flow off these flags rather than off
// catalog names.
type SourceCapabilities struct {
	// SelfFilters indicates the source applies the footprint (or mask)
	// membership test during retrieval to bound memory while tiling.
	// The orchestrator skips its own membership step for such sources
	// and trusts the pre-filtered result as-is.
	SelfFilters bool

	// Tiled indicates the source splits wide-area retrieval into many
	// bounded-radius sub-queries. Informational.
	Tiled bool

	// RateLimited indicates the source throttles its own requests to the
	// upstream service. Informational.
	RateLimited bool
}

// CatalogRegistry resolves catalog keys to sources. Implementations hold
// a fixed table of the supported sources; keys outside the table report
// domain.ErrUnknownCatalog.
type CatalogRegistry interface {
	// Get returns the source for a catalog key, case-insensitive.
	Get(key string) (CatalogSource, error)

	// Keys returns every supported catalog key in fixed order.
	Keys() []string

	// RemoteKeys returns the keys the "all" shorthand expands to: every
	// built-in remote catalog, excluding the custom file source.
	RemoteKeys() []string
}

// MaskLoader loads a HEALPix coverage mask from a file.
type MaskLoader func(path string) (*domain.PixelMask, error)

// FetchConstraints bound a single catalog retrieval.
type FetchConstraints struct {
	// RowLimit caps the number of rows requested from the service.
	RowLimit int

	// Footprint is the active survey footprint. Required by sources that
	// pre-filter or that target their cone searches at footprint fields;
	// other sources ignore it.
	Footprint *domain.Footprint

	// Mask is the active HEALPix mask, if any. Takes precedence over
	// Footprint for sources that pre-filter.
	Mask *domain.PixelMask

	// Progress receives retrieval status messages. May be nil.
	Progress domain.ProgressFunc
}
