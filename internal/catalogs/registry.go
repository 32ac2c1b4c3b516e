package catalogs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// CatalogKeys are the supported catalog keys, in presentation order.
// "custom" is last and is excluded from the "all" shorthand.
var CatalogKeys = []string{"abell", "sdss", "2masx", "ngc", "ned", "custom"}

// Ensure Registry implements the interface.
var _ driven.CatalogRegistry = (*Registry)(nil)

// Registry holds the fixed table of catalog sources. Sources are selected
// by key through this table only; nothing in the pipeline branches on
// catalog names.
type Registry struct {
	order   []string
	sources map[string]driven.CatalogSource
}

// Config configures registry construction.
type Config struct {
	// VizieRBaseURL overrides the VizieR mirror. Empty selects the default.
	VizieRBaseURL string
	// NEDBaseURL overrides the NED endpoint. Empty selects the default.
	NEDBaseURL string
	// HTTPClient is shared by the remote sources. Nil gets a client with
	// DefaultTimeout.
	HTTPClient *http.Client
	// CustomFile, CustomRACol and CustomDecCol configure the custom source.
	CustomFile   string
	CustomRACol  string
	CustomDecCol string
}

// NewRegistry builds the source table. membership is handed to the NED
// source for its tile pre-filtering.
func NewRegistry(cfg Config, membership MembershipFunc) *Registry {
	vizier := NewVizierClient(cfg.VizieRBaseURL, cfg.HTTPClient)
	ned := NewNEDClient(cfg.NEDBaseURL, cfg.HTTPClient)

	r := &Registry{
		order:   CatalogKeys,
		sources: make(map[string]driven.CatalogSource, len(CatalogKeys)),
	}
	r.register(NewAbellSource(vizier))
	r.register(NewSDSSSource(vizier))
	r.register(NewTwoMASXSource(vizier))
	r.register(NewNGCSource(vizier))
	r.register(NewNEDSource(ned, membership))
	r.register(NewCustomSource(cfg.CustomFile, cfg.CustomRACol, cfg.CustomDecCol))
	return r
}

func (r *Registry) register(s driven.CatalogSource) {
	r.sources[s.Key()] = s
}

// Get returns the source for a catalog key, case-insensitive.
func (r *Registry) Get(key string) (driven.CatalogSource, error) {
	s, ok := r.sources[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose from: %s)",
			domain.ErrUnknownCatalog, key, strings.Join(r.order, ", "))
	}
	return s, nil
}

// Keys returns every supported catalog key in fixed order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// RemoteKeys returns the keys the "all" shorthand expands to: every
// built-in remote catalog, excluding the custom file source.
func (r *Registry) RemoteKeys() []string {
	keys := make([]string, 0, len(r.order)-1)
	for _, k := range r.order {
		if k != "custom" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Labels returns "key: label" lines for every source, in fixed order.
// Used by the CLI listing command.
func (r *Registry) Labels() []string {
	out := make([]string, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, fmt.Sprintf("%-7s %s", k, r.sources[k].Label()))
	}
	return out
}
