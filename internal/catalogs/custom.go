package catalogs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// Ensure CustomSource implements the interface.
var _ driven.CatalogSource = (*CustomSource)(nil)

// CustomSource loads a user-supplied CSV catalogue. RA/Dec column names
// are configurable; all other columns are carried through as extras.
type CustomSource struct {
	path   string
	raCol  string
	decCol string
}

// NewCustomSource creates a custom-file source. raCol and decCol default
// to "RA" and "Dec" when empty.
func NewCustomSource(path, raCol, decCol string) *CustomSource {
	if raCol == "" {
		raCol = "RA"
	}
	if decCol == "" {
		decCol = "Dec"
	}
	return &CustomSource{path: path, raCol: raCol, decCol: decCol}
}

// Key returns the catalog key identifier.
func (s *CustomSource) Key() string { return "custom" }

// Label returns the human-readable catalog description.
func (s *CustomSource) Label() string { return "Custom user file (CSV)" }

// Capabilities returns what this source supports.
func (s *CustomSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{}
}

// Fetch reads and standardises the file.
func (s *CustomSource) Fetch(ctx context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	if s.path == "" {
		return nil, fmt.Errorf("%w: no custom file path provided", domain.ErrInvalidInput)
	}
	c.Progress.Report(fmt.Sprintf("Loading custom catalog: %s", s.path))

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open custom catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read custom catalog: %w", err)
	}
	if len(all) < 1 {
		return nil, fmt.Errorf("%w: custom catalog is empty", domain.ErrInvalidInput)
	}

	header := trimAll(all[0])
	if !containsField(header, s.raCol) || !containsField(header, s.decCol) {
		return nil, fmt.Errorf("%w: columns %q/%q not found in custom file (available: %v)",
			domain.ErrInvalidInput, s.raCol, s.decCol, header)
	}

	records := make([]map[string]string, 0, len(all)-1)
	for _, row := range all[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	batch := standardise(records, s.raCol, s.decCol, "Custom", "object_id")
	if c.RowLimit > 0 && len(batch) > c.RowLimit {
		batch = batch[:c.RowLimit]
	}
	return batch, nil
}
