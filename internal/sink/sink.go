// Package sink writes match results to per-combination artifact files.
//
// Each survey/catalog combination that produced matches gets a CSV table
// for spreadsheet use and a JSON document carrying the same rows plus
// run metadata for downstream tooling.
package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// Ensure FileSink implements the interface.
var _ driven.ResultSink = (*FileSink)(nil)

// FileSink writes matched rows to "<SURVEY>_<catalog>_matches.csv" and
// ".json" under the output directory, creating it if needed.
type FileSink struct{}

// NewFileSink creates a file sink.
func NewFileSink() *FileSink {
	return &FileSink{}
}

// jsonArtifact is the JSON file layout.
type jsonArtifact struct {
	Survey    string       `json:"survey"`
	Catalog   string       `json:"catalog"`
	Generated time.Time    `json:"generated"`
	Count     int          `json:"count"`
	Objects   []jsonObject `json:"objects"`
}

type jsonObject struct {
	ObjectID string            `json:"object_id"`
	Catalog  string            `json:"catalog"`
	RA       float64           `json:"ra"`
	Dec      float64           `json:"dec"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// Write persists one combination's matches and returns the paths written.
func (s *FileSink) Write(ctx context.Context, rows domain.PositionBatch, surveyName, catalogName, outputDir string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	base := fmt.Sprintf("%s_%s_matches", strings.ToUpper(surveyName), strings.ToLower(catalogName))
	csvPath := filepath.Join(outputDir, base+".csv")
	jsonPath := filepath.Join(outputDir, base+".json")

	if err := writeCSV(csvPath, rows); err != nil {
		return "", "", err
	}
	if err := writeJSON(jsonPath, rows, surveyName, catalogName); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

// writeCSV writes fixed columns object_id, catalog, ra, dec followed by
// the union of extra columns in sorted order. Rows missing an extra
// column get an empty cell.
func writeCSV(path string, rows domain.PositionBatch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	extraCols := collectExtraColumns(rows)
	header := append([]string{"object_id", "catalog", "ra", "dec"}, extraCols...)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record,
			row.ObjectID,
			row.Catalog,
			strconv.FormatFloat(row.RA, 'f', 6, 64),
			strconv.FormatFloat(row.Dec, 'f', 6, 64),
		)
		for _, col := range extraCols {
			record = append(record, row.Extra[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func writeJSON(path string, rows domain.PositionBatch, surveyName, catalogName string) error {
	artifact := jsonArtifact{
		Survey:    surveyName,
		Catalog:   catalogName,
		Generated: time.Now().UTC(),
		Count:     len(rows),
		Objects:   make([]jsonObject, 0, len(rows)),
	}
	for _, row := range rows {
		artifact.Objects = append(artifact.Objects, jsonObject{
			ObjectID: row.ObjectID,
			Catalog:  row.Catalog,
			RA:       row.RA,
			Dec:      row.Dec,
			Extra:    row.Extra,
		})
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json artifact: %w", err)
	}
	return nil
}

func collectExtraColumns(rows domain.PositionBatch) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		for k := range row.Extra {
			set[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(set))
	for k := range set {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
