package driven

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// ResultSink persists matched rows for one combination.
type ResultSink interface {
	// Write persists the rows and returns the artifact paths written.
	// Either path may be empty if that artifact could not be written;
	// Write only returns an error when no artifact was produced at all.
	Write(ctx context.Context, rows domain.PositionBatch, surveyName, catalogName, outputDir string) (csvPath, jsonPath string, err error)
}
