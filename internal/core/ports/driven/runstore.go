package driven

import (
	"context"
	"time"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// RunRecord is one recorded pipeline run.
type RunRecord struct {
	// ID is the unique run identifier.
	ID string
	// StartedAt is when the run began.
	StartedAt time.Time
	// FinishedAt is when the run completed.
	FinishedAt time.Time
	// TotalMatched is the sum of matched counts across all combinations.
	TotalMatched int
	// Results are the per-combination outcomes, in processing order.
	Results []domain.MatchResult
}

// RunStore records completed pipeline runs.
type RunStore interface {
	// SaveRun persists a run and its per-combination results.
	SaveRun(ctx context.Context, run RunRecord) error

	// ListRuns returns the most recent runs, newest first, with their
	// results populated.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases store resources.
	Close() error
}
