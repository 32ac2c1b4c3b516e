// Package driving defines the interfaces through which front ends invoke
// the pipeline core. Front ends (CLI, a future GUI worker) depend on these;
// the core implements them.
package driving

import (
	"context"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// Pipeline runs the survey × catalog cross-match.
//
// Run is stateless between invocations and safe to call from any
// goroutine: a front end may run it off the main thread and relay progress
// messages through its own queue.
type Pipeline interface {
	// Run processes every (survey, catalog) combination and returns one
	// MatchResult per combination, surveys outer loop, catalogs inner.
	// Configuration errors (unknown keys, unusable mask) fail before any
	// combination executes; per-combination fetch or membership failures
	// are recorded on that combination's result and do not abort the run.
	Run(ctx context.Context, opts domain.RunOptions, progress domain.ProgressFunc) ([]domain.MatchResult, error)
}
