package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driving"
	"github.com/pmarcum/roman-xmatch/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.Pipeline = (*PipelineOrchestrator)(nil)

// PipelineOrchestrator drives the survey × catalog cross-match: it
// validates the requested combination matrix, loads an optional mask,
// fetches each catalog, applies the membership engine and hands matches
// to the result sink.
//
// Run holds no state between invocations and is safe to call from any
// goroutine; progress messages are delivered through the caller-supplied
// callback only.
type PipelineOrchestrator struct {
	footprints *FootprintRegistry
	engine     *MembershipEngine
	sources    driven.CatalogRegistry
	sink       driven.ResultSink
	loadMask   driven.MaskLoader
}

// NewPipelineOrchestrator wires an orchestrator from its collaborators.
func NewPipelineOrchestrator(
	footprints *FootprintRegistry,
	engine *MembershipEngine,
	sources driven.CatalogRegistry,
	sink driven.ResultSink,
	loadMask driven.MaskLoader,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		footprints: footprints,
		engine:     engine,
		sources:    sources,
		sink:       sink,
		loadMask:   loadMask,
	}
}

// Run processes every (survey, catalog) combination, surveys outer loop,
// catalogs inner loop, and returns one MatchResult per combination.
//
// Configuration errors — unknown survey or catalog keys, an unusable mask
// — fail before any combination executes. Per-combination fetch and
// membership failures are recorded on that combination's result and never
// abort the run.
func (p *PipelineOrchestrator) Run(ctx context.Context, opts domain.RunOptions, progress domain.ProgressFunc) ([]domain.MatchResult, error) {
	surveys, catalogs, err := p.resolveSelection(opts)
	if err != nil {
		return nil, err
	}

	// Load the mask upfront. Once requested it applies to every
	// combination, so a broken mask is fatal rather than degraded.
	var mask *domain.PixelMask
	if opts.MaskPath != "" {
		progress.Report(fmt.Sprintf("Loading HEALPix mask: %s", opts.MaskPath))
		mask, err = p.loadMask(opts.MaskPath)
		if err != nil {
			return nil, fmt.Errorf("load mask %s: %w", opts.MaskPath, err)
		}
		progress.Report(fmt.Sprintf("  nside=%d, active pixels=%d", mask.Nside, mask.ActivePixels()))
	}

	results := make([]domain.MatchResult, 0, len(surveys)*len(catalogs))
	for _, surveyKey := range surveys {
		fp, err := p.footprints.Lookup(surveyKey)
		if err != nil {
			// Unreachable after validation; treat as fatal.
			return nil, err
		}
		progress.Report(fmt.Sprintf("── %s ──", fp.Description))

		for _, catKey := range catalogs {
			progress.Report(fmt.Sprintf("[%s × %s]", strings.ToUpper(surveyKey), strings.ToUpper(catKey)))
			results = append(results, p.runCombination(ctx, opts, surveyKey, catKey, fp, mask, progress))
		}
	}

	total := domain.TotalMatched(results)
	progress.Report(fmt.Sprintf("Complete — %d total matched objects", total))
	logger.Info("Run complete: %d combinations, %d matched objects", len(results), total)

	return results, nil
}

// resolveSelection expands the "all" shorthands and validates every key
// before any combination executes.
func (p *PipelineOrchestrator) resolveSelection(opts domain.RunOptions) (surveys, catalogs []string, err error) {
	surveys = lowerAll(opts.Surveys)
	if contains(surveys, "all") {
		surveys = p.footprints.Keys()
	}

	catalogs = lowerAll(opts.Catalogs)
	if contains(catalogs, "all") {
		expanded := p.sources.RemoteKeys()
		// "all" never implies the custom source; keep it only when it was
		// requested explicitly alongside a file.
		if contains(catalogs, "custom") && opts.CustomFile != "" {
			expanded = append(expanded, "custom")
		}
		catalogs = expanded
	}

	if len(surveys) == 0 {
		return nil, nil, fmt.Errorf("%w: no surveys selected", domain.ErrInvalidInput)
	}
	if len(catalogs) == 0 {
		return nil, nil, fmt.Errorf("%w: no catalogs selected", domain.ErrInvalidInput)
	}

	for _, s := range surveys {
		if _, err := p.footprints.Lookup(s); err != nil {
			return nil, nil, err
		}
	}
	for _, c := range catalogs {
		if _, err := p.sources.Get(c); err != nil {
			return nil, nil, err
		}
	}
	return surveys, catalogs, nil
}

// runCombination processes one (survey, catalog) pair. Errors from the
// fetch or membership steps are recorded on the result, never returned:
// a single combination's failure must not abort the run.
func (p *PipelineOrchestrator) runCombination(
	ctx context.Context,
	opts domain.RunOptions,
	surveyKey, catKey string,
	fp *domain.Footprint,
	mask *domain.PixelMask,
	progress domain.ProgressFunc,
) domain.MatchResult {
	logger.Section("%s × %s", strings.ToUpper(surveyKey), strings.ToUpper(catKey))
	result := domain.MatchResult{Survey: surveyKey, Catalog: catKey}

	source, err := p.sources.Get(catKey)
	if err != nil {
		// Unreachable after validation.
		result.Err = err.Error()
		return result
	}

	batch, err := source.Fetch(ctx, driven.FetchConstraints{
		RowLimit:  opts.RowLimit,
		Footprint: fp,
		Mask:      mask,
		Progress:  progress,
	})
	if err != nil {
		logger.Warn("Fetch failed for %s × %s: %v", surveyKey, catKey, err)
		progress.Report(fmt.Sprintf("  ERROR fetching %s: %v", catKey, err))
		result.Err = err.Error()
		return result
	}

	if len(batch) == 0 {
		progress.Report("  No objects retrieved.")
		return result
	}
	result.Retrieved = len(batch)
	progress.Report(fmt.Sprintf("  Retrieved %d objects.", result.Retrieved))

	// Sources that pre-filter during tiled retrieval have already applied
	// the footprint; trust their result as-is.
	if !source.Capabilities().SelfFilters {
		inside, err := p.engine.Test(batch, fp, mask)
		if err != nil {
			logger.Warn("Membership test failed for %s × %s: %v", surveyKey, catKey, err)
			progress.Report(fmt.Sprintf("  ERROR during footprint test: %v", err))
			result.Err = err.Error()
			return result
		}
		batch = batch.Select(inside)
	}

	result.Matched = len(batch)
	progress.Report(fmt.Sprintf("  Matched within %s: %d", fp.Name, result.Matched))

	if result.Matched == 0 {
		return result
	}

	csvPath, jsonPath, err := p.sink.Write(ctx, batch, fp.Name, catKey, opts.OutputDir)
	if err != nil {
		logger.Warn("Write failed for %s × %s: %v", surveyKey, catKey, err)
		progress.Report(fmt.Sprintf("  ERROR writing outputs: %v", err))
		result.Err = err.Error()
		return result
	}
	result.CSVPath = csvPath
	result.JSONPath = jsonPath
	return result
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func contains(in []string, want string) bool {
	for _, s := range in {
		if s == want {
			return true
		}
	}
	return false
}
