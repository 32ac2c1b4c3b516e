package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/core/ports/driven"
)

// --- Mock collaborators ---

// mockSource implements driven.CatalogSource for testing.
type mockSource struct {
	key         string
	caps        driven.SourceCapabilities
	rows        domain.PositionBatch
	fetchErr    error
	fetchCalls  int
	lastFetched driven.FetchConstraints
}

func (m *mockSource) Key() string   { return m.key }
func (m *mockSource) Label() string { return "mock " + m.key }

func (m *mockSource) Capabilities() driven.SourceCapabilities { return m.caps }

func (m *mockSource) Fetch(_ context.Context, c driven.FetchConstraints) (domain.PositionBatch, error) {
	m.fetchCalls++
	m.lastFetched = c
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.rows, nil
}

// mockRegistry implements driven.CatalogRegistry over a fixed source list.
type mockRegistry struct {
	sources []*mockSource
}

func (m *mockRegistry) Get(key string) (driven.CatalogSource, error) {
	for _, s := range m.sources {
		if s.key == strings.ToLower(key) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCatalog, key)
}

func (m *mockRegistry) Keys() []string {
	keys := make([]string, len(m.sources))
	for i, s := range m.sources {
		keys[i] = s.key
	}
	return keys
}

func (m *mockRegistry) RemoteKeys() []string { return m.Keys() }

// mockSink implements driven.ResultSink for testing.
type mockSink struct {
	writeErr error
	writes   int
	lastRows domain.PositionBatch
}

func (m *mockSink) Write(_ context.Context, rows domain.PositionBatch, survey, catalog, outputDir string) (string, string, error) {
	m.writes++
	m.lastRows = rows
	if m.writeErr != nil {
		return "", "", m.writeErr
	}
	base := fmt.Sprintf("%s/%s_%s_matches", outputDir, strings.ToUpper(survey), strings.ToLower(catalog))
	return base + ".csv", base + ".json", nil
}

func failingMaskLoader(err error) driven.MaskLoader {
	return func(string) (*domain.PixelMask, error) { return nil, err }
}

func newTestOrchestrator(reg *mockRegistry, sink *mockSink, loadMask driven.MaskLoader) *PipelineOrchestrator {
	if loadMask == nil {
		loadMask = failingMaskLoader(errors.New("no mask in tests"))
	}
	return NewPipelineOrchestrator(NewFootprintRegistry(), NewMembershipEngine(), reg, sink, loadMask)
}

// insideHlwas and outsideHlwas are positions known to pass / fail the
// HLWAS sky cuts.
var (
	insideHlwas  = domain.Row{ObjectID: "in", RA: 150.0, Dec: -30.0}
	outsideHlwas = domain.Row{ObjectID: "out", RA: 266.4, Dec: -28.9}
)

func TestRunReturnsOneResultPerCombination(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", rows: domain.PositionBatch{insideHlwas, outsideHlwas}},
		{key: "ngc", rows: domain.PositionBatch{insideHlwas}},
	}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:   []string{"hlwas", "hltds"},
		Catalogs:  []string{"abell", "ngc"},
		OutputDir: t.TempDir(),
		RowLimit:  100,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Surveys outer loop, catalogs inner loop.
	order := make([]string, len(results))
	for i, r := range results {
		order[i] = r.Survey + "/" + r.Catalog
	}
	assert.Equal(t, []string{"hlwas/abell", "hlwas/ngc", "hltds/abell", "hltds/ngc"}, order)
}

func TestRunFiltersAndWrites(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", rows: domain.PositionBatch{insideHlwas, outsideHlwas}},
	}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 2, r.Retrieved)
	assert.Equal(t, 1, r.Matched)
	assert.NotEmpty(t, r.CSVPath)
	assert.NotEmpty(t, r.JSONPath)
	assert.Empty(t, r.Err)

	require.Equal(t, 1, sink.writes)
	require.Len(t, sink.lastRows, 1)
	assert.Equal(t, "in", sink.lastRows[0].ObjectID)
}

func TestRunSelfFilteringSourceSkipsMembership(t *testing.T) {
	// A self-filtering source's rows are trusted as-is, even when they
	// would fail the geometric test.
	reg := &mockRegistry{sources: []*mockSource{
		{
			key:  "ned",
			caps: driven.SourceCapabilities{SelfFilters: true},
			rows: domain.PositionBatch{outsideHlwas},
		},
	}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"ned"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].Matched)
	assert.Equal(t, 1, sink.writes)
}

func TestRunPartialFailure(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", fetchErr: errors.New("service unavailable")},
		{key: "ngc", rows: domain.PositionBatch{insideHlwas}},
	}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell", "ngc"},
	}, nil)
	require.NoError(t, err, "one combination's failure must not abort the run")
	require.Len(t, results, 2)

	assert.True(t, results[0].Failed())
	assert.Contains(t, results[0].Err, "service unavailable")
	assert.Zero(t, results[0].Matched)

	assert.False(t, results[1].Failed())
	assert.Equal(t, 1, results[1].Matched)
}

func TestRunZeroRetrievedIsNotAnError(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{{key: "abell"}}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
	}, nil)
	require.NoError(t, err)
	r := results[0]
	assert.Empty(t, r.Err)
	assert.Zero(t, r.Retrieved)
	assert.Zero(t, r.Matched)
	assert.Empty(t, r.CSVPath)
	assert.Zero(t, sink.writes)
}

func TestRunZeroMatchedWritesNothing(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", rows: domain.PositionBatch{outsideHlwas}},
	}}
	sink := &mockSink{}
	p := newTestOrchestrator(reg, sink, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].Retrieved)
	assert.Zero(t, results[0].Matched)
	assert.Empty(t, results[0].Err)
	assert.Zero(t, sink.writes)
}

func TestRunUnknownSurveyFailsUpfront(t *testing.T) {
	abell := &mockSource{key: "abell", rows: domain.PositionBatch{insideHlwas}}
	reg := &mockRegistry{sources: []*mockSource{abell}}
	p := newTestOrchestrator(reg, &mockSink{}, nil)

	_, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas", "bogus"},
		Catalogs: []string{"abell"},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownSurvey)
	assert.Zero(t, abell.fetchCalls, "no combination may execute before validation passes")
}

func TestRunUnknownCatalogFailsUpfront(t *testing.T) {
	abell := &mockSource{key: "abell", rows: domain.PositionBatch{insideHlwas}}
	reg := &mockRegistry{sources: []*mockSource{abell}}
	p := newTestOrchestrator(reg, &mockSink{}, nil)

	_, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell", "nope"},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownCatalog)
	assert.Zero(t, abell.fetchCalls)
}

func TestRunAllShorthand(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell"}, {key: "ngc"},
	}}
	p := newTestOrchestrator(reg, &mockSink{}, nil)

	results, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"all"},
		Catalogs: []string{"all"},
	}, nil)
	require.NoError(t, err)
	// 3 surveys x 2 remote catalogs.
	assert.Len(t, results, 6)
}

func TestRunBadMaskIsFatal(t *testing.T) {
	abell := &mockSource{key: "abell", rows: domain.PositionBatch{insideHlwas}}
	reg := &mockRegistry{sources: []*mockSource{abell}}
	p := newTestOrchestrator(reg, &mockSink{}, failingMaskLoader(domain.ErrMaskRead))

	_, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
		MaskPath: "broken.txt",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrMaskRead)
	assert.Zero(t, abell.fetchCalls, "mask failure aborts before any combination")
}

func TestRunMaskPassedToSources(t *testing.T) {
	mask := &domain.PixelMask{Values: make([]float64, 12), Nside: 1}
	abell := &mockSource{key: "abell"}
	reg := &mockRegistry{sources: []*mockSource{abell}}
	p := NewPipelineOrchestrator(NewFootprintRegistry(), NewMembershipEngine(), reg, &mockSink{},
		func(string) (*domain.PixelMask, error) { return mask, nil })

	_, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
		MaskPath: "mask.txt",
	}, nil)
	require.NoError(t, err)
	assert.Same(t, mask, abell.lastFetched.Mask)
	assert.NotNil(t, abell.lastFetched.Footprint, "footprint still flows to sources that target fields")
}

func TestRunProgressMonotonicPerCombination(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", rows: domain.PositionBatch{insideHlwas}},
	}}
	var msgs []string
	p := newTestOrchestrator(reg, &mockSink{}, nil)

	_, err := p.Run(context.Background(), domain.RunOptions{
		Surveys:  []string{"hlwas"},
		Catalogs: []string{"abell"},
	}, func(msg string) { msgs = append(msgs, msg) })
	require.NoError(t, err)

	joined := strings.Join(msgs, "\n")
	retrieved := strings.Index(joined, "Retrieved")
	matched := strings.Index(joined, "Matched")
	require.GreaterOrEqual(t, retrieved, 0)
	require.GreaterOrEqual(t, matched, 0)
	assert.Less(t, retrieved, matched)
}

func TestRunStatelessBetweenInvocations(t *testing.T) {
	reg := &mockRegistry{sources: []*mockSource{
		{key: "abell", rows: domain.PositionBatch{insideHlwas, outsideHlwas}},
	}}
	p := newTestOrchestrator(reg, &mockSink{}, nil)
	opts := domain.RunOptions{Surveys: []string{"hlwas"}, Catalogs: []string{"abell"}}

	first, err := p.Run(context.Background(), opts, nil)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
