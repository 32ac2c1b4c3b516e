package domain

// DefaultRowLimit is the default maximum rows fetched per catalog query.
const DefaultRowLimit = 100000

// DefaultOutputDir is the default directory for match artifacts.
const DefaultOutputDir = "roman_xmatch_output"

// RunOptions configures a pipeline run. The zero value is not usable;
// construct with DefaultRunOptions and override as needed.
type RunOptions struct {
	// Surveys are the survey keys to process, or ["all"] for every
	// defined survey.
	Surveys []string
	// Catalogs are the catalog keys to query, or ["all"] for every
	// built-in remote catalog (the custom source is only included when
	// requested explicitly and a CustomFile is set).
	Catalogs []string
	// MaskPath is an optional HEALPix mask file. When set, the mask
	// overrides footprint geometry for every combination.
	MaskPath string
	// OutputDir receives the CSV/JSON artifacts.
	OutputDir string
	// RowLimit caps rows per catalog query.
	RowLimit int
	// CustomFile is the path of a user-supplied catalog (CSV).
	CustomFile string
	// CustomRACol is the RA column name in CustomFile.
	CustomRACol string
	// CustomDecCol is the Dec column name in CustomFile.
	CustomDecCol string
}

// DefaultRunOptions returns the defaults used by the CLI, matching the
// published tool defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Surveys:      []string{"hlwas"},
		Catalogs:     []string{"abell", "ngc"},
		OutputDir:    DefaultOutputDir,
		RowLimit:     DefaultRowLimit,
		CustomRACol:  "RA",
		CustomDecCol: "Dec",
	}
}

// ProgressFunc receives human-readable status messages during a run.
// Messages are ordered within one combination; callers must tolerate a
// nil-safe no-op (the pipeline never requires a sink for progress).
type ProgressFunc func(msg string)

// Report invokes the callback if it is non-nil.
func (f ProgressFunc) Report(msg string) {
	if f != nil {
		f(msg)
	}
}
