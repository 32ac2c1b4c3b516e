package domain

// MatchResult is the outcome of one (survey, catalog) combination.
// It is created once when the combination finishes and never mutated.
type MatchResult struct {
	// Survey is the survey key (e.g. "hlwas").
	Survey string
	// Catalog is the catalog key (e.g. "abell").
	Catalog string
	// Retrieved is the number of rows returned by the catalog source.
	Retrieved int
	// Matched is the number of rows inside the footprint or mask.
	Matched int
	// CSVPath is the written CSV artifact, or empty if none was written.
	CSVPath string
	// JSONPath is the written JSON artifact, or empty if none was written.
	JSONPath string
	// Err describes a per-combination failure, or is empty on success.
	// A failed combination still appears in the run's result list.
	Err string
}

// Failed reports whether this combination recorded an error.
func (r MatchResult) Failed() bool {
	return r.Err != ""
}

// TotalMatched sums the matched counts across a run's results.
func TotalMatched(results []MatchResult) int {
	total := 0
	for _, r := range results {
		total += r.Matched
	}
	return total
}
