package domain

// Row is one catalog object with a sky position.
//
// RA and Dec are ICRS decimal degrees. Adapters must drop rows with
// non-finite or unparsable coordinates before returning them; the
// membership engine does not special-case NaN.
type Row struct {
	// ObjectID identifies the object within its catalog.
	ObjectID string
	// Catalog is the source catalog tag (e.g. "Abell", "NED").
	Catalog string
	// RA is the right ascension in decimal degrees, [0, 360).
	RA float64
	// Dec is the declination in decimal degrees, [-90, 90].
	Dec float64
	// Extra holds additional catalog columns by name.
	Extra map[string]string
}

// PositionBatch is an ordered sequence of catalog rows. The row order is
// significant: membership results are index-aligned with the batch.
type PositionBatch []Row

// RA returns the right ascensions of the batch, in order.
func (b PositionBatch) RA() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].RA
	}
	return out
}

// Dec returns the declinations of the batch, in order.
func (b PositionBatch) Dec() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].Dec
	}
	return out
}

// Select returns the rows for which keep[i] is true, preserving order.
// len(keep) must equal len(b).
func (b PositionBatch) Select(keep []bool) PositionBatch {
	out := make(PositionBatch, 0, len(b))
	for i := range b {
		if keep[i] {
			out = append(out, b[i])
		}
	}
	return out
}
