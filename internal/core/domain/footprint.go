package domain

// FootprintType discriminates the two survey footprint geometries.
// A footprint is exactly one of the two; the variants are never mixed.
type FootprintType string

const (
	// FootprintSkyCuts describes a footprint as a conjunction of
	// galactic-latitude, ecliptic-latitude and declination cuts.
	FootprintSkyCuts FootprintType = "sky_cuts"
	// FootprintCircles describes a footprint as a union of circular fields.
	FootprintCircles FootprintType = "circles"
)

// Field is a single circular survey pointing.
type Field struct {
	// Label is the human-readable field name (e.g. "ELAIS-N1 (North)").
	Label string
	// RA is the field centre right ascension in ICRS decimal degrees.
	RA float64
	// Dec is the field centre declination in ICRS decimal degrees.
	Dec float64
	// RadiusDeg is the field radius in degrees.
	RadiusDeg float64
}

// Footprint is an immutable named survey sky region.
//
// For Type == FootprintSkyCuts the three cut thresholds are populated and
// Fields is empty; for Type == FootprintCircles only Fields is populated.
type Footprint struct {
	// Name is the short survey name (e.g. "HLWAS").
	Name string
	// Description is the human-readable survey description.
	Description string
	// Type selects which of the two variants this footprint is.
	Type FootprintType

	// GalLatMin is the minimum |galactic latitude| in degrees (sky_cuts).
	GalLatMin float64
	// EclLatMin is the minimum |ecliptic latitude| in degrees (sky_cuts).
	EclLatMin float64
	// DecMax is the maximum declination in degrees (sky_cuts).
	DecMax float64

	// Fields are the circular pointings (circles).
	Fields []Field
}
