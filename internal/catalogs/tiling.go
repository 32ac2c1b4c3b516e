package catalogs

// Tile is one bounded-radius sub-query of a wide-area retrieval.
type Tile struct {
	// RA and Dec are the tile centre in ICRS degrees.
	RA  float64
	Dec float64
	// RadiusDeg is the cone search radius.
	RadiusDeg float64
}

// Tiling parameters for whole-sky catalogues. A 15° x 10° grid of centres
// with an 8° search radius overlaps adjacent tiles enough that no sky is
// missed; duplicates from the overlap are removed by object identifier.
// The declination range stops at +30°: every defined footprint lies below
// the HLWAS Dec cut.
const (
	tileRAStep    = 15.0
	tileDecStep   = 10.0
	tileDecMin    = -80.0
	tileDecMax    = 30.0
	tileRadiusDeg = 8.0
	tileRowLimit  = 500
	tileLogEvery  = 30
)

// skyTiles returns the fixed whole-sky tile grid, declination outer loop,
// right ascension inner loop.
func skyTiles() []Tile {
	var tiles []Tile
	for dec := tileDecMin; dec <= tileDecMax; dec += tileDecStep {
		for ra := 0.0; ra < 360.0; ra += tileRAStep {
			tiles = append(tiles, Tile{RA: ra, Dec: dec, RadiusDeg: tileRadiusDeg})
		}
	}
	return tiles
}
