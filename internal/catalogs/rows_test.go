package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

func TestStandardise(t *testing.T) {
	records := []map[string]string{
		{"id": "a", "ra": "150.5", "dec": "-30.25", "mag": "17.1"},
		{"id": "b", "ra": "bogus", "dec": "10.0"},
		{"id": "c", "ra": "10.0", "dec": ""},
		{"id": "", "ra": "0.0", "dec": "0.0"},
		{"id": "e", "ra": "-10.0", "dec": "95.0"},
	}

	batch := standardise(records, "ra", "dec", "Test", "id")
	require.Len(t, batch, 2)

	assert.Equal(t, "a", batch[0].ObjectID)
	assert.Equal(t, "Test", batch[0].Catalog)
	assert.InDelta(t, 150.5, batch[0].RA, 1e-9)
	assert.InDelta(t, -30.25, batch[0].Dec, 1e-9)
	assert.Equal(t, "17.1", batch[0].Extra["mag"])
	assert.NotContains(t, batch[0].Extra, "ra")
	assert.NotContains(t, batch[0].Extra, "id")

	// Empty identifier falls back to tag plus record index.
	assert.Equal(t, "Test_3", batch[1].ObjectID)
}

func TestStandardiseNormalisesRA(t *testing.T) {
	records := []map[string]string{
		{"id": "neg", "ra": "-10.0", "dec": "0.0"},
		{"id": "wrap", "ra": "370.0", "dec": "0.0"},
		{"id": "full", "ra": "360.0", "dec": "0.0"},
	}

	batch := standardise(records, "ra", "dec", "Test", "id")
	require.Len(t, batch, 3)
	assert.InDelta(t, 350.0, batch[0].RA, 1e-9)
	assert.InDelta(t, 10.0, batch[1].RA, 1e-9)
	assert.InDelta(t, 0.0, batch[2].RA, 1e-9)
}

func TestDedupeByID(t *testing.T) {
	batch := domain.PositionBatch{
		{ObjectID: "a", RA: 1},
		{ObjectID: "b", RA: 2},
		{ObjectID: "a", RA: 3},
		{ObjectID: "c", RA: 4},
		{ObjectID: "b", RA: 5},
	}

	out := dedupeByID(batch)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ObjectID)
	assert.InDelta(t, 1.0, out[0].RA, 1e-9) // first occurrence wins
	assert.Equal(t, "b", out[1].ObjectID)
	assert.Equal(t, "c", out[2].ObjectID)
}

func TestSkyTiles(t *testing.T) {
	tiles := skyTiles()

	// 24 RA steps by 12 Dec rows (-80..+30 inclusive).
	assert.Len(t, tiles, 24*12)

	// Dec outer, RA inner ordering.
	assert.InDelta(t, -80.0, tiles[0].Dec, 1e-9)
	assert.InDelta(t, 0.0, tiles[0].RA, 1e-9)
	assert.InDelta(t, -80.0, tiles[23].Dec, 1e-9)
	assert.InDelta(t, 345.0, tiles[23].RA, 1e-9)
	assert.InDelta(t, -70.0, tiles[24].Dec, 1e-9)

	for _, tile := range tiles {
		assert.GreaterOrEqual(t, tile.RA, 0.0)
		assert.Less(t, tile.RA, 360.0)
		assert.LessOrEqual(t, tile.Dec, tileDecMax)
		assert.GreaterOrEqual(t, tile.Dec, tileDecMin)
		assert.InDelta(t, tileRadiusDeg, tile.RadiusDeg, 1e-9)
	}
}
