package catalogs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// standardise converts raw service records into catalog rows: RA/Dec are
// parsed to float degrees, rows with missing or non-finite coordinates
// are dropped (the membership engine never sees NaN), and every row gets
// a catalog tag plus an object identifier.
//
// idCol selects the identifier column; when it is empty or missing the
// identifier falls back to "<tag>_<index>". Remaining columns are kept
// in Extra.
func standardise(records []map[string]string, raCol, decCol, tag, idCol string) domain.PositionBatch {
	batch := make(domain.PositionBatch, 0, len(records))
	for i, rec := range records {
		ra, okRA := parseCoord(rec[raCol])
		dec, okDec := parseCoord(rec[decCol])
		if !okRA || !okDec {
			continue
		}
		if ra < 0 || ra >= 360 {
			ra = math.Mod(math.Mod(ra, 360)+360, 360)
		}
		if dec < -90 || dec > 90 {
			continue
		}

		id := rec[idCol]
		if idCol == "" || id == "" {
			id = fmt.Sprintf("%s_%d", tag, i)
		}

		extra := make(map[string]string)
		for k, v := range rec {
			if k == raCol || k == decCol || k == idCol {
				continue
			}
			if v != "" {
				extra[k] = v
			}
		}

		batch = append(batch, domain.Row{
			ObjectID: id,
			Catalog:  tag,
			RA:       ra,
			Dec:      dec,
			Extra:    extra,
		})
	}
	return batch
}

func parseCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// dedupeByID keeps the first row for each object identifier, preserving
// order. Tiled retrievals overlap at tile edges and return duplicates.
func dedupeByID(batch domain.PositionBatch) domain.PositionBatch {
	seen := make(map[string]struct{}, len(batch))
	out := make(domain.PositionBatch, 0, len(batch))
	for _, row := range batch {
		if _, dup := seen[row.ObjectID]; dup {
			continue
		}
		seen[row.ObjectID] = struct{}{}
		out = append(out, row)
	}
	return out
}
