package services

import (
	"fmt"
	"math"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/healpix"
	"github.com/pmarcum/roman-xmatch/internal/sphere"
)

// MembershipEngine decides whether sky positions fall inside a survey
// footprint or an external HEALPix mask. It holds no state; a single
// engine may be shared across combinations and goroutines.
type MembershipEngine struct{}

// NewMembershipEngine returns a membership engine.
func NewMembershipEngine() *MembershipEngine {
	return &MembershipEngine{}
}

// boundaryTol absorbs floating-point rounding in the separation and
// frame-transform computations (~3.6 µas) so that positions exactly on a
// cut or field radius classify inside, keeping the comparisons inclusive.
const boundaryTol = 1e-9

// skyCutMargin widens the two latitude cuts of a sky-cut footprint by
// half a degree. The cut values describe an approximate survey boundary,
// not a hard edge; positions this close to a latitude cut classify
// inside. The Dec cut and circle radii stay exact.
const skyCutMargin = 0.5

// Test returns one boolean per batch row, index-aligned with the batch.
//
// Decision order, first match wins:
//  1. mask != nil: HEALPix lookup; pixel value > 0 means inside. The
//     footprint is ignored entirely.
//  2. circles footprint: inside iff the great-circle separation to any
//     field centre is <= that field's radius (union semantics).
//  3. sky-cuts footprint: inside iff |galactic lat| >= GalLatMin and
//     |ecliptic lat| >= EclLatMin and dec <= DecMax, with the two
//     latitude cuts loosened by skyCutMargin.
//
// All boundary comparisons are inclusive. Identical inputs always yield
// identical output.
func (e *MembershipEngine) Test(batch domain.PositionBatch, fp *domain.Footprint, mask *domain.PixelMask) ([]bool, error) {
	if mask != nil {
		return e.testMask(batch, mask)
	}
	if fp == nil {
		return nil, fmt.Errorf("%w: no footprint and no mask", domain.ErrInvalidInput)
	}
	switch fp.Type {
	case domain.FootprintCircles:
		return e.testCircles(batch, fp), nil
	case domain.FootprintSkyCuts:
		return e.testSkyCuts(batch, fp), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFootprintType, fp.Type)
	}
}

func (e *MembershipEngine) testMask(batch domain.PositionBatch, mask *domain.PixelMask) ([]bool, error) {
	if !healpix.Available() {
		return nil, domain.ErrMaskSupportUnavailable
	}
	inside := make([]bool, len(batch))
	for i := range batch {
		inside[i] = healpix.LookupRaDec(mask, batch[i].RA, batch[i].Dec) > 0
	}
	return inside, nil
}

func (e *MembershipEngine) testCircles(batch domain.PositionBatch, fp *domain.Footprint) []bool {
	inside := make([]bool, len(batch))
	for i := range batch {
		for _, f := range fp.Fields {
			if sphere.Separation(batch[i].RA, batch[i].Dec, f.RA, f.Dec) <= f.RadiusDeg+boundaryTol {
				inside[i] = true
				break
			}
		}
	}
	return inside
}

func (e *MembershipEngine) testSkyCuts(batch domain.PositionBatch, fp *domain.Footprint) []bool {
	inside := make([]bool, len(batch))
	for i := range batch {
		ra, dec := batch[i].RA, batch[i].Dec
		if dec > fp.DecMax+boundaryTol {
			continue
		}
		if math.Abs(sphere.GalacticLatitude(ra, dec)) < fp.GalLatMin-skyCutMargin {
			continue
		}
		if math.Abs(sphere.EclipticLatitude(ra, dec)) < fp.EclLatMin-skyCutMargin {
			continue
		}
		inside[i] = true
	}
	return inside
}
