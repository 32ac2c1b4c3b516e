package services

import (
	"fmt"
	"strings"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
	"github.com/pmarcum/roman-xmatch/internal/sphere"
)

// SurveyKeys are the supported survey keys, in presentation order.
var SurveyKeys = []string{"hlwas", "hltds", "gbtds"}

// SurveyLabels maps survey keys to display labels.
var SurveyLabels = map[string]string{
	"hlwas": "HLWAS — High Latitude Wide Area Survey (~5,000 deg²)",
	"hltds": "HLTDS — High Latitude Time Domain Survey (~18 deg²)",
	"gbtds": "GBTDS — Galactic Bulge Time Domain Survey (~2 deg²)",
}

// FootprintRegistry holds the fixed survey footprint definitions.
// It is built once, is read-only afterwards, and performs no I/O.
// Definitions follow the ROTAC Final Report (April 2025) field list.
type FootprintRegistry struct {
	footprints map[string]*domain.Footprint
}

// NewFootprintRegistry constructs the registry. The GBTDS field centres
// are published in galactic coordinates and are converted to ICRS here,
// once, via the exact IAU rotation.
func NewFootprintRegistry() *FootprintRegistry {
	r := &FootprintRegistry{footprints: make(map[string]*domain.Footprint)}
	r.footprints["hlwas"] = hlwasFootprint()
	r.footprints["hltds"] = hltdsFootprint()
	r.footprints["gbtds"] = gbtdsFootprint()
	return r
}

// Lookup returns the footprint for a survey key, case-insensitive.
// Unknown keys report domain.ErrUnknownSurvey.
func (r *FootprintRegistry) Lookup(surveyKey string) (*domain.Footprint, error) {
	fp, ok := r.footprints[strings.ToLower(surveyKey)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose from: %s)",
			domain.ErrUnknownSurvey, surveyKey, strings.Join(SurveyKeys, ", "))
	}
	return fp, nil
}

// Keys returns the supported survey keys in presentation order.
func (r *FootprintRegistry) Keys() []string {
	keys := make([]string, len(SurveyKeys))
	copy(keys, SurveyKeys)
	return keys
}

// hlwasFootprint approximates the High Latitude Wide Area Survey
// (~5,000 deg²) with sky cuts: the footprint avoids the galactic plane
// (|b| > 20°) and the ecliptic plane (|ecliptic lat| > 15°) and is biased
// to the southern sky (Dec < +30°) for Rubin/LSST overlap.
func hlwasFootprint() *domain.Footprint {
	return &domain.Footprint{
		Name:        "HLWAS",
		Description: "High Latitude Wide Area Survey (~5,000 deg²)",
		Type:        domain.FootprintSkyCuts,
		GalLatMin:   20.0,
		EclLatMin:   15.0,
		DecMax:      30.0,
	}
}

// hltdsFootprint is the High Latitude Time Domain Survey (~18 deg²):
// two discrete fields, each modelled as a circular cap of radius 2.4°.
func hltdsFootprint() *domain.Footprint {
	return &domain.Footprint{
		Name:        "HLTDS",
		Description: "High Latitude Time Domain Survey (~18 deg², 2 fields)",
		Type:        domain.FootprintCircles,
		Fields: []domain.Field{
			{Label: "ELAIS-N1 (North)", RA: 242.75, Dec: 54.98, RadiusDeg: 2.4},
			{Label: "EDFS (South)", RA: 59.10, Dec: -49.32, RadiusDeg: 2.4},
		},
	}
}

// gbtdsPointings are the six WFI pointings toward the galactic bulge,
// given as galactic (l, b) in degrees.
var gbtdsPointings = [6][2]float64{
	{-0.418, -1.200},
	{-0.009, -1.200},
	{0.400, -1.200},
	{0.809, -1.200},
	{1.218, -1.200},
	{0.000, -0.125},
}

// gbtdsFootprint is the Galactic Bulge Time Domain Survey (~2 deg²).
// The 0.30° field radius is slightly larger than the WFI field of view to
// allow dither overlap.
func gbtdsFootprint() *domain.Footprint {
	fields := make([]domain.Field, 0, len(gbtdsPointings))
	for i, lb := range gbtdsPointings {
		ra, dec := sphere.GalacticToICRS(lb[0], lb[1])
		fields = append(fields, domain.Field{
			Label:     fmt.Sprintf("GBTDS Field %d (l=%.3f, b=%.3f)", i+1, lb[0], lb[1]),
			RA:        ra,
			Dec:       dec,
			RadiusDeg: 0.30,
		})
	}
	return &domain.Footprint{
		Name:        "GBTDS",
		Description: "Galactic Bulge Time Domain Survey (~2 deg², 6 pointings)",
		Type:        domain.FootprintCircles,
		Fields:      fields,
	}
}

