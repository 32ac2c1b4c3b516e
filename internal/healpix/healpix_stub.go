//go:build nohealpix

package healpix

import (
	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// Available reports whether HEALPix mask support is compiled in.
// This is a stub for builds with the nohealpix tag.
func Available() bool { return false }

// Nside2Npix returns the pixel count for a resolution parameter.
func Nside2Npix(nside int) int {
	return 12 * nside * nside
}

// Npix2Nside is a stub for builds without HEALPix support.
func Npix2Nside(npix int) (int, error) {
	return 0, domain.ErrMaskSupportUnavailable
}

// Ang2PixRing is a stub for builds without HEALPix support.
// It always returns pixel 0; callers must check Available first.
func Ang2PixRing(nside int, theta, phi float64) int {
	return 0
}

// LookupRaDec is a stub for builds without HEALPix support.
func LookupRaDec(mask *domain.PixelMask, ra, dec float64) float64 {
	return 0
}
