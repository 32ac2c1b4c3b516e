//go:build !nohealpix

// Package healpix provides the subset of the HEALPix pixelization scheme
// needed for coverage-mask lookups: RING-ordered ang2pix and the fixed
// relationship between pixel count and resolution.
//
// Building with the nohealpix tag compiles the package down to stubs that
// report mask support as unavailable; mask-driven runs then fail with
// domain.ErrMaskSupportUnavailable while geometry-driven runs are
// unaffected.
package healpix

import (
	"fmt"
	"math"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// Available reports whether HEALPix mask support is compiled in.
func Available() bool { return true }

// Nside2Npix returns the pixel count for a resolution parameter.
func Nside2Npix(nside int) int {
	return 12 * nside * nside
}

// Npix2Nside derives the resolution parameter from a pixel count.
// The count must be 12 * nside^2 for a power-of-two nside.
func Npix2Nside(npix int) (int, error) {
	if npix <= 0 || npix%12 != 0 {
		return 0, fmt.Errorf("%w: %d is not a valid HEALPix pixel count", domain.ErrInvalidInput, npix)
	}
	nside := int(math.Round(math.Sqrt(float64(npix) / 12)))
	if 12*nside*nside != npix || !isPowerOfTwo(nside) {
		return 0, fmt.Errorf("%w: %d is not a valid HEALPix pixel count", domain.ErrInvalidInput, npix)
	}
	return nside, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Ang2PixRing returns the RING-ordered pixel index containing the
// direction (theta, phi), where theta is the colatitude in radians
// (0 at the north pole) and phi the longitude in radians.
//
// This is the standard HEALPix ang2pix_ring algorithm (Górski et al. 2005).
func Ang2PixRing(nside int, theta, phi float64) int {
	ns := float64(nside)
	z := math.Cos(theta)
	za := math.Abs(z)

	// Longitude scaled to [0, 4).
	tt := math.Mod(phi, 2*math.Pi)
	if tt < 0 {
		tt += 2 * math.Pi
	}
	tt *= 2 / math.Pi

	if za <= 2.0/3.0 {
		// Equatorial region.
		t1 := ns * (0.5 + tt)
		t2 := ns * z * 0.75
		jp := int(math.Floor(t1 - t2)) // ascending edge line index
		jm := int(math.Floor(t1 + t2)) // descending edge line index

		ir := nside + 1 + jp - jm // ring number, 1..2*nside+1
		kshift := 1 - ir&1        // 1 for even rings

		ip := (jp + jm - nside + kshift + 1) / 2
		ip = ip % (4 * nside)
		if ip < 0 {
			ip += 4 * nside
		}

		return 2*nside*(nside-1) + (ir-1)*4*nside + ip
	}

	// Polar caps.
	tp := tt - math.Floor(tt)
	tmp := ns * math.Sqrt(3*(1-za))
	jp := int(math.Floor(tp * tmp))
	jm := int(math.Floor((1 - tp) * tmp))

	ir := jp + jm + 1 // ring number counted from the closest pole
	ip := int(math.Floor(tt * float64(ir)))
	ip = ip % (4 * ir)
	if ip < 0 {
		ip += 4 * ir
	}

	if z > 0 {
		return 2*ir*(ir-1) + ip
	}
	return 12*nside*nside - 2*ir*(ir+1) + ip
}

// LookupRaDec returns the mask value at an ICRS position, using the
// HEALPix angular convention theta = 90° - dec, phi = ra.
func LookupRaDec(mask *domain.PixelMask, ra, dec float64) float64 {
	theta := (90 - dec) * math.Pi / 180
	phi := ra * math.Pi / 180
	return mask.Values[Ang2PixRing(mask.Nside, theta, phi)]
}
