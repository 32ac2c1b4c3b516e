// Package sphere implements the spherical geometry used by the footprint
// membership engine: great-circle separations and the coordinate-frame
// transforms between ICRS equatorial, galactic and ecliptic coordinates.
//
// All public functions take and return decimal degrees.
package sphere

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Separation returns the great-circle angular distance in degrees between
// two ICRS positions.
//
// Uses the haversine formula, which stays numerically stable for the small
// separations that matter here (field radii down to ~0.3°) where the naive
// arccos of a dot product loses precision.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	phi1 := radians(dec1)
	phi2 := radians(dec2)
	dPhi := radians(dec2 - dec1)
	dLam := radians(ra2 - ra1)

	sinPhi := math.Sin(dPhi / 2)
	sinLam := math.Sin(dLam / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLam*sinLam
	if h > 1 {
		h = 1
	}
	return degrees(2 * math.Asin(math.Sqrt(h)))
}

// unitVector returns the Cartesian unit vector for a (lon, lat) direction
// in degrees.
func unitVector(lon, lat float64) *mat.VecDense {
	l := radians(lon)
	b := radians(lat)
	return mat.NewVecDense(3, []float64{
		math.Cos(b) * math.Cos(l),
		math.Cos(b) * math.Sin(l),
		math.Sin(b),
	})
}

// lonLat converts a Cartesian vector back to (lon, lat) degrees, with the
// longitude normalised to [0, 360).
func lonLat(v *mat.VecDense) (lon, lat float64) {
	x, y, z := v.AtVec(0), v.AtVec(1), v.AtVec(2)
	lat = degrees(math.Asin(clamp(z, -1, 1)))
	lon = degrees(math.Atan2(y, x))
	if lon < 0 {
		lon += 360
	}
	return lon, lat
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
