package sphere

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// icrsToGal is the fixed IAU rotation matrix from ICRS equatorial to
// galactic coordinates (SOFA icrs2g), defined by the ICRS coordinates of
// the north galactic pole (192.85948°, +27.12825°) and the galactic
// longitude of the north celestial pole (122.93192°). The inverse
// transform is its transpose.
var icrsToGal = mat.NewDense(3, 3, []float64{
	-0.0548755604162154, -0.8734370902348850, -0.4838350155487132,
	+0.4941094278755837, -0.4448296299600112, +0.7469822444972189,
	-0.8676661490190047, -0.1980763734312015, +0.4559837761750669,
})

// galToICRS is the galactic-to-ICRS rotation, the transpose of icrsToGal.
var galToICRS = transpose(icrsToGal)

// obliquityJ2000 is the obliquity of the ecliptic at J2000.0 in degrees
// (84381.448 arcsec, IAU 1980). The difference between the mean and true
// ecliptic (nutation, a few arcsec) is far below the 15° cuts applied to
// ecliptic latitudes here.
const obliquityJ2000 = 84381.448 / 3600.0

// icrsToEcl is the equatorial-to-ecliptic rotation: a rotation about the
// x axis (the equinox direction) by the obliquity.
var icrsToEcl = rotX(radians(obliquityJ2000))

// GalacticLatLon returns the galactic (l, b) in degrees of an ICRS
// position.
func GalacticLatLon(ra, dec float64) (l, b float64) {
	var g mat.VecDense
	g.MulVec(icrsToGal, unitVector(ra, dec))
	return lonLat(&g)
}

// GalacticLatitude returns the galactic latitude b in degrees of an ICRS
// position.
func GalacticLatitude(ra, dec float64) float64 {
	_, b := GalacticLatLon(ra, dec)
	return b
}

// GalacticToICRS converts galactic (l, b) in degrees to ICRS (ra, dec).
// The conversion is exact: it applies the transpose of the IAU rotation
// matrix, so round-tripping a position reproduces it to machine precision.
func GalacticToICRS(l, b float64) (ra, dec float64) {
	var e mat.VecDense
	e.MulVec(galToICRS, unitVector(l, b))
	return lonLat(&e)
}

// EclipticLatitude returns the ecliptic latitude in degrees of an ICRS
// position, using the J2000 ecliptic.
func EclipticLatitude(ra, dec float64) float64 {
	var v mat.VecDense
	v.MulVec(icrsToEcl, unitVector(ra, dec))
	_, lat := lonLat(&v)
	return lat
}

// rotX returns the rotation matrix about the x axis by angle radians.
func rotX(angle float64) *mat.Dense {
	s, c := math.Sin(angle), math.Cos(angle)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	})
}

func transpose(m *mat.Dense) *mat.Dense {
	var t mat.Dense
	t.CloneFrom(m.T())
	return &t
}
