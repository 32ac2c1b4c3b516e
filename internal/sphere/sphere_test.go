package sphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparationIdenticalPoints(t *testing.T) {
	assert.InDelta(t, 0.0, Separation(120.0, -45.0, 120.0, -45.0), 1e-12)
}

func TestSeparationAlongDeclination(t *testing.T) {
	// Same RA, 2.4 degrees apart in Dec: separation is exactly the
	// declination difference.
	assert.InDelta(t, 2.4, Separation(242.75, 54.98, 242.75, 57.38), 1e-10)
}

func TestSeparationAntipodal(t *testing.T) {
	assert.InDelta(t, 180.0, Separation(0.0, 0.0, 180.0, 0.0), 1e-9)
}

func TestSeparationSymmetric(t *testing.T) {
	a := Separation(59.10, -49.32, 242.75, 54.98)
	b := Separation(242.75, 54.98, 59.10, -49.32)
	assert.InDelta(t, a, b, 1e-12)
}

func TestSeparationSmallAngleStability(t *testing.T) {
	// One milliarcsecond apart near the pole.
	d := 1.0 / 3600 / 1000
	got := Separation(10.0, 89.9, 10.0, 89.9+d)
	assert.InDelta(t, d, got, 1e-12)
}

func TestGalacticPole(t *testing.T) {
	// The north galactic pole is at ICRS (192.85948, +27.12825).
	b := GalacticLatitude(192.85948, 27.12825)
	assert.InDelta(t, 90.0, b, 1e-4)
}

func TestGalacticCentreNearPlane(t *testing.T) {
	// The galactic centre direction lies in the galactic plane.
	l, b := GalacticLatLon(266.40499, -28.93617)
	assert.InDelta(t, 0.0, b, 0.01)
	assert.Less(t, math.Min(l, 360-l), 0.05)
}

func TestGalacticRoundTrip(t *testing.T) {
	cases := [][2]float64{
		{0.0, -1.2},
		{1.218, -1.2},
		{359.582, -1.2},
		{90.0, 45.0},
		{180.0, -60.0},
	}
	for _, c := range cases {
		ra, dec := GalacticToICRS(c[0], c[1])
		l, b := GalacticLatLon(ra, dec)
		dl := math.Abs(l - c[0])
		if dl > 180 {
			dl = 360 - dl
		}
		assert.InDelta(t, 0.0, dl, 1e-9, "l round trip for %v", c)
		assert.InDelta(t, c[1], b, 1e-9, "b round trip for %v", c)
	}
}

func TestEclipticPoleLatitude(t *testing.T) {
	// The north ecliptic pole sits at RA=270, Dec = 90 - obliquity.
	lat := EclipticLatitude(270.0, 90.0-obliquityJ2000)
	assert.InDelta(t, 90.0, lat, 1e-9)
}

func TestEclipticEquinoxOnPlane(t *testing.T) {
	// The vernal equinox direction lies on the ecliptic.
	assert.InDelta(t, 0.0, EclipticLatitude(0.0, 0.0), 1e-12)
}

func TestEclipticLatitudeKnownPoint(t *testing.T) {
	// At RA=90 (solstice colure) on the equator the ecliptic latitude is
	// minus the obliquity.
	assert.InDelta(t, -obliquityJ2000, EclipticLatitude(90.0, 0.0), 1e-9)
}
