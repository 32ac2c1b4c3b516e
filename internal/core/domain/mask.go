package domain

// PixelMask is an externally supplied HEALPix coverage mask.
//
// Values holds one value per pixel in RING order; pixels with value > 0 are
// inside the footprint. When a mask is present it overrides footprint
// geometry entirely for every combination in a run.
type PixelMask struct {
	// Values are the per-pixel mask values, length 12 * Nside^2.
	Values []float64
	// Nside is the HEALPix resolution parameter (a power of two).
	Nside int
}

// Npix returns the number of pixels in the mask.
func (m *PixelMask) Npix() int {
	return len(m.Values)
}

// ActivePixels returns the number of pixels with value > 0.
func (m *PixelMask) ActivePixels() int {
	n := 0
	for _, v := range m.Values {
		if v > 0 {
			n++
		}
	}
	return n
}
