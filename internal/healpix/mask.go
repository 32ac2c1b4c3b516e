package healpix

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pmarcum/roman-xmatch/internal/core/domain"
)

// LoadMask reads a HEALPix coverage mask from a text file: one pixel value
// per line in RING order, blank lines and '#' comments ignored. Files
// ending in .gz are decompressed transparently.
//
// The resolution parameter is derived from the pixel count, which must be
// 12 * nside^2 for a power-of-two nside. Unreadable or malformed input is
// reported as domain.ErrMaskRead; builds without HEALPix support report
// domain.ErrMaskSupportUnavailable.
func LoadMask(path string) (*domain.PixelMask, error) {
	if !Available() {
		return nil, domain.ErrMaskSupportUnavailable
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMaskRead, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMaskRead, err)
		}
		defer gz.Close()
		r = gz
	}

	values, err := readPixelValues(r)
	if err != nil {
		return nil, err
	}

	nside, err := Npix2Nside(len(values))
	if err != nil {
		return nil, fmt.Errorf("%w: %d pixels is not a HEALPix map length", domain.ErrMaskRead, len(values))
	}

	return &domain.PixelMask{Values: values, Nside: nside}, nil
}

func readPixelValues(r io.Reader) ([]float64, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not a pixel value", domain.ErrMaskRead, line, text)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMaskRead, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no pixel values found", domain.ErrMaskRead)
	}
	return values, nil
}
