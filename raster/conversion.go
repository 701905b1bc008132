package raster

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/math/f64"
)

// ExtractBand returns band as a new single-band image of the same format.
func (n *Native) ExtractBand(in Image, band int) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}
	if band < 0 || band >= src.bands {
		return nil, fmt.Errorf("%w: band %d of %d", ErrBandRange, band, src.bands)
	}

	interp := src.interp
	switch interp {
	case InterpretationSRGB:
		interp = InterpretationBW
	case InterpretationRGB16:
		interp = InterpretationGrey16
	}

	out := n.newBuffer(src.width, src.height, 1, src.format, interp)
	size := src.format.Size()
	pixels := src.width * src.height
	for p := 0; p < pixels; p++ {
		from := (p*src.bands + band) * size
		copy(out.pix[p*size:(p+1)*size], src.pix[from:from+size])
	}
	return out, nil
}

// Cast converts in to format.
//
// Values outside the range of an integer target are clamped to it, and
// fractional values are truncated toward zero. NaN becomes 0.
func (n *Native) Cast(in Image, format BandFormat) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}
	if !format.valid() {
		return nil, fmt.Errorf("%w: cast to %v", ErrUnsupported, format)
	}

	interp := src.interp
	if format != FormatUchar && interp == InterpretationBW {
		interp = InterpretationMultiband
	}

	out := n.newBuffer(src.width, src.height, src.bands, format, interp)
	lo, hi := format.Range()
	for i, count := 0, src.samples(); i < count; i++ {
		v := src.at(i)
		if !format.IsFloat() {
			if math.IsNaN(v) {
				v = 0
			}
			v = math.Trunc(f64.Clamp(v, lo, hi))
		}
		out.set(i, v)
	}
	return out, nil
}
