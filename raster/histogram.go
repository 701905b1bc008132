package raster

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// HistogramBins is the width of the image returned by HistFind.
const HistogramBins = 256

// HistFind counts the values of one band of a FormatUchar image.
//
// The result is a 256x1 single-band FormatUint image whose sample x is the
// number of pixels with value x.
func (n *Native) HistFind(in Image, band int) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}
	if src.format != FormatUchar {
		return nil, fmt.Errorf("%w: histogram of %v image", ErrUnsupported, src.format)
	}
	if band < 0 || band >= src.bands {
		return nil, fmt.Errorf("%w: band %d of %d", ErrBandRange, band, src.bands)
	}

	plane := image.NewGray(image.Rect(0, 0, src.width, src.height))
	for p := range plane.Pix {
		plane.Pix[p] = src.pix[p*src.bands+band]
	}
	// A grey pixel expands to equal R, G and B, so the red bins are the
	// value counts.
	bins := histogram.NewRGBAHistogram(plane).R.Bins

	out := n.newBuffer(HistogramBins, 1, 1, FormatUint, InterpretationHistogram)
	for x := 0; x < HistogramBins && x < len(bins); x++ {
		out.set(x, float64(bins[x]))
	}
	return out, nil
}
