package focus

import (
	"encoding/binary"

	"github.com/ironsheep/image-focus/raster"
)

// Buckets is the number of histogram buckets scanned by LongestRun.
const Buckets = raster.HistogramBins

// LongestRun returns the length of the longest run of adjacent histogram
// buckets whose count is at least threshold.
//
// hist must be a 256x1 single-band raster.FormatUint image and threshold must
// be non-zero; otherwise a *LayoutError is returned. When several runs share
// the longest length the first one wins, though only the length is reported.
func LongestRun(hist raster.Image, threshold uint32) (int, error) {
	counts, err := bucketCounts(hist, threshold)
	if err != nil {
		return 0, err
	}
	return longestRun(counts, threshold), nil
}

// bucketCounts checks the histogram preconditions and copies the counts out
// of the raw buffer.
func bucketCounts(hist raster.Image, threshold uint32) (*[Buckets]uint32, error) {
	layout := func(r LayoutReason) error {
		return &LayoutError{
			Reason:    r,
			Width:     hist.Width(),
			Height:    hist.Height(),
			Bands:     hist.Bands(),
			Format:    hist.Format(),
			Threshold: threshold,
		}
	}

	switch {
	case hist.Bands() != 1:
		return nil, layout(ReasonBands)
	case hist.Format() != raster.FormatUint:
		return nil, layout(ReasonFormat)
	case hist.Height() != 1:
		return nil, layout(ReasonHeight)
	case hist.Width() != Buckets:
		return nil, layout(ReasonWidth)
	case threshold == 0:
		return nil, layout(ReasonThreshold)
	}

	pix := hist.Bytes()
	if len(pix) < Buckets*4 {
		return nil, layout(ReasonBuffer)
	}

	var counts [Buckets]uint32
	for x := range counts {
		counts[x] = binary.LittleEndian.Uint32(pix[x*4:])
	}
	return &counts, nil
}

// longestRun scans counts once from left to right. A later run only replaces
// the current longest when it is strictly longer.
func longestRun(counts *[Buckets]uint32, threshold uint32) int {
	longest := 0
	x := 0
	for x < len(counts) {
		for x < len(counts) && counts[x] < threshold {
			x++
		}
		first := x
		for x < len(counts) && counts[x] >= threshold {
			x++
		}
		if length := x - first; length > longest {
			longest = length
		}
	}
	return longest
}
