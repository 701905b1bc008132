package focus

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-focus/raster"
)

// Metric measures how much of in is made of sharp detail.
//
// It builds the edge-strength image of in (see EdgeMagnitude), takes its
// 256-bucket histogram and returns the length of the longest run of adjacent
// buckets holding at least floor(peak*fraction) pixels, where peak is the
// fullest bucket. Flat or blurred images pile their edge values into a few
// low buckets and score low; detailed images spread them out and score high.
// With a fraction of 0.01, photographs typically score above 16.
//
// fraction must be within [0, 1]. When the derived threshold truncates to
// zero (a tiny fraction, or a tiny image) Metric fails with a *LayoutError
// matching ErrDegenerateThreshold rather than returning a meaningless run.
// A result of 0 means no bucket reached the threshold.
//
// in is borrowed and left open; all images acquired on the way are closed
// before Metric returns.
func Metric(lib raster.Library, in raster.Image, fraction float64) (int, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrThresholdRange, fraction)
	}

	edge, err := EdgeMagnitude(lib, in)
	if err != nil {
		return 0, err
	}
	defer edge.Close()

	hist, err := lib.HistFind(edge, 0)
	if err != nil {
		return 0, libraryError(KindHistogram, "histogram", err)
	}
	defer hist.Close()

	peak, err := lib.Max(hist)
	if err != nil {
		return 0, libraryError(KindStatistics, "max", err)
	}

	threshold := thresholdFor(peak, fraction)
	metric, err := LongestRun(hist, threshold)
	if err != nil {
		Logger().Debug("focus: histogram rejected",
			"width", in.Width(), "height", in.Height(),
			"peak", peak, "threshold", threshold, "err", err)
		return 0, err
	}

	Logger().Debug("focus: metric computed",
		"width", in.Width(), "height", in.Height(),
		"peak", peak, "threshold", threshold, "metric", metric)
	return metric, nil
}

// thresholdFor returns floor(peak*fraction) as a bucket count.
func thresholdFor(peak, fraction float64) uint32 {
	t := math.Floor(peak * fraction)
	switch {
	case t <= 0 || math.IsNaN(t):
		return 0
	case t >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(t)
}
