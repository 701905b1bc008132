package focus

import (
	"errors"
	"math"

	"github.com/ironsheep/image-focus/raster"
)

// ErrBadOption is returned by PhotoOptions.Check for out-of-range settings.
var ErrBadOption = errors.New("focus: bad option specified")

// PhotoOptions controls Classify.
type PhotoOptions struct {
	// Threshold is the fraction of the peak bucket a bucket must reach to
	// extend a run. Zero means 0.01.
	Threshold float64

	// MinRun is the metric at or above which an image is a photo.
	// Zero means 16.
	MinRun int

	// MaxPixels skips edge detection for images this large or larger and
	// reports them as photos. Zero means 3 megapixels; negative disables
	// the limit.
	MaxPixels int
}

// Defaults used by PhotoOptions.Check for unset fields.
const (
	DefaultPhotoThreshold = 0.01
	DefaultPhotoMinRun    = 16
	DefaultPhotoMaxPixels = 3 * 1024 * 1024
)

// Check fills in defaults and validates o, returning the normalized copy.
func (o PhotoOptions) Check() (PhotoOptions, error) {
	if o.Threshold == 0 {
		o.Threshold = DefaultPhotoThreshold
	}
	if o.MinRun == 0 {
		o.MinRun = DefaultPhotoMinRun
	}
	if o.MaxPixels == 0 {
		o.MaxPixels = DefaultPhotoMaxPixels
	}

	if math.IsNaN(o.Threshold) || o.Threshold < 0 || o.Threshold > 1 {
		return PhotoOptions{}, ErrBadOption
	}
	if o.MinRun < 0 || o.MinRun > Buckets {
		return PhotoOptions{}, ErrBadOption
	}
	return o, nil
}

// Classification is the result of Classify.
type Classification struct {
	// Metric is the focus metric, or 0 when Skipped.
	Metric int

	// Photo reports whether the image looks like a photograph (dense,
	// continuous-tone detail) rather than flat artwork.
	Photo bool

	// Skipped is set when the image was too large to measure.
	Skipped bool
}

// Classify decides whether in looks like a photograph.
//
// Images with at least o.MaxPixels pixels are reported as photos without
// measuring them. Otherwise the image is a photo when Metric(lib, in,
// o.Threshold) is at least o.MinRun. On error Photo is false.
func Classify(lib raster.Library, in raster.Image, o PhotoOptions) (Classification, error) {
	o, err := o.Check()
	if err != nil {
		return Classification{}, err
	}

	if o.MaxPixels > 0 && in.Width()*in.Height() >= o.MaxPixels {
		Logger().Debug("focus: image too large to measure, assuming photo",
			"width", in.Width(), "height", in.Height(), "max_pixels", o.MaxPixels)
		return Classification{Photo: true, Skipped: true}, nil
	}

	metric, err := Metric(lib, in, o.Threshold)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Metric: metric, Photo: metric >= o.MinRun}, nil
}

// IsPhoto is Classify for callers that only need a yes or no. Errors are
// logged at warn level and reported as "not a photo", so that an encoder
// choosing between lossless and lossy output falls back to lossless.
func IsPhoto(lib raster.Library, in raster.Image, o PhotoOptions) bool {
	c, err := Classify(lib, in, o)
	if err != nil {
		Logger().Warn("focus: photo classification failed", "err", err)
		return false
	}
	return c.Photo
}
